package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumescreen/internal/errors"
)

func testExtractor(t *testing.T, maxFileSize int64) *Extractor {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return New(logger, maxFileSize)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestTextPlainFile(t *testing.T) {
	path := writeTemp(t, "resume.txt", "John Smith\n\n  Software Engineer  \n")

	got, err := testExtractor(t, 0).Text(path)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "John Smith\nSoftware Engineer" {
		t.Errorf("Text = %q, want cleaned two-line content", got)
	}
}

func TestTextMarkdownFile(t *testing.T) {
	path := writeTemp(t, "resume.md", "# Jane Doe\nAnalyst")

	got, err := testExtractor(t, 0).Text(path)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(got, "Jane Doe") {
		t.Errorf("Text = %q, want markdown content read as-is", got)
	}
}

func TestTextMissingFile(t *testing.T) {
	_, err := testExtractor(t, 0).Text(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "resume.xlsx", "binary")

	_, err := testExtractor(t, 0).Text(path)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestTextOverSizeLimit(t *testing.T) {
	path := writeTemp(t, "resume.txt", strings.Repeat("x", 100))

	_, err := testExtractor(t, 10).Text(path)
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
}

func TestTextEmptyFileFails(t *testing.T) {
	path := writeTemp(t, "resume.txt", "  \n \t \n")

	_, err := testExtractor(t, 0).Text(path)
	if err == nil {
		t.Fatal("expected error for a file with no text content")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeExtractionFailed {
		t.Errorf("error = %v, want EXTRACTION_FAILED", err)
	}
}

func TestTextCorruptPDF(t *testing.T) {
	path := writeTemp(t, "resume.pdf", "this is not a pdf")

	_, err := testExtractor(t, 0).Text(path)
	if err == nil {
		t.Fatal("expected error for corrupt PDF")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims lines", "  a  \n  b  ", "a\nb"},
		{"drops blank lines", "a\n\n\nb", "a\nb"},
		{"empty", "", ""},
		{"whitespace only", " \n\t\n ", ""},
		{"single line", "hello", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
