// Package extract pulls plain text out of uploaded resume files. PDF and
// DOCX are handled with dedicated parsers; anything with a text extension is
// read as-is.
package extract

import (
	"fmt"
	"os"
	"strings"

	"resumescreen/internal/errors"
	"resumescreen/internal/utils"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Extractor reads resume files and returns their text content.
type Extractor struct {
	logger      *errors.Logger
	maxFileSize int64
}

// New creates an extractor. maxFileSize of 0 disables the size check.
func New(logger *errors.Logger, maxFileSize int64) *Extractor {
	return &Extractor{logger: logger, maxFileSize: maxFileSize}
}

// Text extracts the text content of a resume file. A file that yields no
// text at all is an error: the evaluation pipeline treats blank resume text
// as a precondition violation.
func (e *Extractor) Text(filename string) (string, error) {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot access file: %s", filename), err)
	}
	if e.maxFileSize > 0 && info.Size() > e.maxFileSize {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("File %s is %s, over the %s limit", filename,
				utils.FormatFileSize(info.Size()), utils.FormatFileSize(e.maxFileSize)), nil)
	}

	var text string
	switch utils.GetFileExtension(filename) {
	case ".pdf":
		text, err = extractPDF(filename)
	case ".docx":
		text, err = extractDOCX(filename)
	case ".txt", ".md", ".markdown", ".text", "":
		text, err = extractPlain(filename)
	default:
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unsupported resume format: %s", filename), nil)
	}
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Failed to extract text from %s", filename), err)
	}

	text = CleanText(text)
	if text == "" {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("No text content found in %s", filename), nil)
	}

	e.logger.Debug("Extracted resume text",
		"filename", filename,
		"bytes", info.Size(),
		"chars", len(text))
	return text, nil
}

func extractPDF(filename string) (string, error) {
	f, r, err := pdf.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	totalPages := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A broken page should not lose the rest of the document.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n\n")
	}
	return builder.String(), nil
}

func extractDOCX(filename string) (string, error) {
	doc, err := docx.ReadDocxFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}

func extractPlain(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// CleanText trims each line and drops blank lines, normalizing extractor
// output into the compact form the name extractor expects.
func CleanText(text string) string {
	var cleaned []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
