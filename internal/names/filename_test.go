package names

import (
	"testing"

	"resumescreen/internal/types"
)

func TestExtractFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"first last with resume suffix", "John_Smith_Resume.pdf", "John Smith"},
		{"resume prefix", "resume_jane_doe.docx", "Jane Doe"},
		{"cv suffix with counter", "Jane-Doe-cv2.pdf", "Jane Doe"},
		{"plain first last", "Jane-Doe.pdf", "Jane Doe"},
		{"middle initial", "John_A._Smith.pdf", "John A. Smith"},
		{"full path", "/tmp/uploads/Maria_Garcia_CV.pdf", "Maria Garcia"},
		{"boilerplate stripped", "final_copy_Jane_Doe_v2.txt", "Jane Doe"},
		{"only boilerplate", "resume.pdf", types.UnknownCandidate},
		{"version soup", "final_copy_v2.pdf", types.UnknownCandidate},
		{"placeholder name", "test_sample.pdf", types.UnknownCandidate},
		{"empty", "", types.UnknownCandidate},
		{"digits", "12345.pdf", types.UnknownCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFromFilename(tt.filename); got != tt.expected {
				t.Errorf("ExtractFromFilename(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		source   string
		expected float64
	}{
		{
			name:     "sentinel is zero",
			input:    types.UnknownCandidate,
			source:   "John Smith\nEngineer",
			expected: 0.0,
		},
		{
			name:     "empty name is zero",
			input:    "",
			source:   "anything",
			expected: 0.0,
		},
		{
			name:     "two word name near the top",
			input:    "John Smith",
			source:   "John Smith\nSoftware Engineer",
			expected: 0.85,
		},
		{
			name:     "recurring name clamps at one",
			input:    "John Smith",
			source:   "John Smith\nContact John Smith at john@example.com",
			expected: 1.0,
		},
		{
			name:     "three word name without source support",
			input:    "John A. Smith",
			source:   "completely unrelated text",
			expected: 0.65,
		},
		{
			name:     "suspicious word penalized",
			input:    "Test Draft",
			source:   "",
			expected: 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.input, tt.source)
			if diff := got - tt.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Confidence(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
