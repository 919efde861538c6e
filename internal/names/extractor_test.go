package names

import (
	"testing"

	"resumescreen/internal/types"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "name on first line",
			text:     "John Smith\nSoftware Engineer\njohn@example.com",
			expected: "John Smith",
		},
		{
			name:     "explicit name label",
			text:     "Name: jane doe\nAccountant",
			expected: "Jane Doe",
		},
		{
			name:     "all caps name line",
			text:     "JANE DOE\nMarketing Manager",
			expected: "Jane Doe",
		},
		{
			name:     "name with middle initial",
			text:     "John A. Smith\nData Analyst",
			expected: "John A. Smith",
		},
		{
			name:     "name after resume header",
			text:     "Curriculum Vitae\nMaria Garcia\nNurse Practitioner",
			expected: "Maria Garcia",
		},
		{
			name:     "name from email local part",
			text:     "Senior developer, 10 years of experience\ncontact: john.smith@example.com",
			expected: "John Smith",
		},
		{
			name:     "name prefix with trailing title",
			text:     "Jane Doe, Senior Accountant\nphone: 555-0100",
			expected: "Jane Doe",
		},
		{
			name: "name under personal information header",
			text: "confidential document\nprepared for review\nPERSONAL INFORMATION\nmaria garcia\n555-0100",
			// Lowercase names only validate through the section strategy,
			// which runs Format on the following line.
			expected: "Maria Garcia",
		},
		{
			name:     "document title is not a name",
			text:     "REAL ESTATE AGENT RESUME\n15 years experience, license #4421",
			expected: types.UnknownCandidate,
		},
		{
			name:     "placeholder tokens rejected",
			text:     "Test Sample\ntest.sample@example.com",
			expected: types.UnknownCandidate,
		},
		{
			name:     "empty text",
			text:     "",
			expected: types.UnknownCandidate,
		},
		{
			name:     "whitespace only",
			text:     "   \n\t\n  ",
			expected: types.UnknownCandidate,
		},
		{
			name:     "no name anywhere",
			text:     "objective: seeking a challenging position\nskills: go, sql",
			expected: types.UnknownCandidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text); got != tt.expected {
				t.Errorf("Extract() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractNeverErrors(t *testing.T) {
	// Hostile inputs must still produce either a name or the sentinel.
	inputs := []string{
		"{\"not\": \"a resume\"}",
		"\x00\x01\x02",
		"1234567890 9876543210",
		"a\nb\nc\nd\ne\nf\ng\nh",
	}
	for _, input := range inputs {
		got := Extract(input)
		if got == "" {
			t.Errorf("Extract(%q) returned empty string, want a name or sentinel", input)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"lowercase name", "john smith", "John Smith"},
		{"mixed case", "jOHN sMITH", "John Smith"},
		{"apostrophe name", "o'brien mcdonald", "O'Brien McDonald"},
		{"mc prefix", "sarah mcconnell", "Sarah McConnell"},
		{"strips disallowed characters", "John* Smith#", "John Smith"},
		{"collapses whitespace", "  john \t smith  ", "John Smith"},
		{"single word rejected", "Madonna", types.UnknownCandidate},
		{"five words rejected", "one two three four five", types.UnknownCandidate},
		{"boilerplate phrase rejected", "Real Estate Agent", types.UnknownCandidate},
		{"all placeholder words rejected", "Test Draft", types.UnknownCandidate},
		{"digits rejected", "John Smith2", types.UnknownCandidate},
		{"empty", "", types.UnknownCandidate},
		{
			"over fifty characters rejected",
			"Maximiliano Bartholomew Wolfeschlegelstein Hausenberg",
			types.UnknownCandidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.raw); got != tt.expected {
				t.Errorf("Format(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestIsLikelyNameWord(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"John", true},
		{"O'Brien", true},
		{"A.", true},
		{"x", false},
		{"john", false},
		{"Smith3", false},
		{"Resume", false},
		{"Test2", false},
		{"Thiswordiswaytoolongtobeaname", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := isLikelyNameWord(tt.word); got != tt.expected {
				t.Errorf("isLikelyNameWord(%q) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}
