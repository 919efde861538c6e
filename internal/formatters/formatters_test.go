package formatters

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"resumescreen/internal/types"
)

func sampleRecord() types.EvaluationRecord {
	return types.EvaluationRecord{
		CandidateName:      "John Smith",
		SkillsScore:        85,
		ExperienceScore:    70,
		EducationScore:     60,
		OverallScore:       75.5,
		SkillsAnalysis:     "Strong Go background.",
		ExperienceAnalysis: "Eight years in backend roles.",
		EducationAnalysis:  "Relevant degree.",
		FitAssessment:      "Good match.",
		Strengths:          []string{"Go", "SQL", "Mentoring"},
		Weaknesses:         []string{"No K8s", "Limited frontend", "Short tenures"},
		Recommendation:     "Yes",
		InterviewQuestions: []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8"},
	}
}

func TestRegistryJSON(t *testing.T) {
	out, err := GlobalRegistry.Format([]types.EvaluationRecord{sampleRecord()}, "json")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	var decoded []types.EvaluationRecord
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].CandidateName != "John Smith" {
		t.Errorf("decoded = %+v, want one John Smith record", decoded)
	}
	if decoded[0].OverallScore != 75.5 {
		t.Errorf("OverallScore = %v, want 75.5", decoded[0].OverallScore)
	}
}

func TestRegistryText(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleRecord(), "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	for _, want := range []string{"John Smith", "75.5/100", "Skills (85/100)", "Recommendation: Yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestRegistryTextList(t *testing.T) {
	out, err := GlobalRegistry.Format([]types.EvaluationRecord{sampleRecord(), sampleRecord()}, "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(out, "Evaluated 2 candidate(s)") {
		t.Errorf("list header missing:\n%s", out)
	}
	if strings.Count(out, "John Smith") < 2 {
		t.Errorf("expected both records rendered:\n%s", out)
	}
}

func TestRegistryMarkdown(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleRecord(), "markdown")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	for _, want := range []string{"## John Smith", "| Skills | 85 |", "### Interview Questions"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestRegistryCSV(t *testing.T) {
	record := sampleRecord()
	// Embedded commas and newlines must survive CSV quoting.
	record.FitAssessment = "Good match, overall.\nSecond line."

	out, err := GlobalRegistry.Format([]types.EvaluationRecord{record}, "csv")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one record", len(rows))
	}
	if len(rows[0]) != len(csvHeader) {
		t.Errorf("header columns = %d, want %d", len(rows[0]), len(csvHeader))
	}
	if rows[1][0] != "John Smith" {
		t.Errorf("candidate column = %q, want John Smith", rows[1][0])
	}
	if rows[1][4] != "75.5" {
		t.Errorf("overall column = %q, want 75.5", rows[1][4])
	}
	if rows[1][9] != record.FitAssessment {
		t.Errorf("fit column = %q, want the original text preserved", rows[1][9])
	}
	if rows[1][10] != "Go; SQL; Mentoring" {
		t.Errorf("strengths column = %q, want semicolon-joined list", rows[1][10])
	}
}

func TestRegistryCSVSingleRecord(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleRecord(), "csv")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want header plus one record", len(rows))
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleRecord(), "yaml"); err == nil {
		t.Error("expected error for unregistered format")
	}
}

func TestRegistryJSONFallbackForUnknownType(t *testing.T) {
	out, err := GlobalRegistry.Format(map[string]string{"status": "ok"}, "json")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(out, `"status": "ok"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}
