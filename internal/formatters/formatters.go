// Package formatters renders evaluation records for output: JSON for
// machine consumption, text and markdown for reading, CSV for spreadsheet
// import.
package formatters

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resumescreen/internal/types"
)

// Formatter interface for different output formats.
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters.
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters.
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "EvaluationRecord", &RecordTextFormatter{})
	registry.RegisterFormatter("text", "[]EvaluationRecord", &RecordListTextFormatter{})
	registry.RegisterFormatter("markdown", "EvaluationRecord", &RecordMarkdownFormatter{})
	registry.RegisterFormatter("markdown", "[]EvaluationRecord", &RecordListMarkdownFormatter{})
	registry.RegisterFormatter("csv", "EvaluationRecord", &RecordCSVFormatter{})
	registry.RegisterFormatter("csv", "[]EvaluationRecord", &RecordCSVFormatter{})

	return registry
}

// GlobalRegistry is the default registry used by the output handler.
var GlobalRegistry = NewFormatterRegistry()

// RegisterFormatter registers a formatter for a format and data type.
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter.
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats.
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.EvaluationRecord:
		return "EvaluationRecord"
	case []types.EvaluationRecord:
		return "[]EvaluationRecord"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type.
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// RecordTextFormatter renders one evaluation record as plain text.
type RecordTextFormatter struct{}

func (rtf *RecordTextFormatter) Format(data any) (string, error) {
	record, ok := data.(types.EvaluationRecord)
	if !ok {
		return "", fmt.Errorf("expected EvaluationRecord, got %T", data)
	}
	return formatRecordText(record), nil
}

func (rtf *RecordTextFormatter) SupportedType() string {
	return "EvaluationRecord"
}

func formatRecordText(record types.EvaluationRecord) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("=== %s ===\n", record.CandidateName))
	output.WriteString(fmt.Sprintf("Overall score: %.1f/100\n", record.OverallScore))
	output.WriteString(fmt.Sprintf("Recommendation: %s\n\n", record.Recommendation))

	output.WriteString(fmt.Sprintf("Skills (%d/100):\n%s\n\n", record.SkillsScore, record.SkillsAnalysis))
	output.WriteString(fmt.Sprintf("Experience (%d/100):\n%s\n\n", record.ExperienceScore, record.ExperienceAnalysis))
	output.WriteString(fmt.Sprintf("Education (%d/100):\n%s\n\n", record.EducationScore, record.EducationAnalysis))

	output.WriteString("Fit assessment:\n")
	output.WriteString(record.FitAssessment)
	output.WriteString("\n\n")

	output.WriteString("Strengths:\n")
	for _, s := range record.Strengths {
		output.WriteString("  - " + s + "\n")
	}
	output.WriteString("\nWeaknesses:\n")
	for _, w := range record.Weaknesses {
		output.WriteString("  - " + w + "\n")
	}

	output.WriteString("\nInterview questions:\n")
	for i, q := range record.InterviewQuestions {
		output.WriteString(fmt.Sprintf("  %d. %s\n", i+1, q))
	}

	return output.String()
}

// RecordListTextFormatter renders a batch of records as plain text.
type RecordListTextFormatter struct{}

func (rltf *RecordListTextFormatter) Format(data any) (string, error) {
	records, ok := data.([]types.EvaluationRecord)
	if !ok {
		return "", fmt.Errorf("expected []EvaluationRecord, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Evaluated %d candidate(s)\n\n", len(records)))
	for i, record := range records {
		if i > 0 {
			output.WriteString("\n")
		}
		output.WriteString(formatRecordText(record))
	}
	return output.String(), nil
}

func (rltf *RecordListTextFormatter) SupportedType() string {
	return "[]EvaluationRecord"
}

// RecordMarkdownFormatter renders one evaluation record as markdown.
type RecordMarkdownFormatter struct{}

func (rmf *RecordMarkdownFormatter) Format(data any) (string, error) {
	record, ok := data.(types.EvaluationRecord)
	if !ok {
		return "", fmt.Errorf("expected EvaluationRecord, got %T", data)
	}
	return formatRecordMarkdown(record), nil
}

func (rmf *RecordMarkdownFormatter) SupportedType() string {
	return "EvaluationRecord"
}

func formatRecordMarkdown(record types.EvaluationRecord) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("## %s\n\n", record.CandidateName))
	output.WriteString(fmt.Sprintf("**Overall score:** %.1f/100  \n", record.OverallScore))
	output.WriteString(fmt.Sprintf("**Recommendation:** %s\n\n", record.Recommendation))

	output.WriteString("| Category | Score | Analysis |\n")
	output.WriteString("|----------|-------|----------|\n")
	output.WriteString(fmt.Sprintf("| Skills | %d | %s |\n", record.SkillsScore, markdownCell(record.SkillsAnalysis)))
	output.WriteString(fmt.Sprintf("| Experience | %d | %s |\n", record.ExperienceScore, markdownCell(record.ExperienceAnalysis)))
	output.WriteString(fmt.Sprintf("| Education | %d | %s |\n\n", record.EducationScore, markdownCell(record.EducationAnalysis)))

	output.WriteString("### Fit Assessment\n\n")
	output.WriteString(record.FitAssessment)
	output.WriteString("\n\n### Strengths\n\n")
	for _, s := range record.Strengths {
		output.WriteString("- " + s + "\n")
	}
	output.WriteString("\n### Weaknesses\n\n")
	for _, w := range record.Weaknesses {
		output.WriteString("- " + w + "\n")
	}
	output.WriteString("\n### Interview Questions\n\n")
	for i, q := range record.InterviewQuestions {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
	}

	return output.String()
}

func markdownCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "\\|")
}

// RecordListMarkdownFormatter renders a batch of records as markdown.
type RecordListMarkdownFormatter struct{}

func (rlmf *RecordListMarkdownFormatter) Format(data any) (string, error) {
	records, ok := data.([]types.EvaluationRecord)
	if !ok {
		return "", fmt.Errorf("expected []EvaluationRecord, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Candidate Evaluation Report\n\n")
	for _, record := range records {
		output.WriteString(formatRecordMarkdown(record))
		output.WriteString("\n")
	}
	return output.String(), nil
}

func (rlmf *RecordListMarkdownFormatter) SupportedType() string {
	return "[]EvaluationRecord"
}

// RecordCSVFormatter renders records as CSV, one row per candidate, for
// spreadsheet import.
type RecordCSVFormatter struct{}

var csvHeader = []string{
	"candidate_name", "skills_score", "experience_score", "education_score",
	"overall_score", "recommendation", "skills_analysis", "experience_analysis",
	"education_analysis", "fit_assessment", "strengths", "weaknesses",
	"interview_questions",
}

func (rcf *RecordCSVFormatter) Format(data any) (string, error) {
	var records []types.EvaluationRecord
	switch t := data.(type) {
	case types.EvaluationRecord:
		records = []types.EvaluationRecord{t}
	case []types.EvaluationRecord:
		records = t
	default:
		return "", fmt.Errorf("expected EvaluationRecord or []EvaluationRecord, got %T", data)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, record := range records {
		row := []string{
			record.CandidateName,
			strconv.Itoa(record.SkillsScore),
			strconv.Itoa(record.ExperienceScore),
			strconv.Itoa(record.EducationScore),
			strconv.FormatFloat(record.OverallScore, 'f', 1, 64),
			record.Recommendation,
			record.SkillsAnalysis,
			record.ExperienceAnalysis,
			record.EducationAnalysis,
			record.FitAssessment,
			strings.Join(record.Strengths, "; "),
			strings.Join(record.Weaknesses, "; "),
			strings.Join(record.InterviewQuestions, "; "),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (rcf *RecordCSVFormatter) SupportedType() string {
	return "[]EvaluationRecord"
}
