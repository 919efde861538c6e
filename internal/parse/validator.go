// Package parse turns the scoring model's free-form reply into a validated
// EvaluationRecord. Validation is total: no matter how malformed the reply
// is, every call returns a fully populated, bounds-checked record.
//
// The pipeline is a three-tier fallback. A reply that parses as JSON gets
// full field-level validation. A reply that does not parse goes through a
// regex salvage pass that scrapes whatever scores it can find. Anything that
// still goes wrong degrades to the hard-default record for the candidate.
package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"resumescreen/internal/names"
	"resumescreen/internal/types"
)

// Decision tokens recognized inside a recommendation, ordered from strongest
// to weakest.
var RecommendationTokens = []string{"Strong Yes", "Conditional Yes", "Yes", "Maybe", "No"}

// Scoring weights for the derived overall score.
const (
	skillsWeight     = 0.5
	experienceWeight = 0.3
	educationWeight  = 0.2
)

const salvageDefaultScore = 65

// DefaultInterviewQuestions is the fixed question set used whenever the
// upstream reply supplies fewer than six usable questions.
var DefaultInterviewQuestions = []string{
	"Can you walk me through your most relevant experience for this role?",
	"What attracted you to this position?",
	"Describe a challenging project you worked on and how you handled it.",
	"How do your skills align with the requirements of this role?",
	"What are your greatest professional strengths?",
	"Where do you see room for growth in your own skill set?",
	"How do you stay current with developments in your field?",
	"Do you have any questions about the role or the team?",
}

var (
	strengthFillers = []string{
		"Relevant professional background",
		"Further strengths not identified in the analysis",
		"Profile warrants a manual review",
	}
	weaknessFillers = []string{
		"Potential gaps not identified in the analysis",
		"Further weaknesses not identified in the analysis",
		"Profile warrants a manual review",
	}
)

// ValidateResponse converts the raw reply from the scoring model into a
// complete EvaluationRecord. fallbackName is used when the reply does not
// carry a usable candidate name. The function never fails.
func ValidateResponse(raw, fallbackName string) (record types.EvaluationRecord) {
	// Totality contract: any panic during field coercion degrades to the
	// hard-default record instead of escaping to the caller.
	defer func() {
		if r := recover(); r != nil {
			record = FallbackRecord(fallbackName)
		}
	}()

	span := extractJSONSpan(raw)
	var payload map[string]any
	if span == "" || json.Unmarshal([]byte(span), &payload) != nil {
		return salvageRecord(raw, fallbackName)
	}
	return buildRecord(payload, fallbackName)
}

// fenceRe matches the first fenced code block, with or without a language tag.
var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// extractJSONSpan locates the JSON object inside a reply: the first fenced
// code block when present, otherwise the first top-level {...} span (greedy,
// spanning newlines). Returns "" when no braces exist at all.
func extractJSONSpan(raw string) string {
	text := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// buildRecord runs full validation over a successfully parsed payload.
func buildRecord(payload map[string]any, fallbackName string) types.EvaluationRecord {
	skills := clampScore(asInt(payload["skills_score"]))
	experience := clampScore(asInt(payload["experience_score"]))
	education := clampScore(asInt(payload["education_score"]))

	recommendation := asString(payload["recommendation"])
	if recommendation == "" {
		// Some replies pluralize the key despite the output contract.
		recommendation = asString(payload["recommendations"])
	}

	overall := OverallScore(skills, experience, education)

	return types.EvaluationRecord{
		CandidateName:      resolveName(asString(payload["candidate_name"]), fallbackName),
		SkillsScore:        skills,
		ExperienceScore:    experience,
		EducationScore:     education,
		OverallScore:       overall,
		SkillsAnalysis:     cleanText(asString(payload["skills_analysis"])),
		ExperienceAnalysis: cleanText(asString(payload["experience_analysis"])),
		EducationAnalysis:  cleanText(asString(payload["education_analysis"])),
		FitAssessment:      cleanText(asString(payload["fit_assessment"])),
		Strengths:          normalizeList(asStrings(payload["strengths"]), strengthFillers),
		Weaknesses:         normalizeList(asStrings(payload["weaknesses"]), weaknessFillers),
		Recommendation:     ensureRecommendationToken(recommendation, overall),
		InterviewQuestions: normalizeQuestions(asStrings(payload["interview_questions"])),
	}
}

// scoreScrapeRe builds the salvage patterns: the label followed by the first
// integer within reach.
func scoreScrapeRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `[^0-9]{0,40}([0-9]{1,3})`)
}

var (
	skillsScrapeRe     = scoreScrapeRe("skills")
	experienceScrapeRe = scoreScrapeRe("experience")
	educationScrapeRe  = scoreScrapeRe("education")
)

// salvageRecord is the degraded path for replies that do not parse as JSON.
// It scrapes per-category scores out of the prose, defaulting each to 65,
// and synthesizes the remaining fields so the record is clearly labeled as
// recovered rather than abandoned.
func salvageRecord(raw, fallbackName string) types.EvaluationRecord {
	skills := scrapeScore(skillsScrapeRe, raw)
	experience := scrapeScore(experienceScrapeRe, raw)
	education := scrapeScore(educationScrapeRe, raw)
	overall := OverallScore(skills, experience, education)

	return types.EvaluationRecord{
		CandidateName:      resolveName("", fallbackName),
		SkillsScore:        skills,
		ExperienceScore:    experience,
		EducationScore:     education,
		OverallScore:       overall,
		SkillsAnalysis:     fmt.Sprintf("Recovered from an unstructured reply: estimated skills match %d%%.", skills),
		ExperienceAnalysis: fmt.Sprintf("Recovered from an unstructured reply: estimated experience match %d%%.", experience),
		EducationAnalysis:  fmt.Sprintf("Recovered from an unstructured reply: estimated education match %d%%.", education),
		FitAssessment:      "The scoring reply could not be parsed as JSON; scores above are best-effort estimates scraped from the reply text.",
		Strengths: []string{
			"Candidate was evaluated, but the detailed analysis was lost",
			"Scores are estimated from the unstructured reply",
			"A manual review of this candidate is recommended",
		},
		Weaknesses: []string{
			"Detailed weakness analysis unavailable",
			"Reply formatting prevented full validation",
			"A manual review of this candidate is recommended",
		},
		Recommendation:     "Conditional Yes: the reply could not be fully parsed, treat the scores as estimates.",
		InterviewQuestions: append([]string(nil), DefaultInterviewQuestions...),
	}
}

func scrapeScore(re *regexp.Regexp, raw string) int {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return salvageDefaultScore
	}
	n := 0
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	return clampScore(n)
}

// FallbackRecord is the hard-default record: all-zero scores, sentinel text
// fields, derived recommendation. Returned when analysis cannot be completed
// for a candidate at all.
func FallbackRecord(candidateName string) types.EvaluationRecord {
	name := strings.TrimSpace(candidateName)
	if name == "" {
		name = types.UnknownCandidate
	}
	return types.EvaluationRecord{
		CandidateName:      name,
		SkillsScore:        0,
		ExperienceScore:    0,
		EducationScore:     0,
		OverallScore:       0,
		SkillsAnalysis:     types.AnalysisUnavailable,
		ExperienceAnalysis: types.AnalysisUnavailable,
		EducationAnalysis:  types.AnalysisUnavailable,
		FitAssessment:      types.AnalysisUnavailable,
		Strengths:          []string{types.AnalysisUnavailable, types.AnalysisUnavailable, types.AnalysisUnavailable},
		Weaknesses:         []string{types.AnalysisUnavailable, types.AnalysisUnavailable, types.AnalysisUnavailable},
		Recommendation:     "No: the analysis could not be completed for this candidate.",
		InterviewQuestions: append([]string(nil), DefaultInterviewQuestions...),
	}
}

// OverallScore derives the weighted overall score, rounded to one decimal.
// It is never taken from the upstream reply.
func OverallScore(skills, experience, education int) float64 {
	raw := float64(skills)*skillsWeight + float64(experience)*experienceWeight + float64(education)*educationWeight
	return math.Round(raw*10) / 10
}

// RecommendationForScore maps an overall score onto a decision token.
func RecommendationForScore(overall float64) string {
	switch {
	case overall >= 80:
		return "Strong Yes"
	case overall >= 70:
		return "Yes"
	case overall >= 60:
		return "Conditional Yes"
	case overall >= 45:
		return "Maybe"
	default:
		return "No"
	}
}

// ContainsRecommendationToken reports whether s carries one of the literal
// decision tokens.
func ContainsRecommendationToken(s string) bool {
	for _, token := range RecommendationTokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// ensureRecommendationToken enforces the token invariant: a recommendation
// lacking a decision token gets one derived from the overall score prepended.
func ensureRecommendationToken(recommendation string, overall float64) string {
	recommendation = strings.TrimSpace(recommendation)
	token := RecommendationForScore(overall)
	if recommendation == "" || isPlaceholderText(recommendation) {
		return token
	}
	if ContainsRecommendationToken(recommendation) {
		return recommendation
	}
	return token + ": " + recommendation
}

// resolveName picks the record's display name: upstream value first, the
// extractor-provided fallback second, the sentinel last. Names are
// re-formatted through the extractor when they survive its validity checks.
func resolveName(upstream, fallback string) string {
	name := strings.TrimSpace(upstream)
	if name == "" || isPlaceholderText(name) {
		name = strings.TrimSpace(fallback)
	}
	if name == "" || isPlaceholderText(name) {
		return types.UnknownCandidate
	}
	if formatted := names.Format(name); formatted != types.UnknownCandidate {
		name = formatted
	}
	if len(name) > 50 {
		name = strings.TrimSpace(name[:50])
	}
	return name
}

// placeholderValues are upstream stand-ins for "no data".
var placeholderValues = map[string]struct{}{
	"n/a": {}, "na": {}, "null": {}, "none": {}, "nil": {}, "-": {}, "unknown": {},
	"not available": {}, "not applicable": {},
}

func isPlaceholderText(s string) bool {
	_, ok := placeholderValues[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// cleanText replaces blank or placeholder analysis text with the sentinel.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || isPlaceholderText(s) {
		return types.AnalysisUnavailable
	}
	return s
}

// normalizeList returns exactly three usable entries: blank and placeholder
// entries are dropped, long lists truncated, short lists padded with fillers.
func normalizeList(items, fillers []string) []string {
	out := make([]string, 0, 3)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || isPlaceholderText(item) {
			continue
		}
		out = append(out, item)
		if len(out) == 3 {
			break
		}
	}
	for len(out) < 3 {
		out = append(out, fillers[len(out)])
	}
	return out
}

// normalizeQuestions returns exactly eight interview questions. Upstream
// questions are used only when at least six usable ones were supplied;
// otherwise the default set replaces them wholesale.
func normalizeQuestions(items []string) []string {
	usable := make([]string, 0, 8)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || isPlaceholderText(item) {
			continue
		}
		usable = append(usable, item)
		if len(usable) == 8 {
			break
		}
	}
	if len(usable) < 6 {
		return append([]string(nil), DefaultInterviewQuestions...)
	}
	for _, q := range DefaultInterviewQuestions {
		if len(usable) == 8 {
			break
		}
		if !containsString(usable, q) {
			usable = append(usable, q)
		}
	}
	return usable
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// asString coerces a decoded JSON value to a string. Numbers are formatted,
// everything else non-string collapses to "".
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return ""
	}
}

// asInt coerces a decoded JSON value to an integer. Strings are scanned for
// their first integer run, so "85%" and "score: 85" both work.
func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return firstInt(t)
	default:
		return 0
	}
}

var intRe = regexp.MustCompile(`-?[0-9]+`)

func firstInt(s string) int {
	m := intRe.FindString(s)
	if m == "" {
		return 0
	}
	neg := false
	if m[0] == '-' {
		neg = true
		m = m[1:]
	}
	n := 0
	for _, c := range m {
		n = n*10 + int(c-'0')
		if n > 1000 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// asStrings coerces a decoded JSON value to a string slice. Scalar values
// become a single-element slice so a reply that sent a string where a list
// was expected still contributes.
func asStrings(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
