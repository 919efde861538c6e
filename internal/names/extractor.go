// Package names extracts a candidate's display name from raw resume text or
// from a resume filename. Extraction is best-effort and total: every entry
// point returns either a validated, title-cased name or the
// types.UnknownCandidate sentinel, never an error.
package names

import (
	"regexp"
	"strings"

	"resumescreen/internal/types"
)

// A strategy is a pure function over resume text that yields a validated,
// formatted name or the empty string. Strategies are tried in order and the
// first success wins; there is no backtracking across strategies.
type strategy struct {
	name string
	fn   func(text string) string
}

var strategies = []strategy{
	{"explicit-pattern", matchExplicitPattern},
	{"first-lines", scanFirstLines},
	{"email-local-part", fromEmailLocalPart},
	{"capitalized-prefix", matchCapitalizedPrefix},
	{"structured-section", fromStructuredSection},
}

// Extract returns the best-effort candidate display name found in resume
// text. When no strategy yields a plausible name it returns
// types.UnknownCandidate.
func Extract(text string) string {
	if strings.TrimSpace(text) == "" {
		return types.UnknownCandidate
	}
	for _, s := range strategies {
		if name := s.fn(text); name != "" {
			return name
		}
	}
	return types.UnknownCandidate
}

// nonEmptyLines returns up to limit trimmed, non-empty lines from text.
func nonEmptyLines(text string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}

var explicitPatterns = []*regexp.Regexp{
	// Firstname [Middle initial] Lastname+, whole line
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z]\.?)?(?:\s+[A-Z][a-z]+(?:['-][A-Z][a-z]+)?)+)\s*$`),
	// Explicit "Name: X" label
	regexp.MustCompile(`(?i)^name\s*[:\-]\s*(\S.*)$`),
	// ALL-CAPS line
	regexp.MustCompile(`^([A-Z][A-Z'.-]+(?:\s+[A-Z][A-Z'.-]+){1,3})\s*$`),
	// Generic two-to-many-word capitalized sequence
	regexp.MustCompile(`^([A-Z][a-zA-Z'.-]+(?:\s+[A-Z][a-zA-Z'.-]+){1,3})\s*$`),
}

// matchExplicitPattern tries the explicit name patterns against the first 5
// non-empty lines.
func matchExplicitPattern(text string) string {
	for _, line := range nonEmptyLines(text, 5) {
		for _, re := range explicitPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if len(strings.Fields(candidate)) < 2 {
				continue
			}
			if name := Format(candidate); name != types.UnknownCandidate {
				return name
			}
		}
	}
	return ""
}

// headerKeywords mark lines that are resume chrome rather than a name.
var headerKeywords = []string{
	"resume", "cv", "curriculum", "vitae", "profile", "contact",
	"confidential", "draft", "page", "template", "objective", "summary",
	"phone", "email", "address", "linkedin",
}

// scanFirstLines accepts a 2-4 word line near the top of the document where
// every word looks like a name word.
func scanFirstLines(text string) string {
	for _, line := range nonEmptyLines(text, 7) {
		lower := strings.ToLower(line)
		skip := false
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		allNameWords := true
		for _, w := range words {
			if !isLikelyNameWord(w) {
				allNameWords = false
				break
			}
		}
		if !allNameWords {
			continue
		}
		if name := Format(line); name != types.UnknownCandidate {
			return name
		}
	}
	return ""
}

var (
	emailRe        = regexp.MustCompile(`([A-Za-z0-9._%+-]+)@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	emailSegmentRe = regexp.MustCompile(`^[A-Za-z]+$`)
)

// nonNameEmailWords are common mailbox words that never belong in a name.
var nonNameEmailWords = map[string]struct{}{
	"test": {}, "sample": {}, "admin": {}, "info": {}, "mail": {},
	"contact": {}, "hr": {}, "jobs": {}, "career": {}, "careers": {},
	"hello": {}, "noreply": {}, "office": {}, "resume": {},
}

// fromEmailLocalPart reconstructs a name from the local part of the first
// email address in the text.
func fromEmailLocalPart(text string) string {
	m := emailRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	var parts []string
	for _, seg := range strings.FieldsFunc(m[1], func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	}) {
		if len(seg) <= 1 || !emailSegmentRe.MatchString(seg) {
			continue
		}
		if _, skip := nonNameEmailWords[strings.ToLower(seg)]; skip {
			continue
		}
		parts = append(parts, seg)
		if len(parts) == 3 {
			break
		}
	}
	if len(parts) < 2 {
		return ""
	}
	if name := Format(strings.Join(parts, " ")); name != types.UnknownCandidate {
		return name
	}
	return ""
}

// Anchored at the start of a line only: trailing titles or contact details
// after the name are tolerated.
var capitalizedPrefixRe = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z]\.?)?(?:\s+[A-Z][a-z]+){1,2})\b`)

// matchCapitalizedPrefix applies the capitalized-sequence shape to the start
// of each of the first 10 lines.
func matchCapitalizedPrefix(text string) string {
	for _, line := range nonEmptyLines(text, 10) {
		m := capitalizedPrefixRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if name := Format(m[1]); name != types.UnknownCandidate {
			return name
		}
	}
	return ""
}

var (
	sectionHeaderRe = regexp.MustCompile(`(?i)^(personal\s+information|personal\s+details|candidate|applicant)\b`)
	allCapsLineRe   = regexp.MustCompile(`^[A-Z][A-Z\s'.-]+$`)
)

// fromStructuredSection looks for a name on the line following a personal
// information header, or following a long ALL-CAPS section header (10-30
// characters).
func fromStructuredSection(text string) string {
	lines := nonEmptyLines(text, 40)
	for i, line := range lines {
		isHeader := sectionHeaderRe.MatchString(line) ||
			(allCapsLineRe.MatchString(line) && len(line) >= 10 && len(line) <= 30)
		if !isHeader || i+1 >= len(lines) {
			continue
		}
		if name := Format(lines[i+1]); name != types.UnknownCandidate {
			return name
		}
	}
	return ""
}

// skipWords are resume-boilerplate tokens that disqualify a word from being
// part of a name.
var skipWords = map[string]struct{}{
	"resume": {}, "cv": {}, "curriculum": {}, "vitae": {}, "page": {},
	"phone": {}, "email": {}, "address": {}, "contact": {}, "profile": {},
	"summary": {}, "objective": {}, "education": {}, "experience": {},
	"skills": {}, "references": {}, "confidential": {}, "template": {},
	"linkedin": {}, "github": {}, "http": {}, "https": {}, "www": {},
	"professional": {}, "certified": {}, "untitled": {}, "document": {},
}

// falsePositiveWordRe matches placeholder tokens that frequently appear in
// test or template documents, including numbered variants (test2, draft3).
var falsePositiveWordRe = regexp.MustCompile(`(?i)^(real|test\d*|sample\d*|temp\d*|draft\d*)$`)

var nameWordRe = regexp.MustCompile(`^[A-Z][A-Za-z'.-]*$`)

// isLikelyNameWord reports whether a single word could plausibly be part of
// a person's name.
func isLikelyNameWord(word string) bool {
	if len(word) < 2 || len(word) > 20 {
		return false
	}
	if strings.ContainsAny(word, "0123456789") {
		return false
	}
	lower := strings.ToLower(strings.Trim(word, "."))
	if _, skip := skipWords[lower]; skip {
		return false
	}
	if falsePositiveWordRe.MatchString(lower) {
		return false
	}
	return nameWordRe.MatchString(word)
}

// boilerplatePhrases disqualify a whole candidate when present anywhere in
// its lowercase form. Guards against section headers that happen to be shaped
// like names.
var boilerplatePhrases = []string{
	"resume objective", "real estate", "test case", "curriculum vitae",
	"cover letter", "personal information", "career objective",
	"professional summary", "work experience", "job description",
}

// falsePositiveNameWords: a candidate made up entirely of these words is a
// placeholder document title, not a person.
var falsePositiveNameWords = map[string]struct{}{
	"real": {}, "test": {}, "sample": {}, "draft": {}, "template": {}, "document": {},
}

// isValidName reports whether a formatted candidate passes the name-level
// checks: 2-4 words, every word a likely name word, no boilerplate phrases,
// not composed entirely of placeholder words.
func isValidName(name string) bool {
	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !isLikelyNameWord(w) {
			return false
		}
	}
	lower := strings.ToLower(name)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	allPlaceholder := true
	for _, w := range words {
		if _, ok := falsePositiveNameWords[strings.ToLower(strings.Trim(w, "."))]; !ok {
			allPlaceholder = false
			break
		}
	}
	return !allPlaceholder
}

var (
	stripRe = regexp.MustCompile(`[^A-Za-z .'-]`)
	spaceRe = regexp.MustCompile(`\s+`)
)

const maxNameLength = 50

// Format normalizes a provisional name: collapses whitespace, strips
// characters that cannot appear in a name, title-cases each word
// (apostrophe-joined segments and the Mc prefix keep their inner capital),
// then re-checks validity. Returns types.UnknownCandidate when the result is
// over 50 characters or fails validation.
func Format(raw string) string {
	cleaned := stripRe.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return types.UnknownCandidate
	}
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	name := strings.Join(words, " ")
	if len(name) > maxNameLength || !isValidName(name) {
		return types.UnknownCandidate
	}
	return name
}

func titleCaseWord(word string) string {
	lower := strings.ToLower(word)
	if strings.Contains(lower, "'") {
		parts := strings.Split(lower, "'")
		for i, p := range parts {
			parts[i] = upperFirst(p)
		}
		return strings.Join(parts, "'")
	}
	if strings.HasPrefix(lower, "mc") && len(lower) > 2 {
		return "Mc" + upperFirst(lower[2:])
	}
	return upperFirst(lower)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
