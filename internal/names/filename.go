package names

import (
	"path/filepath"
	"regexp"
	"strings"

	"resumescreen/internal/types"
)

// filenamePatterns are tried in order against the extension-stripped base
// name. Separators between name parts may be underscore, hyphen or space.
var filenamePatterns = []*regexp.Regexp{
	// First_Last
	regexp.MustCompile(`^([A-Za-z]+[_\- ][A-Za-z]+)$`),
	// First_M.Last
	regexp.MustCompile(`^([A-Za-z]+[_\- ][A-Za-z]\.?[_\- ][A-Za-z]+)$`),
	// Name_resume, Name_cv (with optional trailing counter: Jane_Doe_resume2)
	regexp.MustCompile(`(?i)^(.+?)[_\- ](?:resume|cv)\d*$`),
	// resume_Name, cv_Name
	regexp.MustCompile(`(?i)^(?:resume|cv)[_\- ](.+)$`),
}

// filenameBoilerplateRe matches tokens stripped from a filename before the
// last-resort validation pass.
var filenameBoilerplateRe = regexp.MustCompile(`(?i)^(resume|cv|curriculum|vitae|real|test|sample|draft|final|copy|new|v?\d+)$`)

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// ExtractFromFilename recovers a candidate name from a resume filename such
// as "John_Smith_Resume.pdf". Returns types.UnknownCandidate when nothing in
// the filename validates as a name.
func ExtractFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSpace(base)
	if base == "" {
		return types.UnknownCandidate
	}

	for _, re := range filenamePatterns {
		m := re.FindStringSubmatch(base)
		if m == nil {
			continue
		}
		if name := Format(separatorReplacer.Replace(m[1])); name != types.UnknownCandidate {
			return name
		}
	}

	// Last resort: drop boilerplate tokens and validate whatever remains.
	var kept []string
	for _, tok := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}) {
		if filenameBoilerplateRe.MatchString(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return types.UnknownCandidate
	}
	return Format(strings.Join(kept, " "))
}
