package names

import (
	"strings"

	"resumescreen/internal/types"
)

// Confidence scores how trustworthy an extracted name looks given the source
// text it came from. The score is advisory only (0.0-1.0): it never gates
// acceptance of a name, it just gives callers something to surface to a
// reviewer.
func Confidence(name, source string) float64 {
	if name == "" || name == types.UnknownCandidate {
		return 0.0
	}

	score := 0.5
	words := strings.Fields(name)

	for _, w := range words {
		if falsePositiveWordRe.MatchString(strings.ToLower(strings.Trim(w, "."))) {
			score -= 0.3
			break
		}
	}

	lowerSource := strings.ToLower(source)
	lowerName := strings.ToLower(name)
	if strings.Count(lowerSource, lowerName) > 1 {
		score += 0.2
	}

	switch len(words) {
	case 2:
		score += 0.2
	case 3:
		score += 0.15
	}

	head := lowerSource
	if len(head) > 200 {
		head = head[:200]
	}
	if strings.Contains(head, lowerName) {
		score += 0.15
	}

	if score < 0.0 {
		score = 0.0
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
