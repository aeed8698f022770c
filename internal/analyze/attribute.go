package analyze

import (
	"regexp"
	"strings"

	"github.com/dstarikov/shipshape/internal/model"
)

// comparativePatterns are the cues that mark a query as comparative.
// False positives are acceptable: downstream stages degrade to an empty
// result, they never mislead.
var comparativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(biggest|largest|smallest|longest|shortest|fastest|slowest|oldest|newest|heaviest|lightest|strongest|most|least|highest|lowest)\b`),
	regexp.MustCompile(`(?i)\b(compare|comparison|versus|vs\.?)\b`),
	regexp.MustCompile(`(?i)\bwhich\b.*\b(bigger|larger|smaller|faster|slower|longer|shorter|older|newer|heavier|stronger|better)\b`),
}

// binaryPatterns mark a query as comparing exactly two named entities.
var binaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:vs\.?|versus)\b`),
	regexp.MustCompile(`(?i)\bcompare\b.+\band\b`),
}

// maximizingPattern decides ranking direction: descending when present.
var maximizingPattern = regexp.MustCompile(`(?i)\b(biggest|largest|longest|fastest|heaviest|strongest|greatest|most|highest|newest|bigger|larger|longer|faster|heavier|stronger|greater|higher|newer|more)\b`)

// binaryTargetPattern captures the two entity names of an "X vs Y" query.
var binaryTargetPattern = regexp.MustCompile(`(?i)(?:compare\s+)?(.+?)\s+(?:vs\.?|versus|and)\s+(.+)`)

// binaryTargetNoise is trimmed off captured target names.
var binaryTargetNoise = regexp.MustCompile(`(?i)^(?:which\s+is\s+\w+[,:]?\s*|what\s+is\s+\w+[,:]?\s*|the\s+)|[?!.,]+$`)

// IsComparativeQuery reports whether the query asks for a comparison or a
// superlative. Pure predicate over the fixed cue set.
func IsComparativeQuery(query string) bool {
	for _, p := range comparativePatterns {
		if p.MatchString(query) {
			return true
		}
	}
	return false
}

// DetectAttribute maps raw query text to the attribute vocabulary.
// The cascade order is a deliberate tie-break: size cues are checked first,
// so a query mentioning both "tonnage" and "knots" resolves to tonnage.
func DetectAttribute(query string) model.Attribute {
	q := strings.ToLower(query)

	if containsAny(q, "big", "large", "size", "huge", "tonnage", "ton", "dwt", "gross", "deadweight", "weight", "heav", "long", "length") {
		switch {
		case containsAny(q, "tonnage", "ton", "dwt", "gross", "deadweight", "weight", "heav"):
			return model.AttributeTonnage
		case containsAny(q, "long", "length"):
			return model.AttributeLength
		default:
			return model.AttributeSize
		}
	}
	if containsAny(q, "fast", "speed", "knot", "quick", "slow") {
		return model.AttributeSpeed
	}
	if containsAny(q, "old", "newest", "age", "year", "built", "launched") {
		return model.AttributeAge
	}
	if containsAny(q, "power", "horsepower", "engine", " hp", "kilowatt", "megawatt") {
		return model.AttributePower
	}
	if containsAny(q, "capacity", "teu", "container", "passenger", "carry") {
		return model.AttributeCapacity
	}
	return model.AttributeSize
}

// DetectComparativeType distinguishes binary "X vs Y" queries from
// superlative ones. Governs target-name filtering downstream.
func DetectComparativeType(query string) model.QueryType {
	for _, p := range binaryPatterns {
		if p.MatchString(query) {
			return model.QueryBinary
		}
	}
	return model.QuerySuperlative
}

// IsMaximizingQuery reports whether the query seeks the largest value.
func IsMaximizingQuery(query string) bool {
	return maximizingPattern.MatchString(query)
}

// BinaryTargets extracts the two entity names from a binary query.
// Best effort: returns nil when the query does not split cleanly.
func BinaryTargets(query string) []string {
	m := binaryTargetPattern.FindStringSubmatch(query)
	if m == nil {
		return nil
	}

	var targets []string
	for _, raw := range m[1:] {
		name := strings.TrimSpace(binaryTargetNoise.ReplaceAllString(strings.TrimSpace(raw), ""))
		if name != "" {
			targets = append(targets, name)
		}
	}
	if len(targets) != 2 {
		return nil
	}
	return targets
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
