package analyze

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dstarikov/shipshape/internal/model"
)

// Extractor pulls candidate (name, value, unit) records out of source text
// using the per-attribute pattern tables.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs every pattern for the attribute over every source. Each
// surviving candidate carries the index of its source document, the sole
// traceability mechanism back to evidence.
//
// targets, when non-empty, restricts candidates to names that contain one
// of the given entity names (case-insensitive); it is supplied for binary
// "X vs Y" queries.
func (e *Extractor) Extract(sources []model.Source, attr model.Attribute, targets []string) []model.ExtractedEntity {
	patterns := extractionPatterns[attr]
	bounds := extractionBounds[attr]

	var entities []model.ExtractedEntity
	seen := make(map[string]bool)
	claimed := make(map[string]bool)

	for idx, src := range sources {
		text := src.Text()
		if text == "" {
			continue
		}

		for _, p := range patterns {
			for _, m := range p.re.FindAllStringSubmatch(text, -1) {
				value, ok := parseValue(m[p.valueGroup])
				if !ok || value < bounds.min || value > bounds.max {
					continue
				}

				name := model.UnknownEntityName
				if p.nameGroup > 0 && strings.TrimSpace(m[p.nameGroup]) != "" {
					name = strings.TrimSpace(m[p.nameGroup])
				}

				unit := ""
				if p.unitGroup > 0 {
					unit = strings.TrimSpace(m[p.unitGroup])
				}

				if len(targets) > 0 && !matchesTarget(name, targets) {
					continue
				}

				// Distinct named entities stay distinct even when their
				// figures collide. Named patterns run first, so an anonymous
				// re-match of a figure a named record already claimed is the
				// same fact, not a new candidate.
				figure := fmt.Sprintf("%d|%g|%s", idx, value, strings.ToLower(unit))
				key := figure + "|" + strings.ToLower(name)
				if seen[key] {
					continue
				}
				if name == model.UnknownEntityName && claimed[figure] {
					continue
				}
				seen[key] = true
				if name != model.UnknownEntityName {
					claimed[figure] = true
				}

				entities = append(entities, model.ExtractedEntity{
					Name:        name,
					Attribute:   attr,
					Value:       value,
					Unit:        unit,
					RawText:     strings.TrimSpace(m[0]),
					SourceIndex: idx,
					Confidence:  entityConfidence(name, unit, p.unitGroup > 0),
				})
			}
		}
	}

	return entities
}

// parseValue strips thousands separators and parses the magnitude.
// NaN, Inf, and non-positive values are rejected before an entity is
// ever materialized.
func parseValue(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, false
	}
	return value, true
}

// entityConfidence grades the completeness of a single extracted fact.
// High needs name, value, and unit all present. Patterns that expect no
// unit (year-valued attributes) top out at medium. Low means the name is
// missing, or a unit the pattern expected is missing.
func entityConfidence(name, unit string, unitExpected bool) model.Confidence {
	hasName := name != model.UnknownEntityName

	if !unitExpected {
		if hasName {
			return model.ConfidenceMedium
		}
		return model.ConfidenceLow
	}
	if hasName && unit != "" {
		return model.ConfidenceHigh
	}
	return model.ConfidenceLow
}

func matchesTarget(name string, targets []string) bool {
	lower := strings.ToLower(name)
	for _, t := range targets {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && (strings.Contains(lower, t) || strings.Contains(t, lower)) {
			return true
		}
	}
	return false
}
