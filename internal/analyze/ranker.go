package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dstarikov/shipshape/internal/model"
)

// minPlausibleRecordTonnage flags record-holder winners that are too small
// to be credible. Narrower than the extraction bounds: extraction filters
// noise, this targets specifically small "winners".
const minPlausibleRecordTonnage = 5000

// Ranker orders candidates by normalized value and validates the winner.
type Ranker struct {
	norm *Normalizer
}

// NewRanker creates a ranker using the given normalizer.
func NewRanker(norm *Normalizer) *Ranker {
	return &Ranker{norm: norm}
}

// Rank sorts candidates by normalized value, descending when the query
// uses maximizing language and ascending otherwise, and returns the ordered
// list plus the winner (nil iff the list is empty). Source indices survive
// ranking untouched.
func (r *Ranker) Rank(entities []model.ExtractedEntity, attr model.Attribute, maximizing bool) ([]model.ExtractedEntity, *model.ExtractedEntity) {
	if len(entities) == 0 {
		return nil, nil
	}

	ranking := make([]model.ExtractedEntity, len(entities))
	copy(ranking, entities)

	sort.SliceStable(ranking, func(i, j int) bool {
		vi := r.norm.Normalize(ranking[i].Value, ranking[i].Unit, attr)
		vj := r.norm.Normalize(ranking[j].Value, ranking[j].Unit, attr)
		if maximizing {
			return vi > vj
		}
		return vi < vj
	})

	winner := ranking[0]
	return ranking, &winner
}

// Validate runs domain plausibility checks against the winner. Issues are
// warning-grade: the result still reports its best guess, the caveats ride
// along rather than replacing it.
func (r *Ranker) Validate(winner *model.ExtractedEntity, attr model.Attribute, maximizing bool) []string {
	if winner == nil {
		return nil
	}

	var issues []string

	if maximizing && isTonnageValued(attr, winner.Unit) {
		normalized := r.norm.Normalize(winner.Value, winner.Unit, attr)
		if normalized < minPlausibleRecordTonnage {
			issues = append(issues, fmt.Sprintf(
				"winner tonnage %.0f GT-equivalent is implausibly small for a record-holding cargo vessel", normalized))
		}
	}

	if winner.Confidence == model.ConfidenceLow {
		issues = append(issues, "winner was extracted with low confidence (missing name or unit)")
	}

	return issues
}

// ResultConfidence derives overall trust from candidate count, winner
// confidence, and validation issues. Issues always suppress a high rating,
// whatever the candidate count: correctness caveats dominate quantity.
func ResultConfidence(ranking []model.ExtractedEntity, winner *model.ExtractedEntity, issues []string) model.Confidence {
	if len(ranking) < 3 || len(issues) > 0 {
		return model.ConfidenceLow
	}
	if winner != nil && winner.Confidence == model.ConfidenceHigh {
		return model.ConfidenceHigh
	}
	return model.ConfidenceMedium
}

// isTonnageValued reports whether the winner's figure is a tonnage claim:
// either the tonnage attribute itself, or a generic-size claim whose unit
// is a tonnage token.
func isTonnageValued(attr model.Attribute, unit string) bool {
	if attr == model.AttributeTonnage {
		return true
	}
	if attr != model.AttributeSize {
		return false
	}
	u := strings.ToLower(unit)
	return strings.Contains(u, "dwt") || strings.Contains(u, "gt") || strings.Contains(u, "ton")
}
