// Package analyze implements the comparative-query half of the request-time
// text pipeline: classifying a free-text query against a closed attribute
// vocabulary, extracting competing numeric claims from retrieved sources,
// normalizing them to comparable units, and picking a defensible winner with
// a calibrated confidence.
//
// Everything here is pure, synchronous, and deterministic: regex heuristics
// with explicit numeric semantics, safe to call concurrently, designed to
// fail predictably (empty results and caveats, never errors).
package analyze

import (
	"github.com/dstarikov/shipshape/internal/model"
)

// Analyzer is the public entry point of the analysis half. It sequences
// classifier → extractor → ranker/validator and assembles the result.
type Analyzer struct {
	extractor *Extractor
	norm      *Normalizer
	ranker    *Ranker
}

// NewAnalyzer creates an analyzer with the given conversion constants.
func NewAnalyzer(conv model.AnalysisConfig) *Analyzer {
	norm := NewNormalizer(conv)
	return &Analyzer{
		extractor: NewExtractor(),
		norm:      norm,
		ranker:    NewRanker(norm),
	}
}

// Analyze runs the full comparative pipeline over a raw query and the
// retrieved sources. It never fails: a query that yields no candidates
// produces a result with an empty ranking, a nil winner, and low confidence.
func (a *Analyzer) Analyze(query string, sources []model.Source) model.ComparativeResult {
	attr := DetectAttribute(query)
	queryType := DetectComparativeType(query)
	maximizing := IsMaximizingQuery(query)

	var targets []string
	if queryType == model.QueryBinary {
		targets = BinaryTargets(query)
	}

	entities := a.extractor.Extract(sources, attr, targets)
	ranking, winner := a.ranker.Rank(entities, attr, maximizing)
	issues := a.ranker.Validate(winner, attr, maximizing)

	return model.ComparativeResult{
		Winner:           winner,
		AllEntities:      entities,
		Ranking:          ranking,
		QueryType:        queryType,
		Attribute:        attr,
		Confidence:       ResultConfidence(ranking, winner, issues),
		ValidationIssues: issues,
	}
}

// NormalizedValue exposes the baseline-unit value of an entity, for callers
// that render comparisons.
func (a *Analyzer) NormalizedValue(e model.ExtractedEntity) float64 {
	return a.norm.Normalize(e.Value, e.Unit, e.Attribute)
}
