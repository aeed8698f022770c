package analyze

import (
	"testing"

	"github.com/dstarikov/shipshape/internal/model"
)

func tonnageEntity(name string, value float64, conf model.Confidence) model.ExtractedEntity {
	return model.ExtractedEntity{
		Name:       name,
		Attribute:  model.AttributeTonnage,
		Value:      value,
		Unit:       "GT",
		Confidence: conf,
	}
}

func TestRanker_Direction(t *testing.T) {
	r := NewRanker(testNormalizer())

	entities := []model.ExtractedEntity{
		tonnageEntity("A", 10_000, model.ConfidenceHigh),
		tonnageEntity("B", 50_000, model.ConfidenceHigh),
		tonnageEntity("C", 30_000, model.ConfidenceHigh),
	}

	ranking, winner := r.Rank(entities, model.AttributeTonnage, true)
	if winner == nil || winner.Name != "B" {
		t.Fatalf("expected B to win a maximizing query, got %+v", winner)
	}
	if ranking[0].Name != "B" || ranking[1].Name != "C" || ranking[2].Name != "A" {
		t.Errorf("descending order wrong: %v %v %v", ranking[0].Name, ranking[1].Name, ranking[2].Name)
	}

	ranking, winner = r.Rank(entities, model.AttributeTonnage, false)
	if winner == nil || winner.Name != "A" {
		t.Fatalf("expected A to win a minimizing query, got %+v", winner)
	}
	if ranking[0].Name != "A" || ranking[1].Name != "C" || ranking[2].Name != "B" {
		t.Errorf("ascending order wrong: %v %v %v", ranking[0].Name, ranking[1].Name, ranking[2].Name)
	}
}

func TestRanker_WinnerIsRankingHead(t *testing.T) {
	r := NewRanker(testNormalizer())

	ranking, winner := r.Rank(nil, model.AttributeTonnage, true)
	if ranking != nil || winner != nil {
		t.Errorf("empty input must yield nil ranking and nil winner, got %v, %v", ranking, winner)
	}

	entities := []model.ExtractedEntity{tonnageEntity("Solo", 20_000, model.ConfidenceHigh)}
	ranking, winner = r.Rank(entities, model.AttributeTonnage, true)
	if winner == nil || len(ranking) == 0 {
		t.Fatal("expected a winner for a non-empty ranking")
	}
	if winner.Name != ranking[0].Name || winner.Value != ranking[0].Value {
		t.Errorf("winner must equal ranking[0]: %+v vs %+v", winner, ranking[0])
	}
}

func TestRanker_NormalizedOrdering(t *testing.T) {
	r := NewRanker(testNormalizer())

	// 60,000 DWT normalizes to 42,000 GT-equivalent, below 50,000 GT.
	entities := []model.ExtractedEntity{
		{Name: "Deadweight", Attribute: model.AttributeTonnage, Value: 60_000, Unit: "DWT", Confidence: model.ConfidenceHigh},
		{Name: "Gross", Attribute: model.AttributeTonnage, Value: 50_000, Unit: "GT", Confidence: model.ConfidenceHigh},
	}

	_, winner := r.Rank(entities, model.AttributeTonnage, true)
	if winner == nil || winner.Name != "Gross" {
		t.Errorf("ranking must use normalized values, got winner %+v", winner)
	}
}

func TestRanker_ImplausiblySmallWinner(t *testing.T) {
	r := NewRanker(testNormalizer())

	small := tonnageEntity("Dinghy Queen", 800, model.ConfidenceHigh)
	issues := r.Validate(&small, model.AttributeTonnage, true)
	if len(issues) == 0 {
		t.Fatal("expected a plausibility issue for an 800 GT record-holder")
	}

	big := tonnageEntity("Giant", 200_000, model.ConfidenceHigh)
	if issues := r.Validate(&big, model.AttributeTonnage, true); len(issues) != 0 {
		t.Errorf("expected no issues for a plausible winner, got %v", issues)
	}

	// Minimizing queries legitimately produce small winners.
	if issues := r.Validate(&small, model.AttributeTonnage, false); len(issues) != 0 {
		t.Errorf("minimizing query should not flag a small winner, got %v", issues)
	}
}

func TestRanker_LowConfidenceWinnerIssue(t *testing.T) {
	r := NewRanker(testNormalizer())

	shaky := tonnageEntity("Unknown", 90_000, model.ConfidenceLow)
	issues := r.Validate(&shaky, model.AttributeTonnage, true)
	if len(issues) == 0 {
		t.Error("expected an issue for a low-confidence winner")
	}
}

func TestResultConfidence(t *testing.T) {
	three := []model.ExtractedEntity{
		tonnageEntity("A", 1_0000, model.ConfidenceHigh),
		tonnageEntity("B", 2_0000, model.ConfidenceHigh),
		tonnageEntity("C", 3_0000, model.ConfidenceHigh),
	}
	winner := three[2]

	if got := ResultConfidence(three, &winner, nil); got != model.ConfidenceHigh {
		t.Errorf("3 candidates + high winner + no issues: got %q, want high", got)
	}

	// Issues suppress high regardless of candidate count.
	if got := ResultConfidence(three, &winner, []string{"caveat"}); got != model.ConfidenceLow {
		t.Errorf("issues must force low, got %q", got)
	}

	two := three[:2]
	w2 := two[1]
	if got := ResultConfidence(two, &w2, nil); got != model.ConfidenceLow {
		t.Errorf("fewer than 3 candidates: got %q, want low", got)
	}

	mediumWinner := tonnageEntity("M", 40_000, model.ConfidenceMedium)
	withMedium := append([]model.ExtractedEntity{mediumWinner}, three[:2]...)
	if got := ResultConfidence(withMedium, &mediumWinner, nil); got != model.ConfidenceMedium {
		t.Errorf("3 candidates with non-high winner: got %q, want medium", got)
	}
}
