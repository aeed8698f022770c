package analyze

import (
	"strings"

	"github.com/dstarikov/shipshape/internal/model"
)

// Normalizer converts raw extracted values to a baseline unit per attribute
// family so candidates from different sources become comparable:
// tonnage → gross-tonnage equivalent, length → meters, speed → knots,
// power → kilowatts, age → the raw year.
//
// Unit matching is substring-based and case-insensitive on purpose: source
// text writes "DWT", "dwt," or "deadweight (dwt)" interchangeably. The
// extraction-time bounds are the backstop against nonsense matches this
// permissiveness lets through.
type Normalizer struct {
	conv model.AnalysisConfig
}

// NewNormalizer creates a normalizer with the given conversion constants.
func NewNormalizer(conv model.AnalysisConfig) *Normalizer {
	return &Normalizer{conv: conv}
}

// Normalize maps (value, unit) to the attribute family's baseline unit.
// Values already in the baseline unit pass through unchanged.
//
// DWT and GT are not equatable; the DWT factor is a documented
// approximation, since no exact conversion exists without ship-specific
// data.
func (n *Normalizer) Normalize(value float64, unit string, attr model.Attribute) float64 {
	u := strings.ToLower(unit)

	switch attr {
	case model.AttributeTonnage:
		if strings.Contains(u, "dwt") || strings.Contains(u, "deadweight") {
			return value * n.conv.DWTToGT
		}
		return value

	case model.AttributeLength:
		if strings.Contains(u, "ft") || strings.Contains(u, "feet") || strings.Contains(u, "foot") {
			return value * n.conv.FeetToM
		}
		return value

	case model.AttributeSize:
		// Generic size carries mixed tonnage/length units.
		if strings.Contains(u, "dwt") || strings.Contains(u, "deadweight") {
			return value * n.conv.DWTToGT
		}
		if strings.Contains(u, "ft") || strings.Contains(u, "feet") || strings.Contains(u, "foot") {
			return value * n.conv.FeetToM
		}
		return value

	case model.AttributeSpeed:
		if strings.Contains(u, "km") || strings.Contains(u, "kph") {
			return value * n.conv.KmhToKnots
		}
		if strings.Contains(u, "mph") {
			return value * n.conv.MphToKnots
		}
		return value

	case model.AttributePower:
		if strings.Contains(u, "hp") || strings.Contains(u, "horse") {
			return value * n.conv.HPToKW
		}
		if strings.Contains(u, "mw") || strings.Contains(u, "megawatt") {
			return value * n.conv.MWToKW
		}
		return value

	default:
		// Age and capacity are already in their baseline unit.
		return value
	}
}
