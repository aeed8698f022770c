package model

// Attribute identifies which vessel property a query or extraction is about.
// The vocabulary is closed: pattern tables are keyed by it.
type Attribute string

const (
	AttributeTonnage  Attribute = "tonnage"  // Gross/deadweight tonnage
	AttributeLength   Attribute = "length"   // Hull length
	AttributeSize     Attribute = "size"     // Generic size (default)
	AttributeSpeed    Attribute = "speed"    // Service or top speed
	AttributeAge      Attribute = "age"      // Build/launch year
	AttributePower    Attribute = "power"    // Engine output
	AttributeCapacity Attribute = "capacity" // Container/passenger capacity
)

// QueryType distinguishes "biggest X" queries from "X vs Y" queries.
type QueryType string

const (
	QuerySuperlative QueryType = "superlative"
	QueryBinary      QueryType = "binary"
)

// Confidence is a qualitative completeness/trust measure.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// UnknownEntityName is the sentinel used when a pattern matched a value but
// no proper-noun name could be captured.
const UnknownEntityName = "Unknown"

// ExtractedEntity is one numeric claim about a named entity, pulled out of a
// single source. Value is the raw parsed magnitude; normalization happens at
// ranking time. Entities live for one analysis call and are never persisted.
type ExtractedEntity struct {
	Name        string     `json:"name"`                 // Proper noun or "Unknown"
	Attribute   Attribute  `json:"attribute"`            // Which property the value describes
	Value       float64    `json:"value"`                // Raw magnitude, always finite and > 0
	Unit        string     `json:"unit,omitempty"`       // Raw unit token as matched
	RawText     string     `json:"raw_text,omitempty"`   // Matched substring, for audit
	SourceIndex int        `json:"source_index"`         // Back-reference into the source list
	Confidence  Confidence `json:"confidence"`           // Completeness of this single fact
}

// ComparativeResult is the outcome of one comparative analysis call.
// Winner is ranking[0] whenever ranking is non-empty, and nil iff it is empty.
type ComparativeResult struct {
	Winner           *ExtractedEntity  `json:"winner,omitempty"`
	AllEntities      []ExtractedEntity `json:"all_entities"`
	Ranking          []ExtractedEntity `json:"ranking"`
	QueryType        QueryType         `json:"query_type"`
	Attribute        Attribute         `json:"attribute"`
	Confidence       Confidence        `json:"confidence"`
	ValidationIssues []string          `json:"validation_issues,omitempty"`
}
