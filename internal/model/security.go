package model

import "time"

// RiskLevel summarizes how dangerous an input is judged to be.
// Escalation is monotonic: a validation starts at low and only climbs.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Escalate returns the higher of the two levels.
func (r RiskLevel) Escalate(to RiskLevel) RiskLevel {
	if r.rank() >= to.rank() {
		return r
	}
	return to
}

func (r RiskLevel) rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// Detections is a sparse record of which detector families fired.
type Detections struct {
	PromptInjection bool     `json:"prompt_injection,omitempty"`
	XSS             bool     `json:"xss,omitempty"`
	SQLPattern      bool     `json:"sql_pattern,omitempty"`
	Anomaly         bool     `json:"anomaly,omitempty"`
	Categories      []string `json:"categories,omitempty"` // Named pattern categories, not match text
}

// ValidationResult is the outcome of validating one input string.
// Immutable after construction; created once per input.
type ValidationResult struct {
	Valid      bool       `json:"valid"`
	Sanitized  string     `json:"sanitized,omitempty"` // Present iff input non-empty
	Errors     []string   `json:"errors,omitempty"`    // Blocking findings
	Warnings   []string   `json:"warnings,omitempty"`  // Non-blocking findings
	Risk       RiskLevel  `json:"risk"`
	Detections Detections `json:"detections"`
}

// RateLimitResult reports the outcome of one rate-limit check.
type RateLimitResult struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// GateResult is the security gate's verdict for one inbound message.
type GateResult struct {
	Allowed    bool             `json:"allowed"`
	Validation ValidationResult `json:"validation"`
	RateLimit  RateLimitResult  `json:"rate_limit"`
	Reason     string           `json:"reason,omitempty"` // Human-readable denial reason
}

// SecurityEvent is the structured audit record emitted for invalid or
// high-risk inputs. The gate defines the shape; the host wires the sink.
type SecurityEvent struct {
	Timestamp  time.Time        `json:"timestamp"`
	SessionID  string           `json:"session_id"`
	EventType  string           `json:"event_type"`
	Input      string           `json:"input"` // Truncated to 200 chars
	Validation ValidationResult `json:"validation"`
}
