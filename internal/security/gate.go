package security

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dstarikov/shipshape/internal/model"
)

// auditInputLen bounds how much of an offending input an audit event
// carries.
const auditInputLen = 200

// Gate is the public entry point of the safety half. It sequences
// rate limiting → threat detection → sanitization → risk aggregation and
// produces an allow/deny verdict with reasons. Denials are never silent:
// every verdict carries a human-readable reason.
type Gate struct {
	limiter   *RateLimiter
	detectors []Detector
	cfg       model.SecurityConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewGate creates a gate from config. A nil logger disables audit output.
func NewGate(cfg model.SecurityConfig, limiter *RateLimiter, logger *zap.Logger) *Gate {
	if cfg.MaxInputLen <= 0 {
		cfg.MaxInputLen = MaxSanitizedLen
	}
	if limiter == nil {
		limiter = NewRateLimiter(cfg.MaxRequests, cfg.Window, nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		limiter:   limiter,
		detectors: Detectors(),
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Check gates one inbound message. The rate limit runs first and a denial
// skips all text analysis, so unbounded request streams never reach the regex
// detectors.
func (g *Gate) Check(sessionID, input string) model.GateResult {
	rl := g.limiter.Check(sessionID)
	if !rl.Allowed {
		return model.GateResult{
			Allowed:    false,
			Validation: model.ValidationResult{Valid: true, Risk: model.RiskLow},
			RateLimit:  rl,
			Reason:     fmt.Sprintf("rate limit exceeded; retry after %s", rl.ResetAt.Format("15:04:05")),
		}
	}

	validation := g.Validate(input)

	if !validation.Valid || validation.Risk == model.RiskHigh {
		g.audit(sessionID, input, validation)
	}

	allowed := validation.Valid && validation.Risk != model.RiskHigh
	if g.cfg.StrictMode && len(validation.Warnings) > 0 {
		allowed = false
	}

	return model.GateResult{
		Allowed:    allowed,
		Validation: validation,
		RateLimit:  rl,
		Reason:     denialReason(allowed, validation),
	}
}

// Validate runs the detector registry and the sanitizer over one input and
// aggregates risk. Detections are cumulative: risk only escalates, never
// downgrades. The sanitized text is computed even for invalid input so a
// caller may still log or display it.
func (g *Gate) Validate(input string) model.ValidationResult {
	result := model.ValidationResult{Valid: true, Risk: model.RiskLow}

	if input == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "input is empty")
		return result
	}

	result.Sanitized = Sanitize(input)

	for _, d := range g.detectors {
		det := d.Detect(input)
		if !det.Detected {
			continue
		}

		result.Detections.Categories = append(result.Detections.Categories, det.Categories...)

		switch d.Name() {
		case "prompt_injection":
			result.Detections.PromptInjection = true
			result.Valid = false
			result.Errors = append(result.Errors, "prompt injection patterns detected")
			result.Risk = result.Risk.Escalate(model.RiskHigh)
		case "xss":
			result.Detections.XSS = true
			result.Valid = false
			result.Errors = append(result.Errors, "script injection patterns detected")
			result.Risk = result.Risk.Escalate(model.RiskHigh)
		case "sql_pattern":
			result.Detections.SQLPattern = true
			result.Warnings = append(result.Warnings, "SQL-like patterns detected")
			result.Risk = result.Risk.Escalate(model.RiskMedium)
		case "anomaly":
			result.Detections.Anomaly = true
			result.Warnings = append(result.Warnings, "unusually high ratio of special characters")
			result.Risk = result.Risk.Escalate(model.RiskMedium)
		}
	}

	if len(input) > g.cfg.MaxInputLen {
		result.Warnings = append(result.Warnings, fmt.Sprintf("input exceeds %d characters", g.cfg.MaxInputLen))
		result.Risk = result.Risk.Escalate(model.RiskMedium)
	}

	return result
}

// audit emits the structured security event. Only the first 200 characters
// of the offending input are carried.
func (g *Gate) audit(sessionID, input string, validation model.ValidationResult) {
	truncated := truncateRunes(input, auditInputLen)

	eventType := "high_risk_input"
	if !validation.Valid {
		eventType = "invalid_input"
	}

	event := model.SecurityEvent{
		Timestamp:  g.now().UTC(),
		SessionID:  sessionID,
		EventType:  eventType,
		Input:      truncated,
		Validation: validation,
	}

	g.logger.Warn("security event",
		zap.String("event_type", event.EventType),
		zap.String("session_id", event.SessionID),
		zap.Time("timestamp", event.Timestamp),
		zap.String("input", event.Input),
		zap.String("risk", string(validation.Risk)),
		zap.Strings("categories", validation.Detections.Categories),
	)
}

func denialReason(allowed bool, v model.ValidationResult) string {
	if allowed {
		return ""
	}
	if len(v.Errors) > 0 {
		return v.Errors[0]
	}
	if v.Risk == model.RiskHigh {
		return "input judged high risk"
	}
	if len(v.Warnings) > 0 {
		return v.Warnings[0]
	}
	return "input rejected"
}
