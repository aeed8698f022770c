// Package security implements the input-safety half of the request-time
// text pipeline: stateless threat detectors, a deterministic sanitizer, a
// fixed-window rate limiter, and the gate that sequences them into an
// allow/deny verdict.
//
// Detection is regex heuristics, best-effort by nature. False positives and
// negatives are a property of the approach; the detector registry keeps the
// pattern sets extensible without touching orchestration.
package security

import (
	"strings"
	"unicode"
)

// Detection is one detector's output: a flag plus the named categories that
// fired.
type Detection struct {
	Detected   bool     `json:"detected"`
	Categories []string `json:"categories,omitempty"`
}

// Detector classifies a single untrusted input string. Implementations are
// stateless and safe for concurrent use.
type Detector interface {
	Name() string
	Detect(input string) Detection
}

// Detectors returns the ordered default registry. New detectors slot in
// here without touching the gate.
func Detectors() []Detector {
	return []Detector{
		&InjectionDetector{},
		&XSSDetector{},
		&SQLPatternDetector{},
		&AnomalyDetector{Threshold: 0.30},
	}
}

// InjectionDetector flags prompt-injection phrasing: instruction overrides,
// role manipulation, system-prompt probing, output hijacking, and
// delimiter-escape attempts.
type InjectionDetector struct{}

func (d *InjectionDetector) Name() string { return "prompt_injection" }

func (d *InjectionDetector) Detect(input string) Detection {
	det := matchCategories(input, injectionCategories)

	if hasTripleDelimiter(input) && boundaryPhrasing.MatchString(input) {
		det.Detected = true
		det.Categories = append(det.Categories, "delimiter_escape")
	}
	return det
}

// XSSDetector flags script tags, event-handler attributes, and executable
// URL schemes.
type XSSDetector struct{}

func (d *XSSDetector) Name() string { return "xss" }

func (d *XSSDetector) Detect(input string) Detection {
	return matchCategories(input, xssCategories)
}

// SQLPatternDetector flags classic SQL injection shapes. Downstream this is
// warning-grade, not blocking.
type SQLPatternDetector struct{}

func (d *SQLPatternDetector) Name() string { return "sql_pattern" }

func (d *SQLPatternDetector) Detect(input string) Detection {
	return matchCategories(input, sqlCategories)
}

// AnomalyDetector flags inputs whose share of non-alphanumeric,
// non-whitespace characters exceeds the threshold, a crude proxy for
// obfuscated payloads.
type AnomalyDetector struct {
	Threshold float64
}

func (d *AnomalyDetector) Name() string { return "anomaly" }

func (d *AnomalyDetector) Detect(input string) Detection {
	if input == "" {
		return Detection{}
	}

	total := 0
	symbols := 0
	for _, r := range input {
		total++
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			symbols++
		}
	}

	if float64(symbols)/float64(total) > d.Threshold {
		return Detection{Detected: true, Categories: []string{"high_symbol_ratio"}}
	}
	return Detection{}
}

// matchCategories checks each category independently, short-circuiting on
// the first matching pattern per category.
func matchCategories(input string, categories []categoryPattern) Detection {
	var det Detection
	for _, c := range categories {
		for _, p := range c.patterns {
			if p.MatchString(input) {
				det.Detected = true
				det.Categories = append(det.Categories, c.category)
				break
			}
		}
	}
	return det
}

func hasTripleDelimiter(input string) bool {
	for _, d := range tripleDelimiters {
		if strings.Contains(input, d) {
			return true
		}
	}
	return false
}
