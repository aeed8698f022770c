package model

import "time"

// Config is the complete runtime configuration.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Search   SearchConfig   `json:"search" yaml:"search"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Security SecurityConfig `json:"security" yaml:"security"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	LLM      LLMConfig      `json:"llm" yaml:"llm"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// SearchConfig configures the retrieval collaborator.
type SearchConfig struct {
	Endpoint     string        `json:"endpoint" yaml:"endpoint"`           // SearxNG-compatible JSON endpoint
	MaxResults   int           `json:"max_results" yaml:"max_results"`     // Sources per query
	FetchPages   bool          `json:"fetch_pages" yaml:"fetch_pages"`     // Upgrade snippets to full page text
	FetchWorkers int           `json:"fetch_workers" yaml:"fetch_workers"` // Concurrent page fetches
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent    string        `json:"user_agent" yaml:"user_agent"`
	MaxBodyBytes int64         `json:"max_body_bytes" yaml:"max_body_bytes"`
}

// CacheConfig configures the in-memory search cache.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// SecurityConfig configures the input-safety gate.
type SecurityConfig struct {
	MaxRequests int           `json:"max_requests" yaml:"max_requests"` // Per session per window
	Window      time.Duration `json:"window" yaml:"window"`
	StrictMode  bool          `json:"strict_mode" yaml:"strict_mode"` // Deny on any warning
	MaxInputLen int           `json:"max_input_len" yaml:"max_input_len"`
}

// AnalysisConfig carries the unit-conversion approximations. The DWT factor
// in particular has no exact value without ship-specific data; these are
// tunable constants, not derived truths.
type AnalysisConfig struct {
	DWTToGT     float64 `json:"dwt_to_gt" yaml:"dwt_to_gt"`
	FeetToM     float64 `json:"feet_to_m" yaml:"feet_to_m"`
	KmhToKnots  float64 `json:"kmh_to_knots" yaml:"kmh_to_knots"`
	MphToKnots  float64 `json:"mph_to_knots" yaml:"mph_to_knots"`
	HPToKW      float64 `json:"hp_to_kw" yaml:"hp_to_kw"`
	MWToKW      float64 `json:"mw_to_kw" yaml:"mw_to_kw"`
}

// LLMConfig configures the optional response-generation provider.
// Empty provider means the deterministic templated responder is used.
type LLMConfig struct {
	Provider  string        `json:"provider" yaml:"provider"` // "openai", "ollama", ""
	Model     string        `json:"model" yaml:"model"`
	APIKey    string        `json:"-" yaml:"-"` // From env, never serialized
	BaseURL   string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	MaxTokens int           `json:"max_tokens" yaml:"max_tokens"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Search: SearchConfig{
			Endpoint:     "http://localhost:8888/search",
			MaxResults:   5,
			FetchPages:   false,
			FetchWorkers: 4,
			Timeout:      15 * time.Second,
			UserAgent:    "Shipshape/0.2 (+https://github.com/dstarikov/shipshape)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Security: SecurityConfig{
			MaxRequests: 10,
			Window:      60 * time.Second,
			StrictMode:  false,
			MaxInputLen: 10_000,
		},
		Analysis: AnalysisConfig{
			DWTToGT:    0.7,
			FeetToM:    0.3048,
			KmhToKnots: 0.539957,
			MphToKnots: 0.868976,
			HPToKW:     0.7457,
			MWToKW:     1000,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			MaxTokens: 600,
			Timeout:   60 * time.Second,
		},
	}
}
