// Package chat orchestrates a single conversational turn: gate the input,
// retrieve sources, analyze, and phrase an answer.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dstarikov/shipshape/internal/analyze"
	"github.com/dstarikov/shipshape/internal/llm"
	"github.com/dstarikov/shipshape/internal/model"
	"github.com/dstarikov/shipshape/internal/search"
	"github.com/dstarikov/shipshape/internal/security"
)

// Searcher retrieves candidate sources for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Source, error)
}

// Enricher upgrades source snippets to full page text.
type Enricher interface {
	Enrich(ctx context.Context, sources []model.Source) []model.Source
}

// Response is the outcome of one conversational turn.
type Response struct {
	SessionID string                   `json:"session_id"`
	Answer    string                   `json:"answer"`
	Analysis  *model.ComparativeResult `json:"analysis,omitempty"`
	Sources   []model.Source           `json:"sources,omitempty"`
	Denied    bool                     `json:"denied,omitempty"`
	Reason    string                   `json:"reason,omitempty"`
	RateLimit model.RateLimitResult    `json:"rate_limit"`
}

// Pipeline orchestrates the complete turn.
type Pipeline struct {
	gate     *security.Gate
	searcher Searcher
	enricher Enricher
	analyzer *analyze.Analyzer
	provider llm.Provider // nil when generation is disabled
	logger   *zap.Logger
}

// NewPipeline wires a pipeline from configuration.
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var cache search.Cache
	if cfg.Cache.Enabled {
		cache = search.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}

	var enricher Enricher
	if cfg.Search.FetchPages {
		enricher = search.NewPageFetcher(cfg.Search, cache, cfg.Cache.TTL)
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		logger.Warn("llm provider disabled", zap.Error(err))
		provider = nil
	}

	limiter := security.NewRateLimiter(cfg.Security.MaxRequests, cfg.Security.Window, nil, nil)

	return &Pipeline{
		gate:     security.NewGate(cfg.Security, limiter, logger),
		searcher: search.NewClient(cfg.Search, cache, cfg.Cache.TTL),
		enricher: enricher,
		analyzer: analyze.NewAnalyzer(cfg.Analysis),
		provider: provider,
		logger:   logger,
	}
}

// NewPipelineWith builds a pipeline from explicit parts, for callers that
// need to substitute collaborators.
func NewPipelineWith(gate *security.Gate, searcher Searcher, enricher Enricher, analyzer *analyze.Analyzer, provider llm.Provider, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		gate:     gate,
		searcher: searcher,
		enricher: enricher,
		analyzer: analyzer,
		provider: provider,
		logger:   logger,
	}
}

// Handle processes one message for a session.
func (p *Pipeline) Handle(ctx context.Context, sessionID, message string) (*Response, error) {
	gateResult := p.gate.Check(sessionID, message)
	if !gateResult.Allowed {
		return &Response{
			SessionID: sessionID,
			Denied:    true,
			Reason:    gateResult.Reason,
			RateLimit: gateResult.RateLimit,
		}, nil
	}

	query := gateResult.Validation.Sanitized

	resp := &Response{
		SessionID: sessionID,
		RateLimit: gateResult.RateLimit,
	}

	if !analyze.IsComparativeQuery(query) {
		resp.Answer = p.phrase(ctx, query, nil, nil)
		return resp, nil
	}

	sources, err := p.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if p.enricher != nil {
		sources = p.enricher.Enrich(ctx, sources)
	}

	result := p.analyzer.Analyze(query, sources)

	resp.Analysis = &result
	resp.Sources = sources
	resp.Answer = p.phrase(ctx, query, &result, sources)
	return resp, nil
}

// phrase produces the reply text, preferring the configured provider and
// falling back to the deterministic template.
func (p *Pipeline) phrase(ctx context.Context, query string, result *model.ComparativeResult, sources []model.Source) string {
	if p.provider != nil {
		answered, err := p.provider.Answer(ctx, llm.AnswerRequest{
			Query:   query,
			Result:  result,
			Sources: sources,
		})
		if err == nil && answered.Answer != "" {
			return answered.Answer
		}
		if err != nil {
			p.logger.Warn("llm answer failed, using template", zap.Error(err))
		}
	}
	return templateAnswer(query, result)
}

// templateAnswer renders a grounded reply without any model in the loop.
func templateAnswer(query string, result *model.ComparativeResult) string {
	if result == nil {
		return "I can compare vessels by tonnage, length, speed, age, power, or capacity. " +
			"Try a question like \"which is bigger, X or Y?\" or \"what is the fastest container ship?\""
	}

	if result.Winner == nil {
		return "I could not find measurable figures to answer that. " +
			"Try naming specific vessels or rephrasing the question."
	}

	var b strings.Builder
	w := result.Winner
	fmt.Fprintf(&b, "Based on the sources I found, %s leads with %s %s (%s).",
		w.Name, formatValue(w.Value), w.Unit, result.Attribute)

	if len(result.Ranking) > 1 {
		r := result.Ranking[1]
		fmt.Fprintf(&b, " Next is %s at %s %s.", r.Name, formatValue(r.Value), r.Unit)
	}

	if result.Confidence != model.ConfidenceHigh {
		fmt.Fprintf(&b, " Confidence in this answer is %s", result.Confidence)
		if len(result.ValidationIssues) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(result.ValidationIssues, "; "))
		}
		b.WriteString(".")
	}

	return b.String()
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
