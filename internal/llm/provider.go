// Package llm generates natural-language answers from analysis results.
// A provider is optional: when none is configured the chat pipeline falls
// back to a deterministic templated response, so every answer a provider
// writes is grounded in a result that already exists.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dstarikov/shipshape/internal/model"
)

// Provider defines the interface for answer-generation backends.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Answer phrases a grounded analysis result as a conversational reply
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnswerRequest contains the input for answer generation.
type AnswerRequest struct {
	// Query is the user's original question
	Query string

	// Result is the comparative analysis the answer must be grounded in.
	// Nil for queries that were not comparative.
	Result *model.ComparativeResult

	// Sources are the documents the result was extracted from
	Sources []model.Source

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnswerResponse contains the provider's output.
type AnswerResponse struct {
	// Answer is the generated reply text
	Answer string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// NewProvider creates a provider from configuration. An empty provider
// name disables generation and returns nil, nil.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

const systemPrompt = "You are a maritime domain assistant. You phrase pre-computed " +
	"analysis results conversationally. Never introduce facts, figures, or vessel " +
	"names that are not in the analysis you are given."

// BuildPrompt constructs the default prompt for phrasing an analysis result.
// The result carries the only facts the model may state; the prompt spells
// out each candidate so there is nothing to invent.
func BuildPrompt(query string, result *model.ComparativeResult, sources []model.Source) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User question: %s\n\n", query)

	if result == nil || result.Winner == nil {
		b.WriteString("Analysis found no measurable candidates for this question. ")
		b.WriteString("Say so plainly and suggest the user name specific vessels or rephrase.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Analysis (attribute: %s, confidence: %s):\n", result.Attribute, result.Confidence)
	fmt.Fprintf(&b, "Answer: %s at %s %s\n", result.Winner.Name, formatValue(result.Winner.Value), result.Winner.Unit)

	b.WriteString("Ranking:\n")
	for i, e := range result.Ranking {
		if i >= 5 {
			fmt.Fprintf(&b, "... and %d more\n", len(result.Ranking)-5)
			break
		}
		fmt.Fprintf(&b, "%d. %s: %s %s\n", i+1, e.Name, formatValue(e.Value), e.Unit)
	}

	if len(result.ValidationIssues) > 0 {
		b.WriteString("Caveats:\n")
		for _, issue := range result.ValidationIssues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	if len(sources) > 0 {
		b.WriteString("Sources consulted:\n")
		for i, s := range sources {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", s.URL)
		}
	}

	b.WriteString("\nWrite a 2-3 sentence answer using ONLY the figures above. ")
	b.WriteString("Mention the confidence level if it is not high.")

	return b.String()
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
