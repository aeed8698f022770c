package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/dstarikov/shipshape/internal/model"
)

func TestOpenAIProvider_Answer(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := openai.ChatCompletionResponse{
			Model: gotReq.Model,
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: "Stanford Seal wins at 50,000 GT. Note the confidence is low.",
				}},
			},
			Usage: openai.Usage{TotalTokens: 142},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(model.LLMConfig{
		Provider: "openai",
		APIKey:   "sk-test",
		BaseURL:  server.URL + "/v1",
		Model:    "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := provider.Answer(context.Background(), AnswerRequest{
		Query:  "which ship is bigger",
		Result: sampleResult(),
	})
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	if !strings.Contains(resp.Answer, "Stanford Seal") {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
	if resp.TokensUsed != 142 {
		t.Errorf("TokensUsed = %d, want 142", resp.TokensUsed)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("expected system+user messages, got %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "Stanford Seal") {
		t.Error("user prompt missing analysis content")
	}
}

func TestOpenAIProvider_AnswerAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(model.LLMConfig{
		Provider: "openai",
		APIKey:   "sk-test",
		BaseURL:  server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Answer(context.Background(), AnswerRequest{Query: "q"}); err == nil {
		t.Error("expected an error for a 429 response")
	}
}
