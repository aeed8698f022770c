package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dstarikov/shipshape/internal/model"
)

func searxHandler(calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.URL.Query().Get("format") != "json" {
			http.Error(w, "expected format=json", http.StatusBadRequest)
			return
		}
		resp := searxResponse{
			Results: []searxResult{
				{URL: "https://one.example", Title: "Biggest ships", Content: "Stanford Seal has 50,000 GT."},
				{URL: "https://two.example", Title: "Registry", Content: "Dynamic 17 is 15,000 DWT."},
				{URL: "", Title: "no url, dropped", Content: "x"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestClient_Search(t *testing.T) {
	var calls int32
	server := httptest.NewServer(searxHandler(&calls))
	defer server.Close()

	cfg := model.DefaultConfig().Search
	cfg.Endpoint = server.URL
	cfg.MaxResults = 5

	client := NewClient(cfg, nil, 0)
	sources, err := client.Search(context.Background(), "biggest cargo ship")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("expected 2 sources (empty URL dropped), got %d", len(sources))
	}
	if sources[0].URL != "https://one.example" || sources[0].Snippet == "" {
		t.Errorf("unexpected first source: %+v", sources[0])
	}
}

func TestClient_SearchMaxResults(t *testing.T) {
	var calls int32
	server := httptest.NewServer(searxHandler(&calls))
	defer server.Close()

	cfg := model.DefaultConfig().Search
	cfg.Endpoint = server.URL
	cfg.MaxResults = 1

	client := NewClient(cfg, nil, 0)
	sources, err := client.Search(context.Background(), "ships")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(sources) != 1 {
		t.Errorf("expected results capped at 1, got %d", len(sources))
	}
}

func TestClient_SearchUsesCache(t *testing.T) {
	var calls int32
	server := httptest.NewServer(searxHandler(&calls))
	defer server.Close()

	cfg := model.DefaultConfig().Search
	cfg.Endpoint = server.URL

	client := NewClient(cfg, NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if _, err := client.Search(context.Background(), "same query"); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if _, err := client.Search(context.Background(), "same query"); err != nil {
		t.Fatalf("second search: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 upstream call with caching, got %d", got)
	}
}

func TestClient_SearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := model.DefaultConfig().Search
	cfg.Endpoint = server.URL

	client := NewClient(cfg, nil, 0)
	if _, err := client.Search(context.Background(), "q"); err == nil {
		t.Error("expected an error for a 500 response")
	}
}
