package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/johnquangdev/coursepulse/pkg/config"
)

func TestVaderScorerPolarity(t *testing.T) {
	scorer := NewVaderScorer()

	positive, err := scorer.Score(context.Background(), "This class was great, I loved it!")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if positive.Compound <= 0 {
		t.Errorf("expected positive compound, got %f", positive.Compound)
	}

	negative, err := scorer.Score(context.Background(), "This class was terrible and boring.")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if negative.Compound >= 0 {
		t.Errorf("expected negative compound, got %f", negative.Compound)
	}
}

func TestHTTPScorerSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/score" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "great class" {
			t.Errorf("unexpected text %q", req.Text)
		}
		json.NewEncoder(w).Encode(ScoreResponse{Compound: 0.8, Negative: 0.0, Neutral: 0.2, Positive: 0.8})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(&config.SentimentConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	score, err := scorer.Score(context.Background(), "great class")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score.Compound != 0.8 || score.Positive != 0.8 {
		t.Errorf("unexpected score: %+v", score)
	}
}

func TestHTTPScorerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(&config.SentimentConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	if _, err := scorer.Score(context.Background(), "great class"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
