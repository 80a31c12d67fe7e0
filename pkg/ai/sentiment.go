package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	govader "github.com/jonreiter/govader"

	"github.com/johnquangdev/coursepulse/internal/domain/entities"
	"github.com/johnquangdev/coursepulse/pkg/config"
)

// VaderScorer scores text with an embedded VADER analyzer. Deterministic and
// side-effect-free; the analyzer expects English input, which is why comments
// are translated first.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a VADER-backed scorer
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the four polarity measures for the text
func (s *VaderScorer) Score(_ context.Context, text string) (entities.SentimentScore, error) {
	ps := s.analyzer.PolarityScores(text)
	return entities.SentimentScore{
		Compound: ps.Compound,
		Negative: ps.Negative,
		Neutral:  ps.Neutral,
		Positive: ps.Positive,
	}, nil
}

// HTTPScorer is a minimal client for a vader-server-compatible scoring
// service, for deployments that run the analyzer out of process.
type HTTPScorer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPScorer creates a scoring client from config
func NewHTTPScorer(cfg *config.SentimentConfig) *HTTPScorer {
	return &HTTPScorer{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// ScoreRequest is the shape for scoring requests
type ScoreRequest struct {
	Text string `json:"text"`
}

// ScoreResponse is a minimal response shape
type ScoreResponse struct {
	Compound float64 `json:"compound"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
}

// Score scores the text via the remote service. Any failure here is fatal to
// the request; the pipeline never substitutes a default score.
func (s *HTTPScorer) Score(ctx context.Context, text string) (entities.SentimentScore, error) {
	b, err := json.Marshal(ScoreRequest{Text: text})
	if err != nil {
		return entities.SentimentScore{}, err
	}

	endpoint := s.baseURL + "/score"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return entities.SentimentScore{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return entities.SentimentScore{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return entities.SentimentScore{}, fmt.Errorf("scoring service returned status %d", resp.StatusCode)
	}

	var sr ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return entities.SentimentScore{}, err
	}

	return entities.SentimentScore{
		Compound: sr.Compound,
		Negative: sr.Negative,
		Neutral:  sr.Neutral,
		Positive: sr.Positive,
	}, nil
}
