package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/coursepulse/pkg/config"
)

// LibreTranslateClient is a minimal client for a LibreTranslate-compatible
// translation service.
type LibreTranslateClient struct {
	baseURL    string
	apiKey     string
	client     *http.Client
	maxElapsed time.Duration
}

// NewLibreTranslateClient creates a translation client from config
func NewLibreTranslateClient(cfg *config.TranslateConfig) *LibreTranslateClient {
	return &LibreTranslateClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		client:     &http.Client{Timeout: cfg.Timeout},
		maxElapsed: cfg.MaxElapsed,
	}
}

// TranslateRequest is the shape for translation requests
type TranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// TranslateResponse is a minimal response shape
type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate translates text from source to target language. Transient
// failures are retried with exponential backoff inside the caller's context;
// 4xx responses are not retried.
func (t *LibreTranslateClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	reqBody := TranslateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: t.apiKey,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := t.baseURL + "/translate"

	var translated string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("translation service returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("translation service returned status %d", resp.StatusCode))
		}

		var tr TranslateResponse
		if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
			return err
		}
		if tr.TranslatedText == "" {
			return backoff.Permanent(fmt.Errorf("empty translation from service"))
		}
		translated = tr.TranslatedText
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = t.maxElapsed

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return translated, nil
}
