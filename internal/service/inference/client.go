package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/analysis"
)

// Client talks to the model-serving sidecar that hosts the intent and
// sentiment classifiers. One Client is created at startup and shared across
// requests; the underlying http.Client carries the per-call timeout.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ analysis.Classifier = (*Client)(nil)

// NewClient creates a reusable classification client.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// ClassifyIntent runs zero-shot classification of text against the candidate
// labels and returns the ranked results.
func (c *Client) ClassifyIntent(ctx context.Context, text string, candidates []string) ([]analysis.LabelScore, error) {
	payload := map[string]any{
		"text":             text,
		"candidate_labels": candidates,
	}

	var resp struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := c.post(ctx, "/classify/intent", payload, &resp); err != nil {
		return nil, err
	}

	if len(resp.Labels) == 0 {
		return nil, fmt.Errorf("intent response missing labels")
	}
	if len(resp.Labels) != len(resp.Scores) {
		return nil, fmt.Errorf("intent response labels/scores mismatch: %d vs %d", len(resp.Labels), len(resp.Scores))
	}

	ranked := make([]analysis.LabelScore, len(resp.Labels))
	for i, label := range resp.Labels {
		ranked[i] = analysis.LabelScore{Label: label, Score: resp.Scores[i]}
	}
	return ranked, nil
}

// ClassifySentiment returns the top sentiment label with its score.
func (c *Client) ClassifySentiment(ctx context.Context, text string) (analysis.LabelScore, error) {
	payload := map[string]any{"text": text}

	var resp struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := c.post(ctx, "/classify/sentiment", payload, &resp); err != nil {
		return analysis.LabelScore{}, err
	}

	if resp.Label == "" {
		return analysis.LabelScore{}, fmt.Errorf("sentiment response missing label")
	}
	return analysis.LabelScore{Label: resp.Label, Score: resp.Score}, nil
}

// Healthy probes the sidecar so /health can report model availability.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("inference health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference unhealthy: %s", resp.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
