// Package ai calls an optional external service that suggests a penalty
// worth and a short summary for a task. The call is best-effort: any
// failure, timeout or missing configuration degrades to a deterministic
// local fallback and task creation proceeds without it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Evaluation is the service's suggestion for a task.
type Evaluation struct {
	Worth   decimal.Decimal `json:"worth"`
	Reason  string          `json:"reason"`
	Summary string          `json:"summary"`
}

// Client talks to a worth-evaluation endpoint over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// New returns a client, or nil when no endpoint is configured; a nil client
// is a valid "always fall back" evaluator.
func New(endpoint, apiKey string) *Client {
	if endpoint == "" || apiKey == "" {
		return nil
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type evaluateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
}

// EvaluateWorth asks the service to price the task. Callers must treat any
// error as a signal to use Fallback, never as a creation failure.
func (c *Client) EvaluateWorth(ctx context.Context, title, description, currencyCode string) (Evaluation, error) {
	if c == nil {
		return Evaluation{}, fmt.Errorf("evaluator not configured")
	}

	body, err := json.Marshal(evaluateRequest{Title: title, Description: description, Currency: currencyCode})
	if err != nil {
		return Evaluation{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Evaluation{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Evaluation{}, fmt.Errorf("evaluate worth: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Evaluation{}, fmt.Errorf("evaluate worth: unexpected status %d", resp.StatusCode)
	}

	var eval Evaluation
	if err := json.NewDecoder(resp.Body).Decode(&eval); err != nil {
		return Evaluation{}, fmt.Errorf("decode response: %w", err)
	}
	if eval.Worth.IsNegative() {
		return Evaluation{}, fmt.Errorf("evaluate worth: negative suggestion")
	}
	return eval, nil
}

// Fallback is the deterministic local default: the caller-entered worth and
// the first three whitespace-separated words of the title as summary.
func Fallback(title string, worth decimal.Decimal) Evaluation {
	return Evaluation{
		Worth:   worth,
		Reason:  "default estimation",
		Summary: Summarize(title),
	}
}

// Summarize derives a short display label from a title.
func Summarize(title string) string {
	words := strings.Fields(title)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
