package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEvaluateWorth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req struct {
			Title    string `json:"title"`
			Currency string `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"worth":   12.5,
			"reason":  "routine chore",
			"summary": "Kitchen Clean",
		})
	}))
	defer server.Close()

	client := New(server.URL, "test-key")
	eval, err := client.EvaluateWorth(context.Background(), "Clean the kitchen", "Scrub everything.", "USD")
	if err != nil {
		t.Fatalf("EvaluateWorth() error = %v", err)
	}
	if !eval.Worth.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("worth = %s, want 12.5", eval.Worth)
	}
	if eval.Summary != "Kitchen Clean" {
		t.Errorf("summary = %q", eval.Summary)
	}
}

func TestEvaluateWorth_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "test-key")
	if _, err := client.EvaluateWorth(context.Background(), "x", "", "USD"); err == nil {
		t.Error("expected error on server failure")
	}
}

func TestNew_UnconfiguredIsNil(t *testing.T) {
	if New("", "key") != nil {
		t.Error("missing endpoint should disable the client")
	}
	if New("https://example.com", "") != nil {
		t.Error("missing key should disable the client")
	}

	var client *Client
	if _, err := client.EvaluateWorth(context.Background(), "x", "", "USD"); err == nil {
		t.Error("nil client must report an error, not panic")
	}
}

func TestFallback(t *testing.T) {
	eval := Fallback("Pay the monthly electricity bill", decimal.NewFromInt(7))
	if eval.Summary != "Pay the monthly" {
		t.Errorf("summary = %q, want first three words", eval.Summary)
	}
	if !eval.Worth.Equal(decimal.NewFromInt(7)) {
		t.Errorf("worth = %s, want 7", eval.Worth)
	}

	if got := Summarize("Jog"); got != "Jog" {
		t.Errorf("short title summary = %q, want unchanged", got)
	}
}
