package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPaymentStatus_OK(t *testing.T) {
	paidAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/payments/12" {
			t.Fatalf("path = %s, want /api/payments/12", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Payment{OrderID: 12, Status: StatusSucceeded, PaidAt: &paidAt}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, code, retry, err := client.PaymentStatus(ctx, 12)
	if err != nil {
		t.Fatalf("PaymentStatus error: %v", err)
	}
	if code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", code, http.StatusOK)
	}
	if retry != 0 {
		t.Fatalf("retryAfter = %v, want 0", retry)
	}
	if res == nil || res.OrderID != 12 || res.Status != StatusSucceeded {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.PaidAt == nil || !res.PaidAt.Equal(paidAt) {
		t.Fatalf("unexpected paid_at: %v", res.PaidAt)
	}
}

func TestPaymentStatus_TooManyRequests(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	res, code, retry, err := NewClient(ts.URL).PaymentStatus(context.Background(), 1)
	if err != nil {
		t.Fatalf("PaymentStatus error: %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil response for 429, got %+v", res)
	}
	if code != http.StatusTooManyRequests {
		t.Fatalf("status code = %d, want %d", code, http.StatusTooManyRequests)
	}
	if retry != 5*time.Second {
		t.Fatalf("retryAfter = %v, want 5s", retry)
	}
}

func TestPaymentStatus_Unknown(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusNotFound} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		res, code, _, err := NewClient(ts.URL).PaymentStatus(context.Background(), 1)
		ts.Close()

		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
		if res != nil || code != status {
			t.Fatalf("status %d: got %+v, code %d", status, res, code)
		}
	}
}

func TestPaymentStatus_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, code, _, err := NewClient(ts.URL).PaymentStatus(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected error for 500")
	}
	if code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want 500", code)
	}
}

func TestPaymentStatus_AddsScheme(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := NewClient(strings.TrimPrefix(ts.URL, "http://") + "/")
	if _, code, _, err := client.PaymentStatus(context.Background(), 1); err != nil || code != http.StatusNoContent {
		t.Fatalf("code = %d, err = %v", code, err)
	}
}

func TestPaymentStatus_NotConfigured(t *testing.T) {
	var c *Client
	if _, _, _, err := c.PaymentStatus(context.Background(), 1); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
