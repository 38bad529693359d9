package upload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSendPostsJSON(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u := NewHTTP(srv.URL)
	if err := u.Send(context.Background(), "aGVsbG8="); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got.Image != "aGVsbG8=" {
		t.Errorf("backend received %q", got.Image)
	}
}

func TestHTTPSendMapsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	u := NewHTTP(srv.URL)
	err := u.Send(context.Background(), "aGVsbG8=")
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "too large" {
		t.Errorf("expected message from body, got %q", apiErr.Message)
	}
}

func TestHTTPSendValidation(t *testing.T) {
	u := NewHTTP("")
	if err := u.Send(context.Background(), "data"); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("expected ErrNoEndpoint, got %v", err)
	}

	u = NewHTTP("http://localhost:1")
	if err := u.Send(context.Background(), ""); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
}

func TestAPIErrorRetryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{400, false},
		{404, false},
	}
	for _, tt := range tests {
		e := &APIError{StatusCode: tt.status}
		if e.IsRetryable() != tt.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tt.status, e.IsRetryable(), tt.retryable)
		}
	}
}
