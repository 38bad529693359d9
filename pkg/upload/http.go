package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cardscan/go-cardscan/internal/httpc"
	"github.com/cardscan/go-cardscan/internal/log"
)

// HTTP posts captured images to a backend endpoint.
type HTTP struct {
	// URL is the upload endpoint.
	URL string

	// Client is the HTTP client to use. Defaults to the shared httpc client.
	Client *http.Client
}

// NewHTTP creates an HTTP uploader for the given endpoint.
func NewHTTP(url string) *HTTP {
	return &HTTP{URL: url, Client: httpc.Client}
}

// payload is the backend request body.
type payload struct {
	Image string `json:"image"`
}

// Send posts {"image": <base64>} to the endpoint.
func (h *HTTP) Send(ctx context.Context, imageB64 string) error {
	if h.URL == "" {
		return ErrNoEndpoint
	}
	if imageB64 == "" {
		return ErrEmptyImage
	}

	body, err := json.Marshal(payload{Image: imageB64})
	if err != nil {
		return fmt.Errorf("upload: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := h.Client
	if client == nil {
		client = httpc.Client
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
	}

	log.Debug("upload accepted", "status", resp.StatusCode, "bytes", len(imageB64))
	return nil
}
