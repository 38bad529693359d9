// Package qr issues desktop-handoff links and renders them as QR codes.
// A desktop user scans the code to continue the capture flow on a phone;
// no session state crosses over, the code only carries the URL.
package qr

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered QR code edge length in pixels.
const DefaultSize = 256

// ErrNoBaseURL is returned when the store has no handoff URL configured.
var ErrNoBaseURL = errors.New("qr: handoff base URL required")

// Link is one issued handoff link.
type Link struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Store issues handoff links and remembers them for the daemon's lifetime.
type Store struct {
	baseURL string

	mu    sync.RWMutex
	links map[string]Link
}

// NewStore creates a store issuing links under the given base URL.
func NewStore(baseURL string) *Store {
	return &Store{
		baseURL: baseURL,
		links:   make(map[string]Link),
	}
}

// Issue creates a new handoff link with a fresh token.
func (s *Store) Issue() (Link, error) {
	if s.baseURL == "" {
		return Link{}, ErrNoBaseURL
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return Link{}, fmt.Errorf("qr: parse base URL: %w", err)
	}

	id := uuid.NewString()
	q := base.Query()
	q.Set("t", id)
	base.RawQuery = q.Encode()

	link := Link{
		ID:        id,
		URL:       base.String(),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.links[id] = link
	s.mu.Unlock()

	return link, nil
}

// Get returns a previously issued link.
func (s *Store) Get(id string) (Link, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.links[id]
	return l, ok
}

// Count returns how many links have been issued.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}

// PNG renders the link's URL as a QR code PNG of the given edge length.
func PNG(l Link, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	data, err := qrcode.Encode(l.URL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	return data, nil
}
