package upload

import (
	"context"
	"sync"
	"time"
)

// Mock implements Uploader for testing and for running the daemon without
// a backend. Behavior can be customized via function fields.
type Mock struct {
	// SendFunc is called when Send is invoked. If nil, Send succeeds
	// after Delay.
	SendFunc func(ctx context.Context, imageB64 string) error

	// Delay simulates backend latency when SendFunc is nil.
	Delay time.Duration

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a Send invocation for verification.
type MockCall struct {
	Bytes int
	Time  time.Time
}

// NewMock creates a mock uploader that accepts everything.
func NewMock() *Mock {
	return &Mock{}
}

// Send records the call and runs SendFunc (or succeeds).
func (m *Mock) Send(ctx context.Context, imageB64 string) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Bytes: len(imageB64), Time: time.Now()})
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, imageB64)
	}
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Calls returns the recorded Send invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Send was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
