package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Local dispatches requests straight into an http.Handler in the same
// process, after an artificial network delay.
type Local struct {
	handler  http.Handler
	basePath string
	minDelay time.Duration
	maxDelay time.Duration

	mu    sync.Mutex
	rng   *rand.Rand
	token string
}

// LocalOption configures a Local transport.
type LocalOption func(*Local)

// WithDelay sets the bounds of the simulated latency. Zero bounds turn
// the delay off.
func WithDelay(lo, hi time.Duration) LocalOption {
	return func(l *Local) {
		l.minDelay, l.maxDelay = lo, hi
	}
}

// WithRand sets the source used to pick each delay.
func WithRand(rng *rand.Rand) LocalOption {
	return func(l *Local) { l.rng = rng }
}

// NewLocal wraps handler. Endpoints are resolved under basePath, e.g.
// "/api". The default delay is 800-1200ms.
func NewLocal(handler http.Handler, basePath string, opts ...LocalOption) *Local {
	l := &Local{
		handler:  handler,
		basePath: basePath,
		minDelay: 800 * time.Millisecond,
		maxDelay: 1200 * time.Millisecond,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) SetToken(token string) {
	l.mu.Lock()
	l.token = token
	l.mu.Unlock()
}

func (l *Local) Send(ctx context.Context, endpoint, method string, payload any) (*Envelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, l.basePath+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	l.mu.Lock()
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}
	l.mu.Unlock()

	rec := httptest.NewRecorder()
	l.handler.ServeHTTP(rec, req)

	return &Envelope{
		OK:     rec.Code >= 200 && rec.Code < 300,
		Status: rec.Code,
		Body:   rec.Body.Bytes(),
	}, nil
}

// wait sleeps for a random delay within the configured bounds, or until
// ctx is done.
func (l *Local) wait(ctx context.Context) error {
	delay := l.minDelay
	if spread := l.maxDelay - l.minDelay; spread > 0 {
		l.mu.Lock()
		delay += time.Duration(l.rng.Int63n(int64(spread)))
		l.mu.Unlock()
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
