package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTP sends requests to a remote issue service.
type HTTP struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTP builds a transport for baseURL, e.g. "http://localhost:8080/api".
// Authentication rides on the bearer token only; cookies are not kept.
func NewHTTP(baseURL string) *HTTP {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetCookieJar(nil).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &HTTP{client: client}
}

func (h *HTTP) SetToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *HTTP) Send(ctx context.Context, endpoint, method string, payload any) (*Envelope, error) {
	req := h.client.R().SetContext(ctx)
	if payload != nil {
		req.SetBody(payload)
	}
	h.mu.RLock()
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	h.mu.RUnlock()

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	return &Envelope{
		OK:     resp.IsSuccess(),
		Status: resp.StatusCode(),
		Body:   resp.Body(),
	}, nil
}
