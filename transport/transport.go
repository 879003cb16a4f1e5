// Package transport carries API calls from a client to the issue service,
// either in process or over HTTP.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
)

// Envelope is the outcome of one call: whether it succeeded and the raw
// JSON body.
type Envelope struct {
	OK     bool
	Status int
	Body   json.RawMessage
}

// Decode unmarshals the body into v.
func (e *Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Transport sends a request to an API endpoint such as "/issues". A
// non-nil error means the call never produced a response; HTTP-level
// failures come back as an Envelope with OK false.
type Transport interface {
	Send(ctx context.Context, endpoint, method string, payload any) (*Envelope, error)
	// SetToken sets the bearer token sent with later requests. An empty
	// token clears it.
	SetToken(token string)
}
