package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"citysense-be/models"
	"citysense-be/projections"
)

// APIError is a request the service answered with a failure status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// AuthResult is returned by Login and Register.
type AuthResult struct {
	Token string `json:"token"`
	User  struct {
		ID    string      `json:"id"`
		Name  string      `json:"name"`
		Email string      `json:"email"`
		Role  models.Role `json:"role"`
	} `json:"user"`
}

// Client speaks the issue service's REST contract over a Transport.
type Client struct {
	t Transport
}

func NewClient(t Transport) *Client {
	return &Client{t: t}
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.call(ctx, "/auth/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.t.SetToken(out.Token)
	return &out, nil
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, phone, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.call(ctx, "/auth/register", http.MethodPost, map[string]string{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.t.SetToken(out.Token)
	return &out, nil
}

// Logout forgets the token.
func (c *Client) Logout() {
	c.t.SetToken("")
}

func (c *Client) CreateIssue(ctx context.Context, draft models.IssueDraft) (models.Issue, error) {
	var out struct {
		Issue models.Issue `json:"issue"`
	}
	if err := c.call(ctx, "/issues", http.MethodPost, draft, &out); err != nil {
		return models.Issue{}, err
	}
	return out.Issue, nil
}

func (c *Client) ListIssues(ctx context.Context, f projections.Filter) ([]models.Issue, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	endpoint := "/issues"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var out struct {
		Issues []models.Issue `json:"issues"`
	}
	if err := c.call(ctx, endpoint, http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return out.Issues, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status models.IssueStatus) (models.Issue, error) {
	var out struct {
		Issue models.Issue `json:"issue"`
	}
	err := c.call(ctx, "/issues/"+url.PathEscape(id)+"/status", http.MethodPatch, map[string]string{
		"status": string(status),
	}, &out)
	if err != nil {
		return models.Issue{}, err
	}
	return out.Issue, nil
}

func (c *Client) Statistics(ctx context.Context) (projections.Statistics, error) {
	var out struct {
		Stats projections.Statistics `json:"stats"`
	}
	if err := c.call(ctx, "/dashboard/stats", http.MethodGet, nil, &out); err != nil {
		return projections.Statistics{}, err
	}
	return out.Stats, nil
}

func (c *Client) call(ctx context.Context, endpoint, method string, payload, out any) error {
	env, err := c.t.Send(ctx, endpoint, method, payload)
	if err != nil {
		return err
	}
	if !env.OK {
		var failure struct {
			Error string `json:"error"`
		}
		_ = env.Decode(&failure)
		if failure.Error == "" {
			failure.Error = http.StatusText(env.Status)
		}
		return &APIError{Status: env.Status, Message: failure.Error}
	}
	return env.Decode(out)
}
