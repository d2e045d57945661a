// Package api talks to an opencode server over HTTP.
package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/iksnae/opencode-chat/internal"
)

// Client implements internal.ChatService against the opencode REST API
type Client struct {
	http *resty.Client
}

var _ internal.ChatService = (*Client)(nil)

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		http.SetTimeout(timeout)
	}
	return &Client{http: http}
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

type createSessionRequest struct {
	Title string `json:"title,omitempty"`
}

type textPartInput struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type sendMessageRequest struct {
	Parts      []textPartInput `json:"parts"`
	ProviderID string          `json:"providerID,omitempty"`
	ModelID    string          `json:"modelID,omitempty"`
}

// ListSessions returns all sessions
func (c *Client) ListSessions(ctx context.Context) ([]internal.Session, error) {
	var out []internal.Session
	res, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/session")
	if err := check("list sessions", res, err); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSession returns one session
func (c *Client) GetSession(ctx context.Context, id string) (*internal.Session, error) {
	var out internal.Session
	res, err := c.http.R().SetContext(ctx).SetResult(&out).Get(sessionPath(id))
	if err := check("get session", res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSession creates a session with an optional title
func (c *Client) CreateSession(ctx context.Context, title string) (*internal.Session, error) {
	var out internal.Session
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(createSessionRequest{Title: title}).
		SetResult(&out).
		Post("/session")
	if err := check("create session", res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSession deletes a session and reports the server's answer
func (c *Client) DeleteSession(ctx context.Context, id string) (bool, error) {
	var ok bool
	res, err := c.http.R().SetContext(ctx).SetResult(&ok).Delete(sessionPath(id))
	if err := check("delete session", res, err); err != nil {
		return false, err
	}
	return ok, nil
}

// ListMessages returns the session's history in server order
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]internal.ChatMessage, error) {
	var out []internal.ChatMessage
	res, err := c.http.R().SetContext(ctx).SetResult(&out).Get(sessionPath(sessionID) + "/message")
	if err := check("list messages", res, err); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage posts a user turn and returns the assistant's reply.
// Routing fields are only sent when the request names a model.
func (c *Client) SendMessage(ctx context.Context, req internal.SendRequest) (*internal.ChatMessage, error) {
	body := sendMessageRequest{
		Parts: []textPartInput{{Type: string(internal.PartText), Text: req.Text}},
	}
	if req.Model != nil && req.Model.ProviderID != "" && req.Model.ModelID != "" {
		body.ProviderID = req.Model.ProviderID
		body.ModelID = req.Model.ModelID
	}

	var out internal.ChatMessage
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(sessionPath(req.SessionID) + "/message")
	if err := check("send message", res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProviders returns the provider catalog and the server's default models
func (c *Client) ListProviders(ctx context.Context) (*internal.ProvidersResponse, error) {
	var out internal.ProvidersResponse
	res, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/config/providers")
	if err := check("list providers", res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func sessionPath(id string) string {
	return "/session/" + url.PathEscape(id)
}

func check(op string, res *resty.Response, err error) error {
	if err != nil {
		return &internal.APIError{Op: op, Err: err}
	}
	if !res.IsSuccess() {
		return &internal.APIError{
			Op:         op,
			StatusCode: res.StatusCode(),
			Body:       res.String(),
			Err:        fmt.Errorf("unexpected status %s", res.Status()),
		}
	}
	return nil
}
