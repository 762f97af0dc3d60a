// Package native is the HTTP client for the native inference runner.
package native

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"greenwatch-be/pkg/runner"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ runner.Runner = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	UserText  string `json:"user_text"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (c *Client) StartSession(ctx context.Context) (*runner.Session, error) {
	var out runner.Session
	if err := c.do(ctx, http.MethodPost, "/session/start", struct{}{}, &out); err != nil {
		return nil, err
	}
	if out.SessionID == "" {
		return nil, fmt.Errorf("runner start-session returned no session_id")
	}
	return &out, nil
}

func (c *Client) SendMessage(ctx context.Context, sessionID, text string) (*runner.Reply, error) {
	var out runner.Reply
	err := c.do(ctx, http.MethodPost, "/session/message", messageRequest{SessionID: sessionID, UserText: text}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*runner.Health, error) {
	var out runner.Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("runner %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read runner response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.Unmarshal(data, &e)
		if resp.StatusCode == http.StatusNotFound && path == "/session/message" {
			return fmt.Errorf("%w: %s", runner.ErrUnknownSession, e.Error)
		}
		if e.Error != "" {
			return fmt.Errorf("runner %s %s: status %d: %s", method, path, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("runner %s %s: status %d", method, path, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode runner response: %w", err)
	}
	return nil
}
