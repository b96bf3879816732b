// Package save implements the server round-trip strategy: snapshots are
// posted to the save endpoint and the watched preview file is reloaded when
// it changes.
package save

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
)

const (
	DefaultTimeout = 10 * time.Second

	// GenericError is shown when the endpoint fails without saying why.
	GenericError = "Failed to save component"
)

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// Client posts snapshots to the save endpoint. The unit itself arrives later
// through the file watcher, so successful outcomes are deferred.
type Client struct {
	url     string
	session string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:     url,
		session: uuid.NewString(),
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return "save"
}

func (c *Client) Session() string {
	return c.session
}

type saveRequest struct {
	Code    string `json:"code"`
	Seq     uint64 `json:"seq,omitempty"`
	Session string `json:"session,omitempty"`
}

type saveResponse struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

func (c *Client) Compile(ctx context.Context, snap core.Snapshot) (core.Outcome, error) {
	var result saveResponse
	status, err := c.postJSON(ctx, saveRequest{Code: snap.Text, Seq: snap.Seq, Session: c.session}, &result)
	if err != nil {
		if ctx.Err() != nil {
			return core.Outcome{}, ctx.Err()
		}
		return core.Outcome{}, &core.TransportError{Status: status, Message: err.Error(), Err: err}
	}

	if status == http.StatusConflict {
		return core.Outcome{}, core.ErrSuperseded
	}

	if status < 200 || status > 299 || result.Error != nil {
		msg := GenericError
		if result.Error != nil {
			msg = *result.Error
		}
		c.logger.Debug("save rejected", zap.Int("status", status), zap.String("error", msg))
		return core.Outcome{}, &core.TransportError{Status: status, Message: msg}
	}

	return core.Outcome{Deferred: true}, nil
}

// postJSON returns the response status. A body that is not JSON leaves
// result untouched.
func (c *Client) postJSON(ctx context.Context, body any, result any) (int, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("save request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read save response: %w", err)
	}

	if err := json.Unmarshal(data, result); err != nil {
		var syntaxErr *json.SyntaxError
		if len(bytes.TrimSpace(data)) == 0 || errors.As(err, &syntaxErr) {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("failed to decode save response: %w", err)
	}
	return resp.StatusCode, nil
}
