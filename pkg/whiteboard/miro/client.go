package miro

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/archboard/pkg/buildinfo"
	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/httputil"
	"github.com/matzehuels/archboard/pkg/observability"
)

// DefaultBaseURL is the Miro REST API root.
const DefaultBaseURL = "https://api.miro.com/v2"

// MaxBoardName is the longest board name Miro accepts.
const MaxBoardName = 60

const httpTimeout = 30 * time.Second

// Client talks to the Miro REST API. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	logger  *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Miro client authenticated with token.
// An empty token is an INVALID_CONFIG error.
func NewClient(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "MIRO_API_TOKEN is not set")
	}
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: DefaultBaseURL,
		token:   token,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// CreateBoard implements diagram.Adapter. Miro refuses names longer than
// MaxBoardName characters; such names are rejected without a request.
func (c *Client) CreateBoard(ctx context.Context, name, description string) (diagram.Board, error) {
	if n := utf8.RuneCountInString(name); n > MaxBoardName {
		return diagram.Board{}, errors.New(errors.ErrCodeRemoteRejected,
			"create board: name has %d characters (max %d)", n, MaxBoardName)
	}
	var resp boardResponse
	if err := c.post(ctx, "/boards", boardRequest{Name: name, Description: description}, &resp); err != nil {
		return diagram.Board{}, err
	}
	if resp.ID == "" {
		return diagram.Board{}, errors.New(errors.ErrCodeRemoteRejected, "create board: response has no id")
	}
	return diagram.Board{ID: resp.ID, ViewURL: resp.ViewLink}, nil
}

// CreateNode implements diagram.Adapter. Every node kind is drawn as a shape.
func (c *Client) CreateNode(ctx context.Context, boardID string, n diagram.Node) (string, error) {
	var resp itemResponse
	if err := c.post(ctx, "/boards/"+url.PathEscape(boardID)+"/shapes", newShapeRequest(n), &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New(errors.ErrCodeRemoteRejected, "create shape: response has no id")
	}
	return resp.ID, nil
}

// CreateConnector implements diagram.Adapter.
func (c *Client) CreateConnector(ctx context.Context, boardID string, conn diagram.Connector) (string, error) {
	var resp itemResponse
	if err := c.post(ctx, "/boards/"+url.PathEscape(boardID)+"/connectors", newConnectorRequest(conn), &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New(errors.ErrCodeRemoteRejected, "create connector: response has no id")
	}
	return resp.ID, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "build request %s", path)
	}
	reqID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host := req.URL.Host
	hooks.OnRequest(ctx, http.MethodPost, host, req.URL.Path)
	if c.logger != nil {
		c.logger.Debug("miro request", "path", path, "request_id", reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, host, req.URL.Path, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httputil.Retryable(errors.Wrap(errors.ErrCodeRemoteUnavailable, err, "POST %s", path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := httputil.CheckResponse(resp); err != nil {
		if httputil.IsRetryable(err) {
			return httputil.Retryable(errors.Wrap(errors.ErrCodeRemoteUnavailable, err, "POST %s", path))
		}
		return errors.Wrap(errors.ErrCodeRemoteRejected, err, "POST %s", path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeRemoteRejected, err, "decode %s response", path)
	}
	return nil
}
