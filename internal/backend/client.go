package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

// CSRFHeader carries the page token on mutating requests.
const CSRFHeader = "X-CSRFToken"

// CallRecorder counts backend round trips.
type CallRecorder interface {
	ObserveBackendCall(method, endpoint, outcome string)
}

// Client talks to the inventory REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	recorder   CallRecorder
	group      singleflight.Group

	sharedTimeout time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRecorder registers a metrics sink.
func WithRecorder(rec CallRecorder) Option {
	return func(c *Client) {
		c.recorder = rec
	}
}

// WithSharedTimeout bounds requests shared between concurrent callers.
func WithSharedTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.sharedTimeout = d
		}
	}
}

// NewClient constructs a Client for baseURL. Requests are bounded by the
// caller's context, except shared ones, which use the shared timeout.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,

		sharedTimeout: SharedCallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type validatable interface {
	Validate() error
}

// Fetch issues one request and decodes the JSON reply into T. It never retries.
func Fetch[T any](ctx context.Context, c *Client, method, path string, body any) Result[T] {
	endpoint := endpointLabel(path)
	res := doFetch[T](ctx, c, method, path, body)
	c.observe(method, endpoint, res.Outcome)
	switch res.Outcome {
	case OutcomeTransport:
		c.logger.Error("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", res.Err))
	case OutcomeRejected:
		c.logger.Warn("backend rejected request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", res.Status),
			slog.String("message", res.Message))
	}
	return res
}

func doFetch[T any](ctx context.Context, c *Client, method, path string, body any) Result[T] {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return transportFailure[T](fmt.Errorf("encode body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return transportFailure[T](fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if isMutating(method) {
		if token := CSRFTokenFromContext(ctx); token != "" {
			req.Header.Set(CSRFHeader, token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure[T](err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure[T](fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if !gjson.ValidBytes(data) {
			return transportFailure[T](fmt.Errorf("status %d with non-JSON body", resp.StatusCode))
		}
		msg := gjson.GetBytes(data, "error")
		if !msg.Exists() || msg.String() == "" {
			return rejectedResult[T](resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return rejectedResult[T](resp.StatusCode, msg.String())
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return transportFailure[T](ErrEmptyResponse)
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return transportFailure[T](fmt.Errorf("decode %s: %w", path, err))
	}
	if v, ok := any(value).(validatable); ok {
		if err := v.Validate(); err != nil {
			return transportFailure[T](err)
		}
	}
	return okResult(value, resp.StatusCode)
}

func (c *Client) observe(method, endpoint string, outcome Outcome) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveBackendCall(method, endpoint, string(outcome))
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// endpointLabel collapses item ids so metric cardinality stays bounded.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] == "inventory" {
		return "/api/inventory/{id}"
	}
	return "/" + strings.Join(parts, "/")
}
