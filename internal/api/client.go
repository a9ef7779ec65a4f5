// Package api implements the REST client for the POS back-office API.
//
// Every response is wrapped in the envelope {status, data, message}; the
// client unwraps it and hands the raw data payload to resource services.
// Transport failures, timeouts, 5xx and 408/429 responses are retried with
// linear backoff; other 4xx responses are not.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultAttempts  = 3
	defaultBaseDelay = time.Second
)

// ErrUnauthorized marks a 401 response. It is never retried; stores react
// by forcing a logout instead of surfacing a page error.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is a non-2xx response that is not an auth failure.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}

	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Message)
}

//go:generate mockgen -source=client.go -destination=caller_mock.go -package=api

// Caller is the surface resource services depend on.
type Caller interface {
	Get(ctx context.Context, path string, query map[string]string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	PostForm(ctx context.Context, path string, fields map[string]string, fileField, filePath string) (json.RawMessage, error)
	PutForm(ctx context.Context, path string, fields map[string]string, fileField, filePath string) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

type Client struct {
	httpclient *http.Client
	api        string

	timeout   time.Duration
	attempts  int
	baseDelay time.Duration

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetry overrides the total attempt count and the backoff base delay.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.baseDelay = baseDelay
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpclient: new(http.Client),
		api:        strings.TrimSuffix(baseURL, "/"),
		timeout:    defaultTimeout,
		attempts:   defaultAttempts,
		baseDelay:  defaultBaseDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the Authorization header entirely.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

func (c *Client) endpoint(path string) string {
	return c.api + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) Get(ctx context.Context, path string, query map[string]string) (json.RawMessage, error) {
	u := c.endpoint(path)

	if len(query) > 0 {
		vals := url.Values{}

		for k, v := range query {
			if v == "" {
				continue
			}

			vals.Set(k, v)
		}

		if enc := vals.Encode(); enc != "" {
			u += "?" + enc
		}
	}

	return c.do(ctx, http.MethodGet, u, nil, "")
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return c.do(ctx, http.MethodPost, c.endpoint(path), payload, "application/json")
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return c.do(ctx, http.MethodPut, c.endpoint(path), payload, "application/json")
}

func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string, fileField, filePath string) (json.RawMessage, error) {
	payload, contentType, err := encodeMultipart(fields, fileField, filePath)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodPost, c.endpoint(path), payload, contentType)
}

func (c *Client) PutForm(ctx context.Context, path string, fields map[string]string, fileField, filePath string) (json.RawMessage, error) {
	payload, contentType, err := encodeMultipart(fields, fileField, filePath)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodPut, c.endpoint(path), payload, contentType)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.endpoint(path), nil, "")
}

// do runs the retry loop. The request body is buffered up front so every
// attempt sends identical bytes.
func (c *Client) do(ctx context.Context, method, url string, body []byte, contentType string) (json.RawMessage, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(time.Duration(attempt-1) * c.baseDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		data, retry, err := c.attempt(ctx, method, url, body, contentType)
		if err == nil {
			return data, nil
		}

		if !retry {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, url string, body []byte, contentType string) (json.RawMessage, bool, error) {
	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(actx, method, url, reader)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	req.Header.Set("X-Request-ID", uuid.NewString())

	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		// Connectivity failure or timeout; both are retryable.
		return nil, true, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, false, fmt.Errorf("%w: %s", ErrUnauthorized, envelopeMessage(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Message: envelopeMessage(raw)}

		return nil, retryableStatus(resp.StatusCode), statusErr
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("decoding response: %w", err)
	}

	if env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = env.Status
		}

		return nil, false, fmt.Errorf("request failed: %s", msg)
	}

	return env.Data, false, nil
}

func retryableStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= 500:
		return true
	default:
		return false
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func envelopeMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Message == "" {
		return strings.TrimSpace(string(raw))
	}

	return env.Message
}

func encodeMultipart(fields map[string]string, fileField, filePath string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", k, err)
		}
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("opening upload file: %w", err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(fileField, filepath.Base(filePath))
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copying upload file: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
