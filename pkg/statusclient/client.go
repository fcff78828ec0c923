// Package statusclient is a typed client for the status page API.
//
// Authenticated calls take an explicit *Session; there is no ambient token.
// A 401 on an authenticated call expires the session and returns
// ErrSessionExpired.
package statusclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"statuspage/pkg/httpclient"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// APIError is any non-2xx answer.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status api: %d", e.StatusCode)
	}
	return fmt.Sprintf("status api: %d %s: %s", e.StatusCode, e.Kind, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New expects the API root, e.g. http://localhost:8080/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.New(httpclient.Options{}),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type call struct {
	method  string
	path    string
	query   url.Values
	body    any
	form    url.Values
	session *Session
}

// do sends the call and decodes the envelope's data into out (nil skips it).
func do[T any](ctx context.Context, c *Client, cl call) (T, error) {
	var zero T

	var token string
	if cl.session != nil {
		t, err := cl.session.Token()
		if err != nil {
			return zero, err
		}
		token = t
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case cl.form != nil:
		body = strings.NewReader(cl.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case cl.body != nil:
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return zero, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return zero, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("status api request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", cl.method).
		Str("path", cl.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	if resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && cl.session != nil {
			cl.session.Expire()
			return zero, fmt.Errorf("%w: %w", ErrSessionExpired, apiErr)
		}
		return zero, apiErr
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return env.Data, nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
		apiErr.Kind = env.Error.Kind
		apiErr.Message = env.Error.Message
		apiErr.RequestID = env.RequestID
	}
	return apiErr
}

// empty decodes endpoints whose data is null.
type empty struct{}

func pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(a))
	}
	return fmt.Sprintf(format, escaped...)
}
