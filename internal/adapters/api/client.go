package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const tokenContextKey contextKey = "bearer_token"

// ContextWithToken returns a context carrying the admin bearer token. Every
// request issued from that context sends it in the Authorization header.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext extracts the bearer token from the context.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

// Error is a backend-reported failure: a non-2xx response that carried a
// message payload. The message is surfaced to the user verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// ErrUnavailable wraps network and parse failures. Callers show a generic
// message instead of the underlying error.
var ErrUnavailable = errors.New("backend unavailable")

// UserMessage maps an error to the string shown to the admin: backend
// messages verbatim, everything else collapsed to a generic line.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}

// Recorder receives a timing record for every upstream call. Implemented by
// the perf collector; nil means no recording.
type Recorder interface {
	RecordUpstream(method, path string, status int, duration time.Duration)
}

// Client is the HTTP client for the remote fitness platform API. All
// persistence, authentication, file storage and payment logic lives behind
// it; the panel holds no authoritative state.
type Client struct {
	baseURL  string // e.g. https://api.example.com/api
	rootURL  string // baseURL with the /api suffix stripped, for asset paths
	http     *http.Client
	recorder Recorder
}

// New creates a Client for the given API base URL.
// PRE: baseURL is non-empty
// POST: Returns a ready-to-use client
func New(baseURL string) *Client {
	base := strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: base,
		rootURL: strings.TrimSuffix(base, "/api"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// SetRecorder attaches an upstream-call recorder. Not safe to call after the
// client is in use.
func (c *Client) SetRecorder(r Recorder) {
	c.recorder = r
}

// do issues a request against the API base, attaching the bearer token from
// the context when present.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	return c.doURL(ctx, method, c.baseURL+path, body, contentType)
}

func (c *Client) doURL(ctx context.Context, method, url string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if c.recorder != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		c.recorder.RecordUpstream(method, strings.TrimPrefix(url, c.baseURL), status, time.Since(start))
	}
	if err != nil {
		slog.Error("api_unreachable", "method", method, "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

// getJSON issues a GET and decodes the 2xx response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// sendJSON issues a request with a JSON body, discarding any response body.
func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encoding %s: %v", ErrUnavailable, path, err)
		}
		body = bytes.NewReader(buf)
	}
	resp, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	return drain(resp)
}

// sendJSONInto issues a request with a JSON body and decodes the response.
func (c *Client) sendJSONInto(ctx context.Context, method, path string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrUnavailable, path, err)
	}
	resp, err := c.do(ctx, method, path, bytes.NewReader(buf), "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *Error carrying the backend's
// message. The backend answers with either {"msg": ...} or {"error": ...}.
func decodeError(resp *http.Response) error {
	var payload struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &payload)
	message := payload.Msg
	if message == "" {
		message = payload.Error
	}
	slog.Warn("api_error", "status", resp.StatusCode, "url", resp.Request.URL.Path, "msg", message)
	return &Error{Status: resp.StatusCode, Message: message}
}

func drain(resp *http.Response) error {
	defer resp.Body.Close()
	_, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return err
}
