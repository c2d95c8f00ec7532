/*
Package api implements the shared HTTP client wrapper used for every platform call.

It attaches the persisted bearer token to every outbound request, correlates requests
with UUID request IDs, throttles outbound traffic with a token bucket, and centralizes
the "session expired" reaction: any response with HTTP 401 clears the persisted token
and fires a process-wide invalidation hook, regardless of which caller issued the request.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"learnhub/internal/pkg/errs"
	"learnhub/internal/pkg/logx"
	"learnhub/internal/pkg/randx"
)

// maxResponseBytes caps how much of a platform response body the client will read.
const maxResponseBytes int64 = 8 << 20 // 8 MB

// TokenSource exposes the persisted bearer token to the client wrapper.
// The wrapper only ever reads the token and clears it on authentication failure;
// writing a new token is the session's job.
type TokenSource interface {
	// Token returns the current bearer token, or "" when none is stored.
	Token() string

	// Clear removes the persisted token.
	Clear() error
}

// Client is the shared request object every service talks to the platform through.
type Client struct {
	// base address of the REST API, e.g. http://127.0.0.1:8000.
	baseURL *url.URL

	// underlying HTTP client with the configured timeout.
	httpClient *http.Client

	// persisted bearer token storage.
	tokens TokenSource

	// outbound politeness limiter shared by all callers.
	limiter *rate.Limiter

	// mu protects onAuthFailure registration.
	mu sync.RWMutex

	// invoked after a 401 response has cleared the token.
	onAuthFailure func()

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs the shared platform client.
// requestRate and requestBurst configure the outbound token bucket.
func NewClient(baseURL *url.URL, timeout time.Duration, tokens TokenSource, requestRate float64, requestBurst int) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "api").
		Str("base_url", baseURL.String()).
		Logger()

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(requestRate), requestBurst),
		logger:     clientLogger,
	}
}

// OnAuthFailure registers the hook invoked whenever any response reports an
// authentication failure. The hook runs after the persisted token has been
// cleared. At most one hook is held; a later registration replaces the earlier one.
func (c *Client) OnAuthFailure(fn func()) {
	c.mu.Lock()
	c.onAuthFailure = fn
	c.mu.Unlock()
}

// BaseURL returns a copy of the configured API base address.
func (c *Client) BaseURL() url.URL {
	return *c.baseURL
}

// WebSocketURL derives the streaming address for the given path from the API
// base address by substituting the scheme: http becomes ws, https becomes wss.
// The path is appended to any path prefix carried by the base address.
func (c *Client) WebSocketURL(path string) string {
	u := *c.baseURL

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = ""

	return u.String()
}

// Get issues a GET request and decodes the JSON response into out (when non-nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request carrying body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request carrying body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request carrying body as JSON and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request. Platform delete endpoints respond with an empty body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one platform request end to end: limiter wait, header injection,
// transport, and the shared response policy (401 invalidation, error mapping,
// JSON decoding).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errs.NewError(errs.ErrNetwork, err)
	}

	reqURL := *c.baseURL
	reqURL.Path = strings.TrimSuffix(reqURL.Path, "/") + path
	if query != nil {
		reqURL.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errs.NewError(errs.ErrRequestEncoding, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return errs.NewError(errs.ErrRequestEncoding, err)
	}

	requestID := randx.RequestID()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The stored token always wins over anything a caller may have set.
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().
			Str("request_id", requestID).
			Str("request_method", method).
			Str("request_path", path).
			Err(err).
			Msg("Request transport failure")
		return errs.NewError(errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errs.NewError(errs.ErrMalformedResponse, err)
	}

	logEvent := c.logger.Debug()
	if resp.StatusCode >= 400 {
		logEvent = c.logger.Warn()
	}
	logEvent.
		Str("request_id", requestID).
		Str("request_method", method).
		Str("request_path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateSession(requestID, path)
		return errs.NewError(errs.ErrUnauthorized)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return errs.NewError(errs.ErrMalformedResponse, err)
		}
		return nil
	}

	return c.mapErrorResponse(resp.StatusCode, respBody)
}

// invalidateSession implements the global authentication-failure policy:
// the persisted token is removed and the registered hook is fired, no matter
// which component issued the failing request. Any endpoint answering 401 for
// any reason ends the whole session.
func (c *Client) invalidateSession(requestID, path string) {
	c.logger.Warn().
		Str("request_id", requestID).
		Str("request_path", path).
		Msg("Authentication failure reported. Invalidating session.")

	if err := c.tokens.Clear(); err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear persisted token")
	}

	c.mu.RLock()
	hook := c.onAuthFailure
	c.mu.RUnlock()

	if hook != nil {
		hook()
	}
}

// mapErrorResponse converts a non-2xx, non-401 platform response into the
// client error taxonomy.
func (c *Client) mapErrorResponse(status int, body []byte) error {
	switch status {
	case http.StatusBadRequest:
		return errs.NewValidationError(status, parseFieldErrors(body))
	case http.StatusForbidden:
		return errs.NewError(errs.ErrPermissionDenied)
	case http.StatusNotFound:
		return errs.NewError(errs.ErrNotFound)
	case http.StatusTooManyRequests:
		return errs.NewError(errs.ErrRateLimited)
	}

	customErr := errs.NewError(errs.ErrUnknown)
	customErr.Status = status
	if summary := summarizeBody(body); summary != "" {
		customErr.Message = fmt.Sprintf("%s (platform said: %s)", customErr.Message, summary)
	}
	return customErr
}

// parseFieldErrors normalizes the platform's form-error bodies into a
// field -> messages map. The platform emits several shapes: a field map with
// string or list values, a bare list, or a plain string; everything that is
// not keyed by field lands under "detail".
func parseFieldErrors(body []byte) map[string][]string {
	fields := make(map[string][]string)

	var keyed map[string]any
	if err := json.Unmarshal(body, &keyed); err == nil {
		for key, raw := range keyed {
			fields[key] = flattenMessages(raw)
		}
		return fields
	}

	var listed []any
	if err := json.Unmarshal(body, &listed); err == nil {
		fields["detail"] = flattenMessages(listed)
		return fields
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		fields["detail"] = []string{plain}
		return fields
	}

	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		fields["detail"] = []string{trimmed}
	}
	return fields
}

// flattenMessages renders one field's error value (string, list, or nested
// structure) as a flat message list.
func flattenMessages(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []any:
		messages := make([]string, 0, len(v))
		for _, item := range v {
			messages = append(messages, flattenMessages(item)...)
		}
		return messages
	default:
		return []string{fmt.Sprint(v)}
	}
}

// summarizeBody returns a short single-line rendition of an error body for logs
// and unknown-error messages.
func summarizeBody(body []byte) string {
	summary := strings.Join(strings.Fields(string(body)), " ")
	if len(summary) > 200 {
		summary = summary[:200] + "..."
	}
	return summary
}
