package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel-booking/pkg/metrics"
)

const refreshPath = "token/refresh/"

// TokenStore is the slice of the client-local state the API client needs:
// the current access token, the optional refresh token, and a way to store
// a refreshed access token.
type TokenStore interface {
	Token() string
	RefreshToken() string
	SetToken(token string) error
}

// Client issues authenticated requests against the travel backend. It
// attaches the bearer token when one exists, normalizes error payloads and
// retries exactly once through the refresh endpoint on 401.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenStore, m *metrics.Metrics, log *zap.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		metrics: m,
		log:     log.With(zap.String("component", "api_client")),
	}
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// HasSession reports whether an access token is present. Workflow steps use
// this as the pre-flight auth check so no request goes out without one.
func (c *Client) HasSession() bool {
	return c.token() != ""
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + strings.TrimPrefix(path, "/")
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, contentType, token string) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.metrics.ObserveAPIRequest(method, "connection_error", duration)
		c.log.Warn("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveAPIRequest(method, "connection_error", duration)
		return nil, nil, &ConnectionError{Err: err}
	}

	outcome := "success"
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = fmt.Sprintf("http_%d", resp.StatusCode)
	}
	c.metrics.ObserveAPIRequest(method, outcome, duration)

	c.log.Debug("Request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, raw, nil
}

// do performs a request with the stored token, refreshing it once when the
// backend answers 401 and a refresh token is on hand.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string) (*http.Response, []byte, error) {
	hadToken := c.token() != ""
	resp, raw, err := c.send(ctx, method, path, body, contentType, c.token())
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && hadToken && path != refreshPath {
		if token, ok := c.tryRefresh(ctx); ok {
			resp, raw, err = c.send(ctx, method, path, body, contentType, token)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, raw, nil
	}

	// A 401 on a request that carried a token means the session is gone.
	// Without one it is an ordinary rejection, e.g. wrong login
	// credentials, and the backend's detail message is worth keeping.
	if resp.StatusCode == http.StatusUnauthorized && hadToken {
		return nil, nil, ErrAuthRequired
	}

	return nil, nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(raw, resp.StatusCode)}
}

// tryRefresh exchanges the refresh token for a new access token. Returns
// the new token on success.
func (c *Client) tryRefresh(ctx context.Context) (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return "", false
	}

	body, _ := json.Marshal(map[string]string{"refresh": refresh})
	resp, raw, err := c.send(ctx, http.MethodPost, refreshPath, body, "application/json", "")
	if err != nil || resp.StatusCode != http.StatusOK {
		c.log.Debug("Token refresh failed")
		return "", false
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.Access == "" {
		return "", false
	}

	if err := c.tokens.SetToken(out.Access); err != nil {
		c.log.Warn("Failed to persist refreshed token", zap.Error(err))
	}

	return out.Access, true
}

// errorDetail extracts the backend's {"detail": ...} message, falling back
// to a generic HTTP status message.
func errorDetail(raw []byte, status int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fmt.Sprintf("HTTP %d", status)
}

func decodeJSON(resp *http.Response, raw []byte, out any) error {
	if out == nil {
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return &ParseError{Err: fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, raw, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return decodeJSON(resp, raw, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	if in == nil {
		in = struct{}{}
	}
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	resp, raw, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	return decodeJSON(resp, raw, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

// sendMultipart sends fields plus an optional file part. The multipart
// writer sets its own content type boundary.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("copy form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	resp, raw, err := c.do(ctx, method, path, buf.Bytes(), w.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeJSON(resp, raw, out)
}

func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	return c.sendMultipart(ctx, http.MethodPost, path, fields, fileField, fileName, file, out)
}

// getBinary fetches a non-JSON payload, e.g. the booking receipt PDF.
func (c *Client) getBinary(ctx context.Context, path string) ([]byte, error) {
	_, raw, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return raw, nil
}
