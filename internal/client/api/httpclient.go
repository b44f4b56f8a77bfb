package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/logging"
	"github.com/msivanov/materialhub/internal/shared"
)

const (
	defaultBaseURL       = "http://localhost:8000"
	defaultTimeout       = 30 * time.Second
	defaultUploadTimeout = 60 * time.Second

	// maxErrorBody bounds how much of an error response is read for the
	// envelope; anything past it is irrelevant to classification.
	maxErrorBody = 64 << 10
	maxBody      = 8 << 20
)

const refreshPath = "/api/auth/refresh/"

// HTTPClient is the concrete REST implementation of Client.
//
// Responsibilities beyond plain request/response plumbing:
//   - attach "Authorization: Bearer <token>" from the TokenSource;
//   - on a 401, refresh the access token once using the stored refresh
//     token and retry; when that is impossible, fire OnUnauthorized so the
//     application can clear the session and navigate to login;
//   - classify failures into APIError categories for logging, then always
//     return them to the caller.
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
	tokens       TokenSource
	log          logging.Logger

	// onUnauthorized is invoked after an unrecoverable 401. It runs at
	// most once per failed request, never for login/register/refresh.
	onUnauthorized func()
}

// HTTPClientConfig configures the REST client.
type HTTPClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	UploadTimeout  time.Duration
	Tokens         TokenSource
	Logger         logging.Logger
	OnUnauthorized func()
}

// NewHTTPClient creates a REST client for the given backend.
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout == 0 {
		uploadTimeout = defaultUploadTimeout
	}

	return &HTTPClient{
		baseURL:        strings.TrimRight(shared.FirstNonEmpty(cfg.BaseURL, defaultBaseURL), "/"),
		httpClient:     &http.Client{Timeout: timeout},
		uploadClient:   &http.Client{Timeout: uploadTimeout},
		tokens:         cfg.Tokens,
		log:            cfg.Logger,
		onUnauthorized: cfg.OnUnauthorized,
	}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	c.uploadClient.CloseIdleConnections()
	return nil
}

// isAuthExempt reports whether the path must never trigger token refresh or
// the OnUnauthorized side effect. Login and refresh legitimately return 401
// for bad credentials.
func isAuthExempt(path string) bool {
	switch path {
	case "/api/auth/login/", "/api/auth/register/", refreshPath:
		return true
	}
	return false
}

// do executes a JSON request and decodes the response into out (which may
// be nil). Query may be nil. The method re-surfaces every failure; see the
// struct comment for the 401 flow.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	resp, err := c.send(ctx, c.httpClient, method, path, query, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthExempt(path) {
		drain(resp)
		if refreshErr := c.refreshTokens(ctx); refreshErr != nil {
			c.handleUnauthorized(path)
			return newAPIError(http.StatusUnauthorized, nil)
		}
		resp, err = c.send(ctx, c.httpClient, method, path, query, body)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			c.handleUnauthorized(path)
			return newAPIError(http.StatusUnauthorized, nil)
		}
	}

	return c.decode(resp, path, out)
}

// send builds and executes a single request, mapping transport failures to
// the network category. It never retries.
func (c *HTTPClient) send(ctx context.Context, hc *http.Client, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, c.networkError(method, path, err)
	}
	return resp, nil
}

// authorize attaches the bearer token when one is stored.
func (c *HTTPClient) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// networkError classifies timeouts and connection failures, which carry no
// HTTP status at all.
func (c *HTTPClient) networkError(method, path string, err error) error {
	category := CategoryNetwork
	msg := "network error"
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		msg = "request timed out"
	}
	if c.log != nil {
		c.log.Error(context.Background(), "api request failed",
			"method", method, "path", path, "category", string(category), "err", err)
	}
	return &APIError{Category: category, Message: msg, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// refreshTokens exchanges the stored refresh token for a new access token.
func (c *HTTPClient) refreshTokens(ctx context.Context) error {
	if c.tokens == nil {
		return ErrUnauthorized
	}
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return ErrUnauthorized
	}

	access, err := c.Refresh(ctx, refresh)
	if err != nil {
		return err
	}
	return c.tokens.SetAccessToken(access)
}

func (c *HTTPClient) handleUnauthorized(path string) {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil && c.log != nil {
			c.log.Warn(context.Background(), "clearing session failed", "err", err)
		}
	}
	if c.log != nil {
		c.log.Warn(context.Background(), "session expired", "path", path)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// decode consumes the response, producing either the parsed body or an
// APIError built from the status and the server's error envelope.
func (c *HTTPClient) decode(resp *http.Response, path string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var envelope *models.ErrorEnvelope
		var parsed models.ErrorEnvelope
		if json.Unmarshal(data, &parsed) == nil && parsed.Message != "" {
			envelope = &parsed
		}
		apiErr := newAPIError(resp.StatusCode, envelope)
		if c.log != nil {
			c.log.Error(context.Background(), "api request failed",
				"path", path, "status", resp.StatusCode, "category", string(apiErr.Category), "code", apiErr.Code)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}
