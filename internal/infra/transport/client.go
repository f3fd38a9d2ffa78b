// Package transport provides the single shared HTTP client bound to the
// FieldOS backend. Every request goes through it: the bearer token is
// attached from the credential store when present, and any 401 response
// triggers the global policy (wipe both credential tiers and redirect to
// login) exactly once per response, before the error reaches the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/infra/observability"
	"github.com/fieldos/fieldos-client-go/internal/infra/resilience"
	"github.com/fieldos/fieldos-client-go/internal/port"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("transport")

// Client wraps HTTP calls to the FieldOS REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      port.CredentialStore
	nav        port.Navigator
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// New creates the shared client. All dependencies are required; passing a
// nil store or navigator is a wiring bug and panics immediately rather
// than failing silently later.
func New(httpClient *http.Client, baseURL string, creds port.CredentialStore, nav port.Navigator, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	if creds == nil {
		panic("transport: credential store is required")
	}
	if nav == nil {
		panic("transport: navigator is required")
	}
	maxConc := cfg.MaxConcurrency
	if maxConc <= 0 {
		maxConc = 10
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		creds:      creds,
		nav:        nav,
		cb:         cb,
		cfg:        cfg,
		bulkhead:   resilience.NewBulkhead(maxConc),
		metrics:    metrics,
		logger:     logger,
	}
}

// Get issues an idempotent request; network errors and 5xx are retried.
func (c *Client) Get(ctx context.Context, operation, path string, out any) error {
	return c.execute(ctx, operation, true, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

// Post issues a mutating request. Never retried: retry, if any, is a
// user-initiated re-submission.
func (c *Client) Post(ctx context.Context, operation, path string, body, out any) error {
	return c.execute(ctx, operation, false, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, path, body, out)
	})
}

// Put issues a mutating update request. Never retried.
func (c *Client) Put(ctx context.Context, operation, path string, body, out any) error {
	return c.execute(ctx, operation, false, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPut, path, body, out)
	})
}

// execute runs fn under bulkhead, circuit breaker, optional retry, and
// records span + metrics.
func (c *Client) execute(ctx context.Context, operation string, retryable bool, fn func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, operation)
	defer span.End()
	span.SetAttributes(attribute.Bool("retryable", retryable))

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer c.bulkhead.Release()

	start := time.Now()
	_, err := c.cb.Execute(func() (any, error) {
		if retryable {
			return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
				return fn(ctx)
			})
		}
		return nil, fn(ctx)
	})
	c.metrics.RecordRequestDuration(operation, time.Since(start))

	if err != nil {
		// The Permanent wrapper exists for the retry loop only; callers get
		// the domain error.
		var perm *resilience.Permanent
		if errors.As(err, &perm) {
			err = perm.Err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.metrics.IncrBreakerOpen("fieldos-api")
			err = &domain.ErrCircuitOpen{Service: "fieldos-api"}
		}
		c.metrics.IncrRequest("error")
		return err
	}

	c.metrics.IncrRequest("success")
	return nil
}

// apiError is the backend's error envelope.
type apiError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// do performs one HTTP round trip and maps the response status to domain
// errors. 401 handling happens here so it fires once per unauthorized
// response; the Permanent wrapper keeps the retry loop from re-issuing it.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.logger.Error("fieldos: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Absent token means no Authorization header at all, never an empty one.
	if token, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("fieldos: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("fieldos: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &resilience.Permanent{Err: c.handleUnauthorized(method, path, raw)}

	case resp.StatusCode == http.StatusNotFound:
		return &resilience.Permanent{Err: &domain.ErrNotFound{Resource: path, ID: ""}}

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var ae apiError
		_ = json.Unmarshal(raw, &ae)
		if ae.Error == "" {
			ae.Error = fmt.Sprintf("request rejected with status %d", resp.StatusCode)
		}
		return &resilience.Permanent{Err: &domain.ErrValidation{Field: ae.Field, Message: ae.Error}}

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Warn("fieldos: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)),
		)
		return fmt.Errorf("fieldos returned status %d: %s", resp.StatusCode, string(raw))
	}

	c.logger.Debug("fieldos: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// handleUnauthorized applies the global expiry policy: wipe every storage
// tier, then force navigation to login. No endpoint can opt out.
func (c *Client) handleUnauthorized(method, path string, raw []byte) error {
	var ae apiError
	_ = json.Unmarshal(raw, &ae)

	c.logger.Warn("fieldos: unauthorized response, clearing credentials",
		zap.String("method", method),
		zap.String("path", path),
	)
	c.metrics.IncrUnauthorized()
	c.creds.ClearAll()
	c.nav.RedirectToLogin(ae.Error)

	return &domain.ErrUnauthorized{Message: ae.Error}
}
