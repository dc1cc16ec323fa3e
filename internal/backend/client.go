package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/projetgotham/gothamstats/internal/telemetry/metrics"
	"github.com/projetgotham/gothamstats/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const (
	// getCacheExpireSeconds keeps GET responses around just long enough to
	// absorb a dashboard and a profile load hitting the same endpoints
	// back to back.
	getCacheExpireSeconds = 30
	// maxErrorBodyChars caps how much of an error response body ends up in
	// error messages and logs.
	maxErrorBodyChars = 500
)

// ErrEndpointUnavailable means every candidate endpoint for a logical
// operation failed.
var ErrEndpointUnavailable = errors.New("no backend endpoint available")

// StatusError is a non success HTTP response from the backend.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend responded with %s", e.Status)
	}
	return fmt.Sprintf("backend responded with %s: %s", e.Status, e.Body)
}

// Client talks to the fitness backend. The backend API is unversioned and
// has been reshaped several times, so callers go through logical operations
// (operations.go) that try known endpoint variants in order.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewClient(baseURL string, httpClient *http.Client, metricsManager *metrics.Manager) *Client {
	megabyte := 1024 * 1024
	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		cache:          freecache.NewCache(10 * megabyte),
		metricsManager: metricsManager,
	}
}

// resolve tries each candidate in order and returns the body of the first
// success. Mutations stop at the first candidate that succeeds, so a
// fallback can never duplicate a write. When every candidate fails the
// returned error wraps ErrEndpointUnavailable together with each underlying
// failure.
func (c *Client) resolve(ctx context.Context, operation string, candidates []Candidate, params map[string]any) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backend.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.Int("candidates", len(candidates)),
	)

	var errs error
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		url, body, err := candidate.Build(c.baseURL, params)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s %s: %w", candidate.Method, candidate.Path, err))
			continue
		}

		respBody, err := c.do(ctx, candidate.Method, url, body)
		if err != nil {
			log.Debugf("backend %s: candidate %d [%s %s] failed: %s", operation, i, candidate.Method, candidate.Path, err)
			errs = multierr.Append(errs, fmt.Errorf("%s %s: %w", candidate.Method, candidate.Path, err))
			continue
		}

		if i > 0 {
			log.Warnf("backend %s: preferred endpoint down, served by fallback %s %s", operation, candidate.Method, candidate.Path)
			c.metricsManager.CounterEndpointFallbacks.Inc()
		}
		return respBody, nil
	}

	c.metricsManager.CounterEndpointsExhausted.Inc()
	return nil, multierr.Append(ErrEndpointUnavailable, errs)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	cacheKey := []byte(url)
	if method == http.MethodGet {
		if cached, err := c.cache.Get(cacheKey); err == nil {
			log.Tracef("backend cache hit: %s", url)
			return cached, nil
		}
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody := string(respBody)
		if len(errBody) > maxErrorBodyChars {
			errBody = errBody[:maxErrorBodyChars]
		}
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       errBody,
		}
	}

	if method == http.MethodGet {
		if err := c.cache.Set(cacheKey, respBody, getCacheExpireSeconds); err != nil {
			log.Errorf("backend cache set for %s: %s", url, err)
		}
	}

	// mutations invalidate everything cached, the next view load should
	// see the write
	if method != http.MethodGet {
		c.cache.Clear()
	}

	return respBody, nil
}

// DecodeRecords parses a response body into raw records. Some backend
// versions answer with a bare JSON array, others wrap it in an envelope
// object. A single object decodes as one record.
func DecodeRecords(body []byte) ([]map[string]any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal backend response: %w", err)
	}

	switch val := payload.(type) {
	case []any:
		return rawRecords(val), nil
	case map[string]any:
		for _, envelopeKey := range []string{"items", "data", "results"} {
			if list, ok := val[envelopeKey].([]any); ok {
				return rawRecords(list), nil
			}
		}
		return []map[string]any{val}, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected backend response shape %T", payload)
	}
}

func rawRecords(list []any) []map[string]any {
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}
