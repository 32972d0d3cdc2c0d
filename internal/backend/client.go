// Package backend is the HTTP client for the relocation backend API.
// It covers the three calls the views make: creating a location search, reading the system status,
// and listing job recommendations for a user.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonathan/relocateme/internal/schemas"
	"github.com/jonathan/relocateme/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for backend requests.
const DefaultUserAgent = "RelocateMe/1.0"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Searcher creates location searches.
type Searcher interface {
	SearchLocations(ctx context.Context, req types.SearchRequest) (*types.LocationSearch, error)
}

// Fetcher reads the data shown on the destination screen.
type Fetcher interface {
	SystemStatus(ctx context.Context) (*types.SystemStatus, error)
	JobRecommendations(ctx context.Context, userID string) ([]types.JobRecommendation, error)
}

// API is the full backend surface used by the views.
type API interface {
	Searcher
	Fetcher
}

// Error is a rejected backend request: a transport failure, a non-2xx status,
// or a body that does not match the expected shape.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend %s %s: %s: %v", e.Method, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("backend %s %s: %s", e.Method, e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults for backend calls.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to <origin>/api.
type Client struct {
	apiBase    string
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
	tracer     trace.Tracer
}

var _ API = (*Client)(nil)

// NewClient creates a client for the given API base URL (origin plus "/api").
func NewClient(apiBase string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(apiBase)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: apiBase, Message: "invalid API base URL", Cause: err}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		apiBase:    strings.TrimRight(apiBase, "/"),
		httpClient: httpClient,
		userAgent:  userAgent,
		headers:    opts.Headers,
		tracer:     otel.Tracer("github.com/jonathan/relocateme/internal/backend"),
	}, nil
}

// SearchLocations posts a search to /search-locations and returns the backend's record of it.
func (c *Client) SearchLocations(ctx context.Context, req types.SearchRequest) (*types.LocationSearch, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	var out types.LocationSearch
	if err := c.do(ctx, http.MethodPost, "/search-locations", payload, schemas.LocationSearch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SystemStatus reads /system/status.
func (c *Client) SystemStatus(ctx context.Context) (*types.SystemStatus, error) {
	var out types.SystemStatus
	if err := c.do(ctx, http.MethodGet, "/system/status", nil, schemas.SystemStatus, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JobRecommendations reads /jobs/recommendations/{userID}.
func (c *Client) JobRecommendations(ctx context.Context, userID string) ([]types.JobRecommendation, error) {
	var out types.RecommendationsResponse
	path := "/jobs/recommendations/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, schemas.Recommendations, &out); err != nil {
		return nil, err
	}
	return out.Recommendations, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, schema string, out any) (err error) {
	endpoint := c.apiBase + path

	ctx, span := c.tracer.Start(ctx, "backend "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", endpoint),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Method: method, URL: endpoint, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Method: method, URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Method: method, URL: endpoint, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	if err := schemas.Validate(schema, data); err != nil {
		return &Error{Method: method, URL: endpoint, StatusCode: resp.StatusCode, Message: "unexpected response shape", Cause: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Method: method, URL: endpoint, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return nil
}
