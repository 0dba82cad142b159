package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	pkgerrors "github.com/deisishop/storefront/pkg/errors"
	"github.com/deisishop/storefront/pkg/logger"
	"github.com/deisishop/storefront/pkg/metrics"
)

const (
	ProductsEndpoint   = "/products/"
	CategoriesEndpoint = "/categories/"

	defaultFetchBackoff = 250 * time.Millisecond
)

// Client reads the catalog from the upstream shop API. The two fetch
// operations never fail from the caller's point of view: any transport error,
// non-2xx status, or malformed payload degrades to an empty result.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retries    uint64
	backoff    time.Duration
	logg       *logger.Logger
	metrics    *metrics.StorefrontMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetry sets how often a degraded fetch is retried before giving up.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts >= 0 {
			c.retries = uint64(attempts)
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithLogger attaches the structured logger.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics attaches the storefront metrics collector.
func WithMetrics(collector *metrics.StorefrontMetrics) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// NewClient builds the catalog client for the given shop base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("shop base URL is required")
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		backoff:    defaultFetchBackoff,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// FetchProducts retrieves and normalizes the full product catalog. The result
// is empty, never an error, when the upstream cannot serve it.
func (c *Client) FetchProducts(ctx context.Context) []Product {
	records, ok := c.fetchArray(ctx, ProductsEndpoint)
	if !ok {
		return []Product{}
	}

	products := make([]Product, 0, len(records))
	for _, record := range records {
		fields, _ := record.(map[string]any)
		products = append(products, normalizeProduct(fields))
	}
	return products
}

// FetchCategories retrieves the category list. Entries are coerced to strings
// and empties dropped; upstream failure degrades to an empty list.
func (c *Client) FetchCategories(ctx context.Context) []string {
	records, ok := c.fetchArray(ctx, CategoriesEndpoint)
	if !ok {
		return []string{}
	}

	categories := make([]string, 0, len(records))
	for _, record := range records {
		if category := coerceCategory(record); category != "" {
			categories = append(categories, category)
		}
	}
	return categories
}

// Ping reports whether the upstream shop answers on the products endpoint.
// Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(ProductsEndpoint), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build ping request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstreamUnavailable, err, "shop unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.New(pkgerrors.CodeUpstreamUnavailable, fmt.Sprintf("shop answered status %d", resp.StatusCode))
	}
	return nil
}

// fetchArray performs one resilient GET and returns the decoded JSON array.
// The boolean is false whenever the caller should degrade to an empty result.
func (c *Client) fetchArray(ctx context.Context, endpoint string) ([]any, bool) {
	if c.logg != nil {
		ctx = c.logg.WithEndpoint(ctx, endpoint)
	}

	start := time.Now()
	var payload any
	err := retry.Do(ctx, retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff)), func(ctx context.Context) error {
		return c.fetchOnce(ctx, endpoint, &payload)
	})
	c.metrics.ObserveFetchDuration(endpoint, time.Since(start))

	if err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "shop.fetch.degraded")
		}
		c.metrics.IncFetchFailure(endpoint)
		return nil, false
	}

	records, ok := payload.([]any)
	if !ok {
		if c.logg != nil {
			c.logg.Warn(ctx, "shop.fetch.not_an_array")
		}
		c.metrics.IncFetchFailure(endpoint)
		return nil, false
	}

	return records, true
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string, payload *any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(endpoint), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build fetch request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(pkgerrors.Wrap(pkgerrors.CodeUpstreamUnavailable, err, "execute fetch request"))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		return retry.RetryableError(pkgerrors.New(pkgerrors.CodeUpstreamUnavailable, fmt.Sprintf("status %d", resp.StatusCode)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.New(pkgerrors.CodeUpstreamRejected, fmt.Sprintf("status %d", resp.StatusCode))
	}

	*payload = nil
	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "decode fetch response")
	}
	return nil
}

func (c *Client) buildURL(endpoint string) string {
	return strings.TrimRight(c.baseURL, "/") + endpoint
}
