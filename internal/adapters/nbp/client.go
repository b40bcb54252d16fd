// Package nbp reads daily average rate tables from the National Bank of Poland web API.
package nbp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	"github.com/SscSPs/currency_rates_api/internal/core/ports/sources"
	"github.com/SscSPs/currency_rates_api/internal/dto"
	"github.com/SscSPs/currency_rates_api/internal/middleware"
	"github.com/SscSPs/currency_rates_api/internal/platform/metrics"
)

const (
	DefaultBaseURL = "https://api.nbp.pl/api"
	DefaultTimeout = 15 * time.Second

	maxBodyBytes   = 10 << 20
	maxLoggedBytes = 512
)

// DefaultTables are the average-rate tables: A for major currencies, B for the rest.
var DefaultTables = []string{"A", "B"}

// Client fetches rate tables over HTTP. It performs no retries.
type Client struct {
	baseURL    string
	tables     []string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

var _ sources.RateSource = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTables overrides the fetched table streams.
func WithTables(tables []string) Option {
	return func(c *Client) {
		if len(tables) > 0 {
			c.tables = append([]string(nil), tables...)
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMetrics counts fetches per table.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		tables:     append([]string(nil), DefaultTables...),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tables returns the configured table streams.
func (c *Client) Tables() []string {
	return append([]string(nil), c.tables...)
}

// FetchTables downloads the tables of one stream published within [start, end].
func (c *Client) FetchTables(ctx context.Context, table string, start, end time.Time) ([]dto.RateTableDTO, error) {
	tables, err := c.fetchTables(ctx, table, start, end)
	if err != nil {
		c.metrics.RecordSourceFetch(table, metrics.StatusFailure)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSourceFetch, err)
	}
	c.metrics.RecordSourceFetch(table, metrics.StatusSuccess)
	return tables, nil
}

func (c *Client) fetchTables(ctx context.Context, table string, start, end time.Time) ([]dto.RateTableDTO, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	endpoint := c.tablesURL(table, start, end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch table %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", table, err)
	}

	logger.Info("Downloaded rate tables",
		slog.String("table", table),
		slog.String("start", domain.FormatDate(start)),
		slog.String("end", domain.FormatDate(end)),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := truncate(string(body), maxLoggedBytes)
		logger.Error("Rate source returned an error",
			slog.String("table", table),
			slog.Int("status", resp.StatusCode),
			slog.String("body", snippet),
		)
		return nil, fmt.Errorf("table %s: unexpected status %d: %s", table, resp.StatusCode, snippet)
	}

	var tables []dto.RateTableDTO
	if err := json.Unmarshal(body, &tables); err != nil {
		return nil, fmt.Errorf("decode table %s: %w", table, err)
	}
	for i := range tables {
		if err := tables[i].Validate(); err != nil {
			return nil, fmt.Errorf("table %s: %w", table, err)
		}
		if tables[i].Table == "" {
			tables[i].Table = table
		}
	}
	return tables, nil
}

func (c *Client) tablesURL(table string, start, end time.Time) string {
	return fmt.Sprintf("%s/exchangerates/tables/%s/%s/%s/?format=json",
		c.baseURL,
		url.PathEscape(table),
		domain.FormatDate(start),
		domain.FormatDate(end),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
