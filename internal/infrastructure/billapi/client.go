// Package billapi reads bills and legislators from the data-source HTTP API.
package billapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

// DefaultTimeout bounds a single request when no client is supplied.
const DefaultTimeout = 15 * time.Second

// StatusError is returned for non-200 responses.
type StatusError struct {
	Code     int
	Status   string
	Endpoint string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: unexpected status %s: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: unexpected status %s", e.Endpoint, e.Status)
}

// Unwrap maps client-side statuses onto domain errors.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	default:
		return nil
	}
}

// Client talks to the bill data source.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ ports.BillSource = (*Client)(nil)

// NewClient creates a reusable HTTP client. A nil httpClient gets DefaultTimeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     httpClient,
	}
}

// Legislators fetches the roster.
func (c *Client) Legislators(ctx context.Context) ([]domain.Legislator, error) {
	var roster domain.LegislatorRoster
	if err := c.get(ctx, "/api/legislators.json", nil, &roster); err != nil {
		return nil, fmt.Errorf("fetch legislators: %w", err)
	}
	return roster.JSONList, nil
}

// Bills fetches the bill pool for a month range, optionally narrowed to a category.
func (c *Client) Bills(ctx context.Context, q ports.RangeQuery) ([]domain.Bill, error) {
	path := "/api/bills/all-range"
	params := rangeParams(q)
	if q.Category != "" {
		path = "/api/bills-range"
		params.Set("category", q.Category)
	}

	var bills []domain.Bill
	if err := c.get(ctx, path, params, &bills); err != nil {
		return nil, fmt.Errorf("fetch bills: %w", err)
	}
	return domain.NormalizeBills(bills), nil
}

// AvailableMonths lists the months the source has data for, newest first.
func (c *Client) AvailableMonths(ctx context.Context) ([]domain.MonthEntry, error) {
	var months []domain.MonthEntry
	if err := c.get(ctx, "/api/available-months", nil, &months); err != nil {
		return nil, fmt.Errorf("fetch available months: %w", err)
	}
	return months, nil
}

// Categories fetches the category code to label map.
func (c *Client) Categories(ctx context.Context) (map[string]string, error) {
	var categories map[string]string
	if err := c.get(ctx, "/api/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// CategorySummary fetches per-category bill counts for a range.
func (c *Client) CategorySummary(ctx context.Context, q ports.RangeQuery) (map[string]int, error) {
	var summary map[string]int
	if err := c.get(ctx, "/api/bills/summary-range", rangeParams(q), &summary); err != nil {
		return nil, fmt.Errorf("fetch category summary: %w", err)
	}
	return summary, nil
}

// PartyStats fetches party participation statistics for a range.
func (c *Client) PartyStats(ctx context.Context, q ports.RangeQuery) (domain.PartyStats, error) {
	var stats domain.PartyStats
	if err := c.get(ctx, "/api/party-stats", rangeParams(q), &stats); err != nil {
		return domain.PartyStats{}, fmt.Errorf("fetch party stats: %w", err)
	}
	return stats, nil
}

func rangeParams(q ports.RangeQuery) url.Values {
	params := url.Values{}
	if q.Start != "" && q.End != "" {
		params.Set("start", q.Start)
		params.Set("end", q.End)
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	target := c.endpoint + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{
			Code:     resp.StatusCode,
			Status:   resp.Status,
			Endpoint: path,
			Message:  errorMessage(resp.Body),
		}
		if closeErr := resp.Body.Close(); closeErr != nil {
			return errors.Join(statusErr, fmt.Errorf("close body: %w", closeErr))
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}

// errorMessage extracts the "error" field of a JSON error body, if any.
func errorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || json.Unmarshal(data, &payload) != nil {
		return ""
	}
	return payload.Error
}
