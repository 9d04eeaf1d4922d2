// Package commercetools is a minimal read-only client for the commerce
// platform API: client-credentials authentication plus the paged queries the
// dashboard needs (cart discounts and orders).
package commercetools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"discount-dashboard/internal/models"
)

// Upstream pagination ceilings.
const (
	MaxDiscountLimit = 100
	MaxOrderLimit    = 500
)

// Config holds the credentials and endpoints of one platform project.
type Config struct {
	ProjectKey   string
	AuthURL      string
	APIURL       string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// Timeout bounds each upstream call; a timeout surfaces as an error the
	// caller can retry by refreshing, never as a hang.
	Timeout time.Duration
}

// Client issues authenticated queries against the platform API. Construct it
// once at startup and inject it; the token source inside the HTTP client is
// safe for concurrent use.
type Client struct {
	baseURL    string
	projectKey string
	httpClient *http.Client
}

// New builds a Client with an OAuth2 client-credentials token source that
// refreshes itself as tokens expire.
func New(cfg Config) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimRight(cfg.AuthURL, "/") + "/oauth/token",
		Scopes:       cfg.Scopes,
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	base := &http.Client{Timeout: timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	httpClient := cc.Client(ctx)
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		projectKey: cfg.ProjectKey,
		httpClient: httpClient,
	}
}

// Query carries the platform query predicates of one paged request.
type Query struct {
	Limit  int
	Where  []string
	Sort   []string
	Expand []string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	for _, w := range q.Where {
		v.Add("where", w)
	}
	for _, s := range q.Sort {
		v.Add("sort", s)
	}
	for _, e := range q.Expand {
		v.Add("expand", e)
	}
	return v
}

// QueryCartDiscounts fetches a page of cart discounts.
func (c *Client) QueryCartDiscounts(ctx context.Context, q Query) (*models.CartDiscountPage, error) {
	if q.Limit <= 0 || q.Limit > MaxDiscountLimit {
		q.Limit = MaxDiscountLimit
	}
	var page models.CartDiscountPage
	if err := c.get(ctx, "cart-discounts", q, &page); err != nil {
		return nil, fmt.Errorf("query cart discounts: %w", err)
	}
	return &page, nil
}

// QueryOrders fetches a page of orders.
func (c *Client) QueryOrders(ctx context.Context, q Query) (*models.OrderPage, error) {
	if q.Limit <= 0 || q.Limit > MaxOrderLimit {
		q.Limit = MaxOrderLimit
	}
	var page models.OrderPage
	if err := c.get(ctx, "orders", q, &page); err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, resource string, q Query, out any) error {
	u := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.projectKey, resource, q.values().Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

// TimestampPredicate formats a time for use in a platform where clause.
func TimestampPredicate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
