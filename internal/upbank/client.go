// Package upbank reads accounts and transactions from the Up banking API.
package upbank

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/upreport/upreport/internal/model"
)

// DefaultBaseURL is the root of the production API.
const DefaultBaseURL = "https://api.up.com.au/api/v1"

// Client builds request URLs for each collection and walks them with a Fetcher.
// A Client issues requests sequentially and holds no mutable state, so one
// instance can serve a whole run.
type Client struct {
	fetcher  *Fetcher
	baseURL  *url.URL
	pageSize int
}

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    *time.Duration
	logger     *logrus.Logger
	pageSize   int
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient sets the client used for transport and timeouts.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout sets the per-request timeout, whichever http.Client is in use.
// Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = &d }
}

// WithLogger sets the logger for page-level debug output.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPageSize asks the server for n entities per page. Zero keeps the
// server default.
func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// New creates a Client that authenticates with the given personal access token.
func New(token string, opts ...Option) (*Client, error) {
	o := options{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout != nil {
		hc := *o.httpClient
		hc.Timeout = *o.timeout
		o.httpClient = &hc
	}

	base, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", o.baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", o.baseURL)
	}
	if o.pageSize < 0 {
		return nil, fmt.Errorf("page size must not be negative, got %d", o.pageSize)
	}

	f, err := NewFetcher(token, o.httpClient, o.logger)
	if err != nil {
		return nil, err
	}
	return &Client{fetcher: f, baseURL: base, pageSize: o.pageSize}, nil
}

// ListAccounts returns every account across all pages.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return Paginate[model.Account](ctx, c.fetcher, c.collectionURL(nil, "accounts"))
}

// ListTransactionsSince returns every transaction the server reports for
// filter[since]=cutoff. Which transactions qualify is decided by the server.
func (c *Client) ListTransactionsSince(ctx context.Context, cutoff time.Time) ([]model.Transaction, error) {
	return Paginate[model.Transaction](ctx, c.fetcher, c.collectionURL(sinceFilter(cutoff), "transactions"))
}

// ListAccountTransactionsSince is ListTransactionsSince restricted to one account.
func (c *Client) ListAccountTransactionsSince(ctx context.Context, accountID string, cutoff time.Time) ([]model.Transaction, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	return Paginate[model.Transaction](ctx, c.fetcher, c.collectionURL(sinceFilter(cutoff), "accounts", url.PathEscape(accountID), "transactions"))
}

func sinceFilter(cutoff time.Time) url.Values {
	return url.Values{"filter[since]": {FormatCutoff(cutoff)}}
}

// FormatCutoff renders a cutoff the way it is sent in filter[since].
func FormatCutoff(cutoff time.Time) string {
	return cutoff.Format(time.RFC3339)
}

func (c *Client) collectionURL(query url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	if c.pageSize > 0 {
		if query == nil {
			query = url.Values{}
		}
		query.Set("page[size]", strconv.Itoa(c.pageSize))
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
