package upbank

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/upreport/upreport/internal/model"
	"github.com/upreport/upreport/internal/upbanktest"
)

func TestListTransactionsSince_Filter(t *testing.T) {
	srv := upbanktest.NewServer(t, testToken)
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	srv.SetPages("/transactions",
		upbanktest.Transactions(upbanktest.Transaction{ID: "t1", AccountID: "a1", Description: "Coffee", Amount: "-4.50", CreatedAt: created}),
		upbanktest.Transactions(upbanktest.Transaction{ID: "t2", AccountID: "a1", Description: "Rent", Amount: "-400.00", CreatedAt: created}),
	)

	cutoff := time.Date(2024, 2, 23, 10, 30, 0, 0, time.FixedZone("AEDT", 11*60*60))
	txns, err := newTestClient(t, srv).ListTransactionsSince(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "t1", txns[0].ID)
	assert.Equal(t, "t2", txns[1].ID)
	assert.Equal(t, model.StatusSettled, txns[0].Attributes.Status)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	first := reqs[0]
	assert.Equal(t, "/transactions", first.Path)
	assert.Equal(t, []string{"2024-02-23T10:30:00+11:00"}, first.Query["filter[since]"])
	assert.Equal(t, 1, strings.Count(first.RawQuery, "filter%5Bsince%5D="))
	assert.Contains(t, first.RawQuery, "filter%5Bsince%5D="+url.QueryEscape("2024-02-23T10:30:00+11:00"))
	assert.NotContains(t, first.RawQuery, "+11:00", "offset sign must be escaped")
}

func TestListAccountTransactionsSince(t *testing.T) {
	srv := upbanktest.NewServer(t, testToken)
	srv.SetPages("/accounts/a1/transactions",
		upbanktest.Transactions(upbanktest.Transaction{ID: "t1", AccountID: "a1", Description: "Coffee", Amount: "-4.50", CreatedAt: time.Now()}),
	)

	cutoff := time.Date(2024, 2, 23, 0, 0, 0, 0, time.UTC)
	txns, err := newTestClient(t, srv).ListAccountTransactionsSince(context.Background(), "a1", cutoff)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "a1", txns[0].AccountID())

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "2024-02-23T00:00:00Z", reqs[0].Query.Get("filter[since]"))

	_, err = newTestClient(t, srv).ListAccountTransactionsSince(context.Background(), "", cutoff)
	require.Error(t, err)
}

func TestPageSize(t *testing.T) {
	srv := upbanktest.NewServer(t, testToken)
	srv.SetPages("/accounts", accountPage("a1"))

	_, err := newTestClient(t, srv, WithPageSize(50)).ListAccounts(context.Background())
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "50", reqs[0].Query.Get("page[size]"))
}

func TestBaseURLWithPath(t *testing.T) {
	c, err := New(testToken, WithBaseURL("https://api.example.test/api/v1"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test/api/v1/accounts", c.collectionURL(nil, "accounts"))
	assert.Equal(t, "https://api.example.test/api/v1/accounts/a1/transactions", c.collectionURL(nil, "accounts", "a1", "transactions"))
}

func TestTimeout_AppliesToCustomHTTPClient(t *testing.T) {
	custom := &http.Client{Transport: http.DefaultTransport, Timeout: time.Minute}
	orders := map[string][]Option{
		"timeout last":  {WithHTTPClient(custom), WithTimeout(5 * time.Second)},
		"timeout first": {WithTimeout(5 * time.Second), WithHTTPClient(custom)},
	}
	for name, opts := range orders {
		t.Run(name, func(t *testing.T) {
			c, err := New(testToken, opts...)
			require.NoError(t, err)

			hc := c.fetcher.httpClient
			assert.Equal(t, 5*time.Second, hc.Timeout)
			tr, ok := hc.Transport.(*oauth2.Transport)
			require.True(t, ok)
			assert.Same(t, http.DefaultTransport, tr.Base)
			assert.Equal(t, time.Minute, custom.Timeout, "caller's client is left alone")
		})
	}
}

func TestTimeout_Default(t *testing.T) {
	c, err := New(testToken)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, c.fetcher.httpClient.Timeout)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
		opts  []Option
	}{
		{"empty token", "", nil},
		{"relative base URL", testToken, []Option{WithBaseURL("/api/v1")}},
		{"unparseable base URL", testToken, []Option{WithBaseURL("http://[::1")}},
		{"negative page size", testToken, []Option{WithPageSize(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.token, tt.opts...)
			require.Error(t, err)
		})
	}
}

func TestFormatCutoff(t *testing.T) {
	cutoff := time.Date(2024, 1, 2, 3, 4, 5, 999, time.UTC)
	assert.Equal(t, "2024-01-02T03:04:05Z", FormatCutoff(cutoff))
}
