package upbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/upreport/upreport/internal/logging"
	"github.com/upreport/upreport/internal/model"
)

// maxErrorBody bounds how much of a non-2xx body is read for diagnostics.
const maxErrorBody = 64 << 10

// Fetcher performs authenticated GETs. Its http.Client carries the bearer
// token in its transport, so every request of a walk is authorized the same way.
type Fetcher struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewFetcher returns a Fetcher that authorizes every request with token.
// base supplies timeouts and the underlying transport; it is not modified.
// The token is attached by the transport rather than per request, so
// redirects to another host are refused instead of carrying it along.
func NewFetcher(token string, base *http.Client, logger *logrus.Logger) (*Fetcher, error) {
	if token == "" {
		return nil, errors.New("upbank: empty access token")
	}
	if base == nil {
		base = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	httpClient := *base
	httpClient.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   base.Transport,
	}
	httpClient.CheckRedirect = sameHostOnly(base.CheckRedirect)
	return &Fetcher{httpClient: &httpClient, logger: logger}, nil
}

func sameHostOnly(next func(*http.Request, []*http.Request) error) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if origin := via[0].URL; req.URL.Scheme != origin.Scheme || req.URL.Host != origin.Host {
			return fmt.Errorf("refusing redirect from %s to %s://%s", origin.Host, req.URL.Scheme, req.URL.Host)
		}
		if next != nil {
			return next(req, via)
		}
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		return nil
	}
}

// Paginate walks a cursor-paginated collection starting at startURL and
// returns the entities of every page in page order. It stops when a page
// has no next link; there is no page cap, so a server that returns a cycle
// of next links keeps the walk running until ctx is done.
//
// The page shape is fixed by T at every step. A page that does not decode
// into model.Page[T] fails the whole walk with a *DecodeError.
func Paginate[T model.Entity](ctx context.Context, f *Fetcher, startURL string) ([]T, error) {
	logData := logging.NewLogData(f.logger)
	logData.AddData("start_url", startURL)
	endTimer := logData.AddTiming("duration_ms")

	var all []T
	pageURL := startURL
	pages := 0
	for {
		page, err := fetchPage[T](ctx, f, pageURL)
		if err != nil {
			endTimer()
			logData.AddData("pages", pages)
			logData.Log().WithError(err).Debug("Upbank.Paginate.Error")
			return nil, err
		}
		pages++
		all = append(all, page.Data...)
		f.logger.WithFields(logrus.Fields{
			"url":      pageURL,
			"page":     pages,
			"entities": len(page.Data),
		}).Debug("Upbank.Paginate.Page")

		next, ok := page.NextURL()
		if !ok {
			break
		}
		nextURL, err := resolve(pageURL, next)
		if err != nil {
			endTimer()
			return nil, &DecodeError{URL: pageURL, Err: fmt.Errorf("links.next: %w", err)}
		}
		pageURL = nextURL
	}

	endTimer()
	logData.AddData("pages", pages)
	logData.AddData("entities", len(all))
	logData.Log().Debug("Upbank.Paginate.Complete")
	if all == nil {
		all = []T{}
	}
	return all, nil
}

// fetchPage issues one GET and decodes the body as a model.Page[T].
// Decoding is all-or-nothing: a page with any invalid entity is rejected.
func fetchPage[T model.Entity](ctx context.Context, f *Fetcher, pageURL string) (*model.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, &CancelledError{URL: pageURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &TransportError{URL: pageURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, transportFailure(ctx, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			APIErrors:  parseAPIErrors(body),
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportFailure(ctx, pageURL, fmt.Errorf("reading body: %w", err))
	}

	var page model.Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &DecodeError{URL: pageURL, Err: err}
	}
	if err := page.Validate(); err != nil {
		return nil, &DecodeError{URL: pageURL, Err: err}
	}
	return &page, nil
}

// transportFailure classifies a failed exchange, separating cancellation
// by the caller from network failures.
func transportFailure(ctx context.Context, pageURL string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &CancelledError{URL: pageURL, Err: ctxErr}
	}
	return &TransportError{URL: pageURL, Err: err}
}

// resolve makes next absolute relative to the page that returned it.
func resolve(current, next string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
