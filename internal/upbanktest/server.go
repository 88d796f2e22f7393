// Package upbanktest serves a scripted fake of the banking API for tests.
package upbanktest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is what the server saw for one call.
type Request struct {
	Path          string
	RawQuery      string
	Query         url.Values
	Authorization string
}

type failure struct {
	status int
	body   string
}

// Server is an httptest.Server that serves paginated collections page by
// page. Pages are addressed with a page[after] cursor holding the page index.
type Server struct {
	*httptest.Server
	token string

	mu       sync.Mutex
	requests []Request
	pages    map[string][][]json.RawMessage
	raw      map[string]string
	failures map[string]failure
	nextLink func(path string, page int) string
}

// NewServer starts a Server that accepts only "Bearer <token>" and stops it
// when the test ends.
func NewServer(t testing.TB, token string) *Server {
	t.Helper()
	s := &Server{
		token:    token,
		pages:    make(map[string][][]json.RawMessage),
		raw:      make(map[string]string),
		failures: make(map[string]failure),
	}

	r := chi.NewRouter()
	r.Use(s.record, s.authorize)
	r.Get("/accounts", s.serveCollection)
	r.Get("/transactions", s.serveCollection)
	r.Get("/accounts/{accountID}/transactions", s.serveCollection)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetPages scripts the pages of the collection at path, e.g. "/accounts".
// Every page but the last links to the next one.
func (s *Server) SetPages(path string, pages ...[]json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = pages
}

// SetRawBody makes path answer 200 with body regardless of cursor.
func (s *Server) SetRawBody(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[path] = body
}

// FailAt makes the given page of path answer with status and body.
func (s *Server) FailAt(path string, page, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[failureKey(path, page)] = failure{status: status, body: body}
}

// LinkNextWith overrides how next links are rendered. The default is an
// absolute URL on this server.
func (s *Server) LinkNextWith(fn func(path string, page int) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLink = fn
}

// Requests returns the calls received so far in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeJSONError(w, http.StatusUnauthorized, "Not Authorized", "The request was not authenticated because no valid credential was found in the Authorization header, or the Authorization header was not present.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) serveCollection(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	page := 0
	if cursor := r.URL.Query().Get("page[after]"); cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid Parameter", "page[after] is not a valid cursor")
			return
		}
		page = n
	}

	s.mu.Lock()
	raw, hasRaw := s.raw[path]
	fail, hasFail := s.failures[failureKey(path, page)]
	pages := s.pages[path]
	nextLink := s.nextLink
	s.mu.Unlock()

	switch {
	case hasFail:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fail.status)
		_, _ = w.Write([]byte(fail.body))
		return
	case hasRaw:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}

	data := []json.RawMessage{}
	if page < len(pages) && pages[page] != nil {
		data = pages[page]
	}

	var prev, next *string
	if page > 0 {
		p := s.URL + path + "?page[before]=" + strconv.Itoa(page)
		prev = &p
	}
	if page+1 < len(pages) {
		var n string
		if nextLink != nil {
			n = nextLink(path, page+1)
		} else {
			n = s.URL + path + "?page[after]=" + strconv.Itoa(page+1)
		}
		next = &n
	}

	resp := map[string]interface{}{
		"data": data,
		"links": map[string]*string{
			"prev": prev,
			"next": next,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeJSONError(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]string{{
			"status": strconv.Itoa(status),
			"title":  title,
			"detail": detail,
		}},
	})
}

func failureKey(path string, page int) string {
	return fmt.Sprintf("%s#%d", path, page)
}
