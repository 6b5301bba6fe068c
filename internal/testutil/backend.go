package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is what the fake backend saw for one call.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	JSON   map[string]any      // decoded JSON body, if any
	Fields map[string][]string // multipart text fields, if any
	Files  map[string]string   // multipart file field -> filename
}

type reply struct {
	status int
	body   any
}

// Backend is an httptest.Server standing in for the REST backend. It
// replies with scripted responses and records every request it receives.
// Unscripted routes answer 404 {"message":"route not found"}.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]reply
	requests []RecordedRequest
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{routes: make(map[string]reply)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// UnreachableURL returns the URL of a server that has already shut down.
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

// Handle scripts the reply for method + path (query string excluded).
func (b *Backend) Handle(method, path string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = reply{status: status, body: body}
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns how many requests matched method + path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, rr := range b.Requests() {
		if rr.Method == method && rr.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request matching method + path.
func (b *Backend) Last(method, path string) (RecordedRequest, bool) {
	reqs := b.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return RecordedRequest{}, false
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	rec := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	}

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "application/json"):
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err == nil {
			rec.JSON = m
		}
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			rec.Fields = r.MultipartForm.Value
			rec.Files = make(map[string]string)
			for field, fhs := range r.MultipartForm.File {
				if len(fhs) > 0 {
					rec.Files[field] = fhs[0].Filename
				}
			}
		}
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	rp, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		rp = reply{status: http.StatusNotFound, body: map[string]string{"message": "route not found"}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rp.status)
	if rp.body != nil {
		_ = json.NewEncoder(w).Encode(rp.body)
	}
}
