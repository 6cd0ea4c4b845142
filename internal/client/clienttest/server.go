// Package clienttest provides a recording fake of the records backend for
// tests. Handlers are registered with Go 1.22 method patterns and every
// request that reaches the server is logged, so tests can assert both what
// was sent and that nothing was sent at all.
package clienttest

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/client"
)

// Request is one call observed by the Server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte

	// Set for multipart requests carrying a "file" field.
	Filename string
	File     []byte
}

// Server wraps httptest.Server with a request log.
type Server struct {
	*httptest.Server

	mux      *http.ServeMux
	mu       sync.Mutex
	requests []Request
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{mux: http.NewServeMux()}
	s.Server = httptest.NewServer(s.recordingMiddleware(s.mux))
	t.Cleanup(s.Close)
	return s
}

// Client returns an API client pointed at the server with logging discarded.
func (s *Server) Client(t testing.TB) *client.Client {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c, err := client.New(s.URL, client.WithLogger(logger))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return c
}

// Handle registers h for a ServeMux pattern such as "GET /api/files/{id}".
func (s *Server) Handle(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, h)
}

// JSON registers a handler that always answers with payload.
func (s *Server) JSON(pattern string, status int, payload any) {
	s.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, status, payload)
	})
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request, failing the test if there is none.
func (s *Server) Last(t testing.TB) Request {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatalf("no request reached the server")
	}
	return reqs[len(reqs)-1]
}

// Count returns how many requests matched method and path. An empty method
// matches any method.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if (method == "" || r.Method == method) && r.Path == path {
			n++
		}
	}
	return n
}

// Reset clears the request log.
func (s *Server) Reset() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
}

func (s *Server) recordingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		rec := Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		}
		if name, data, err := filePart(r.Header.Get("Content-Type"), body); err == nil {
			rec.Filename, rec.File = name, data
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func filePart(contentType string, body []byte) (string, []byte, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return "", nil, errors.New("not multipart")
	}
	part, err := nextFilePart(multipart.NewReader(bytes.NewReader(body), params["boundary"]))
	if err != nil {
		return "", nil, err
	}
	defer part.Close()
	data, err := io.ReadAll(part)
	if err != nil {
		return "", nil, err
	}
	return part.FileName(), data, nil
}

func nextFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return nil, err
		}
		if part.FormName() == "file" {
			return part, nil
		}
		part.Close()
	}
}

// RespondJSON writes payload as a JSON body.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// RespondDetail writes a FastAPI style error body.
func RespondDetail(w http.ResponseWriter, status int, detail string) {
	RespondJSON(w, status, map[string]string{"detail": detail})
}

// RespondAttachment writes data as a download named filename, encoded the
// way the backend does (RFC 5987). An empty filename omits the header.
func RespondAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Paginate applies the skip and limit query parameters to items the way the
// backend does. A missing limit defaults to 100.
func Paginate[T any](r *http.Request, items []T) []T {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	if skip < 0 || skip >= len(items) {
		return []T{}
	}
	end := min(skip+limit, len(items))
	return items[skip:end]
}
