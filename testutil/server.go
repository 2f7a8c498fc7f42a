package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/dexiio/app-sdk-go/auth"
)

// ConfigServer serves configuration documents keyed by URL path, for
// remote credentials pointers.
type ConfigServer struct {
	*httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

// NewConfigServer starts a server answering each path in docs with its
// content and every other path with 404. It is closed when the test ends.
func NewConfigServer(t *testing.T, docs map[string]string) *ConfigServer {
	t.Helper()

	s := &ConfigServer{hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()

		doc, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(s.Close)

	return s
}

// Hits returns how many requests path received.
func (s *ConfigServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// FakeFile is a file served by FakeAPI.
type FakeFile struct {
	MimeType string
	Content  []byte
}

// RecordedRequest is a request received by FakeAPI.
type RecordedRequest struct {
	Method     string
	Path       string
	Activation string
	RequestID  string
	UserAgent  string
}

// FakeAPI is an in-process dexi API. It checks the signing headers of every
// request against its account and API key and answers 401 on mismatch.
type FakeAPI struct {
	*httptest.Server

	Account string
	APIKey  string

	mu       sync.Mutex
	files    map[string]FakeFile
	configs  map[string]string
	requests []RecordedRequest
}

// NewFakeAPI starts a fake API. It is closed when the test ends.
func NewFakeAPI(t *testing.T, account, apiKey string) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		Account: account,
		APIKey:  apiKey,
		files:   make(map[string]FakeFile),
		configs: make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{id}", f.serveFile)
	mux.HandleFunc("GET /apps/support/activations/{id}/configuration", f.serveConfig)

	f.Server = httptest.NewServer(f.authenticate(mux))
	t.Cleanup(f.Close)

	return f
}

// AddFile makes a file downloadable.
func (f *FakeAPI) AddFile(id, mimeType string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[id] = FakeFile{MimeType: mimeType, Content: content}
}

// SetActivationConfig sets the JSON configuration of an activation.
func (f *FakeAPI) SetActivationConfig(activationID, json string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs[activationID] = json
}

// Requests returns the requests received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// Count returns how many requests hit path.
func (f *FakeAPI) Count(path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeAPI) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:     r.Method,
			Path:       r.URL.Path,
			Activation: r.Header.Get(auth.HeaderActivation),
			RequestID:  r.Header.Get("X-Request-Id"),
			UserAgent:  r.Header.Get("User-Agent"),
		})
		f.mu.Unlock()

		if r.Header.Get(auth.HeaderAccount) != f.Account ||
			r.Header.Get(auth.HeaderAccess) != auth.CalculateAccess(f.Account, f.APIKey) {
			writeJSONError(w, http.StatusUnauthorized, "invalid access")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) serveFile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	file, ok := f.files[r.PathValue("id")]
	f.mu.Unlock()

	if !ok {
		writeJSONError(w, http.StatusNotFound, "file not found")
		return
	}
	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	_, _ = w.Write(file.Content)
}

func (f *FakeAPI) serveConfig(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	cfg, ok := f.configs[r.PathValue("id")]
	f.mu.Unlock()

	if !ok {
		writeJSONError(w, http.StatusNotFound, "activation not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(cfg))
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"message":"` + message + `"}`))
}
