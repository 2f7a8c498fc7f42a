package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
)

const testConfigYAML = `dexi:
  baseUrl: http://localhost:3000/api/
  apiKey: k
  account: a
`

func environ(entries ...string) func() []string {
	return func() []string { return entries }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func serveConfig(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolver_LocalFileOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "configuration.yml", testConfigYAML)

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{Environ: environ()})

	if err := resolver.Resolve(context.Background(), "", path); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := store.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3 (keys: %v)", got, store.Keys())
	}

	want := map[string]string{
		"dexi.baseUrl": "http://localhost:3000/api/",
		"dexi.apiKey":  "k",
		"dexi.account": "a",
	}
	for key, value := range want {
		if got := store.Get(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
		if got := store.Source(key); got != SourceFile {
			t.Errorf("source of %s = %q, want %q", key, got, SourceFile)
		}
	}
}

func TestResolver_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "configuration.yml", testConfigYAML)

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{
		Environ: environ("DEXI_APP_dexi_account=other-account", "HOME=/tmp"),
	})

	if err := resolver.Resolve(context.Background(), "", path); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := store.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if got := store.Account(); got != "other-account" {
		t.Errorf("Account() = %q, want %q", got, "other-account")
	}
	if got := store.Source(KeyAccount); got != SourceEnv {
		t.Errorf("source = %q, want %q", got, SourceEnv)
	}
	if got := store.APIKey(); got != "k" {
		t.Errorf("APIKey() = %q, want %q", got, "k")
	}
	if got := store.BaseURL(); got != "http://localhost:3000/api/" {
		t.Errorf("BaseURL() = %q, want %q", got, "http://localhost:3000/api/")
	}
}

func TestResolver_PropertiesOverrideEnv(t *testing.T) {
	path := writeFile(t, t.TempDir(), "configuration.yml", testConfigYAML)

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{
		Environ:    environ("DEXI_APP_dexi_apiKey=from-env"),
		Properties: map[string]string{"DEXI_APP_dexi_apiKey": "from-property"},
	})

	if err := resolver.Resolve(context.Background(), "", path); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got, src := store.GetWithSource(KeyAPIKey); got != "from-property" || src != SourceProperty {
		t.Errorf("apiKey = %q (%s), want %q (%s)", got, src, "from-property", SourceProperty)
	}
}

func TestResolver_RemotePointer(t *testing.T) {
	srv := serveConfig(t, http.StatusOK, `dexi:
  baseUrl: http://remote/api/
  account: remote-account
  apiKey: remote-key
`)
	local := writeFile(t, t.TempDir(), "configuration.yml", "dexi:\n  extra: local-only\n")

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{Environ: environ()})

	if err := resolver.Resolve(context.Background(), srv.URL+"/apps/app.yml", local); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := store.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3 (default path must not be read): %v", got, store.Keys())
	}
	if _, ok := store.Lookup("dexi.extra"); ok {
		t.Error("default local path was consulted")
	}
	if got := store.Account(); got != "remote-account" {
		t.Errorf("Account() = %q, want %q", got, "remote-account")
	}
	if got := store.Source(KeyBaseURL); got != SourceRemote {
		t.Errorf("source = %q, want %q", got, SourceRemote)
	}
}

func TestResolver_RemoteMatchesLocal(t *testing.T) {
	srv := serveConfig(t, http.StatusOK, testConfigYAML)
	path := writeFile(t, t.TempDir(), "configuration.yml", testConfigYAML)

	remote := NewStore()
	if err := NewResolver(remote, ResolverConfig{Environ: environ()}).
		Resolve(context.Background(), srv.URL+"/c.yml", ""); err != nil {
		t.Fatalf("remote Resolve() error = %v", err)
	}

	local := NewStore()
	if err := NewResolver(local, ResolverConfig{Environ: environ()}).
		Resolve(context.Background(), "", path); err != nil {
		t.Fatalf("local Resolve() error = %v", err)
	}

	r, l := remote.All(), local.All()
	if len(r) != len(l) {
		t.Fatalf("remote has %d keys, local has %d", len(r), len(l))
	}
	for k, v := range l {
		if r[k] != v {
			t.Errorf("%s: remote %q, local %q", k, r[k], v)
		}
	}
}

func TestResolver_RemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL + "/c.yml"
	srv.Close()

	tests := []struct {
		name    string
		pointer string
	}{
		{name: "connection refused", pointer: unreachable},
		{name: "server error", pointer: serveConfig(t, http.StatusInternalServerError, "boom").URL + "/c.yml"},
		{name: "not found", pointer: serveConfig(t, http.StatusNotFound, "").URL + "/c.yml"},
		{name: "unparseable", pointer: serveConfig(t, http.StatusOK, "- just\n- a list\n").URL + "/c.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			resolver := NewResolver(store, ResolverConfig{
				Environ: environ("DEXI_APP_dexi_account=env-account"),
			})

			if err := resolver.Resolve(context.Background(), tt.pointer, ""); err != nil {
				t.Fatalf("Resolve() error = %v, want nil", err)
			}

			if got := store.Len(); got != 1 {
				t.Errorf("Len() = %d, want 1", got)
			}
			if got := store.Account(); got != "env-account" {
				t.Errorf("Account() = %q, want %q", got, "env-account")
			}
			if got := len(resolver.Warnings()); got != 1 {
				t.Errorf("got %d warnings, want 1", got)
			}
		})
	}
}

func TestResolver_RemoteTooLarge(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("dexi:\n  baseUrl: http://x/\nfiller:\n")
	for i := 0; doc.Len() <= maxDocumentSize; i++ {
		fmt.Fprintf(&doc, "  k%07d: v\n", i)
	}
	doc.WriteString("tail:\n  account: tail\n")

	pointer := serveConfig(t, http.StatusOK, doc.String()).URL + "/c.yml"

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{Environ: environ()})

	if err := resolver.Resolve(context.Background(), pointer, ""); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if got := store.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0: a cut document must not load", got)
	}

	warnings := resolver.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "exceeds") {
		t.Errorf("Warnings() = %v, want one size warning", warnings)
	}

	_, err := NewLoader(LoaderConfig{}).Load(context.Background(), Location{
		Kind: KindRemote, Raw: pointer, Parser: YAMLParser{},
	})
	if !IsSourceUnavailable(err) {
		t.Errorf("Load() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestResolver_ResolveTwiceKeepsFirstValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "configuration.yml", testConfigYAML)

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{
		Environ: environ("DEXI_APP_dexi_baseUrl=http://env/"),
	})
	ctx := context.Background()

	if err := resolver.Resolve(ctx, "", path); err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	first := store.All()

	if err := resolver.Resolve(ctx, "", path); err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	second := store.All()

	if len(first) != len(second) {
		t.Fatalf("key count changed: %d -> %d", len(first), len(second))
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("%s changed: %q -> %q", k, v, second[k])
		}
	}

	// A changed file does not replace values already loaded.
	writeFile(t, dir, "configuration.yml", "dexi:\n  account: changed\n")
	if err := resolver.Resolve(ctx, "", path); err != nil {
		t.Fatalf("third Resolve() error = %v", err)
	}
	if got := store.Account(); got != "a" {
		t.Errorf("Account() = %q, want %q", got, "a")
	}
	if got := store.BaseURL(); got != "http://env/" {
		t.Errorf("BaseURL() = %q, want env override", got)
	}

	store.Reset()
	if err := resolver.Resolve(ctx, "", path); err != nil {
		t.Fatalf("Resolve() after Reset error = %v", err)
	}
	if got := store.Account(); got != "changed" {
		t.Errorf("Account() after Reset = %q, want %q", got, "changed")
	}
}

func TestResolver_MissingLocalFile(t *testing.T) {
	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{Environ: environ()})

	missing := filepath.Join(t.TempDir(), "nope.json")
	if err := resolver.Resolve(context.Background(), missing, ""); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
	if got := store.BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
}

func TestResolver_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "configuration.txt", testConfigYAML)

	t.Run("explicit pointer is fatal", func(t *testing.T) {
		store := NewStore()
		resolver := NewResolver(store, ResolverConfig{
			Environ: environ("DEXI_APP_dexi_account=env"),
		})

		err := resolver.Resolve(context.Background(), path, "")
		if !IsUnsupportedExtension(err) {
			t.Fatalf("Resolve() error = %v, want ErrUnsupportedExtension", err)
		}
		var resolveErr *ResolveError
		if !errors.As(err, &resolveErr) || resolveErr.Location != path {
			t.Errorf("error = %#v, want *ResolveError for %s", err, path)
		}
		if store.Len() != 0 {
			t.Errorf("store modified on failure: %v", store.Keys())
		}
	})

	t.Run("default path is skipped", func(t *testing.T) {
		store := NewStore()
		resolver := NewResolver(store, ResolverConfig{
			Environ: environ("DEXI_APP_dexi_account=env"),
		})

		if err := resolver.Resolve(context.Background(), "", path); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got := store.Account(); got != "env" {
			t.Errorf("Account() = %q, want %q", got, "env")
		}
		if len(resolver.Warnings()) != 1 {
			t.Errorf("Warnings() = %v, want one warning", resolver.Warnings())
		}
	})
}

func TestResolver_MalformedLocalFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "configuration.yml", "dexi: not-a-map\n")

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{Environ: environ()})

	err := resolver.Resolve(context.Background(), path, "")
	if !IsMalformedDocument(err) {
		t.Fatalf("Resolve() error = %v, want ErrMalformedDocument", err)
	}
	if IsSourceUnavailable(err) {
		t.Errorf("local parse failure reported as unavailable: %v", err)
	}
}

func TestResolver_Resources(t *testing.T) {
	resources := fstest.MapFS{
		"test-config.json": {Data: []byte(`{"dexi": {"baseUrl": "http://json/", "account": "j", "apiKey": "jk"}, "s3": {"bucket": "b"}}`)},
	}

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{Resources: resources, Environ: environ()})

	if err := resolver.Resolve(context.Background(), "/test-config.json", ""); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := store.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	if got := store.Get("s3.bucket"); got != "b" {
		t.Errorf("s3.bucket = %q, want %q", got, "b")
	}
}

func TestResolver_ResolveEnvironment(t *testing.T) {
	srv := serveConfig(t, http.StatusOK, testConfigYAML)
	local := writeFile(t, t.TempDir(), "configuration.yml", "dexi:\n  account: local\n")

	t.Run("pointer set", func(t *testing.T) {
		store := NewStore()
		resolver := NewResolver(store, ResolverConfig{
			DefaultLocalPath: local,
			Environ:          environ(EnvCredentials + "=" + srv.URL + "/c.yml"),
		})
		if err := resolver.ResolveEnvironment(context.Background()); err != nil {
			t.Fatalf("ResolveEnvironment() error = %v", err)
		}
		if got := store.Account(); got != "a" {
			t.Errorf("Account() = %q, want %q", got, "a")
		}
		if _, ok := store.Lookup("DEXI_APP.CREDENTIALS"); ok {
			t.Error("credentials pointer leaked into the store")
		}
	})

	t.Run("pointer unset", func(t *testing.T) {
		store := NewStore()
		resolver := NewResolver(store, ResolverConfig{
			DefaultLocalPath: local,
			Environ:          environ(),
		})
		if err := resolver.ResolveEnvironment(context.Background()); err != nil {
			t.Fatalf("ResolveEnvironment() error = %v", err)
		}
		if got := store.Account(); got != "local" {
			t.Errorf("Account() = %q, want %q", got, "local")
		}
	})

	t.Run("pointer from property", func(t *testing.T) {
		store := NewStore()
		resolver := NewResolver(store, ResolverConfig{
			DefaultLocalPath: local,
			Environ:          environ(),
			Properties:       map[string]string{EnvCredentials: srv.URL + "/c.yml"},
		})
		if err := resolver.ResolveEnvironment(context.Background()); err != nil {
			t.Fatalf("ResolveEnvironment() error = %v", err)
		}
		if got := store.Account(); got != "a" {
			t.Errorf("Account() = %q, want %q", got, "a")
		}
	})
}

func TestResolver_CanceledContext(t *testing.T) {
	srv := serveConfig(t, http.StatusOK, testConfigYAML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore()
	err := NewResolver(store, ResolverConfig{Environ: environ()}).Resolve(ctx, srv.URL+"/c.yml", "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestResolver_ConcurrentResolve(t *testing.T) {
	path := writeFile(t, t.TempDir(), "configuration.yml", testConfigYAML)

	store := NewStore()
	resolver := NewResolver(store, ResolverConfig{Environ: environ()})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := resolver.Resolve(context.Background(), "", path); err != nil {
				t.Errorf("Resolve() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestDefaultLocalPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	want := filepath.Join(home, ".dexi", "configuration.yml")
	if got := DefaultLocalPath(); got != want {
		t.Errorf("DefaultLocalPath() = %q, want %q", got, want)
	}
}
