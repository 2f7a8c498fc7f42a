package testutil

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dexiio/app-sdk-go/config"
)

// NewStore returns a store holding values, keyed by flat "section.key"
// names. Nothing is read from the process environment or the filesystem.
func NewStore(t *testing.T, values map[string]string) *config.Store {
	t.Helper()

	props := make(map[string]string, len(values))
	for key, value := range values {
		section, name, ok := strings.Cut(key, ".")
		if !ok {
			t.Fatalf("store key %q has no section", key)
		}
		if !config.EncodableSection(section) {
			t.Fatalf("store key %q: section cannot contain '_'", key)
		}
		props[config.EncodeEnvName(section, name)] = value
	}

	store := config.NewStore()
	r := config.NewResolver(store, config.ResolverConfig{
		DefaultLocalPath: filepath.Join(t.TempDir(), "missing.yml"),
		Properties:       props,
		Environ:          func() []string { return nil },
	})
	if err := r.ResolveEnvironment(context.Background()); err != nil {
		t.Fatalf("resolve test store: %v", err)
	}
	return store
}

// CredentialsStore returns a store with the given dexi credentials.
func CredentialsStore(t *testing.T, baseURL, account, apiKey string) *config.Store {
	t.Helper()
	return NewStore(t, map[string]string{
		config.KeyBaseURL: baseURL,
		config.KeyAccount: account,
		config.KeyAPIKey:  apiKey,
	})
}
