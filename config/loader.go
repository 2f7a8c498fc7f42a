package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultFetchTimeout bounds a remote configuration fetch.
const DefaultFetchTimeout = 10 * time.Second

// maxDocumentSize is the largest remote document accepted.
const maxDocumentSize = 1 << 20

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// HTTPClient fetches remote locations.
	// Defaults to a client with DefaultFetchTimeout.
	HTTPClient *http.Client

	// Resources, when set, is where local paths are resolved instead of the
	// filesystem. A leading "/" is ignored, so "/test-config.yml" names
	// "test-config.yml" inside the FS.
	Resources fs.FS

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Loader fetches and parses configuration locations.
type Loader struct {
	client    *http.Client
	resources fs.FS
	logger    *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(cfg LoaderConfig) *Loader {
	l := &Loader{
		client:    cfg.HTTPClient,
		resources: cfg.Resources,
		logger:    cfg.Logger,
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// Load fetches loc and parses it. A local file that does not exist yields
// (nil, nil). Remote failures of any kind, including parse failures, are
// reported as ErrSourceUnavailable; local parse failures as
// ErrMalformedDocument.
func (l *Loader) Load(ctx context.Context, loc Location) (FlatMap, error) {
	if loc.Kind == KindRemote {
		return l.loadRemote(ctx, loc)
	}
	return l.loadLocal(loc)
}

func (l *Loader) loadRemote(ctx context.Context, loc Location) (FlatMap, error) {
	data, err := l.fetch(ctx, loc.Raw)
	if err != nil {
		return nil, &ResolveError{Op: "load", Location: loc.Raw, Kind: ErrSourceUnavailable, Err: err}
	}

	values, err := loc.Parser.Parse(data)
	if err != nil {
		return nil, &ResolveError{Op: "parse", Location: loc.Raw, Kind: ErrSourceUnavailable, Err: err}
	}

	l.logger.Debug("loaded remote configuration",
		zap.String("location", loc.Raw),
		zap.Int("keys", len(values)),
	)
	return values, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, */*")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}

func (l *Loader) loadLocal(loc Location) (FlatMap, error) {
	data, err := l.read(loc.Raw)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("configuration file not present", zap.String("location", loc.Raw))
		return nil, nil
	}
	if err != nil {
		return nil, &ResolveError{Op: "load", Location: loc.Raw, Kind: ErrSourceUnavailable, Err: err}
	}

	values, err := loc.Parser.Parse(data)
	if err != nil {
		return nil, &ResolveError{Op: "parse", Location: loc.Raw, Kind: ErrMalformedDocument, Err: err}
	}

	l.logger.Debug("loaded local configuration",
		zap.String("location", loc.Raw),
		zap.String("format", string(loc.Format())),
		zap.Int("keys", len(values)),
	)
	return values, nil
}

func (l *Loader) read(location string) ([]byte, error) {
	if l.resources != nil {
		name := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(location)), "/")
		return fs.ReadFile(l.resources, name)
	}
	return os.ReadFile(expandHome(location))
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
