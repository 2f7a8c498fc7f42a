package config

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Default local configuration location, relative to the user's home.
const (
	DefaultConfigDir  = ".dexi"
	DefaultConfigFile = "configuration.yml"
)

// DefaultLocalPath returns ~/.dexi/configuration.yml.
func DefaultLocalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DefaultConfigDir, DefaultConfigFile)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// ResolverConfig configures the layered config resolver.
type ResolverConfig struct {
	// DefaultLocalPath is read when no credentials pointer is set.
	// Defaults to DefaultLocalPath().
	DefaultLocalPath string

	// Registry maps local file extensions to parsers.
	// Defaults to DefaultRegistry().
	Registry *Registry

	// HTTPClient fetches remote configuration files.
	// Defaults to a client with DefaultFetchTimeout.
	HTTPClient *http.Client

	// Resources, when set, replaces the filesystem for local paths.
	Resources fs.FS

	// Properties are explicit overrides keyed by variable name
	// (e.g., "DEXI_APP_dexi_account"). They win over the environment.
	Properties map[string]string

	// Environ returns the process environment. Defaults to os.Environ.
	Environ func() []string

	// Logger receives resolution progress and warnings.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

func (c ResolverConfig) defaultLocalPath() string {
	if c.DefaultLocalPath != "" {
		return c.DefaultLocalPath
	}
	return DefaultLocalPath()
}

// Resolver loads configuration into a Store.
//
// Precedence, highest first: properties > environment > the configuration
// file (remote or local, whichever was selected) > accessor defaults.
type Resolver struct {
	config   ResolverConfig
	store    *Store
	registry *Registry
	loader   *Loader
	env      *EnvReader
	logger   *zap.Logger

	mu       sync.Mutex
	warnings []string
}

// NewResolver creates a resolver that writes into store.
func NewResolver(store *Store, cfg ResolverConfig) *Resolver {
	resolver := &Resolver{
		config:   cfg,
		store:    store,
		registry: cfg.Registry,
		logger:   cfg.Logger,
	}

	if resolver.registry == nil {
		resolver.registry = DefaultRegistry()
	}
	if resolver.logger == nil {
		resolver.logger = zap.NewNop()
	}

	resolver.loader = NewLoader(LoaderConfig{
		HTTPClient: cfg.HTTPClient,
		Resources:  cfg.Resources,
		Logger:     resolver.logger,
	})
	resolver.env = &EnvReader{Environ: cfg.Environ, Properties: cfg.Properties}

	return resolver
}

// Store returns the store the resolver writes into.
func (r *Resolver) Store() *Store {
	return r.store
}

// Warnings returns the non-fatal issues collected so far.
func (r *Resolver) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warnings...)
}

// warn records a warning and logs it.
func (r *Resolver) warn(msg string, err error) {
	r.warnings = append(r.warnings, fmt.Sprintf("%s: %v", msg, err))
	r.logger.Warn(msg, zap.Error(err))
}

// stage is one step of the merge pipeline.
type stage struct {
	name     string
	values   FlatMap
	source   Source
	strategy MergeStrategy
}

// ResolveEnvironment reads the credentials pointer from DEXI_APP_CREDENTIALS
// and resolves against the configured default local path.
func (r *Resolver) ResolveEnvironment(ctx context.Context) error {
	pointer, _ := r.env.Lookup(EnvCredentials)
	return r.Resolve(ctx, pointer, r.config.defaultLocalPath())
}

// Resolve loads one configuration file and the DEXI_APP_ overrides into the
// store.
//
// The file is credentialsPointer when non-empty, otherwise defaultLocalPath.
// File values are merged first-wins, so a key already in the store keeps its
// value; overrides are merged last and always win. A remote file that cannot
// be fetched or parsed contributes nothing and is reported through
// Warnings. A missing local file is skipped silently. An unsupported
// extension is fatal only when it came from credentialsPointer. Any other
// failure is returned as a *ResolveError and leaves the store unchanged.
func (r *Resolver) Resolve(ctx context.Context, credentialsPointer, defaultLocalPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	explicit := credentialsPointer != ""
	location := defaultLocalPath
	if explicit {
		location = credentialsPointer
	}

	fileValues, fileSource, err := r.loadFile(ctx, location, explicit)
	if err != nil {
		return err
	}

	envValues, propValues := r.env.Partition()

	pipeline := []stage{
		{name: "file", values: fileValues, source: fileSource, strategy: MergeFirstWins{}},
		{name: "env", values: envValues, source: SourceEnv, strategy: MergeOverwrite{}},
		{name: "properties", values: propValues, source: SourceProperty, strategy: MergeOverwrite{}},
	}

	for _, s := range pipeline {
		if len(s.values) == 0 {
			continue
		}
		written := s.strategy.Merge(r.store, s.values, s.source)
		r.logger.Debug("merged configuration",
			zap.String("stage", s.name),
			zap.String("strategy", s.strategy.Name()),
			zap.Int("keys", len(s.values)),
			zap.Int("written", written),
		)
	}

	r.logger.Info("configuration resolved",
		zap.String("location", location),
		zap.Int("keys", r.store.Len()),
		zap.Bool("account_set", r.store.Account() != ""),
		zap.Bool("api_key_set", r.store.APIKey() != ""),
	)

	return nil
}

func (r *Resolver) loadFile(ctx context.Context, location string, explicit bool) (FlatMap, Source, error) {
	if location == "" {
		r.logger.Debug("no configuration file location")
		return nil, "", nil
	}

	loc, err := r.registry.Classify(location)
	if err != nil {
		if !explicit && IsUnsupportedExtension(err) {
			r.warn("skipping default configuration file", err)
			return nil, "", nil
		}
		return nil, "", err
	}

	values, err := r.loader.Load(ctx, loc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", &ResolveError{Op: "load", Location: location, Kind: ErrSourceUnavailable, Err: ctxErr}
		}
		if loc.Kind == KindRemote && IsSourceUnavailable(err) {
			r.warn("remote configuration unavailable", err)
			return nil, "", nil
		}
		return nil, "", err
	}

	return values, loc.Kind.Source(), nil
}
