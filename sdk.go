package appsdk

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dexiio/app-sdk-go/client"
	"github.com/dexiio/app-sdk-go/config"
)

// Config configures Open.
type Config struct {
	// Resolver configures configuration resolution. Its Logger defaults to
	// Logger.
	Resolver config.ResolverConfig

	// Limiter throttles API requests made by the factory. Optional.
	Limiter *rate.Limiter

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Timeout bounds configuration resolution. Zero means no extra bound.
	Timeout time.Duration
}

// SDK holds resolved configuration and lazily builds the client factory
// from it.
type SDK struct {
	cfg      Config
	store    *config.Store
	resolver *config.Resolver
	logger   *zap.Logger

	mu      sync.Mutex
	factory *client.Factory
}

// Open resolves configuration from DEXI_APP_CREDENTIALS or the default local
// file, then the DEXI_APP_ overrides. Credentials are not validated until
// Factory is called.
func Open(ctx context.Context, cfg Config) (*SDK, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Resolver.Logger == nil {
		cfg.Resolver.Logger = cfg.Logger
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	store := config.NewStore()
	resolver := config.NewResolver(store, cfg.Resolver)
	if err := resolver.ResolveEnvironment(ctx); err != nil {
		return nil, err
	}

	return &SDK{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		logger:   cfg.Logger,
	}, nil
}

// Store returns the resolved configuration.
func (s *SDK) Store() *config.Store { return s.store }

// Warnings returns issues recovered from during resolution.
func (s *SDK) Warnings() []string { return s.resolver.Warnings() }

// Factory returns the client factory, validating credentials on first call.
// A failed call is not remembered.
func (s *SDK) Factory() (*client.Factory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.factory != nil {
		return s.factory, nil
	}

	f, err := client.NewFactoryFromStore(s.store, client.FactoryConfig{
		Limiter: s.cfg.Limiter,
		Logger:  s.logger,
	})
	if err != nil {
		return nil, err
	}
	s.factory = f
	return f, nil
}
