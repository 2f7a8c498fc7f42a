package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dexiio/app-sdk-go/auth"
	"github.com/dexiio/app-sdk-go/config"
	dexihttp "github.com/dexiio/app-sdk-go/http"
	"github.com/dexiio/app-sdk-go/service"
)

// Cache defaults.
const (
	DefaultClientCacheSize = 10
	DefaultClientTTL       = 5 * time.Minute
	DefaultConfigCacheSize = 50
	DefaultConfigTTL       = 30 * time.Second
)

// FactoryConfig configures a Factory. Zero values mean "use default".
type FactoryConfig struct {
	// BaseURL defaults to config.DefaultBaseURL.
	BaseURL string

	// Auth signs every request. Required.
	Auth *auth.Auth

	// HTTPClient is shared by all clients.
	HTTPClient *http.Client

	// Limiter, if set, throttles requests across all clients.
	Limiter *rate.Limiter

	Logger *zap.Logger

	ClientCacheSize int
	ClientTTL       time.Duration
	ConfigCacheSize int
	ConfigTTL       time.Duration
}

func (c FactoryConfig) withDefaults() FactoryConfig {
	if c.BaseURL == "" {
		c.BaseURL = config.DefaultBaseURL
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.ClientCacheSize <= 0 {
		c.ClientCacheSize = DefaultClientCacheSize
	}
	if c.ClientTTL <= 0 {
		c.ClientTTL = DefaultClientTTL
	}
	if c.ConfigCacheSize <= 0 {
		c.ConfigCacheSize = DefaultConfigCacheSize
	}
	if c.ConfigTTL <= 0 {
		c.ConfigTTL = DefaultConfigTTL
	}
	return c
}

// Factory creates activation-scoped clients and caches them together with
// recently fetched activation configurations.
type Factory struct {
	cfg     FactoryConfig
	logger  *zap.Logger
	mu      sync.Mutex
	clients *expirable.LRU[string, *Client]
	configs *expirable.LRU[string, []byte]
}

// NewFactory creates a factory.
func NewFactory(cfg FactoryConfig) (*Factory, error) {
	if cfg.Auth == nil {
		return nil, ErrMissingAuth
	}
	cfg = cfg.withDefaults()

	return &Factory{
		cfg:     cfg,
		logger:  cfg.Logger.Named("client"),
		clients: expirable.NewLRU[string, *Client](cfg.ClientCacheSize, nil, cfg.ClientTTL),
		configs: expirable.NewLRU[string, []byte](cfg.ConfigCacheSize, nil, cfg.ConfigTTL),
	}, nil
}

// NewFactoryFromStore creates a factory from resolved credentials. The
// base URL and auth in cfg are replaced by the store's.
func NewFactoryFromStore(store *config.Store, cfg FactoryConfig) (*Factory, error) {
	creds := store.Credentials()
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	a, err := auth.FromCredentials(creds)
	if err != nil {
		return nil, err
	}

	cfg.BaseURL = creds.BaseURL
	cfg.Auth = a
	return NewFactory(cfg)
}

// BaseURL returns the API base URL.
func (f *Factory) BaseURL() string { return f.cfg.BaseURL }

// Client returns the client for activationID, creating it on first use.
func (f *Factory) Client(activationID string) (*Client, error) {
	if activationID == "" {
		return nil, ErrMissingActivation
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.clients.Get(activationID); ok {
		return c, nil
	}

	c := newClient(activationID, dexihttp.NewClient(dexihttp.ClientConfig{
		Client:        f.cfg.HTTPClient,
		BaseURL:       f.cfg.BaseURL,
		BeforeRequest: f.cfg.Auth.Signer(activationID),
		Limiter:       f.cfg.Limiter,
		Logger:        f.logger.With(zap.String("activation", activationID)),
	}))
	f.clients.Add(activationID, c)

	f.logger.Debug("created client", zap.String("activation", activationID))
	return c, nil
}

// ActivationConfig decodes the configuration of activationID into out.
// Successful fetches are cached; failures are not.
func (f *Factory) ActivationConfig(ctx context.Context, activationID string, out any) error {
	if activationID == "" {
		return ErrMissingActivation
	}

	raw, ok := f.configs.Get(activationID)
	if !ok {
		c, err := f.Client(activationID)
		if err != nil {
			return err
		}

		raw, err = c.Apps().ActivationConfigRaw(ctx, activationID)
		if err != nil {
			f.logger.Warn("failed to get activation config",
				zap.String("activation", activationID),
				zap.Error(err),
			)
			return fmt.Errorf("could not get configuration for app activation: %w", err)
		}
		f.configs.Add(activationID, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode activation %s configuration: %w", activationID, err)
	}
	return nil
}

// HeaderGetter is satisfied by http.Header and by request wrappers.
type HeaderGetter interface {
	Get(key string) string
}

// Configuration decodes the activation configuration dexi sends in the
// X-DexiIO-Configuration header. It returns false if the header is blank.
func (f *Factory) Configuration(h HeaderGetter, out any) (bool, error) {
	return DecodeConfiguration(h, out)
}

// DecodeConfiguration is Factory.Configuration without a factory.
func DecodeConfiguration(h HeaderGetter, out any) (bool, error) {
	value := h.Get(service.HeaderConfiguration)
	if strings.TrimSpace(value) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("decode %s header: %w", service.HeaderConfiguration, err)
	}
	return true, nil
}

// Client talks to dexi on behalf of one activation.
type Client struct {
	activationID string
	http         *dexihttp.Client
	files        *FileClient
	apps         *AppClient
}

func newClient(activationID string, hc *dexihttp.Client) *Client {
	return &Client{
		activationID: activationID,
		http:         hc,
		files:        &FileClient{http: hc},
		apps:         &AppClient{http: hc},
	}
}

// ActivationID returns the activation the client signs for.
func (c *Client) ActivationID() string { return c.activationID }

// Files returns the file client.
func (c *Client) Files() *FileClient { return c.files }

// Apps returns the app client.
func (c *Client) Apps() *AppClient { return c.apps }

// HTTP returns the signing HTTP client for endpoints not wrapped here.
func (c *Client) HTTP() *dexihttp.Client { return c.http }
