package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	dexihttp "github.com/dexiio/app-sdk-go/http"
)

// AppClient reads app data from dexi.
type AppClient struct {
	http *dexihttp.Client
}

func activationConfigPath(activationID string) string {
	return "apps/support/activations/" + url.PathEscape(activationID) + "/configuration"
}

// ActivationConfig decodes the configuration of activationID into out.
func (c *AppClient) ActivationConfig(ctx context.Context, activationID string, out any) error {
	raw, err := c.ActivationConfigRaw(ctx, activationID)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode activation %s configuration: %w", activationID, err)
	}
	return nil
}

// ActivationConfigRaw returns the configuration of activationID as JSON.
func (c *AppClient) ActivationConfigRaw(ctx context.Context, activationID string) ([]byte, error) {
	if activationID == "" {
		return nil, ErrMissingActivation
	}

	raw, err := c.http.GetRaw(ctx, activationConfigPath(activationID))
	if err != nil {
		if dexihttp.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrActivationNotFound, activationID, err)
		}
		return nil, fmt.Errorf("get activation %s configuration: %w", activationID, err)
	}
	return raw, nil
}
