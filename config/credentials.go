package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Credentials are the values a client needs to sign requests.
type Credentials struct {
	BaseURL string `json:"baseUrl"`
	Account string `json:"account"`
	APIKey  string `json:"apiKey"`
}

// Validate checks that the base URL is a URL and that account and API key
// are present.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Account, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
	)
}

// String renders the credentials without the API key.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{BaseURL: %q, Account: %q, APIKey: %s}",
		c.BaseURL, c.Account, mask(c.APIKey))
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "<redacted>"
}
