// Package appsdk is the entry point of the dexi.io app SDK for Go.
//
// The SDK is organized into subpackages by concern:
//
//   - config: layered configuration resolution (file, remote file, DEXI_APP_ overrides)
//   - auth: access token calculation and request signing headers
//   - http: signing HTTP client and API errors
//   - client: client factory, file client, app client
//   - oauth: token encryption, OAuth payloads, signed state
//   - service: payload shapes exchanged with the platform
//   - errors: user-facing CLI errors
//   - logging: zap logger construction for binaries
//   - testutil: fixtures, config servers and a fake dexi API
//
// # Quick Start
//
//	sdk, err := appsdk.Open(ctx, appsdk.Config{})
//	if err != nil {
//	    return err
//	}
//
//	factory, err := sdk.Factory()
//	if err != nil {
//	    return err
//	}
//
//	c, err := factory.Client(activationID)
//	if err != nil {
//	    return err
//	}
//
//	file, err := c.Files().GetFile(ctx, "FILE:text/csv;1024;8e2c...")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
// Configuration is read from the file named by DEXI_APP_CREDENTIALS (a path
// or http(s) URL) or from ~/.dexi/configuration.yml, then overridden by
// DEXI_APP_<section>_<key> variables. The credentials live under
// dexi.baseUrl, dexi.account and dexi.apiKey.
package appsdk
