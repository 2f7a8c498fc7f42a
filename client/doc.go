// Package client provides activation-scoped clients for the dexi API.
//
// A Factory is built once per process from resolved credentials:
//
//	f, err := client.NewFactoryFromStore(store, client.FactoryConfig{Logger: logger})
//
// and hands out one cached Client per activation:
//
//	c, err := f.Client(activationID)
//	file, err := c.Files().GetFile(ctx, "FILE:text/csv;120;6f1c...")
//	defer file.Close()
//
// Activation configurations are cached briefly by Factory.ActivationConfig.
// Requests dexi sends to an app carry the configuration inline, which
// Factory.Configuration decodes from the request headers.
package client
