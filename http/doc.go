// Package http provides the HTTP client used to talk to the dexi API.
//
// A Client resolves paths against a base URL, applies a BeforeRequest hook
// (normally auth.Auth.Sign), tags each request with an X-Request-Id, and
// turns non-2xx responses into *APIError values that unwrap to the status
// sentinels in this package:
//
//	c := http.NewClient(http.ClientConfig{
//	    BaseURL:       "https://api.dexi.io/",
//	    BeforeRequest: signer.Signer(activationID),
//	})
//	var cfg MyConfig
//	if err := c.Get(ctx, "apps/support/activations/"+id+"/configuration", &cfg); err != nil {
//	    if http.IsNotFound(err) {
//	        ...
//	    }
//	}
//
// Requests are sent once. An optional rate.Limiter throttles outgoing calls.
package http
