// Package auth computes the values used to sign dexi API requests.
//
// Every request carries the account id and an access token derived from the
// account id and the API key:
//
//	a, err := auth.New("my-account", "my-api-key", auth.TypeApp)
//	if err != nil {
//	    return err
//	}
//	a.Sign(req, activationID)
//
// Sign sets X-DexiIO-Account, X-DexiIO-Access, X-DexiIO-AuthType, the SDK
// User-Agent and, for activation-scoped calls, X-DexiIO-Activation.
//
// Credentials usually come from a resolved config.Store:
//
//	a, err := auth.FromCredentials(store.Credentials())
package auth
