// Package oauth holds the OAuth helpers used by dexi apps that connect to
// third-party accounts.
//
// Connections are stored by dexi in encrypted form. An EncryptionService
// built from the app's shared key converts between the stored form and the
// usable tokens:
//
//	svc, err := oauth.NewEncryptionService(key)
//	tokens, err := svc.DecryptOAuth2(stored)
//	src := oauth.TokenSource(ctx, providerConfig, tokens)
//
// StateSigner produces the state parameter of an authorization redirect and
// checks it again on the callback.
package oauth
