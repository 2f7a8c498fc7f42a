package auth

import (
	"crypto/md5" //nolint:gosec // the platform defines the access token as an MD5 digest
	"encoding/hex"
)

// CalculateAccess derives the request access token sent in the
// X-DexiIO-Access header: the lower-case hex MD5 of account followed by
// secret.
func CalculateAccess(account, secret string) string {
	h := md5.Sum([]byte(account + secret)) //nolint:gosec
	return hex.EncodeToString(h[:])
}
