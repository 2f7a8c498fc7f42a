package oauth

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"strings"
)

// EncryptionService encrypts stored OAuth secrets with a shared AES key.
//
// The cipher is AES in ECB mode with PKCS#5 padding and standard base64
// output, which is what the dexi platform stores. ECB leaks equal blocks, so
// do not reuse this service for anything but token payloads.
type EncryptionService struct {
	block cipher.Block
}

// NewEncryptionService creates a service for key. The key is used as raw
// bytes and must be 16, 24 or 32 bytes long.
func NewEncryptionService(key string) (*EncryptionService, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return &EncryptionService{block: block}, nil
}

// Encrypt encrypts plaintext and returns it base64 encoded.
func (s *EncryptionService) Encrypt(plaintext string) string {
	bs := s.block.BlockSize()
	data := pad([]byte(plaintext), bs)
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		s.block.Encrypt(out[i:i+bs], data[i:i+bs])
	}
	return base64.StdEncoding.EncodeToString(out)
}

// Decrypt reverses Encrypt.
func (s *EncryptionService) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	bs := s.block.BlockSize()
	if len(data) == 0 || len(data)%bs != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of %d", ErrInvalidCiphertext, len(data), bs)
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		s.block.Decrypt(out[i:i+bs], data[i:i+bs])
	}

	plain, err := unpad(out, bs)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// EncryptOAuth2 packs the access and refresh token into an encrypted payload.
func (s *EncryptionService) EncryptOAuth2(tokens OAuth2Tokens) EncryptedTokens {
	return EncryptedTokens{
		Name:     tokens.Name,
		Email:    tokens.Email,
		Provider: tokens.Provider,
		Valid:    tokens.Valid,
		Payload:  s.Encrypt(tokens.AccessToken + ":" + tokens.RefreshToken),
	}
}

// EncryptOAuth1 packs the access token and its secret into an encrypted payload.
func (s *EncryptionService) EncryptOAuth1(tokens OAuth1Tokens) EncryptedTokens {
	return EncryptedTokens{
		Name:     tokens.Name,
		Email:    tokens.Email,
		Provider: tokens.Provider,
		Valid:    tokens.Valid,
		Payload:  s.Encrypt(tokens.AccessToken + ":" + tokens.AccessTokenSecret),
	}
}

// DecryptOAuth2 unpacks an OAuth 2 payload. Token fields stay empty when the
// payload is blank or does not hold exactly two values.
func (s *EncryptionService) DecryptOAuth2(enc EncryptedTokens) (OAuth2Tokens, error) {
	out := OAuth2Tokens{
		Name:     enc.Name,
		Email:    enc.Email,
		Provider: enc.Provider,
		Valid:    enc.Valid,
	}

	first, second, err := s.decryptPair(enc.Payload)
	if err != nil {
		return out, err
	}
	out.AccessToken, out.RefreshToken = first, second
	return out, nil
}

// DecryptOAuth1 unpacks an OAuth 1 payload with the same rules as DecryptOAuth2.
func (s *EncryptionService) DecryptOAuth1(enc EncryptedTokens) (OAuth1Tokens, error) {
	out := OAuth1Tokens{
		Name:     enc.Name,
		Email:    enc.Email,
		Provider: enc.Provider,
		Valid:    enc.Valid,
	}

	first, second, err := s.decryptPair(enc.Payload)
	if err != nil {
		return out, err
	}
	out.AccessToken, out.AccessTokenSecret = first, second
	return out, nil
}

func (s *EncryptionService) decryptPair(payload string) (string, string, error) {
	if strings.TrimSpace(payload) == "" {
		return "", "", nil
	}

	plain, err := s.Decrypt(payload)
	if err != nil {
		return "", "", err
	}

	parts := splitPayload(plain)
	if len(parts) != 2 {
		return "", "", nil
	}
	return parts[0], parts[1], nil
}

// splitPayload splits on ':' and drops trailing empty parts, so "a:" is a
// single value.
func splitPayload(s string) []string {
	parts := strings.Split(s, ":")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
		}
	}
	return data[:len(data)-n], nil
}
