package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Access token format: blc_<secret>
// Example: blc_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const tokenSecretBytes = 16

// Short code generation.
const (
	shortCodeLength   = 7
	shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// newAccessToken mints an opaque bearer token.
func newAccessToken() (string, error) {
	secret := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return "blc_" + hex.EncodeToString(secret), nil
}

// newShortCode generates a random short code over the link alphabet.
func newShortCode() (string, error) {
	code := make([]byte, shortCodeLength)
	max := big.NewInt(int64(len(shortCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}
		code[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
