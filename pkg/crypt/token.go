package crypt

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
)

// TokenSize is the number of random bytes in a secure token.
const TokenSize = 32

// GenerateSecureToken returns 32 bytes of cryptographically secure
// randomness as a 64-character lowercase hex string. Tokens are
// unpredictable and unique with overwhelming probability across calls.
func GenerateSecureToken() (string, error) {
	token := make([]byte, TokenSize)
	if _, err := io.ReadFull(rand.Reader, token); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return hex.EncodeToString(token), nil
}
