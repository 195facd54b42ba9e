package crypt

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the random salt length in bytes for salted hashing.
	SaltSize = 16
	// hashIterations is the PBKDF2 iteration count. Deliberately expensive
	// so the digest resists offline brute force, unlike a bare SHA-256.
	hashIterations = 100_000
	// hashSize is the PBKDF2 output length in bytes.
	hashSize = 32
)

// Hash computes a salted PBKDF2-HMAC-SHA-256 digest of data. A fresh random
// salt is drawn on every call, so hashing the same input twice yields
// different results; both verify against the original input. The result is
// serialized as hex(salt):hex(hash).
func (e *Engine) Hash(data string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}

	digest := pbkdf2.Key([]byte(data), salt, hashIterations, hashSize, sha256.New)

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(digest), nil
}

// VerifyHash reports whether data matches a salt:hash value produced by
// Hash. It fails closed: malformed input returns false rather than an
// error, so callers can use it directly as a gating condition in
// authentication paths. The comparison is constant time.
func (e *Engine) VerifyHash(data, hashedValue string) bool {
	parts := strings.Split(hashedValue, ":")
	if len(parts) != 2 {
		return false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return false
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil || len(expected) == 0 {
		return false
	}

	digest := pbkdf2.Key([]byte(data), salt, hashIterations, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(digest, expected) == 1
}
