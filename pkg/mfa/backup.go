package mfa

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// DefaultBackupCodeCount is the number of backup codes issued per
// enrollment or regeneration.
const DefaultBackupCodeCount = 10

// GenerateBackupCodes creates count single-use backup codes. Each code is 8
// random bytes rendered as a 16-character upper-case hex string.
func GenerateBackupCodes(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidBackupCodeCount
	}

	codes := make([]string, count)
	for i := 0; i < count; i++ {
		raw := make([]byte, 8)
		if _, err := rand.Read(raw); err != nil {
			return nil, errors.Join(ErrBackupCodeGeneration, err)
		}
		codes[i] = fmt.Sprintf("%X", raw)
	}
	return codes, nil
}

// HashBackupCode returns the SHA-256 digest of a backup code as hex.
// Only the digest is persisted; the plain code is shown to the user once.
func HashBackupCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// MatchBackupCode reports whether code corresponds to the stored digest.
// The comparison is constant time.
func MatchBackupCode(code, hash string) bool {
	computed := HashBackupCode(code)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
