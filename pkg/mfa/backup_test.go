package mfa_test

import (
	"testing"

	"github.com/sealkit/cryptokit/pkg/mfa"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBackupCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"default count", mfa.DefaultBackupCodeCount, false},
		{"single code", 1, false},
		{"zero codes", 0, true},
		{"negative count", -3, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			codes, err := mfa.GenerateBackupCodes(tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, mfa.ErrInvalidBackupCodeCount)
				assert.Nil(t, codes)
				return
			}

			require.NoError(t, err)
			require.Len(t, codes, tt.count)

			seen := make(map[string]bool, tt.count)
			for _, code := range codes {
				assert.Regexp(t, "^[0-9A-F]{16}$", code)
				assert.False(t, seen[code], "duplicate backup code")
				seen[code] = true
			}
		})
	}
}

func TestBackupCodeHashRoundTrip(t *testing.T) {
	t.Parallel()

	codes, err := mfa.GenerateBackupCodes(3)
	require.NoError(t, err)

	for _, code := range codes {
		hash := mfa.HashBackupCode(code)
		assert.NotEqual(t, code, hash)
		assert.True(t, mfa.MatchBackupCode(code, hash))
		assert.False(t, mfa.MatchBackupCode(code+"0", hash))
		assert.False(t, mfa.MatchBackupCode("", hash))
	}
}

func TestHashBackupCodeDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mfa.HashBackupCode("A1B2C3D4E5F60718"), mfa.HashBackupCode("A1B2C3D4E5F60718"))
	assert.NotEqual(t, mfa.HashBackupCode("A1B2C3D4E5F60718"), mfa.HashBackupCode("A1B2C3D4E5F60719"))
}
