package crypt_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/sealkit/cryptokit/pkg/crypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptFile(t *testing.T) {
	t.Parallel()

	large := make([]byte, 2<<20) // 2 MiB
	_, err := rand.Read(large)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty payload", []byte{}},
		{"small payload", []byte("file contents")},
		{"binary payload", []byte{0x00, 0xff, 0x10, 0x80, 0x00, 0x7f}},
		{"large payload", large},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := crypt.EncryptFile(tt.data)
			require.NoError(t, err)

			assert.Len(t, result.Key, crypt.KeySize*2)
			assert.Greater(t, len(result.EncryptedData), len(tt.data), "ciphertext must carry nonce and tag overhead")

			decrypted, err := crypt.DecryptFile(result.EncryptedData, result.Key)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tt.data, decrypted))
		})
	}
}

func TestEncryptFileIndependentKeys(t *testing.T) {
	t.Parallel()

	data := []byte("same file twice")
	first, err := crypt.EncryptFile(data)
	require.NoError(t, err)
	second, err := crypt.EncryptFile(data)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key, "each call must draw a fresh key")
	assert.NotEqual(t, first.EncryptedData, second.EncryptedData)
}

func TestDecryptFileWrongKey(t *testing.T) {
	t.Parallel()

	result, err := crypt.EncryptFile([]byte("protected"))
	require.NoError(t, err)

	unrelated := make([]byte, crypt.KeySize)
	_, err = rand.Read(unrelated)
	require.NoError(t, err)

	_, err = crypt.DecryptFile(result.EncryptedData, hex.EncodeToString(unrelated))
	assert.ErrorIs(t, err, crypt.ErrDecryptionFailed)
}

func TestDecryptFileInvalidInput(t *testing.T) {
	t.Parallel()

	result, err := crypt.EncryptFile([]byte("protected"))
	require.NoError(t, err)

	t.Run("malformed key", func(t *testing.T) {
		t.Parallel()
		_, err := crypt.DecryptFile(result.EncryptedData, "not-hex")
		assert.ErrorIs(t, err, crypt.ErrInvalidKey)
	})

	t.Run("short key", func(t *testing.T) {
		t.Parallel()
		_, err := crypt.DecryptFile(result.EncryptedData, "deadbeef")
		assert.ErrorIs(t, err, crypt.ErrInvalidKey)
	})

	t.Run("truncated data", func(t *testing.T) {
		t.Parallel()
		_, err := crypt.DecryptFile(result.EncryptedData[:crypt.NonceSize], result.Key)
		assert.ErrorIs(t, err, crypt.ErrCiphertextTooShort)
	})

	t.Run("corrupted data", func(t *testing.T) {
		t.Parallel()
		corrupted := bytes.Clone(result.EncryptedData)
		corrupted[len(corrupted)-1] ^= 0x01
		_, err := crypt.DecryptFile(corrupted, result.Key)
		assert.ErrorIs(t, err, crypt.ErrDecryptionFailed)
	})
}
