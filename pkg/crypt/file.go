package crypt

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
)

// FileEncryptionResult carries the output of EncryptFile. The key is
// generated per call and is the only way to recover the data; the caller
// is responsible for its custody.
type FileEncryptionResult struct {
	EncryptedData []byte
	Key           string
}

// EncryptFile authenticated-encrypts data under a fresh random 256-bit key,
// independent of the master-derived key, so bulk payloads are not coupled
// to the process-wide key's blast radius. The nonce is prepended to the
// sealed bytes; output length is len(data) + NonceSize + TagSize.
func EncryptFile(data []byte) (FileEncryptionResult, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return FileEncryptionResult{}, errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := newGCM(key)
	if err != nil {
		return FileEncryptionResult{}, errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return FileEncryptionResult{}, errors.Join(ErrEncryptionFailed, err)
	}

	encrypted := aead.Seal(nonce, nonce, data, nil)

	return FileEncryptionResult{
		EncryptedData: encrypted,
		Key:           hex.EncodeToString(key),
	}, nil
}

// DecryptFile reverses EncryptFile using the hex key returned alongside the
// ciphertext. It returns ErrInvalidKey when the key does not decode to 32
// bytes, ErrCiphertextTooShort when the payload cannot contain a nonce and
// tag, and ErrDecryptionFailed on tag mismatch (wrong key or corrupted
// data). Corrupted bytes are never returned.
func DecryptFile(encryptedData []byte, key string) ([]byte, error) {
	keyBytes, err := hex.DecodeString(key)
	if err != nil || len(keyBytes) != KeySize {
		return nil, ErrInvalidKey
	}

	if len(encryptedData) < NonceSize+TagSize {
		return nil, errors.Join(ErrDecryptionFailed, ErrCiphertextTooShort)
	}

	aead, err := newGCM(keyBytes)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	nonce, sealed := encryptedData[:NonceSize], encryptedData[NonceSize:]

	data, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return data, nil
}
