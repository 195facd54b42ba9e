package crypt

import "errors"

var (
	ErrMissingMasterSecret = errors.New("encryption master secret is not set")
	ErrKeyDerivationFailed = errors.New("failed to derive encryption key")
	ErrEncryptionFailed    = errors.New("failed to encrypt data")
	ErrDecryptionFailed    = errors.New("failed to decrypt data")
	ErrInvalidEnvelope     = errors.New("invalid envelope format")
	ErrInvalidKey          = errors.New("invalid encryption key")
	ErrCiphertextTooShort  = errors.New("ciphertext too short")
	ErrHashingFailed       = errors.New("failed to hash data")
	ErrTokenGeneration     = errors.New("failed to generate secure token")
)
