package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the symmetric key size in bytes (AES-256).
	KeySize = 32
	// NonceSize is the GCM nonce size in bytes. Envelopes carry it as 32 hex chars.
	NonceSize = 16
	// TagSize is the GCM authentication tag size in bytes.
	TagSize = 16

	// DefaultSalt is used when no explicit key-derivation salt is configured.
	// Production deployments should always set ENCRYPTION_SALT.
	DefaultSalt = "cryptokit-default-salt"

	// hkdfInfo provides domain separation for the master key derivation.
	hkdfInfo = "cryptokit-master-key-v1"
)

// Engine holds the master-derived symmetric key and performs authenticated
// encryption, salted hashing, and token generation. An Engine is immutable
// after construction and safe for concurrent use; key rotation is done by
// constructing a new Engine, after which ciphertexts produced under the old
// key no longer decrypt.
type Engine struct {
	key []byte
}

// New derives a 256-bit key from the master secret and salt using
// HKDF-SHA-256 and returns an Engine bound to it. The derivation is
// deterministic: the same (masterSecret, salt) pair always yields the same
// key. An empty salt falls back to DefaultSalt.
func New(masterSecret, salt string) (*Engine, error) {
	if masterSecret == "" {
		return nil, ErrMissingMasterSecret
	}
	if salt == "" {
		salt = DefaultSalt
	}

	reader := hkdf.New(sha256.New, []byte(masterSecret), []byte(salt), []byte(hkdfInfo))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return &Engine{key: key}, nil
}

// NewFromConfig constructs an Engine from environment-driven configuration.
func NewFromConfig(cfg Config) (*Engine, error) {
	return New(cfg.MasterKey, cfg.Salt)
}

// Encrypt protects a string with AES-256-GCM under the master-derived key.
// A fresh random nonce is drawn on every call, so encrypting the same
// plaintext twice yields different envelopes. The result is serialized as
// hex(nonce):hex(tag):hex(ciphertext).
func (e *Engine) Encrypt(plaintext string) (string, error) {
	aead, err := newGCM(e.key)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	// Seal appends the tag to the ciphertext; split it back out so the
	// envelope keeps its three-field wire format.
	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. It returns ErrInvalidEnvelope when the input
// does not parse as a three-field hex envelope and ErrDecryptionFailed when
// tag verification fails (tampered ciphertext, corrupted envelope, or a key
// other than the one that produced it). Decryption is all-or-nothing: no
// partial plaintext is ever returned.
func (e *Engine) Decrypt(envelope string) (string, error) {
	nonce, tag, ciphertext, err := parseEnvelope(envelope)
	if err != nil {
		return "", err
	}

	aead, err := newGCM(e.key)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// parseEnvelope splits and decodes the nonce:tag:ciphertext wire format.
func parseEnvelope(envelope string) (nonce, tag, ciphertext []byte, err error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != 3 {
		return nil, nil, nil, ErrInvalidEnvelope
	}

	nonce, err = hex.DecodeString(parts[0])
	if err != nil || len(nonce) != NonceSize {
		return nil, nil, nil, ErrInvalidEnvelope
	}
	tag, err = hex.DecodeString(parts[1])
	if err != nil || len(tag) != TagSize {
		return nil, nil, nil, ErrInvalidEnvelope
	}
	ciphertext, err = hex.DecodeString(parts[2])
	if err != nil {
		return nil, nil, nil, ErrInvalidEnvelope
	}

	return nonce, tag, ciphertext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}
