// Package crypt provides the symmetric cryptography core: authenticated
// encryption of strings and files, salted one-way hashing, and secure
// random token generation.
//
// An Engine is constructed once from a master secret and salt; the 256-bit
// working key is derived deterministically with HKDF-SHA-256 and never
// exposed. The Engine is immutable and safe for concurrent use. Key
// rotation is an explicit administrative action: construct a new Engine,
// after which envelopes produced under the previous key fail to decrypt
// with ErrDecryptionFailed.
//
// # Wire formats
//
// String encryption produces a three-field hex envelope that must be
// preserved byte-for-byte for interoperability with stored ciphertexts:
//
//	<32-hex-nonce>:<32-hex-tag>:<hex-ciphertext>
//
// Salted hashes serialize as:
//
//	<hex-salt>:<hex-hash>
//
// File encryption uses a fresh random 256-bit key per call, returned to the
// caller alongside the ciphertext; losing the key makes the data
// unrecoverable.
//
// # Error contracts
//
// Mutation-style operations (Decrypt, DecryptFile) fail loud: malformed
// input raises ErrInvalidEnvelope, tag mismatch raises ErrDecryptionFailed,
// and partial plaintext is never returned. Verification-style operations
// (VerifyHash) fail closed: malformed input returns false rather than an
// error, so the result can gate authentication paths directly.
//
// # Usage
//
//	cfg, err := crypt.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := crypt.NewFromConfig(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	envelope, _ := engine.Encrypt("my secret value")
//	plaintext, _ := engine.Decrypt(envelope)
//
// Configuration comes from ENCRYPTION_MASTER_KEY (required, fails closed if
// absent) and ENCRYPTION_SALT (optional; treat an explicit salt as
// mandatory in production).
package crypt
