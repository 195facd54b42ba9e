package mfa

import (
	"context"

	"github.com/google/uuid"
)

// User is the slice of the external user record the MFA engine operates on.
// The record itself lives in the caller's store; the engine only reads the
// identity fields and the MFA settings inside the preferences document.
type User struct {
	ID          uuid.UUID
	Email       string
	Preferences Preferences
}

// Preferences is the user preferences document. MFA settings are nil until
// setup has been started.
type Preferences struct {
	MFA *Settings
}

// Settings is the per-user MFA state persisted in the user's preferences.
// The secret is stored encrypted with the process encryption engine, never
// in plaintext. Enabled is false between setup and the first successful
// code verification.
type Settings struct {
	Secret      string // TOTP secret, encrypted at rest
	Enabled     bool
	BackupCodes []BackupCode
}

// BackupCode is a single-use recovery code. Only the SHA-256 digest of the
// code is stored; Used flips one way from false to true on consumption.
type BackupCode struct {
	Hash string
	Used bool
}

// Clone returns a deep copy so stored settings cannot be mutated through
// shared slices.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	clone := &Settings{
		Secret:      s.Secret,
		Enabled:     s.Enabled,
		BackupCodes: make([]BackupCode, len(s.BackupCodes)),
	}
	copy(clone.BackupCodes, s.BackupCodes)
	return clone
}

// UserStore is the external collaborator contract. The store owns
// persistence and concurrency control: it must guarantee at-most-one
// successful consumption of a given backup code under concurrent updates
// (compare-and-swap or a transactional write on the settings document).
type UserStore interface {
	// FindByID returns the user record for id.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// UpdateMFA replaces the MFA settings inside the user's preferences.
	// A nil settings value clears MFA state entirely.
	UpdateMFA(ctx context.Context, id uuid.UUID, settings *Settings) error
}

// Enrollment is returned by Setup. The plaintext secret and backup codes
// are surfaced exactly once here; only protected forms are persisted.
type Enrollment struct {
	Secret      string   // Base32 secret for manual authenticator entry
	URI         string   // otpauth:// enrollment URI
	QRCode      string   // data:image/png;base64 QR rendering of the URI
	BackupCodes []string // plain backup codes, shown once
}

// Verification is the result of a steady-state login check.
type Verification struct {
	Valid          bool
	BackupCodeUsed bool
}
