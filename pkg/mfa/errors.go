package mfa

import "errors"

var (
	// Lifecycle precondition errors.
	ErrUserNotFound    = errors.New("user not found")
	ErrSetupNotStarted = errors.New("MFA setup has not been started")
	ErrNotEnabled      = errors.New("MFA is not enabled")
	ErrInvalidCode     = errors.New("invalid verification code")

	// OTP primitive errors.
	ErrMissingSecret            = errors.New("missing TOTP secret")
	ErrInvalidSecret            = errors.New("invalid TOTP secret")
	ErrInvalidCodeFormat        = errors.New("invalid code format")
	ErrMissingAccountName       = errors.New("missing account name")
	ErrMissingIssuer            = errors.New("missing issuer")
	ErrSecretGeneration         = errors.New("failed to generate TOTP secret")
	ErrInvalidBackupCodeCount   = errors.New("backup code count must be greater than 0")
	ErrBackupCodeGeneration     = errors.New("failed to generate backup code")
	ErrSecretStorageFailed      = errors.New("failed to protect TOTP secret for storage")
	ErrSecretUnavailable        = errors.New("stored TOTP secret cannot be read")
	ErrEnrollmentArtifactFailed = errors.New("failed to build enrollment artifacts")
)
