// Package mfa implements time-based one-time-password multi-factor
// authentication with single-use backup codes.
//
// The package has two layers. The primitives in otp.go and backup.go cover
// RFC 4226/6238 code generation and validation, enrollment secret and URI
// construction, and backup code generation and hashing. The Service in
// service.go drives the per-user lifecycle over an external user store:
//
//	NotEnrolled -> PendingVerification -> Enrolled -> (disable) -> NotEnrolled
//
// Setup writes a fresh secret and backup codes with MFA disabled, Enable
// verifies the first code and flips the enrollment live, Verify is the
// steady-state login check, Disable wipes all MFA state, and
// RegenerateBackupCodes replaces the recovery code set.
//
// # Code validation
//
// Codes are 6 digits over 30-second time steps. Validation accepts the
// current step plus a configurable number of adjacent steps on either side
// (default 1, tolerating roughly ±30 seconds of clock drift); see WithSkew.
//
// # Secret and code storage
//
// TOTP secrets are encrypted with the crypt engine before they reach the
// store, and backup codes are persisted only as SHA-256 digests. The plain
// values appear exactly once, in the Enrollment returned by Setup and the
// slice returned by RegenerateBackupCodes.
//
// # Error contracts
//
// Lifecycle mutations fail loud with package sentinels (ErrUserNotFound,
// ErrSetupNotStarted, ErrNotEnabled, ErrInvalidCode). Verify fails closed:
// a wrong code or a user without active MFA yields Valid=false with a nil
// error, so its result can gate a login path directly.
//
// # Usage
//
//	engine, _ := crypt.New(masterSecret, salt)
//	svc := mfa.NewService(store, engine, "Acme")
//
//	enrollment, _ := svc.Setup(ctx, userID)   // show QR + backup codes once
//	_ = svc.Enable(ctx, userID, firstCode)    // confirm the authenticator
//
//	result, _ := svc.Verify(ctx, userID, loginCode)
//	if result.Valid {
//	    // proceed with login; result.BackupCodeUsed tells whether a
//	    // recovery code was spent
//	}
//
// The store must serialize concurrent updates to a user's settings so a
// backup code can be consumed at most once; see UserStore.
package mfa
