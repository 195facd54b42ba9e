package mfa

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sealkit/cryptokit/pkg/crypt"
	"github.com/sealkit/cryptokit/pkg/qr"
)

// Service drives the per-user MFA lifecycle over an external user store:
//
//	NotEnrolled -> Setup -> PendingVerification -> Enable -> Enrolled
//	Enrolled -> Disable -> NotEnrolled
//
// All TOTP secrets pass through the encryption engine before persistence.
type Service struct {
	store           UserStore
	engine          *crypt.Engine
	issuer          string
	skew            uint
	backupCodeCount int
	qrSize          int
	logger          *slog.Logger
	now             func() time.Time
}

// Option configures a Service during construction.
type Option func(*Service)

// WithSkew sets the number of adjacent TOTP time steps accepted on either
// side of the current one. The default of 1 tolerates roughly ±30 seconds
// of clock drift.
func WithSkew(skew uint) Option {
	return func(s *Service) {
		s.skew = skew
	}
}

// WithBackupCodeCount sets how many backup codes are issued per enrollment.
func WithBackupCodeCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.backupCodeCount = count
		}
	}
}

// WithQRSize sets the enrollment QR code image size in pixels.
func WithQRSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.qrSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, used in tests to pin TOTP windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates an MFA service. The issuer is the service name shown
// in authenticator apps. The engine protects TOTP secrets at rest.
func NewService(store UserStore, engine *crypt.Engine, issuer string, opts ...Option) *Service {
	s := &Service{
		store:           store,
		engine:          engine,
		issuer:          issuer,
		skew:            DefaultSkew,
		backupCodeCount: DefaultBackupCodeCount,
		qrSize:          qr.DefaultSize,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Setup starts (or restarts) MFA enrollment for a user. It generates a
// fresh secret and backup codes, persists them disabled, and returns the
// enrollment artifacts. The plaintext secret and codes appear only in the
// returned Enrollment; the store receives the encrypted secret and code
// digests. Calling Setup again replaces any previous enrollment.
func (s *Service) Setup(ctx context.Context, userID uuid.UUID) (*Enrollment, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	secret, err := GenerateSecret()
	if err != nil {
		return nil, err
	}

	codes, err := GenerateBackupCodes(s.backupCodeCount)
	if err != nil {
		return nil, err
	}

	encryptedSecret, err := s.engine.Encrypt(secret)
	if err != nil {
		return nil, errors.Join(ErrSecretStorageFailed, err)
	}

	settings := &Settings{
		Secret:      encryptedSecret,
		Enabled:     false,
		BackupCodes: make([]BackupCode, len(codes)),
	}
	for i, code := range codes {
		settings.BackupCodes[i] = BackupCode{Hash: HashBackupCode(code)}
	}

	if err := s.store.UpdateMFA(ctx, userID, settings); err != nil {
		return nil, err
	}

	uri, err := URI(URIParams{Secret: secret, AccountName: user.Email, Issuer: s.issuer})
	if err != nil {
		return nil, errors.Join(ErrEnrollmentArtifactFailed, err)
	}

	qrImage, err := qr.DataURI(uri, s.qrSize)
	if err != nil {
		return nil, errors.Join(ErrEnrollmentArtifactFailed, err)
	}

	s.logger.InfoContext(ctx, "mfa setup started", "user_id", userID)

	return &Enrollment{
		Secret:      secret,
		URI:         uri,
		QRCode:      qrImage,
		BackupCodes: codes,
	}, nil
}

// Enable completes enrollment by verifying a code against the pending
// secret and marking MFA enabled. It returns ErrSetupNotStarted when no
// enrollment is pending and ErrInvalidCode when the code does not match.
func (s *Service) Enable(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	settings := user.Preferences.MFA
	if settings == nil {
		return ErrSetupNotStarted
	}

	secret, err := s.engine.Decrypt(settings.Secret)
	if err != nil {
		return errors.Join(ErrSecretUnavailable, err)
	}

	valid, err := Validate(secret, code, s.now(), s.skew)
	if err != nil || !valid {
		return ErrInvalidCode
	}

	settings = settings.Clone()
	settings.Enabled = true
	if err := s.store.UpdateMFA(ctx, userID, settings); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "mfa enabled", "user_id", userID)
	return nil
}

// Disable turns MFA off for a user. It requires a valid TOTP code or an
// unused backup code and wipes the secret and all backup codes on success.
// It returns ErrNotEnabled when MFA was never enabled and ErrInvalidCode
// when the code matches nothing.
func (s *Service) Disable(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	settings := user.Preferences.MFA
	if settings == nil || !settings.Enabled {
		return ErrNotEnabled
	}

	matched, _, err := s.matchCode(settings, code)
	if err != nil {
		return err
	}
	if !matched {
		return ErrInvalidCode
	}

	if err := s.store.UpdateMFA(ctx, userID, nil); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "mfa disabled", "user_id", userID)
	return nil
}

// Verify is the steady-state login check. It never fails on bad
// credentials: an unknown or expired code yields Valid=false with a nil
// error. A matching unused backup code is consumed (marked used) as a side
// effect of the successful verification and never verifies again; the
// consumption is persisted before the success is reported.
func (s *Service) Verify(ctx context.Context, userID uuid.UUID, code string) (Verification, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return Verification{}, err
	}

	settings := user.Preferences.MFA
	if settings == nil || !settings.Enabled {
		return Verification{}, nil
	}

	matched, backupIndex, err := s.matchCode(settings, code)
	if err != nil {
		return Verification{}, err
	}
	if !matched {
		return Verification{}, nil
	}

	if backupIndex < 0 {
		return Verification{Valid: true}, nil
	}

	// Backup code hit: persist the consumption before reporting success.
	settings = settings.Clone()
	settings.BackupCodes[backupIndex].Used = true
	if err := s.store.UpdateMFA(ctx, userID, settings); err != nil {
		return Verification{}, err
	}

	s.logger.InfoContext(ctx, "backup code consumed", "user_id", userID)
	return Verification{Valid: true, BackupCodeUsed: true}, nil
}

// RegenerateBackupCodes replaces the entire backup code set for a user with
// MFA enabled, invalidating every previously issued code. The new plain
// codes are returned once.
func (s *Service) RegenerateBackupCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := user.Preferences.MFA
	if settings == nil || !settings.Enabled {
		return nil, ErrNotEnabled
	}

	codes, err := GenerateBackupCodes(s.backupCodeCount)
	if err != nil {
		return nil, err
	}

	settings = settings.Clone()
	settings.BackupCodes = make([]BackupCode, len(codes))
	for i, code := range codes {
		settings.BackupCodes[i] = BackupCode{Hash: HashBackupCode(code)}
	}

	if err := s.store.UpdateMFA(ctx, userID, settings); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "backup codes regenerated", "user_id", userID)
	return codes, nil
}

// matchCode checks code first as a TOTP code, then against unused backup
// codes. It returns the index of the matched backup code, or -1 for a TOTP
// match. The error path covers secret decryption failures only; a code
// that merely does not match yields (false, 0, nil).
func (s *Service) matchCode(settings *Settings, code string) (matched bool, backupIndex int, err error) {
	secret, err := s.engine.Decrypt(settings.Secret)
	if err != nil {
		return false, 0, errors.Join(ErrSecretUnavailable, err)
	}

	valid, err := Validate(secret, code, s.now(), s.skew)
	if err == nil && valid {
		return true, -1, nil
	}

	for i, backup := range settings.BackupCodes {
		if !backup.Used && MatchBackupCode(code, backup.Hash) {
			return true, i, nil
		}
	}

	return false, 0, nil
}

func (s *Service) findUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrUserNotFound, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
