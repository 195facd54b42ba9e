package mfa

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// Digits is the number of digits in a generated code.
	Digits = 6
	// Period is the code validity window in seconds (RFC 6238 standard).
	Period = 30
	// Algorithm is the HMAC algorithm advertised in enrollment URIs.
	Algorithm = "SHA1"
	// DefaultSkew is the number of adjacent time steps accepted on either
	// side of the current one, tolerating roughly ±Period seconds of drift
	// per step.
	DefaultSkew = 1

	// secretSize is the raw secret length in bytes (RFC 4226 recommends 160 bits).
	secretSize = 20
)

var (
	// secretRegex validates Base32 secrets: uppercase A-Z, digits 2-7, optional padding.
	secretRegex = regexp.MustCompile("^[A-Z2-7]+=*$")
	codeRegex   = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, Digits))

	base32Codec = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// GenerateSecret creates a new Base32-encoded TOTP enrollment secret.
func GenerateSecret() (string, error) {
	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrSecretGeneration, err)
	}
	return base32Codec.EncodeToString(secret), nil
}

// HOTP computes an RFC 4226 HMAC-based one-time password for the given
// counter: HMAC-SHA1 over the big-endian counter, dynamic truncation to a
// 31-bit value, reduced modulo 10^digits and zero-padded.
func HOTP(key []byte, counter uint64, digits int) string {
	counterBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(counterBytes, counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes)
	sum := mac.Sum(nil)

	// Dynamic truncation: low 4 bits of the last byte select the offset.
	offset := sum[len(sum)-1] & 0x0f
	code := (uint32(sum[offset]&0x7f) << 24) |
		(uint32(sum[offset+1]) << 16) |
		(uint32(sum[offset+2]) << 8) |
		uint32(sum[offset+3])

	code %= uint32(math.Pow10(digits))

	return fmt.Sprintf("%0*d", digits, code)
}

// Code computes the 6-digit TOTP code for the 30-second step containing t.
func Code(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return HOTP(key, timeStep(t), Digits), nil
}

// Validate reports whether code is a valid TOTP code for secret at time t,
// accepting up to skew adjacent time steps on either side of the current
// one. Steps are checked in ascending order starting at current-skew.
// Comparison is constant time per candidate.
//
// A malformed secret or code returns an error; a well-formed code that
// simply does not match returns (false, nil).
func Validate(secret, code string, t time.Time, skew uint) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCodeFormat
	}

	step := int64(timeStep(t))
	for offset := -int64(skew); offset <= int64(skew); offset++ {
		candidate := step + offset
		if candidate < 0 {
			continue
		}
		expected := HOTP(key, uint64(candidate), Digits)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// URIParams describes an enrollment URI for authenticator apps.
type URIParams struct {
	Secret      string // Base32-encoded TOTP secret (required)
	AccountName string // User identifier such as an email address (required)
	Issuer      string // Service name shown in the authenticator app (required)
}

// Validate checks that all required URI parameters are present and well formed.
func (p URIParams) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !secretRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// URI builds an otpauth:// enrollment URI following the Key Uri Format
// consumed by Google Authenticator, 1Password and compatible apps:
// otpauth://totp/<issuer>:<account>?secret=<base32>&issuer=<issuer>&...
func URI(params URIParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	label := url.PathEscape(params.Issuer) + ":" + url.PathEscape(params.AccountName)

	query := url.Values{}
	query.Set("secret", params.Secret)
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", Algorithm)
	query.Set("digits", fmt.Sprintf("%d", Digits))
	query.Set("period", fmt.Sprintf("%d", Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// timeStep derives the TOTP counter: floor(unixTimeSeconds / Period).
func timeStep(t time.Time) uint64 {
	return uint64(t.Unix() / Period)
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if !secretRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := base32Codec.DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}
