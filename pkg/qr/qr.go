// Package qr renders QR code images for MFA enrollment URIs so they can be
// embedded directly in onboarding screens.
package qr

import (
	"encoding/base64"
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when the content is empty or whitespace only.
	ErrEmptyContent = errors.New("qr content cannot be empty")
	// ErrGenerationFailed is returned when the underlying encoder fails.
	ErrGenerationFailed = errors.New("failed to generate QR code")
)

// DefaultSize is the image size in pixels used when no size is given.
const DefaultSize = 256

// Generate renders content as a PNG QR code of the given size in pixels.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}
	return png, nil
}

// DataURI renders content as a QR code and returns it as a
// data:image/png;base64 URI suitable for an <img> src attribute.
func DataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
