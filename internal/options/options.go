package options

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
	"unicode"
)

// Credentials unlock an encrypted payload for a single device.
type Credentials struct {
	DeviceID []byte
	Password []byte
}

// Keyring resolves credentials by the cleartext device address.
type Keyring interface {
	Credentials(addr net.HardwareAddr) (Credentials, bool)
}

type contextKey struct{}

// WithCredentials stores a copy of the provided credentials inside the context.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	if len(c.DeviceID) == 0 && len(c.Password) == 0 {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, Credentials{
		DeviceID: append([]byte(nil), c.DeviceID...),
		Password: append([]byte(nil), c.Password...),
	})
}

// CredentialsFrom retrieves credentials from context if present.
func CredentialsFrom(ctx context.Context) (Credentials, bool) {
	if v := ctx.Value(contextKey{}); v != nil {
		if c, ok := v.(Credentials); ok {
			return c, true
		}
	}
	return Credentials{}, false
}

// ParseDeviceIDHex decodes a 16-hex-digit device id. Colons, dashes and
// whitespace are ignored.
func ParseDeviceIDHex(input string) ([]byte, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	clean := stripSeparators(input)
	if len(clean) != 16 {
		return nil, fmt.Errorf("device id must be 16 hex digits (8 bytes), got %d", len(clean))
	}
	dst := make([]byte, 8)
	if _, err := hex.Decode(dst, []byte(clean)); err != nil {
		return nil, fmt.Errorf("invalid device id hex: %w", err)
	}
	return dst, nil
}

// ParsePasswordHex decodes a 32-hex-digit password.
func ParsePasswordHex(input string) ([]byte, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	clean := stripSeparators(input)
	if len(clean) != 32 {
		return nil, fmt.Errorf("password must be 32 hex digits (16 bytes), got %d", len(clean))
	}
	dst := make([]byte, 16)
	if _, err := hex.Decode(dst, []byte(clean)); err != nil {
		return nil, fmt.Errorf("invalid password hex: %w", err)
	}
	return dst, nil
}

// NormalizePassword returns the raw bytes of a text password, which must
// be exactly 16 bytes long.
func NormalizePassword(input string) ([]byte, error) {
	if input == "" {
		return nil, nil
	}
	if len(input) != 16 {
		return nil, fmt.Errorf("password must be 16 bytes, got %d", len(input))
	}
	return []byte(input), nil
}

// Resolve builds credentials from hex or text input. The hex password wins
// when both are given.
func Resolve(deviceIDHex, password, passwordHex string) (Credentials, error) {
	id, err := ParseDeviceIDHex(deviceIDHex)
	if err != nil {
		return Credentials{}, err
	}
	pw, err := ParsePasswordHex(passwordHex)
	if err != nil {
		return Credentials{}, err
	}
	if pw == nil {
		if pw, err = NormalizePassword(password); err != nil {
			return Credentials{}, err
		}
	}
	if (id == nil) != (pw == nil) {
		return Credentials{}, fmt.Errorf("device id and password must be supplied together")
	}
	return Credentials{DeviceID: id, Password: pw}, nil
}

func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == ':' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
