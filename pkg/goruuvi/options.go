package goruuvi

import (
	"context"

	internalopts "github.com/d21d3q/goruuvi/internal/options"
)

// Credentials unlock a format 8 payload.
type Credentials = internalopts.Credentials

// Keyring resolves credentials by the cleartext device address.
type Keyring = internalopts.Keyring

// AnalyzeOptions configures AnalyzeHexWithOptions. DeviceIDHex and one of
// Password or PasswordHex are needed for format 8 payloads unless the
// context already carries credentials or Keyring knows the device.
type AnalyzeOptions struct {
	DeviceIDHex string
	Password    string
	PasswordHex string
	Keyring     Keyring
}

// WithCredentials returns a context carrying credentials for AnalyzeHex.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	return internalopts.WithCredentials(ctx, c)
}

func (opts AnalyzeOptions) toInternal(ctx context.Context) (context.Context, error) {
	creds, err := internalopts.Resolve(opts.DeviceIDHex, opts.Password, opts.PasswordHex)
	if err != nil {
		return ctx, err
	}
	return internalopts.WithCredentials(ctx, creds), nil
}
