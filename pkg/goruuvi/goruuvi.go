package goruuvi

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/d21d3q/goruuvi/internal/codec"
	"github.com/d21d3q/goruuvi/internal/driver"
	"github.com/d21d3q/goruuvi/internal/options"
)

// Result captures the outcome of AnalyzeHex.
type Result struct {
	Format         string
	RawHex         string
	ByteCount      int
	ManufacturerID uint16
	Reading        *Reading
	Fields         map[string]any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"format":          r.Format,
		"byte_count":      r.ByteCount,
		"raw_hex":         r.RawHex,
		"manufacturer_id": fmt.Sprintf("0x%04X", r.ManufacturerID),
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("format: %s bytes:%d raw:%s (marshal error: %v)", r.Format, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// AnalyzeHex decodes a hex payload and returns its fields.
func AnalyzeHex(ctx context.Context, raw string) (Result, error) {
	return AnalyzeHexWithOptions(ctx, raw, AnalyzeOptions{})
}

// AnalyzeHexWithOptions decodes a hex payload with custom options. A format
// 8 payload without usable credentials, or failing its integrity check,
// yields only the cleartext fields plus an "encryption" or "error" entry.
func AnalyzeHexWithOptions(ctx context.Context, raw string, opts AnalyzeOptions) (Result, error) {
	ctx, err := opts.toInternal(ctx)
	if err != nil {
		return Result{}, err
	}
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Format:         "unknown",
		RawHex:         strings.ToUpper(hex.EncodeToString(data)),
		ByteCount:      len(data),
		ManufacturerID: ManufacturerID,
	}

	dec, err := Decode(data)
	if errors.Is(err, ErrCredentialsRequired) {
		result.Format = FormatV8.String()
		creds, ok := credentialsFor(ctx, data, opts.Keyring)
		if !ok {
			result.Fields = cleartextFields(data)
			result.Fields["encryption"] = err.Error()
			return result, nil
		}
		dec, err = NewV8(data, creds.DeviceID, creds.Password)
	}
	if err != nil {
		return result, err
	}
	result.Format = dec.Format().String()

	reading, err := dec.Decode()
	if err != nil {
		if reporter, ok := dec.(driver.PartialReporter); ok {
			partial := reporter.PartialFields()
			partial["error"] = err.Error()
			result.Fields = partial
			return result, nil
		}
		return result, err
	}
	result.Reading = &reading
	result.Fields = reading.Fields()
	return result, nil
}

func credentialsFor(ctx context.Context, data []byte, keyring Keyring) (Credentials, bool) {
	if creds, ok := options.CredentialsFrom(ctx); ok {
		return creds, true
	}
	if keyring == nil {
		return Credentials{}, false
	}
	addr := codec.Address(data[len(data)-6:])
	if addr == nil {
		return Credentials{}, false
	}
	return keyring.Credentials(addr)
}

func cleartextFields(data []byte) map[string]any {
	fields := map[string]any{}
	if addr := codec.Address(data[len(data)-6:]); addr != nil {
		fields["mac_address"] = addr.String()
	}
	return fields
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex payload must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
