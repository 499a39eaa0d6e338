package goruuvi

import (
	"errors"
	"fmt"

	"github.com/d21d3q/goruuvi/internal/crypto"
	"github.com/d21d3q/goruuvi/internal/driver"
	"github.com/d21d3q/goruuvi/internal/driver/df3"
	"github.com/d21d3q/goruuvi/internal/driver/df5"
	"github.com/d21d3q/goruuvi/internal/driver/df8"
	"github.com/d21d3q/goruuvi/internal/frame"
)

type (
	// Decoder exposes the decoded reading of one payload.
	Decoder = driver.Decoder
	// Reading holds the decoded fields; absent values are nil.
	Reading = driver.Reading
	// Format is the leading tag byte of a payload.
	Format = frame.Format
)

const (
	FormatV3 = frame.FormatV3
	FormatV5 = frame.FormatV5
	FormatC5 = frame.FormatC5
	FormatV8 = frame.FormatV8

	// ManufacturerID identifies these advertisements; decoding does not use it.
	ManufacturerID = frame.ManufacturerID
)

var (
	ErrNoDecoder           = errors.New("no decoder found")
	ErrMalformedInput      = errors.New("raw data must be a byte slice or a binary string")
	ErrCredentialsRequired = crypto.ErrCredentialsRequired
	ErrFormatMismatch      = frame.ErrFormatMismatch
	ErrInvalidDeviceID     = crypto.ErrInvalidDeviceID
	ErrInvalidPassword     = crypto.ErrInvalidPassword
	ErrChecksumMismatch    = crypto.ErrChecksumMismatch
)

// candidates lists the formats the selector tries, in priority order.
// Format 8 is absent: it cannot be decoded without credentials.
var candidates = []struct {
	format Format
	build  func([]byte) (Decoder, error)
}{
	{FormatV5, NewV5},
	{FormatC5, NewC5},
	{FormatV3, NewV3},
}

// Decode selects the first unencrypted format matching raw. A format 8
// payload yields ErrCredentialsRequired; use NewV8 for those.
func Decode(raw []byte) (Decoder, error) {
	for _, c := range candidates {
		if c.format.Detect(raw) {
			return c.build(raw)
		}
	}
	if df8.Detect(raw) {
		return nil, ErrCredentialsRequired
	}
	return nil, ErrNoDecoder
}

// DecodeValue normalizes v with Bytes and then calls Decode.
func DecodeValue(v any) (Decoder, error) {
	raw, err := Bytes(v)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// NewV3 decodes a 14-byte data format 3 payload.
func NewV3(raw []byte) (Decoder, error) {
	d, err := df3.New(raw)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// NewV5 decodes a 24-byte data format 5 payload.
func NewV5(raw []byte) (Decoder, error) {
	d, err := df5.NewV5(raw)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// NewC5 decodes an 18-byte C5 payload.
func NewC5(raw []byte) (Decoder, error) {
	d, err := df5.NewC5(raw)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// NewV8 prepares a 24-byte encrypted data format 8 payload. deviceID must
// be 8 bytes and password 16 bytes. Decryption and the CRC-8 check happen
// on the first Decode call.
func NewV8(raw, deviceID, password []byte) (Decoder, error) {
	d, err := df8.New(raw, deviceID, password)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Bytes normalizes the supported raw payload containers: []byte, a binary
// string, or []int / []uint16 with every element in 0..255.
func Bytes(v any) ([]byte, error) {
	switch raw := v.(type) {
	case []byte:
		return raw, nil
	case string:
		return []byte(raw), nil
	case []int:
		out := make([]byte, len(raw))
		for i, n := range raw {
			if n < 0 || n > 0xFF {
				return nil, fmt.Errorf("%w: element %d is %d", ErrMalformedInput, i, n)
			}
			out[i] = byte(n)
		}
		return out, nil
	case []uint16:
		out := make([]byte, len(raw))
		for i, n := range raw {
			if n > 0xFF {
				return nil, fmt.Errorf("%w: element %d is %d", ErrMalformedInput, i, n)
			}
			out[i] = byte(n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrMalformedInput, v)
	}
}
