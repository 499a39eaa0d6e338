package frame

import (
	"errors"
	"fmt"
)

// ManufacturerID is the Bluetooth SIG company identifier callers match on
// before handing the manufacturer-specific payload to a decoder.
const ManufacturerID uint16 = 0x0499

// Format is the leading tag byte of a payload.
type Format byte

const (
	FormatV3 Format = 0x03
	FormatV5 Format = 0x05
	FormatV8 Format = 0x08
	FormatC5 Format = 0xC5
)

// ErrFormatMismatch reports a payload whose length or tag does not match
// the format it was handed to.
var ErrFormatMismatch = errors.New("data is not valid for this format")

var formatLengths = map[Format]int{
	FormatV3: 14,
	FormatV5: 24,
	FormatC5: 18,
	FormatV8: 24,
}

// String returns the short format name.
func (f Format) String() string {
	switch f {
	case FormatV3:
		return "v3"
	case FormatV5:
		return "v5"
	case FormatC5:
		return "c5"
	case FormatV8:
		return "v8"
	default:
		return fmt.Sprintf("0x%02X", byte(f))
	}
}

// Length returns the total payload length including the tag byte, or 0 for
// unknown formats.
func (f Format) Length() int {
	return formatLengths[f]
}

// Encrypted reports whether decoding the format needs credentials.
func (f Format) Encrypted() bool {
	return f == FormatV8
}

// Detect reports whether raw has the exact length and tag byte of f.
func (f Format) Detect(raw []byte) bool {
	n := f.Length()
	return n > 0 && len(raw) == n && raw[0] == byte(f)
}

// Frame is a payload that passed detection for its format.
type Frame struct {
	Format Format
	Raw    []byte
}

// Parse validates raw against f and returns a frame holding a private copy
// of the bytes.
func Parse(raw []byte, f Format) (Frame, error) {
	if !f.Detect(raw) {
		return Frame{}, fmt.Errorf("%w: %s expects %d bytes with tag 0x%02X, got %s",
			ErrFormatMismatch, f, f.Length(), byte(f), describe(raw))
	}
	buf := make([]byte, len(raw))
	copy(buf, raw)
	return Frame{Format: f, Raw: buf}, nil
}

func describe(raw []byte) string {
	if len(raw) == 0 {
		return "0 bytes"
	}
	return fmt.Sprintf("%d bytes with tag 0x%02X", len(raw), raw[0])
}
