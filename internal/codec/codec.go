package codec

import (
	"encoding/binary"
	"net"
)

// Spec describes how a raw field value maps to a physical unit:
// (raw + Offset) * Multiplier. When HasInvalid is set, a raw value equal to
// Invalid means the sensor did not report the field.
type Spec struct {
	Multiplier float64
	Offset     float64
	Invalid    uint16
	HasInvalid bool
}

// Raw passes the field value through unscaled.
var Raw = Spec{Multiplier: 1}

// Scale returns a Spec without an invalid sentinel.
func Scale(multiplier, offset float64) Spec {
	return Spec{Multiplier: multiplier, Offset: offset}
}

// WithInvalid returns a copy of s that treats raw as "no reading".
func (s Spec) WithInvalid(raw uint16) Spec {
	s.Invalid = raw
	s.HasInvalid = true
	return s
}

func (s Spec) apply(raw float64) *float64 {
	v := (raw + s.Offset) * s.Multiplier
	return &v
}

// Unsigned16 decodes a big-endian unsigned 16-bit field. b must hold at
// least two bytes.
func Unsigned16(b []byte, s Spec) *float64 {
	raw := binary.BigEndian.Uint16(b)
	if s.HasInvalid && raw == s.Invalid {
		return nil
	}
	return s.apply(float64(raw))
}

// Signed16 decodes a big-endian two's-complement 16-bit field. The sentinel
// is compared against the unsigned bit pattern, e.g. 0x8000.
func Signed16(b []byte, s Spec) *float64 {
	raw := binary.BigEndian.Uint16(b)
	if s.HasInvalid && raw == s.Invalid {
		return nil
	}
	return s.apply(float64(int16(raw)))
}

// Byte decodes a single byte as the low half of an unsigned 16-bit field.
func Byte(b byte, s Spec) *float64 {
	return Unsigned16([]byte{0, b}, s)
}

// Bitmasked decodes value & mask. Callers shift value beforehand when the
// sub-field does not start at bit 0.
func Bitmasked(value, mask uint16, s Spec) *float64 {
	v := value & mask
	if s.HasInvalid && v == s.Invalid {
		return nil
	}
	return s.apply(float64(v))
}

// Word returns the raw big-endian 16-bit value of b.
func Word(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// Counter decodes an unscaled big-endian counter, nil when it equals invalid.
func Counter(b []byte, invalid uint16) *uint16 {
	raw := binary.BigEndian.Uint16(b)
	if raw == invalid {
		return nil
	}
	return &raw
}

// Address copies a 6-byte device address. All 0xFF means no address.
func Address(b []byte) net.HardwareAddr {
	if len(b) != 6 {
		return nil
	}
	unset := true
	for _, v := range b {
		if v != 0xFF {
			unset = false
			break
		}
	}
	if unset {
		return nil
	}
	addr := make(net.HardwareAddr, len(b))
	copy(addr, b)
	return addr
}
