package driver

import (
	"net"

	"github.com/d21d3q/goruuvi/internal/codec"
	"github.com/d21d3q/goruuvi/internal/frame"
)

// Decoder is implemented by every payload format.
type Decoder interface {
	Format() frame.Format
	// Decode returns the decoded reading. Absent fields are nil; an error
	// means the whole payload could not be decoded.
	Decode() (Reading, error)
	// Address returns the device address, nil when not reported.
	Address() net.HardwareAddr
}

// PartialReporter can supply the cleartext fields when decoding fails.
type PartialReporter interface {
	PartialFields() map[string]any
}

// Field layouts shared by the v5, c5 and v8 formats.
var (
	TemperatureSpec  = codec.Scale(0.005, 0).WithInvalid(0x8000)
	HumiditySpec     = codec.Scale(0.0025, 0).WithInvalid(0xFFFF)
	PressureSpec     = codec.Scale(0.01, 50000).WithInvalid(0xFFFF)
	AccelerationSpec = codec.Scale(0.001, 0).WithInvalid(0x8000)
	TxPowerSpec      = codec.Scale(2, -20).WithInvalid(31)
	BatterySpec      = codec.Scale(0.001, 1600).WithInvalid(2047)
)

// DecodePower splits the power info word into tx power (bits 0-4) and
// battery voltage (bits 5-15).
func DecodePower(word uint16) (txPowerDBm, batteryV *float64) {
	txPowerDBm = codec.Bitmasked(word, 0x001F, TxPowerSpec)
	batteryV = codec.Bitmasked(word>>5, 0x07FF, BatterySpec)
	return txPowerDBm, batteryV
}
