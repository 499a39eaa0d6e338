package df3

import (
	"net"

	"github.com/d21d3q/goruuvi/internal/codec"
	"github.com/d21d3q/goruuvi/internal/driver"
	"github.com/d21d3q/goruuvi/internal/frame"
)

// Data format 3 carries no sentinels: firmware of that generation reports
// every channel.
var (
	humiditySpec     = codec.Scale(0.5, 0)
	pressureSpec     = codec.Scale(0.01, 50000)
	accelerationSpec = codec.Scale(0.001, 0)
	batterySpec      = codec.Scale(0.001, 0)
)

// Driver decodes 14-byte data format 3 payloads.
type Driver struct {
	reading driver.Reading
}

var _ driver.Decoder = (*Driver)(nil)

// Detect reports whether raw is a format 3 payload.
func Detect(raw []byte) bool { return frame.FormatV3.Detect(raw) }

// New validates raw and decodes every field.
func New(raw []byte) (*Driver, error) {
	fr, err := frame.Parse(raw, frame.FormatV3)
	if err != nil {
		return nil, err
	}
	return &Driver{reading: decode(fr.Raw)}, nil
}

// Format returns frame.FormatV3.
func (*Driver) Format() frame.Format { return frame.FormatV3 }

// Decode returns the reading decoded at construction.
func (d *Driver) Decode() (driver.Reading, error) { return d.reading, nil }

// Address always returns nil; format 3 does not carry one.
func (*Driver) Address() net.HardwareAddr { return nil }

func decode(raw []byte) driver.Reading {
	return driver.Reading{
		Format:         frame.FormatV3,
		HumidityPct:    codec.Byte(raw[1], humiditySpec),
		TemperatureC:   temperature(raw[2], raw[3]),
		PressureHPa:    codec.Unsigned16(raw[4:6], pressureSpec),
		AccelerationXG: codec.Signed16(raw[6:8], accelerationSpec),
		AccelerationYG: codec.Signed16(raw[8:10], accelerationSpec),
		AccelerationZG: codec.Signed16(raw[10:12], accelerationSpec),
		BatteryV:       codec.Unsigned16(raw[12:14], batterySpec),
	}
}

// temperature decodes the sign-magnitude encoding: bit 7 of whole is the
// sign, bits 0-6 whole degrees, fraction hundredths of a degree.
func temperature(whole, fraction byte) *float64 {
	sign := 1.0
	if whole&0x80 != 0 {
		sign = -1
	}
	degrees := whole & 0x7F
	if degrees > 127 || fraction > 99 {
		return nil
	}
	v := sign * (float64(degrees) + float64(fraction)*0.01)
	return &v
}
