package df5

import (
	"net"

	"github.com/d21d3q/goruuvi/internal/codec"
	"github.com/d21d3q/goruuvi/internal/driver"
	"github.com/d21d3q/goruuvi/internal/frame"
)

const noAcceleration = -1

// Layout holds the byte offsets of each field. C5 is the V5 layout without
// the acceleration block.
type Layout struct {
	Format       frame.Format
	Temperature  int
	Humidity     int
	Pressure     int
	Acceleration int
	Power        int
	Movement     int
	Sequence     int
	Address      int
}

var (
	V5 = Layout{
		Format:       frame.FormatV5,
		Temperature:  1,
		Humidity:     3,
		Pressure:     5,
		Acceleration: 7,
		Power:        13,
		Movement:     15,
		Sequence:     16,
		Address:      18,
	}
	C5 = Layout{
		Format:       frame.FormatC5,
		Temperature:  1,
		Humidity:     3,
		Pressure:     5,
		Acceleration: noAcceleration,
		Power:        7,
		Movement:     9,
		Sequence:     10,
		Address:      12,
	}
)

// 0xFF marks a missing one-byte movement counter.
const movementInvalid = 0xFF

// Driver decodes data format 5 (24 bytes) and C5 (18 bytes) payloads.
type Driver struct {
	layout  Layout
	reading driver.Reading
}

var _ driver.Decoder = (*Driver)(nil)

// NewV5 validates and decodes a data format 5 payload.
func NewV5(raw []byte) (*Driver, error) { return New(raw, V5) }

// NewC5 validates and decodes a C5 payload.
func NewC5(raw []byte) (*Driver, error) { return New(raw, C5) }

// New validates raw against the layout's format and decodes every field.
func New(raw []byte, layout Layout) (*Driver, error) {
	fr, err := frame.Parse(raw, layout.Format)
	if err != nil {
		return nil, err
	}
	return &Driver{layout: layout, reading: layout.decode(fr.Raw)}, nil
}

// Format returns the layout's format.
func (d *Driver) Format() frame.Format { return d.layout.Format }

// Decode returns the reading decoded at construction.
func (d *Driver) Decode() (driver.Reading, error) { return d.reading, nil }

// Address returns the device address, nil when all bytes are 0xFF.
func (d *Driver) Address() net.HardwareAddr { return d.reading.Address }

func (l Layout) decode(raw []byte) driver.Reading {
	r := driver.Reading{
		Format:       l.Format,
		TemperatureC: codec.Signed16(raw[l.Temperature:l.Temperature+2], driver.TemperatureSpec),
		HumidityPct:  codec.Unsigned16(raw[l.Humidity:l.Humidity+2], driver.HumiditySpec),
		PressureHPa:  codec.Unsigned16(raw[l.Pressure:l.Pressure+2], driver.PressureSpec),
		Address:      codec.Address(raw[l.Address : l.Address+6]),
	}
	if l.Acceleration != noAcceleration {
		a := l.Acceleration
		r.AccelerationXG = codec.Signed16(raw[a:a+2], driver.AccelerationSpec)
		r.AccelerationYG = codec.Signed16(raw[a+2:a+4], driver.AccelerationSpec)
		r.AccelerationZG = codec.Signed16(raw[a+4:a+6], driver.AccelerationSpec)
	}
	r.TxPowerDBm, r.BatteryV = driver.DecodePower(codec.Word(raw[l.Power : l.Power+2]))
	r.MovementCounter = codec.Counter([]byte{0, raw[l.Movement]}, movementInvalid)
	r.SequenceNumber = codec.Counter(raw[l.Sequence:l.Sequence+2], 0xFFFF)
	return r
}
