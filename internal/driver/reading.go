package driver

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"

	"github.com/d21d3q/goruuvi/internal/frame"
)

// Reading is one decoded payload. Nil fields were not reported by the
// sensor or are not part of the format.
type Reading struct {
	Format          frame.Format     `json:"-"`
	TemperatureC    *float64         `json:"temperature_c,omitempty"`
	HumidityPct     *float64         `json:"humidity_pct,omitempty"`
	PressureHPa     *float64         `json:"pressure_hpa,omitempty"`
	AccelerationXG  *float64         `json:"acceleration_x_g,omitempty"`
	AccelerationYG  *float64         `json:"acceleration_y_g,omitempty"`
	AccelerationZG  *float64         `json:"acceleration_z_g,omitempty"`
	BatteryV        *float64         `json:"battery_v,omitempty"`
	TxPowerDBm      *float64         `json:"tx_power_dbm,omitempty"`
	MovementCounter *uint16          `json:"movement_counter,omitempty"`
	SequenceNumber  *uint16          `json:"sequence_number,omitempty"`
	Address         net.HardwareAddr `json:"-"`
}

type fieldDef struct {
	key   string
	label string
	unit  string
	value func(r Reading) (any, bool)
}

func float(p func(r Reading) *float64) func(Reading) (any, bool) {
	return func(r Reading) (any, bool) {
		v := p(r)
		if v == nil {
			return nil, false
		}
		return *v, true
	}
}

func counter(p func(r Reading) *uint16) func(Reading) (any, bool) {
	return func(r Reading) (any, bool) {
		v := p(r)
		if v == nil {
			return nil, false
		}
		return *v, true
	}
}

var (
	temperatureField = fieldDef{"temperature_c", "temperature", "C", float(func(r Reading) *float64 { return r.TemperatureC })}
	humidityField    = fieldDef{"humidity_pct", "humidity", "%", float(func(r Reading) *float64 { return r.HumidityPct })}
	pressureField    = fieldDef{"pressure_hpa", "pressure", "hPa", float(func(r Reading) *float64 { return r.PressureHPa })}
	accelXField      = fieldDef{"acceleration_x_g", "acceleration_x", "G", float(func(r Reading) *float64 { return r.AccelerationXG })}
	accelYField      = fieldDef{"acceleration_y_g", "acceleration_y", "G", float(func(r Reading) *float64 { return r.AccelerationYG })}
	accelZField      = fieldDef{"acceleration_z_g", "acceleration_z", "G", float(func(r Reading) *float64 { return r.AccelerationZG })}
	batteryField     = fieldDef{"battery_v", "battery", "V", float(func(r Reading) *float64 { return r.BatteryV })}
	txPowerField     = fieldDef{"tx_power_dbm", "tx_power", "dBm", float(func(r Reading) *float64 { return r.TxPowerDBm })}
	movementField    = fieldDef{"movement_counter", "movement_counter", "", counter(func(r Reading) *uint16 { return r.MovementCounter })}
	sequenceField    = fieldDef{"sequence_number", "sequence_number", "", counter(func(r Reading) *uint16 { return r.SequenceNumber })}
	addressField     = fieldDef{"mac_address", "mac_address", "", func(r Reading) (any, bool) {
		if r.Address == nil {
			return nil, false
		}
		return r.Address.String(), true
	}}
)

var formatFields = map[frame.Format][]fieldDef{
	frame.FormatV3: {
		temperatureField, humidityField, pressureField,
		accelXField, accelYField, accelZField, batteryField,
	},
	frame.FormatV5: {
		temperatureField, humidityField, pressureField,
		accelXField, accelYField, accelZField, batteryField,
		txPowerField, movementField, sequenceField, addressField,
	},
	frame.FormatC5: {
		temperatureField, humidityField, pressureField, batteryField,
		txPowerField, movementField, sequenceField, addressField,
	},
	frame.FormatV8: {
		temperatureField, humidityField, pressureField, batteryField,
		txPowerField, movementField, sequenceField, addressField,
	},
}

// Fields returns the present fields keyed by snake_case name.
func (r Reading) Fields() map[string]any {
	fields := make(map[string]any)
	for _, def := range formatFields[r.Format] {
		if v, ok := def.value(r); ok {
			fields[def.key] = v
		}
	}
	return fields
}

// String renders every field of the format, one per line, with "-" for
// absent values.
func (r Reading) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "format: %s\n", r.Format)
	for _, def := range formatFields[r.Format] {
		text := "-"
		if v, ok := def.value(r); ok {
			text = formatValue(v)
			if def.unit != "" {
				text += " " + def.unit
			}
		}
		fmt.Fprintf(&b, "%s: %s\n", def.label, text)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatValue(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(math.Round(n*1e4)/1e4, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
