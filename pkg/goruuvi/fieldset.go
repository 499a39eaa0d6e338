package goruuvi

import (
	"errors"
	"fmt"
	"net"
)

// ErrFieldMissing is returned by FieldSet accessors when the field was not
// decoded, either because the format lacks it or the sensor sent a sentinel.
var ErrFieldMissing = errors.New("field missing")

// FieldSet offers typed access to a Result's present fields.
type FieldSet struct {
	data map[string]any
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields}
}

// Map exposes the underlying map.
func (fs FieldSet) Map() map[string]any {
	return fs.data
}

// Has reports whether the field is present.
func (fs FieldSet) Has(key string) bool {
	_, ok := fs.data[key]
	return ok
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	v, ok := fs.data[key]
	return v, ok
}

func (fs FieldSet) lookup(key string) (any, error) {
	v, ok := fs.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldMissing, key)
	}
	return v, nil
}

// Float returns a measurement such as temperature_c or battery_v.
// Counters are widened.
func (fs FieldSet) Float(key string) (float64, error) {
	v, err := fs.lookup(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case uint16:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("field %q is %T, not a measurement", key, v)
	}
}

// Counter returns movement_counter or sequence_number.
func (fs FieldSet) Counter(key string) (uint16, error) {
	v, err := fs.lookup(key)
	if err != nil {
		return 0, err
	}
	n, ok := v.(uint16)
	if !ok {
		return 0, fmt.Errorf("field %q is %T, not a counter", key, v)
	}
	return n, nil
}

// Address returns the decoded mac_address.
func (fs FieldSet) Address() (net.HardwareAddr, error) {
	v, err := fs.lookup("mac_address")
	if err != nil {
		return nil, err
	}
	switch a := v.(type) {
	case net.HardwareAddr:
		return a, nil
	case string:
		return net.ParseMAC(a)
	default:
		return nil, fmt.Errorf("field \"mac_address\" is %T", v)
	}
}

// String returns a text field such as encryption or error.
func (fs FieldSet) String(key string) (string, error) {
	v, err := fs.lookup(key)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}
