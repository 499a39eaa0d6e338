package driver

import (
	"net"
	"strings"
	"testing"

	"github.com/d21d3q/goruuvi/internal/frame"
)

func ptr[T any](v T) *T { return &v }

func TestFieldsOmitsAbsent(t *testing.T) {
	r := Reading{
		Format:          frame.FormatV8,
		TemperatureC:    ptr(24.3),
		MovementCounter: ptr(uint16(6607)),
		AccelerationXG:  ptr(1.0),
		Address:         net.HardwareAddr{0xCB, 0xB8, 0x33, 0x4C, 0x88, 0x4F},
	}
	fields := r.Fields()
	if len(fields) != 3 {
		t.Fatalf("unexpected fields %v", fields)
	}
	if fields["temperature_c"] != 24.3 {
		t.Fatalf("temperature: %v", fields["temperature_c"])
	}
	if fields["movement_counter"] != uint16(6607) {
		t.Fatalf("movement_counter: %v", fields["movement_counter"])
	}
	if fields["mac_address"] != "cb:b8:33:4c:88:4f" {
		t.Fatalf("mac_address: %v", fields["mac_address"])
	}
	if _, ok := fields["acceleration_x_g"]; ok {
		t.Fatalf("v8 reading exposed acceleration")
	}
}

func TestStringListsFormatFields(t *testing.T) {
	r := Reading{
		Format:       frame.FormatV3,
		TemperatureC: ptr(26.3),
		PressureHPa:  ptr(1155.3500000000001),
	}
	got := r.String()
	want := []string{
		"format: v3",
		"temperature: 26.3 C",
		"humidity: -",
		"pressure: 1155.35 hPa",
		"acceleration_x: -",
		"acceleration_y: -",
		"acceleration_z: -",
		"battery: -",
	}
	if got != strings.Join(want, "\n") {
		t.Fatalf("summary mismatch:\n%s", got)
	}
}

func TestDecodePower(t *testing.T) {
	tx, battery := DecodePower(0xFFDE)
	if tx == nil || *tx != 20 {
		t.Fatalf("tx power: got %v want 20", tx)
	}
	if battery == nil || *battery < 3.6459 || *battery > 3.6461 {
		t.Fatalf("battery: got %v want 3.646", battery)
	}
	tx, battery = DecodePower(0xFFFF)
	if tx != nil || battery != nil {
		t.Fatalf("sentinel power word decoded as %v / %v", tx, battery)
	}
}
