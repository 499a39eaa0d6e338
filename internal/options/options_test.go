package options

import (
	"bytes"
	"context"
	"testing"
)

func TestParseDeviceIDHex(t *testing.T) {
	id, err := ParseDeviceIDHex(" aa:bb:cc:dd-ee:ff:00:11 ")
	if err != nil {
		t.Fatalf("ParseDeviceIDHex: %v", err)
	}
	if !bytes.Equal(id, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x00, 0x11}) {
		t.Fatalf("unexpected id %X", id)
	}
	if _, err := ParseDeviceIDHex("aabbcc"); err == nil {
		t.Fatalf("expected error for short id")
	}
	if _, err := ParseDeviceIDHex("zzbbccddeeff0011"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
	if id, err := ParseDeviceIDHex("   "); err != nil || id != nil {
		t.Fatalf("blank input: got %X, %v", id, err)
	}
}

func TestResolve(t *testing.T) {
	c, err := Resolve("AABBCCDDEEFF0011", "RuuviComRuuviTag", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(c.Password) != "RuuviComRuuviTag" {
		t.Fatalf("unexpected password %q", c.Password)
	}

	c, err = Resolve("AABBCCDDEEFF0011", "ignored", "5275757669436F6D5275757669546167")
	if err != nil {
		t.Fatalf("Resolve hex: %v", err)
	}
	if string(c.Password) != "RuuviComRuuviTag" {
		t.Fatalf("unexpected hex password %q", c.Password)
	}

	if _, err := Resolve("AABBCCDDEEFF0011", "short", ""); err == nil {
		t.Fatalf("expected error for short password")
	}
	if _, err := Resolve("AABBCCDDEEFF0011", "", ""); err == nil {
		t.Fatalf("expected error for missing password")
	}
	if c, err := Resolve("", "", ""); err != nil || c.DeviceID != nil {
		t.Fatalf("empty input: got %+v, %v", c, err)
	}
}

func TestCredentialsContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := CredentialsFrom(ctx); ok {
		t.Fatalf("unexpected credentials in empty context")
	}
	id := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	ctx = WithCredentials(ctx, Credentials{DeviceID: id, Password: []byte("RuuviComRuuviTag")})
	id[0] = 0xFF
	c, ok := CredentialsFrom(ctx)
	if !ok {
		t.Fatalf("credentials missing from context")
	}
	if c.DeviceID[0] != 1 {
		t.Fatalf("context shares the caller's buffer")
	}
}
