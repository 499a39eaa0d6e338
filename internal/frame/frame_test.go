package frame

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	raw := decodeHex(t, "0512FC5394C37C0004FFFC040CAC364200CDCBB8334C884F")
	fr, err := Parse(raw, FormatV5)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if fr.Format != FormatV5 {
		t.Fatalf("format mismatch: %s", fr.Format)
	}
	raw[1] = 0x00
	if fr.Raw[1] != 0x12 {
		t.Fatalf("frame shares the caller's buffer")
	}
}

func TestParseMismatch(t *testing.T) {
	v5 := decodeHex(t, "0512FC5394C37C0004FFFC040CAC364200CDCBB8334C884F")
	cases := []struct {
		name   string
		raw    []byte
		format Format
	}{
		{"wrong tag", v5, FormatV8},
		{"wrong length", v5[:18], FormatV5},
		{"c5 tag on v5 length", append([]byte{0xC5}, v5[1:]...), FormatC5},
		{"empty", nil, FormatV3},
		{"unknown format", v5, Format(0x04)},
	}
	for _, tc := range cases {
		_, err := Parse(tc.raw, tc.format)
		if !errors.Is(err, ErrFormatMismatch) {
			t.Fatalf("%s: expected ErrFormatMismatch, got %v", tc.name, err)
		}
	}
}

func TestFormatMetadata(t *testing.T) {
	lengths := map[Format]int{FormatV3: 14, FormatV5: 24, FormatC5: 18, FormatV8: 24}
	for f, want := range lengths {
		if got := f.Length(); got != want {
			t.Fatalf("%s length: got %d want %d", f, got, want)
		}
	}
	if !FormatV8.Encrypted() || FormatV5.Encrypted() {
		t.Fatalf("only v8 is encrypted")
	}
	if got := Format(0x42).String(); got != "0x42" {
		t.Fatalf("unknown format name: %s", got)
	}
}

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex decode: %v", err)
	}
	return b
}
