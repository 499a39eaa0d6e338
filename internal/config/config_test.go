package config

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

const sample = `
devices:
  - name: sauna
    address: "CB:B8:33:4C:88:4F"
    device_id: "AABBCCDDEEFF0011"
    password: "RuuviComRuuviTag"
  - name: fridge
    address: "aa:bb:cc:dd:ee:01"
    device_id: "0102030405060708"
    password_hex: "5275757669436F6D5275757669546167"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(cfg.Devices))
	}
	addr, _ := net.ParseMAC("cb:b8:33:4c:88:4f")
	creds, ok := cfg.Credentials(addr)
	if !ok {
		t.Fatalf("credentials missing for %s", addr)
	}
	if string(creds.Password) != "RuuviComRuuviTag" || creds.DeviceID[0] != 0xAA {
		t.Fatalf("unexpected credentials %+v", creds)
	}
	addr, _ = net.ParseMAC("aa:bb:cc:dd:ee:01")
	if creds, ok := cfg.Credentials(addr); !ok || string(creds.Password) != "RuuviComRuuviTag" {
		t.Fatalf("hex password not resolved: %+v", creds)
	}
	addr, _ = net.ParseMAC("00:00:00:00:00:01")
	if _, ok := cfg.Credentials(addr); ok {
		t.Fatalf("unexpected credentials for unknown device")
	}
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"bad address":    "devices:\n  - address: nope\n    device_id: AABBCCDDEEFF0011\n    password: RuuviComRuuviTag\n",
		"short password": "devices:\n  - address: cb:b8:33:4c:88:4f\n    device_id: AABBCCDDEEFF0011\n    password: short\n",
		"missing id":     "devices:\n  - address: cb:b8:33:4c:88:4f\n",
		"duplicate": "devices:\n  - address: cb:b8:33:4c:88:4f\n    device_id: AABBCCDDEEFF0011\n    password: RuuviComRuuviTag\n" +
			"  - address: CB:B8:33:4C:88:4F\n    device_id: AABBCCDDEEFF0011\n    password: RuuviComRuuviTag\n",
		"not yaml": "devices: [",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestPasswordEnvOverride(t *testing.T) {
	t.Setenv(PasswordEnv, "0123456789abcdef")
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	addr, _ := net.ParseMAC("aa:bb:cc:dd:ee:01")
	creds, _ := cfg.Credentials(addr)
	if string(creds.Password) != "0123456789abcdef" {
		t.Fatalf("override not applied: %q", creds.Password)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goruuvi.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
