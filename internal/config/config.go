package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/d21d3q/goruuvi/internal/options"
)

// PasswordEnv overrides the password of every configured device when set.
const PasswordEnv = "GORUUVI_PASSWORD"

// Config lists the encrypted devices the analyzer can unlock.
type Config struct {
	Devices []DeviceConfig `yaml:"devices"`

	byAddress map[string]options.Credentials
}

// DeviceConfig represents one device's credentials.
type DeviceConfig struct {
	Name        string `yaml:"name"`
	Address     string `yaml:"address"`
	DeviceID    string `yaml:"device_id"`
	Password    string `yaml:"password"`
	PasswordHex string `yaml:"password_hex"`
}

// Load reads and validates a YAML config file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyEnvOverrides()
	if err := cfg.index(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if pw := os.Getenv(PasswordEnv); pw != "" {
		for i := range c.Devices {
			c.Devices[i].Password = pw
			c.Devices[i].PasswordHex = ""
		}
	}
}

func (c *Config) index() error {
	c.byAddress = make(map[string]options.Credentials, len(c.Devices))
	for i, dev := range c.Devices {
		label := dev.Name
		if label == "" {
			label = fmt.Sprintf("devices[%d]", i)
		}
		addr, err := net.ParseMAC(strings.TrimSpace(dev.Address))
		if err != nil || len(addr) != 6 {
			return fmt.Errorf("%s: invalid address %q", label, dev.Address)
		}
		creds, err := options.Resolve(dev.DeviceID, dev.Password, dev.PasswordHex)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		if creds.DeviceID == nil {
			return fmt.Errorf("%s: device_id and password are required", label)
		}
		key := addr.String()
		if _, dup := c.byAddress[key]; dup {
			return fmt.Errorf("%s: duplicate address %s", label, key)
		}
		c.byAddress[key] = creds
	}
	return nil
}

// Credentials implements options.Keyring.
func (c *Config) Credentials(addr net.HardwareAddr) (options.Credentials, bool) {
	if c == nil || addr == nil {
		return options.Credentials{}, false
	}
	creds, ok := c.byAddress[addr.String()]
	return creds, ok
}
