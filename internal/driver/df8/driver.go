package df8

import (
	"net"
	"sync"

	"github.com/d21d3q/goruuvi/internal/codec"
	"github.com/d21d3q/goruuvi/internal/crypto"
	"github.com/d21d3q/goruuvi/internal/driver"
	"github.com/d21d3q/goruuvi/internal/frame"
)

// Offsets into the raw payload.
const (
	cipherStart = 1
	cipherEnd   = 17
	crcOffset   = 17
	addrOffset  = 18
)

// Driver decodes encrypted data format 8 payloads. Decryption runs on the
// first Decode call and its result, including an integrity failure, is kept
// for the lifetime of the driver.
type Driver struct {
	raw []byte
	key []byte

	once    sync.Once
	reading driver.Reading
	err     error
}

var (
	_ driver.Decoder         = (*Driver)(nil)
	_ driver.PartialReporter = (*Driver)(nil)
)

// Detect reports whether raw is a format 8 payload.
func Detect(raw []byte) bool { return frame.FormatV8.Detect(raw) }

// New validates the payload and credentials and derives the AES key. It
// does not decrypt.
func New(raw, deviceID, password []byte) (*Driver, error) {
	fr, err := frame.Parse(raw, frame.FormatV8)
	if err != nil {
		return nil, err
	}
	key, err := crypto.DeriveKey(password, deviceID)
	if err != nil {
		return nil, err
	}
	return &Driver{raw: fr.Raw, key: key}, nil
}

// Format returns frame.FormatV8.
func (*Driver) Format() frame.Format { return frame.FormatV8 }

// Decode decrypts the payload, verifies its CRC-8 and decodes the fields.
// It returns crypto.ErrChecksumMismatch on every call when the key, device
// id or payload is wrong.
func (d *Driver) Decode() (driver.Reading, error) {
	d.once.Do(func() {
		d.reading, d.err = d.decode()
	})
	return d.reading, d.err
}

// Address reads the cleartext device address; it never decrypts.
func (d *Driver) Address() net.HardwareAddr {
	return codec.Address(d.raw[addrOffset : addrOffset+6])
}

// PartialFields implements driver.PartialReporter.
func (d *Driver) PartialFields() map[string]any {
	fields := map[string]any{}
	if addr := d.Address(); addr != nil {
		fields["mac_address"] = addr.String()
	}
	return fields
}

func (d *Driver) decode() (driver.Reading, error) {
	plain, err := crypto.Open(d.key, d.raw[cipherStart:cipherEnd], d.raw[crcOffset])
	if err != nil {
		return driver.Reading{}, err
	}
	r := driver.Reading{
		Format:          frame.FormatV8,
		TemperatureC:    codec.Signed16(plain[0:2], driver.TemperatureSpec),
		HumidityPct:     codec.Unsigned16(plain[2:4], driver.HumiditySpec),
		PressureHPa:     codec.Unsigned16(plain[4:6], driver.PressureSpec),
		MovementCounter: codec.Counter(plain[8:10], 0xFFFF),
		SequenceNumber:  codec.Counter(plain[10:12], 0xFFFF),
		Address:         d.Address(),
	}
	r.TxPowerDBm, r.BatteryV = driver.DecodePower(codec.Word(plain[6:8]))
	return r, nil
}
