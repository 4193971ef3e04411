// Package max7219 drives a daisy chain of MAX7219 8x8 LED matrix controllers
// over SPI.
package max7219

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Register addresses
const (
	regNoop        byte = 0x00
	regDigit0      byte = 0x01
	regDecodeMode  byte = 0x09
	regIntensity   byte = 0x0A
	regScanLimit   byte = 0x0B
	regShutdown    byte = 0x0C
	regDisplayTest byte = 0x0F
)

const (
	digits       = 8
	maxIntensity = 15
)

// Driver addresses every device on one chain. Device 0 is the controller
// closest to the SPI master.
type Driver struct {
	conn    spi.Conn
	devices int
	rows    [][digits]byte
	closer  interface{ Close() error }
	err     error
}

// Open connects to the named SPI port ("" picks the first one) and brings
// up a chain of devices.
func Open(port string, hz physic.Frequency, devices int) (*Driver, error) {
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("failed to open spi port %q: %w", port, err)
	}

	conn, err := p.Connect(hz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to connect to spi port %q: %w", port, err)
	}

	d, err := New(conn, devices)
	if err != nil {
		p.Close()
		return nil, err
	}
	d.closer = p
	return d, nil
}

// New runs the power-up sequence on every device of the chain. Devices are
// left in shutdown with blank rows.
func New(conn spi.Conn, devices int) (*Driver, error) {
	if devices < 1 {
		return nil, fmt.Errorf("invalid device count %d", devices)
	}

	d := &Driver{
		conn:    conn,
		devices: devices,
		rows:    make([][digits]byte, devices),
	}

	for dev := 0; dev < devices; dev++ {
		d.write(dev, regDisplayTest, 0)
		d.write(dev, regScanLimit, digits-1)
		d.write(dev, regDecodeMode, 0)
		d.ClearDisplay(dev)
		d.Shutdown(dev, true)
	}
	if d.err != nil {
		return nil, fmt.Errorf("failed to initialize max7219 chain: %w", d.err)
	}

	log.Debug().
		Str("conn", conn.String()).
		Int("devices", devices).
		Msg("MAX7219 chain initialized")

	return d, nil
}

// Close releases the SPI port when the driver opened it.
func (d *Driver) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Err returns the last transport error, if any.
func (d *Driver) Err() error {
	return d.err
}

func (d *Driver) SetRow(device, row int, value byte) {
	if !d.valid(device, row, 0) {
		return
	}
	d.rows[device][row] = value
	d.write(device, regDigit0+byte(row), value)
}

func (d *Driver) SetLed(device, row, column int, on bool) {
	if !d.valid(device, row, column) {
		return
	}
	mask := byte(0x80) >> column
	if on {
		d.rows[device][row] |= mask
	} else {
		d.rows[device][row] &^= mask
	}
	d.write(device, regDigit0+byte(row), d.rows[device][row])
}

// Shutdown blanks the device in hardware when on is true. The chip's digit
// registers and the driver's shadow rows keep their contents, so waking the
// device shows the same rows again.
func (d *Driver) Shutdown(device int, on bool) {
	if !d.valid(device, 0, 0) {
		return
	}
	var v byte = 1
	if on {
		v = 0
	}
	d.write(device, regShutdown, v)
}

func (d *Driver) ClearDisplay(device int) {
	if !d.valid(device, 0, 0) {
		return
	}
	for row := 0; row < digits; row++ {
		d.rows[device][row] = 0
		d.write(device, regDigit0+byte(row), 0)
	}
}

func (d *Driver) SetIntensity(device, level int) {
	if !d.valid(device, 0, 0) {
		return
	}
	if level < 0 || level > maxIntensity {
		log.Warn().Int("device", device).Int("level", level).Msg("Intensity out of range, ignoring")
		return
	}
	d.write(device, regIntensity, byte(level))
}

func (d *Driver) valid(device, row, column int) bool {
	if device < 0 || device >= d.devices || row < 0 || row >= digits || column < 0 || column >= digits {
		log.Debug().
			Int("device", device).
			Int("row", row).
			Int("column", column).
			Msg("Ignoring out of range max7219 write")
		return false
	}
	return true
}

// frame builds the bytes for one register write to device. The first pair
// shifted out lands in the device farthest down the chain, so device k sits
// at pair devices-1-k; every other device receives a no-op.
func (d *Driver) frame(device int, reg, data byte) []byte {
	buf := make([]byte, 2*d.devices)
	for i := 0; i < d.devices; i++ {
		buf[2*i] = regNoop
	}
	slot := 2 * (d.devices - 1 - device)
	buf[slot] = reg
	buf[slot+1] = data
	return buf
}

func (d *Driver) write(device int, reg, data byte) {
	if err := d.conn.Tx(d.frame(device, reg, data), nil); err != nil {
		d.err = err
		log.Error().
			Err(err).
			Int("device", device).
			Uint8("register", reg).
			Msg("Failed to write max7219 register")
	}
}
