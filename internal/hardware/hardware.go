package hardware

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/thatsimonsguy/r2fx-body/internal/config"
	"github.com/thatsimonsguy/r2fx-body/internal/max7219"
	"github.com/thatsimonsguy/r2fx-body/internal/panel"
)

var hostInit = host.Init

var openChain = func(port string, hz physic.Frequency, devices int) (panel.Driver, func() error, error) {
	d, err := max7219.Open(port, hz, devices)
	if err != nil {
		return nil, nil, err
	}
	return d, d.Close, nil
}

// OpenDriver returns the display driver for cfg and a func that releases it.
// Safe mode never touches the SPI bus.
func OpenDriver(cfg *config.Config) (panel.Driver, func() error, error) {
	if cfg.SafeMode {
		log.Warn().Msg("SAFE MODE ENABLED - display writes are logged, not sent")
		return panel.LogDriver{}, func() error { return nil }, nil
	}

	if _, err := hostInit(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	hz := physic.Frequency(cfg.SPIHz) * physic.Hertz
	drv, closeFn, err := openChain(cfg.SPIPort, hz, cfg.Devices)
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("spi_port", cfg.SPIPort).
		Str("spi_hz", hz.String()).
		Int("devices", cfg.Devices).
		Msg("Display chain opened")

	return drv, closeFn, nil
}

// DriverErr reports the last transport error recorded by drv. Drivers that
// cannot fail, such as the safe mode logger, always report nil.
func DriverErr(drv panel.Driver) error {
	if r, ok := drv.(interface{ Err() error }); ok {
		return r.Err()
	}
	return nil
}
