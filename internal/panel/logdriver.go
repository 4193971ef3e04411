package panel

import "github.com/rs/zerolog/log"

// LogDriver stands in for display hardware in safe mode. Every write is
// logged at debug level and otherwise dropped.
type LogDriver struct{}

func (LogDriver) SetRow(device, row int, value byte) {
	log.Debug().Str("panel", deviceName(device)).Int("row", row).Uint8("value", value).Msg("SetRow")
}

func (LogDriver) SetLed(device, row, column int, on bool) {
	log.Debug().Str("panel", deviceName(device)).Int("row", row).Int("column", column).Bool("on", on).Msg("SetLed")
}

func (LogDriver) Shutdown(device int, on bool) {
	log.Debug().Str("panel", deviceName(device)).Bool("shutdown", on).Msg("Shutdown")
}

func (LogDriver) ClearDisplay(device int) {
	log.Debug().Str("panel", deviceName(device)).Msg("ClearDisplay")
}

func (LogDriver) SetIntensity(device, level int) {
	log.Debug().Str("panel", deviceName(device)).Int("level", level).Msg("SetIntensity")
}
