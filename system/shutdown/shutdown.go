package shutdown

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/r2fx-body/internal/panel"
)

var exit = os.Exit

// Blank disables both panels, leaving them dark and in hardware shutdown.
func Blank(ctrl *panel.Controller) {
	ctrl.SetCBIEnabled(false)
	ctrl.SetDPLEnabled(false)
	log.Info().Msg("Panels blanked")
}

// Shutdown blanks the panels, runs release in order and exits the process.
// Exiting skips deferred calls, so anything holding the bus, the journal or
// the metrics client must be passed in release.
func Shutdown(ctrl *panel.Controller, release ...func()) {
	Blank(ctrl)
	runRelease(release)
	log.Info().Msg("Shutdown complete")
	exit(0)
}

func ShutdownWithError(ctrl *panel.Controller, err error, msg string, release ...func()) {
	log.Error().Err(err).Msg(msg)
	Blank(ctrl)
	runRelease(release)
	exit(1)
}

func runRelease(release []func()) {
	for _, fn := range release {
		fn()
	}
}
