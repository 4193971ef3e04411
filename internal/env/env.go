package env

import (
	"github.com/thatsimonsguy/r2fx-body/internal/config"
)

var Cfg *config.Config
