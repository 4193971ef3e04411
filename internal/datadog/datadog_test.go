package datadog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thatsimonsguy/r2fx-body/internal/config"
	"github.com/thatsimonsguy/r2fx-body/internal/env"
)

func TestInitMetrics_Disabled(t *testing.T) {
	env.Cfg = &config.Config{EnableDatadog: false}
	defer func() { env.Cfg = nil }()

	InitMetrics()
	assert.Nil(t, dogstatsd)

	assert.NotPanics(t, func() {
		Gauge("battery_percent", 42)
		Incr("frames", "panel:cbi")
		Close()
	})
}
