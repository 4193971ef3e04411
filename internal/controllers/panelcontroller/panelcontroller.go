package panelcontroller

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/r2fx-body/db"
	"github.com/thatsimonsguy/r2fx-body/internal/battery"
	"github.com/thatsimonsguy/r2fx-body/internal/datadog"
	"github.com/thatsimonsguy/r2fx-body/internal/env"
	"github.com/thatsimonsguy/r2fx-body/internal/notifications"
	"github.com/thatsimonsguy/r2fx-body/internal/panel"
)

var readBattery = func(path string) (int, error) {
	return battery.ReadPercent(path)
}
var recordBattery = db.InsertBatteryReading
var sendNotification = notifications.Send
var emitGauge = datadog.Gauge
var emitCount = datadog.Incr

type loopState struct {
	dbConn *sql.DB

	batteryPath     string
	batteryInterval time.Duration
	lastBatteryPoll time.Time

	havePercent bool
	lastPercent int
	lowNotified bool
}

// RunPanelController drives the panels until ctx is canceled. It owns ctrl
// for its whole run; nothing else may touch the controller concurrently.
func RunPanelController(ctx context.Context, ctrl *panel.Controller, dbConn *sql.DB) {
	interval := time.Duration(env.Cfg.PollIntervalMs) * time.Millisecond
	state := &loopState{
		dbConn:          dbConn,
		batteryPath:     env.Cfg.BatteryPath,
		batteryInterval: time.Duration(env.Cfg.BatteryPollSeconds) * time.Second,
	}

	log.Info().
		Dur("poll_interval", interval).
		Dur("battery_interval", state.batteryInterval).
		Msg("Starting panel controller")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	evaluate(ctrl, state, time.Now())
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping panel controller")
			return
		case now := <-ticker.C:
			evaluate(ctrl, state, now)
		}
	}
}

func evaluate(ctrl *panel.Controller, state *loopState, now time.Time) {
	if state.lastBatteryPoll.IsZero() || now.Sub(state.lastBatteryPoll) >= state.batteryInterval {
		state.lastBatteryPoll = now
		sampleBattery(ctrl, state, now)
	}

	ctrl.Tick()
}

func sampleBattery(ctrl *panel.Controller, state *loopState, now time.Time) {
	pct, err := readBattery(state.batteryPath)
	if err != nil {
		emitCount("battery_read_errors")
		log.Warn().Err(err).Int("battery_percent", ctrl.BatteryLevel()).Msg("Keeping last battery level")
		return
	}

	ctrl.SetBatteryLevel(pct)
	level := ctrl.BatteryLevel()
	lit := panel.LitCells(level)

	emitGauge("battery_percent", float64(level))
	emitGauge("panel_enabled", boolToFloat(ctrl.CBIEnabled()), "panel:cbi")
	emitGauge("panel_enabled", boolToFloat(ctrl.DPLEnabled()), "panel:dpl")

	if state.havePercent && state.lastPercent == level {
		return
	}

	log.Debug().
		Int("battery_percent", level).
		Int("lit_cells", lit).
		Msg("Battery level changed")

	state.havePercent = true
	state.lastPercent = level

	if state.dbConn != nil {
		reading := db.BatteryReading{RecordedAt: now, Percent: level, LitCells: lit}
		if err := recordBattery(state.dbConn, reading); err != nil {
			log.Warn().Err(err).Msg("Failed to journal battery reading")
		}
	}

	checkLowBattery(state, level, lit)
}

func checkLowBattery(state *loopState, level, lit int) {
	if lit > 0 {
		state.lowNotified = false
		return
	}
	if state.lowNotified {
		return
	}

	state.lowNotified = true
	log.Warn().Int("battery_percent", level).Msg("Battery gauge empty")
	notify("R2 battery low", fmt.Sprintf("Battery at %d%%, gauge is empty", level))
}

// notify posts off the loop goroutine; Tick must never wait on ntfy.
func notify(title, message string) {
	send := sendNotification
	go func() {
		if err := send(title, message); err != nil {
			log.Debug().Err(err).Msg("Low battery notification not sent")
		}
	}()
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
