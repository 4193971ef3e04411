package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/r2fx-body/db"
	"github.com/thatsimonsguy/r2fx-body/internal/config"
	"github.com/thatsimonsguy/r2fx-body/internal/controllers/panelcontroller"
	"github.com/thatsimonsguy/r2fx-body/internal/datadog"
	"github.com/thatsimonsguy/r2fx-body/internal/env"
	"github.com/thatsimonsguy/r2fx-body/internal/hardware"
	"github.com/thatsimonsguy/r2fx-body/internal/logging"
	"github.com/thatsimonsguy/r2fx-body/internal/notifications"
	"github.com/thatsimonsguy/r2fx-body/internal/panel"
	"github.com/thatsimonsguy/r2fx-body/system/shutdown"
)

func main() {
	cfg := config.Load()
	env.Cfg = &cfg
	logging.Init(cfg.LogLevel, cfg.LogFile)

	log.Info().
		Str("config_file", cfg.ConfigFile).
		Bool("cbi_enabled", cfg.CBIEnabled).
		Bool("dpl_enabled", cfg.DPLEnabled).
		Msg("Starting R2 panel controller")

	datadog.InitMetrics()
	notifications.Init(cfg.NtfyTopic)

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("Failed to open journal database")
	}

	drv, closeDriver, err := hardware.OpenDriver(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open display driver")
	}

	release := []func(){
		func() {
			if err := closeDriver(); err != nil {
				log.Warn().Err(err).Msg("Failed to close display driver")
			}
		},
		func() {
			if err := dbConn.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close journal database")
			}
		},
		datadog.Close,
	}

	ctrl := panel.New(drv)
	ctrl.Initialize()

	ctrl.SetCBIEnabled(cfg.CBIEnabled)
	journal(dbConn, "cbi", enabledEvent(cfg.CBIEnabled))
	ctrl.SetDPLEnabled(cfg.DPLEnabled)
	journal(dbConn, "dpl", enabledEvent(cfg.DPLEnabled))

	if cfg.HeartOnStart {
		ctrl.PlayHeartSequence()
		journal(dbConn, "cbi", "heart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	panelcontroller.RunPanelController(ctx, ctrl, dbConn)
	stop()

	journal(dbConn, "cbi", "disabled")
	journal(dbConn, "dpl", "disabled")

	if err := hardware.DriverErr(drv); err != nil {
		shutdown.ShutdownWithError(ctrl, err, "Display chain reported write failures", release...)
	}
	shutdown.Shutdown(ctrl, release...)
}

func enabledEvent(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func journal(dbConn *sql.DB, panelName, event string) {
	err := db.InsertPanelEvent(dbConn, db.PanelEvent{
		RecordedAt: time.Now(),
		Panel:      panelName,
		Event:      event,
	})
	if err != nil {
		log.Warn().Err(err).Str("panel", panelName).Str("event", event).Msg("Failed to journal panel event")
	}
}
