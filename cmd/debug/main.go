package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/thatsimonsguy/r2fx-body/db"
	"github.com/thatsimonsguy/r2fx-body/internal/config"
	"github.com/thatsimonsguy/r2fx-body/internal/hardware"
	"github.com/thatsimonsguy/r2fx-body/internal/logging"
	"github.com/thatsimonsguy/r2fx-body/internal/panel"
	"github.com/thatsimonsguy/r2fx-body/system/startup"
)

func main() {
	DebugCLI()
}

func DebugCLI() {
	var dbPath, command, spiPort, servicePath, binaryPath, configPath string
	var level, limit, devices int
	var hold time.Duration
	var safeMode bool
	flag.StringVar(&dbPath, "db", "data/r2fx.db", "Path to the SQLite journal")
	flag.StringVar(&command, "cmd", "", "Command to run: all-on, all-off, heart, gauge, events, install-service")
	flag.IntVar(&level, "level", 100, "Battery level for the gauge command")
	flag.IntVar(&limit, "limit", 20, "Number of journal entries for the events command")
	flag.StringVar(&spiPort, "spi", "", "SPI port for the display chain")
	flag.IntVar(&devices, "devices", 2, "Number of MAX7219 devices on the chain")
	flag.DurationVar(&hold, "hold", 5*time.Second, "How long display commands keep the panels lit")
	flag.BoolVar(&safeMode, "safe", false, "Log display writes instead of sending them")
	flag.StringVar(&servicePath, "service", "/etc/systemd/system/r2fx-panels.service", "Unit file for install-service")
	flag.StringVar(&binaryPath, "bin", "/usr/local/bin/r2fx-panels", "Controller binary for install-service")
	flag.StringVar(&configPath, "config", "/etc/r2fx/config.json", "Controller config for install-service")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help || command == "" {
		fmt.Println("\nUsage of r2fx-debug:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	logging.Init(zerolog.DebugLevel, "")

	var err error
	switch command {
	case "events":
		err = db.PrintJournalCLI(os.Stdout, dbPath, limit)
	case "install-service":
		err = startup.InstallService(servicePath, binaryPath, configPath)
	case "all-on", "all-off", "heart", "gauge":
		cfg := config.Config{SafeMode: safeMode, SPIPort: spiPort, SPIHz: 1_000_000, Devices: devices}
		err = runDisplayCommand(&cfg, command, level, hold)
	default:
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Command %s failed: %v\n", command, err)
		os.Exit(1)
	}
	fmt.Printf("Command %s completed successfully\n", command)
}

func runDisplayCommand(cfg *config.Config, command string, level int, hold time.Duration) error {
	drv, closeDriver, err := hardware.OpenDriver(cfg)
	if err != nil {
		return err
	}
	defer closeDriver()

	ctrl := panel.New(drv)
	ctrl.Initialize()

	switch command {
	case "all-on":
		ctrl.SetAllPanels(true)
		time.Sleep(hold)
	case "all-off":
		// cleared below
	case "gauge":
		ctrl.RenderBatteryGauge(level)
		fmt.Printf("Battery %d%%: %d of 3 cells lit\n", level, panel.LitCells(level))
		time.Sleep(hold)
	case "heart":
		ctrl.PlayHeartSequence()
		for ctrl.HeartPlaying() {
			time.Sleep(20 * time.Millisecond)
			ctrl.Tick()
		}
	}

	ctrl.SetAllPanels(false)
	return hardware.DriverErr(drv)
}
