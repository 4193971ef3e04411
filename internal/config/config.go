package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	ConfigFile string
	LogLevel   zerolog.Level

	LogFile  string `json:"log_file"`
	SafeMode bool   `json:"safe_mode"`

	// display chain
	SPIPort string `json:"spi_port"`
	SPIHz   int64  `json:"spi_hz"`
	Devices int    `json:"devices"`

	CBIEnabled   bool `json:"cbi_enabled"`
	DPLEnabled   bool `json:"dpl_enabled"`
	HeartOnStart bool `json:"heart_on_start"`

	PollIntervalMs     int    `json:"poll_interval_ms"`
	BatteryPollSeconds int    `json:"battery_poll_seconds"`
	BatteryPath        string `json:"battery_path"`

	DBPath string `json:"db_path"`

	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`

	NtfyTopic string `json:"ntfy_topic"`
}

func Load() Config {
	var cfg Config
	var logLevel string

	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to panel controller config file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg.LogLevel = parseLogLevel(logLevel)

	file, err := os.Open(cfg.ConfigFile)
	if err != nil {
		panic("Failed to load config file: " + err.Error())
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		panic("Failed to parse config file: " + err.Error())
	}

	cfg.applyDefaults()
	cfg.validate()
	return cfg
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.SPIHz == 0 {
		cfg.SPIHz = 1_000_000
	}
	if cfg.Devices == 0 {
		cfg.Devices = 2
	}
	if cfg.PollIntervalMs == 0 {
		cfg.PollIntervalMs = 20
	}
	if cfg.BatteryPollSeconds == 0 {
		cfg.BatteryPollSeconds = 30
	}
	if cfg.BatteryPath == "" {
		cfg.BatteryPath = "/sys/class/power_supply/BAT0/capacity"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "data/r2fx.db"
	}
	if cfg.DDNamespace == "" {
		cfg.DDNamespace = "r2fx."
	}
}

func (cfg *Config) validate() {
	var problems []string

	if cfg.Devices < 2 {
		problems = append(problems, fmt.Sprintf("devices must be at least 2 (CBI and DPL), got %d", cfg.Devices))
	}
	if cfg.SPIHz < 0 || cfg.SPIHz > 10_000_000 {
		problems = append(problems, fmt.Sprintf("spi_hz %d outside 1..10000000", cfg.SPIHz))
	}
	if cfg.PollIntervalMs < 0 {
		problems = append(problems, "poll_interval_ms must not be negative")
	}
	if cfg.BatteryPollSeconds < 0 {
		problems = append(problems, "battery_poll_seconds must not be negative")
	}
	if cfg.EnableDatadog && cfg.DDAgentAddr == "" {
		problems = append(problems, "dd_agent_addr is required when enable_datadog is set")
	}

	if len(problems) > 0 {
		panic("Invalid config: " + strings.Join(problems, ", "))
	}
}
