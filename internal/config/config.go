package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Server  ServerConfig  `toml:"server"`
	Audit   AuditConfig   `toml:"audit"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// AuditConfig represents the audit dataset configuration.
// File names are relative to the dataset directory.
type AuditConfig struct {
	DaycycleFile string `toml:"daycycle_file"`
	WeatherFile  string `toml:"weather_file"`
	MinimumsFile string `toml:"minimums_file"`
	RosterFile   string `toml:"roster_file"`
	LessonsFile  string `toml:"lessons_file"`
	OutputFile   string `toml:"output_file"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
		},
		Audit: AuditConfig{
			DaycycleFile: "daycycle.json",
			WeatherFile:  "weather.json",
			MinimumsFile: "minimums.csv",
			RosterFile:   "students.csv",
			LessonsFile:  "lessons.csv",
			OutputFile:   "output.csv",
		},
	}
}

// Load reads the configuration from the given TOML file, applying defaults
// for any values left unset. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	for name, value := range map[string]string{
		"daycycle_file": c.Audit.DaycycleFile,
		"weather_file":  c.Audit.WeatherFile,
		"minimums_file": c.Audit.MinimumsFile,
		"roster_file":   c.Audit.RosterFile,
		"lessons_file":  c.Audit.LessonsFile,
	} {
		if value == "" {
			return fmt.Errorf("audit %s must not be empty", name)
		}
	}

	return nil
}
