package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Bluetooth BluetoothConfig `yaml:"bluetooth"`
	Database  DatabaseConfig  `yaml:"database"`
}

// ServerConfig holds the HTTP bridge configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// BluetoothConfig holds the radio and reconnect policy configuration.
type BluetoothConfig struct {
	// Channel is the RFCOMM channel used for the Serial Port Profile.
	// Almost every thermal printer listens on channel 1.
	Channel int `yaml:"channel"`
	// ScanTimeoutSeconds bounds a single discovery session.
	ScanTimeoutSeconds int `yaml:"scan_timeout_seconds"`
	// AutoReconnect enables the silent reconnect attempt on startup and
	// when a print request arrives without an active connection.
	AutoReconnect bool `yaml:"auto_reconnect"`
	// WatchIntervalSeconds is how often the live connection is probed for
	// an OS-level disconnect.
	WatchIntervalSeconds int `yaml:"watch_interval_seconds"`
}

// DatabaseConfig holds the preference store configuration.
type DatabaseConfig struct {
	// Path is the sqlite database file holding the last-printer record.
	Path string `yaml:"path"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, for running
// without a config file.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 5
	}

	if cfg.Bluetooth.Channel <= 0 {
		cfg.Bluetooth.Channel = 1
	}
	if cfg.Bluetooth.ScanTimeoutSeconds <= 0 {
		cfg.Bluetooth.ScanTimeoutSeconds = 30
	}
	if cfg.Bluetooth.WatchIntervalSeconds <= 0 {
		cfg.Bluetooth.WatchIntervalSeconds = 5
	}

	if cfg.Database.Path == "" {
		log.Printf("database.path is not set; defaulting to ./posbridge.db")
		cfg.Database.Path = "./posbridge.db"
	}
}
