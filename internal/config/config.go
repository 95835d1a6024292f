package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

type Config struct {
	Server struct {
		Host              string `json:"host"`
		Port              int    `json:"port"`
		JWTSecret         string `json:"jwtSecret"`
		SessionTTLMinutes int    `json:"sessionTtlMinutes"`
	} `json:"server"`
	Database struct {
		Driver string `json:"driver"` // "sqlite" (default) or "postgres"
		Path   string `json:"path"`   // sqlite database file
		DSN    string `json:"dsn"`    // postgres connection string
	} `json:"database"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
}

// SessionTTL is the inactivity window after which a session expires.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTLMinutes) * time.Minute
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads the JSON config file from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// Minimal validation and defaults
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config")
			return
		}
		if c.Server.Port == 0 {
			c.Server.Port = 8080
		}
		if c.Server.SessionTTLMinutes <= 0 {
			c.Server.SessionTTLMinutes = 30
		}
		switch c.Database.Driver {
		case "":
			c.Database.Driver = "sqlite"
		case "sqlite", "postgres":
		default:
			cfgErr = fmt.Errorf("unsupported database driver %q", c.Database.Driver)
			return
		}
		if c.Database.Driver == "sqlite" && c.Database.Path == "" {
			c.Database.Path = "hangar.db"
		}
		if c.Database.Driver == "postgres" && c.Database.DSN == "" {
			cfgErr = errors.New("database.dsn must be set for the postgres driver")
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
