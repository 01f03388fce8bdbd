package configuration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Server — HTTP server configuration
	Server ServerConfig `mapstructure:"server"`
	// Points — points storage configuration
	Points PointsConfig `mapstructure:"points"`
	// Audit — processed-receipt audit trail configuration
	Audit AuditConfig `mapstructure:"audit"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	// Address — address and port where the server will listen (e.g., ":8080").
	Address string `mapstructure:"address"`
}

// PointsConfig defines points storage parameters.
type PointsConfig struct {
	// Ttl — lifetime of a stored entry (time.Duration), after which it is
	// removed by the background sweeper. Zero keeps entries for the whole
	// process lifetime. Example: "5m", "1h", "24h".
	Ttl time.Duration `mapstructure:"ttl"`
}

// AuditConfig defines audit trail parameters.
type AuditConfig struct {
	// File — path of the audit JSONL file. Empty disables the trail.
	File string `mapstructure:"file"`
	// Size — maximal audit file size in MB before rotation (default 100).
	Size int `mapstructure:"size"`
	// Amount — number of rotated audit files to keep (default 20).
	Amount int `mapstructure:"amount"`
	// Recent — capacity of the in-memory ring of recent entries (default 100).
	Recent int `mapstructure:"recent"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected
// error. Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Server.Validate(); err != nil {
		return err
	}

	if err := c.Points.Validate(); err != nil {
		return err
	}

	if err := c.Audit.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks the correctness of the logger configuration.
// Verifies that the log level is set and is one of the supported values.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks the correctness of the server configuration.
// Verifies that the server address is set.
func (s *ServerConfig) Validate() error {
	if s.Address == "" {
		return errors.New("server.address: must be specified")
	}

	return nil
}

// Validate checks the correctness of the points storage configuration.
// A negative ttl makes no sense as an expiry policy.
func (p *PointsConfig) Validate() error {
	if p.Ttl < 0 {
		return errors.New("points.ttl: must not be negative")
	}

	return nil
}

// Validate fills in audit trail defaults. The trail itself is optional:
// an empty file path disables it.
func (a *AuditConfig) Validate() error {
	if a.Size == 0 {
		a.Size = 100
	}

	if a.Amount == 0 {
		a.Amount = 20
	}

	if a.Recent == 0 {
		a.Recent = 100
	}

	return nil
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Also includes environment variable loading
// (AutomaticEnv), which can override values from the file.
//
// Parameter configPath — path to the configuration file.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
