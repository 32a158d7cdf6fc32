package logger

import (
	"errors"
	"strings"
)

// Config defines the logger configuration
type Config struct {
	Level            string     `mapstructure:"level"`  // debug, info, warn, error
	Format           string     `mapstructure:"format"` // json, console
	Output           string     `mapstructure:"output"` // stderr, file, both, discard
	File             FileConfig `mapstructure:"file"`
	EnableCaller     bool       `mapstructure:"enable_caller"`
	EnableStacktrace bool       `mapstructure:"enable_stacktrace"`
}

// FileConfig defines rotated file output
type FileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxAge     int    `mapstructure:"max_age"`  // days
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Output targets. Stdout belongs to the console view, so logs never go there.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputBoth    = "both"
	OutputDiscard = "discard"
)

// DefaultConfig returns the console-friendly default: warnings and up on stderr
func DefaultConfig() *Config {
	return &Config{
		Level:            "warn",
		Format:           "console",
		Output:           OutputStderr,
		EnableCaller:     true,
		EnableStacktrace: false,
		File: FileConfig{
			Filename:   "logs/searchui.log",
			MaxSize:    20,
			MaxAge:     7,
			MaxBackups: 3,
			Compress:   true,
		},
	}
}

// Validate validates the logger configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("invalid log level, must be one of: debug, info, warn, error")
	}

	if c.Format != "json" && c.Format != "console" {
		return errors.New("invalid log format, must be 'json' or 'console'")
	}

	switch c.Output {
	case OutputStderr, OutputDiscard:
	case OutputFile, OutputBoth:
		if c.File.Filename == "" {
			return errors.New("log file filename is required when output is 'file' or 'both'")
		}
		if c.File.MaxSize <= 0 {
			return errors.New("log file max_size must be greater than 0")
		}
		if c.File.MaxBackups < 0 {
			return errors.New("log file max_backups must not be negative")
		}
	default:
		return errors.New("invalid log output, must be 'stderr', 'file', 'both' or 'discard'")
	}

	return nil
}
