package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"            envDefault:":8080"`
	LogLevelName    string        `env:"LOG_LEVEL"            envDefault:"info"`
	MaxTarget       int           `env:"PIG_MAX_TARGET"       envDefault:"200"`
	MaxCurvePoints  int           `env:"PIG_MAX_CURVE_POINTS" envDefault:"201"`
	CacheSize       int           `env:"PIG_CACHE_SIZE"       envDefault:"1024"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"     envDefault:"10s"`

	// LogLevel is derived from LogLevelName.
	LogLevel slog.Level
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	level, err := ParseLogLevel(c.LogLevelName)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if c.MaxTarget < 0 {
		return Config{}, fmt.Errorf("invalid PIG_MAX_TARGET %d", c.MaxTarget)
	}
	if c.MaxCurvePoints < 1 {
		return Config{}, fmt.Errorf("invalid PIG_MAX_CURVE_POINTS %d", c.MaxCurvePoints)
	}
	if c.CacheSize < 1 {
		return Config{}, fmt.Errorf("invalid PIG_CACHE_SIZE %d", c.CacheSize)
	}
	if c.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %s", c.ShutdownTimeout)
	}

	return c, nil
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
