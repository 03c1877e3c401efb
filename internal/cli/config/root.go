package config

import (
	"github.com/rs/zerolog"

	appconfig "github.com/rustyeddy/swapbuffer/config"
	"github.com/rustyeddy/swapbuffer/pkg/logger"
)

// RootConfig holds the persistent flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	LogLevel   string
	Pretty     bool
}

// Load returns the run configuration: the --config file when set, otherwise
// the built-in defaults with SWAPBUF_* overrides applied. Callers validate
// after applying their own flags.
func (rc *RootConfig) Load() (*appconfig.Config, error) {
	if rc.ConfigPath != "" {
		return appconfig.Load(rc.ConfigPath)
	}
	cfg := appconfig.Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger builds the logger, letting flags win over the config file.
func (rc *RootConfig) Logger(cfg *appconfig.Config, lc logger.Config) zerolog.Logger {
	lc.Level = cfg.Log.Level
	lc.Pretty = cfg.Log.Pretty
	if rc.LogLevel != "" {
		lc.Level = rc.LogLevel
	}
	if rc.Pretty {
		lc.Pretty = true
	}
	return logger.New(lc)
}
