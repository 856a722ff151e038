package configuration

import (
	"fmt"
	"log/slog"
)

const (
	// DefaultFile is the configuration file read when none is given.
	DefaultFile = ".atomfs.env"

	// EnvPrefix is the prefix of all configuration keys. Process environment
	// variables carrying it override the configuration files.
	EnvPrefix = "ATOMFS_"

	KeyLogLevel      = "ATOMFS_LOG_LEVEL"
	KeyVerifyCopies  = "ATOMFS_VERIFY_COPIES"
	KeyCopyOnWindows = "ATOMFS_COPY_ON_WINDOWS"
	KeyLockAppends   = "ATOMFS_LOCK_APPENDS"
)

// AppConfiguration is the principal structure holding the application
// configuration.
type AppConfiguration struct {
	LogLevel      slog.Level
	VerifyCopies  bool
	CopyOnWindows bool
	LockAppends   bool
}

// NewAppConfiguration returns a pointer to a new [AppConfiguration] holding
// the defaults.
func NewAppConfiguration() *AppConfiguration {
	return &AppConfiguration{
		LogLevel:      slog.LevelInfo,
		VerifyCopies:  false,
		CopyOnWindows: false,
		LockAppends:   true,
	}
}

// Load reads the given configuration files on top of the defaults.
func (c *Handler) Load(filenames ...string) (*AppConfiguration, error) {
	config := NewAppConfiguration()

	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-load) %w", err)
	}

	config.LogLevel = c.MapKeyToLevel(envMap, KeyLogLevel, config.LogLevel)
	config.VerifyCopies = c.MapKeyToBool(envMap, KeyVerifyCopies, config.VerifyCopies)
	config.CopyOnWindows = c.MapKeyToBool(envMap, KeyCopyOnWindows, config.CopyOnWindows)
	config.LockAppends = c.MapKeyToBool(envMap, KeyLockAppends, config.LockAppends)

	return config, nil
}
