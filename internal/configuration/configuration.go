// Package configuration reads the settings of the command line interface
// from Unix-type environment files.
package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation for reading configuration files.
type Handler struct {
	genericConfigReader genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericConfigReader genericConfigProvider) *Handler {
	return &Handler{
		genericConfigReader: genericConfigReader,
	}
}

// ReadGeneric reads the given files into a map (map[key]value). Files that
// do not exist result in an empty map.
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	envMap, err := c.genericConfigReader.Read(filenames...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}

		return nil, fmt.Errorf("(config-read) %w", err)
	}

	return envMap, nil
}

// MapKeyToString returns the value of key, or an empty string if it is not set.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return strings.TrimSpace(value)
	}

	return ""
}

// MapKeyToBool returns the boolean value of key, or def if it is not set or
// not a boolean.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string, def bool) bool {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return def
	}

	switch strings.ToLower(value) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}

	return boolValue
}

// MapKeyToLevel returns the log level of key, or def if it is not set or not
// a known log level.
func (c *Handler) MapKeyToLevel(envMap map[string]string, key string, def slog.Level) slog.Level {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return def
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return def
	}

	return level
}
