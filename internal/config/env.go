// Package config reads the environment defaults that command-line flags override.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/conn-castle/bumpver/internal/format"
	"github.com/conn-castle/bumpver/internal/messages"
)

// Environment variables consulted by FromEnv.
const (
	EnvType    = "BUMPVER_TYPE"
	EnvNoLock  = "BUMPVER_NO_LOCK"
	EnvNoColor = "NO_COLOR"
)

// Config holds defaults resolved once at startup.
type Config struct {
	// Type is the default format override; empty means detect from the extension.
	Type string
	// NoLock skips the advisory lock taken around writes.
	NoLock bool
	// NoColor disables colored diagnostics and diffs.
	NoColor bool
}

var lookupEnv = os.LookupEnv

// FromEnv builds a Config from the process environment.
// NO_COLOR follows the no-color.org convention: any non-empty value disables color.
func FromEnv() (Config, error) {
	var cfg Config

	if v, ok := lookupEnv(EnvType); ok && strings.TrimSpace(v) != "" {
		f, err := format.Parse(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Type = f.String()
	}

	noLock, err := envBool(EnvNoLock)
	if err != nil {
		return Config{}, err
	}
	cfg.NoLock = noLock

	if v, ok := lookupEnv(EnvNoColor); ok && v != "" {
		cfg.NoColor = true
	}
	return cfg, nil
}

func envBool(key string) (bool, error) {
	v, ok := lookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf(messages.ConfigInvalidBoolFmt, key, v)
	}
	return b, nil
}
