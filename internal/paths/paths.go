// Package paths resolves the configuration and data directories used by the
// stockroom CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under platform config and data roots.
const AppName = "stockroom"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else selects one.
const DefaultDataDirName = ".stockroom-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STOCKROOM_CONFIG_DIR"
	EnvDataDir   = "STOCKROOM_DATA_DIR"
)

// platformDir holds platform-detection functions that tests can replace.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/stockroom (fallback ~/.config/stockroom)
// macOS:   ~/Library/Application Support/stockroom
// Windows: %APPDATA%/stockroom
func DefaultConfigDir() (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ResolveConfigDir returns the configuration directory.
// Precedence: flag > STOCKROOM_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstNonEmpty(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory.
// Precedence: flag > config.yaml data_dir > STOCKROOM_DATA_DIR > $(CWD)/.stockroom-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir := firstNonEmpty(flag, configValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
