package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"

	defaultBackend  = types.BackendSQLite
	defaultLogLevel = "error"
)

// Environment overrides for config.yaml values. The data directory has its
// own precedence chain in package paths and is not bound here.
const (
	envBackend  = "STOCKROOM_BACKEND"
	envLogLevel = "STOCKROOM_LOG_LEVEL"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	LogLevel string `yaml:"log_level"`
}

func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}

// loadConfig reads config.yaml from configDir using Viper. The directory and
// a default config.yaml are created on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if _, err := writeConfigIfMissing(configPath(configDir)); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	if err := v.BindEnv(cfgKeyBackend, envBackend); err != nil {
		return nil, err
	}
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return nil, err
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values. It reports
// whether a file was written; an existing file is left alone.
func writeConfigIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:  defaultBackend,
		LogLevel: defaultLogLevel,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
