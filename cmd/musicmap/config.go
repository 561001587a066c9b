// Config loading for the musicmap CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kc95kc/music-map/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyBlobDir  = "blob_dir"
	cfgKeyListen   = "listen"
	cfgKeySecret   = "jwt_secret"
	cfgKeyViewLat  = "default_view.lat"
	cfgKeyViewLon  = "default_view.lon"
	cfgKeyViewZoom = "default_view.zoom"

	// envJWTSecret overrides the config file secret; a .env file in the
	// working directory can supply it.
	envJWTSecret = "MUSICMAP_JWT_SECRET"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# musicmap configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Blob directory for uploaded cover images
# (defaults to <data_dir>/blobs when unset)
# blob_dir:

# Address the serve command listens on
listen: ":8473"

# Secret used to sign the persisted credential.
# Prefer the MUSICMAP_JWT_SECRET environment variable over this key.
# jwt_secret:

# Startup viewport before any pin is selected
default_view:
  lat: 51.53205203427031
  lon: -0.17733518220901687
  zoom: 17
`

// configValues carries the subset of config.yaml the commands consume.
type configValues struct {
	backend  string
	dataDir  string
	blobDir  string
	listen   string
	secret   string
	viewLat  float64
	viewLon  float64
	viewZoom int
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (configValues, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return configValues{}, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return configValues{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyViewLat, types.DefaultViewLat)
	v.SetDefault(cfgKeyViewLon, types.DefaultViewLon)
	v.SetDefault(cfgKeyViewZoom, types.DefaultViewZoom)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return configValues{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := configValues{
		backend:  v.GetString(cfgKeyBackend),
		dataDir:  v.GetString(cfgKeyDataDir),
		blobDir:  v.GetString(cfgKeyBlobDir),
		listen:   v.GetString(cfgKeyListen),
		secret:   v.GetString(cfgKeySecret),
		viewLat:  v.GetFloat64(cfgKeyViewLat),
		viewLon:  v.GetFloat64(cfgKeyViewLon),
		viewZoom: v.GetInt(cfgKeyViewZoom),
	}
	if env := os.Getenv(envJWTSecret); env != "" {
		cfg.secret = env
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
