package config

import (
	"fmt"

	"go-youtube-download/internal/models"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// LoadConfig reads the configuration from the specified path (defaulting to
// "config.toml") and populates a models.Config, filling in defaults for
// unset fields. A missing SavePath is a warning, not an error: flags can
// still supply it.
func LoadConfig(configFilePath string) (models.Config, error) {
	if configFilePath == "" {
		configFilePath = "config.toml"
	}
	var cfg models.Config
	_, err := toml.DecodeFile(configFilePath, &cfg)
	if err != nil {
		return models.Config{}, fmt.Errorf("error loading config file %s: %w", configFilePath, err)
	}

	if cfg.SavePath == "" {
		log.Warn("Warning: SavePath is not set in config")
	}
	applyDefaults(&cfg)

	log.Infof("Configuration loaded from %s", configFilePath)
	return cfg, nil
}

// applyDefaults fills zero-valued optional fields.
func applyDefaults(cfg *models.Config) {
	if cfg.OutputTemplate == "" {
		cfg.OutputTemplate = models.DefaultOutputTemplate
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = models.DefaultSearchLimit
	}
	if cfg.ApiClientTimeoutSec <= 0 {
		cfg.ApiClientTimeoutSec = models.DefaultClientTimeout
	}
}

// Defaults returns the configuration used when no config file exists.
func Defaults() models.Config {
	var cfg models.Config
	applyDefaults(&cfg)
	return cfg
}
