package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// loadSettings resolves the config file (explicit flag first, then
// auto-detection) and loads it. A blog without a config file gets the
// stock astro-koharu defaults.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return entities.NewSettings(configPath)
	}

	detected, err := entities.FindConfigFile()
	if err != nil {
		logger.Debug("No config file found, using defaults")
		return entities.DefaultSettings(), nil
	}

	logger.Debugf("Using config file: %s", detected)
	return entities.NewSettings(detected)
}
