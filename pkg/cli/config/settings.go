package config

import (
	"github.com/sscarsdale-chl/donutshop/pkg/domain/types"
	"github.com/sscarsdale-chl/donutshop/pkg/infra/settings"
	"github.com/urfave/cli/v3"
)

// Settings holds the location of the persisted user settings
type Settings struct {
	Path string
}

// Flags returns CLI flags for settings configuration
func (c *Settings) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "settings-file",
			Usage:       "Path of the settings file (default: user config dir)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("DONUTSHOP_SETTINGS_FILE"),
		},
	}
}

// Store opens the settings file store
func (c *Settings) Store() (*settings.File, error) {
	path := c.Path
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(types.AppName); err != nil {
			return nil, err
		}
	}
	return settings.NewFile(path), nil
}
