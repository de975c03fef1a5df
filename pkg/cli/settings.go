package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdConfig() *cli.Command {
	var settingsCfg config.Settings

	return &cli.Command{
		Name:  "config",
		Usage: "Manage the stored TinyPNG API key",
		Flags: settingsCfg.Flags(),
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the settings file and whether a key is stored",
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := settingsCfg.Store()
					if err != nil {
						return err
					}
					key, err := store.APIKey(ctx)
					if err != nil {
						return err
					}
					w := c.Root().Writer
					fmt.Fprintf(w, "settings file: %s\n", store.Path())
					fmt.Fprintf(w, "api key:       %s\n", maskKey(key))
					return nil
				},
			},
			{
				Name:      "set-api-key",
				Usage:     "Store the TinyPNG API key",
				ArgsUsage: "<key>",
				Action: func(ctx context.Context, c *cli.Command) error {
					key := strings.TrimSpace(c.Args().First())
					if key == "" {
						return goerr.New("api key argument is required")
					}
					store, err := settingsCfg.Store()
					if err != nil {
						return err
					}
					if err := store.SetAPIKey(ctx, key); err != nil {
						return err
					}
					fmt.Fprintf(c.Root().Writer, "API key saved to %s\n", store.Path())
					return nil
				},
			},
			{
				Name:  "clear-api-key",
				Usage: "Remove the stored TinyPNG API key",
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := settingsCfg.Store()
					if err != nil {
						return err
					}
					if err := store.DeleteAPIKey(ctx); err != nil {
						return err
					}
					fmt.Fprintln(c.Root().Writer, "API key removed")
					return nil
				},
			},
		},
	}
}

// maskKey keeps only the last four characters of a key
func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 4:
		return strings.Repeat("*", len(key))
	default:
		return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
	}
}
