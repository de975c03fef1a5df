package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/cli/config"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdScan() *cli.Command {
	var scanCfg config.Scan

	return &cli.Command{
		Name:      "scan",
		Usage:     "List exported creatives found in a folder",
		ArgsUsage: "<folder>",
		Flags:     scanCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			folder, err := folderArg(c)
			if err != nil {
				return err
			}

			scanUC, err := scanCfg.NewScanner()
			if err != nil {
				return err
			}

			result, err := scanUC.Scan(ctx, folder)
			w := c.Root().Writer
			if errors.Is(err, model.ErrNoCreatives) {
				fmt.Fprintln(w, model.ErrNoCreatives.Error())
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Folder: %s  AdobeHTML Files: %d\n", folder, result.Len())
			printCreatives(w, folder, result.Creatives())
			return nil
		},
	}
}

func folderArg(c *cli.Command) (string, error) {
	if c.Args().Len() != 1 {
		return "", goerr.New("exactly one folder argument is required")
	}
	return c.Args().First(), nil
}
