package cli

import (
	"context"
	"fmt"

	"github.com/sscarsdale-chl/donutshop/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPreview() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Write " + usecase.PreviewFileName + " embedding every <W>x<H>/html banner of a folder",
		ArgsUsage: "<folder>",
		Action: func(ctx context.Context, c *cli.Command) error {
			folder, err := folderArg(c)
			if err != nil {
				return err
			}

			path, err := usecase.NewPreviewer().Generate(ctx, folder)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "Preview HTML file created: %s\n", path)
			return nil
		},
	}
}
