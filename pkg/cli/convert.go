package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/cli/config"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/sscarsdale-chl/donutshop/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdConvert() *cli.Command {
	var (
		scanCfg     config.Scan
		tinifyCfg   config.Tinify
		settingsCfg config.Settings
		clickTag    string
		only        []string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "click-tag",
			Aliases:     []string{"c"},
			Usage:       "Click-through URL; https:// is added when no scheme is given",
			Required:    true,
			Destination: &clickTag,
			Sources:     cli.EnvVars("DONUTSHOP_CLICK_TAG"),
		},
		&cli.StringSliceFlag{
			Name:        "only",
			Usage:       "Convert only creatives with this name; repeatable",
			Destination: &only,
		},
	}
	flags = append(flags, scanCfg.Flags()...)
	flags = append(flags, tinifyCfg.Flags()...)
	flags = append(flags, settingsCfg.Flags()...)

	return &cli.Command{
		Name:      "convert",
		Aliases:   []string{"c"},
		Usage:     "Rewrite creatives with the bootstrap template and compress their images",
		ArgsUsage: "<folder>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			w := c.Root().Writer

			folder, err := folderArg(c)
			if err != nil {
				return err
			}

			normalized, err := model.NormalizeClickTag(clickTag)
			if err != nil {
				return err
			}

			scanUC, err := scanCfg.NewScanner()
			if err != nil {
				return err
			}
			result, err := scanUC.Scan(ctx, folder)
			if err != nil {
				return err
			}

			var targets []model.Creative
			for _, cr := range result.Creatives() {
				if len(only) == 0 || slices.Contains(only, cr.Name) {
					targets = append(targets, cr)
				}
			}
			if len(targets) == 0 {
				return goerr.Wrap(model.ErrCreativeNotFound, "no creative matches --only", goerr.V("only", only))
			}

			apiKey, err := resolveAPIKey(ctx, &tinifyCfg, &settingsCfg)
			if err != nil {
				return err
			}
			if apiKey == "" && slices.ContainsFunc(targets, func(cr model.Creative) bool { return cr.HasImages() }) {
				return goerr.Wrap(model.ErrMissingCredential, "set --tinify-api-key or run `config set-api-key`")
			}

			converter := usecase.NewConverter(tinifyCfg.NewCompression())

			var (
				conversions []*model.Conversion
				errs        []error
			)
			for _, cr := range targets {
				fmt.Fprintf(w, "updating: %s\n", cr.Name)
				conv, err := converter.Convert(ctx, cr, normalized, apiKey, nil)
				if err != nil {
					fmt.Fprintf(w, "  %s %v\n", failColor.Sprint("✗"), err)
					errs = append(errs, err)
					continue
				}
				result.MarkConverted(cr.Location)
				conversions = append(conversions, conv)
			}

			for _, conv := range conversions {
				if conv.Compression == nil {
					continue
				}
				report, err := conv.Compression.Wait(ctx)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				printReport(w, conv.Creative.Name, report)
				if err := report.Err(); err != nil {
					errs = append(errs, err)
				}
			}

			logger.Info("Conversion finished",
				"converted", result.ConvertedCount(),
				"selected", len(targets),
			)
			printCreatives(w, folder, result.Creatives())

			if len(errs) > 0 {
				return goerr.Wrap(errors.Join(errs...), "conversion finished with errors",
					goerr.V("failures", len(errs)))
			}
			fmt.Fprintln(w, okColor.Sprint("ClickTag added, images compressed, you're done!"))
			return nil
		},
	}
}

// resolveAPIKey prefers the flag/env value and falls back to the settings file
func resolveAPIKey(ctx context.Context, tinifyCfg *config.Tinify, settingsCfg *config.Settings) (string, error) {
	if tinifyCfg.APIKey != "" {
		return tinifyCfg.APIKey, nil
	}
	store, err := settingsCfg.Store()
	if err != nil {
		return "", err
	}
	return store.APIKey(ctx)
}
