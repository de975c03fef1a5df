package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/cli/config"
	controller "github.com/sscarsdale-chl/donutshop/pkg/controller/http"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/infra/settings"
	"github.com/sscarsdale-chl/donutshop/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		scanCfg     config.Scan
		tinifyCfg   config.Tinify
		settingsCfg config.Settings
		ephemeral   bool
		folder      string
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "ephemeral",
			Usage:       "Keep the API key in memory only instead of the settings file",
			Destination: &ephemeral,
			Sources:     cli.EnvVars("DONUTSHOP_EPHEMERAL"),
		},
		&cli.StringFlag{
			Name:        "folder",
			Usage:       "Folder to scan at startup",
			Destination: &folder,
			Sources:     cli.EnvVars("DONUTSHOP_FOLDER"),
		},
	}
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, scanCfg.Flags()...)
	flags = append(flags, tinifyCfg.Flags()...)
	flags = append(flags, settingsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the local HTTP API used by the desktop shell",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting donutshop server",
				slog.String("addr", serverCfg.Addr),
				slog.Bool("ephemeral", ephemeral),
			)

			scanUC, err := scanCfg.NewScanner()
			if err != nil {
				return err
			}

			var secrets interfaces.SecretStore
			if ephemeral {
				secrets = settings.NewMemory("")
			} else {
				store, err := settingsCfg.Store()
				if err != nil {
					return err
				}
				logger.Info("Using settings file", slog.String("path", store.Path()))
				secrets = store
			}

			workspaceUC := usecase.NewWorkspace(
				scanUC,
				usecase.NewConverter(tinifyCfg.NewCompression()),
				usecase.NewPreviewer(),
				secrets,
				usecase.WithAPIKey(tinifyCfg.APIKey),
			)
			if folder != "" {
				workspaceUC.SelectFolder(ctx, folder)
			}

			server, err := controller.NewServer(
				ctx,
				workspaceUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", serverCfg.Addr))
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
