package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/sscarsdale-chl/donutshop/pkg/utils/safefile"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type compression struct {
	client      interfaces.Compressor
	concurrency int
	limiter     *rate.Limiter
}

// CompressionOption configures the compression use case
type CompressionOption func(*compression)

// WithConcurrency bounds how many image pipelines run at once. Zero or less means every
// image starts immediately.
func WithConcurrency(n int) CompressionOption {
	return func(c *compression) {
		c.concurrency = n
	}
}

// WithRateLimit caps uploads per second across all pipelines. Zero or less disables it.
func WithRateLimit(perSecond float64) CompressionOption {
	return func(c *compression) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewCompression creates a new instance of CompressUseCase
func NewCompression(client interfaces.Compressor, opts ...CompressionOption) interfaces.CompressUseCase {
	c := &compression{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compress uploads every image, downloads the compressed result and overwrites the
// original file. A failing image never stops the others; the report lists all of them.
func (uc *compression) Compress(ctx context.Context, images []string, apiKey string, onImage func(model.ImageOutcome)) (*model.CompressionReport, error) {
	logger := ctxlog.From(ctx)

	if apiKey == "" {
		return nil, goerr.Wrap(model.ErrMissingCredential, "compression requested without API key",
			goerr.V("images", len(images)))
	}

	report := &model.CompressionReport{
		Outcomes: make([]model.ImageOutcome, len(images)),
	}

	var g errgroup.Group
	if uc.concurrency > 0 {
		g.SetLimit(uc.concurrency)
	}

	for i, path := range images {
		g.Go(func() error {
			outcome := uc.compressOne(ctx, path, apiKey)
			report.Outcomes[i] = outcome
			if onImage != nil {
				onImage(outcome)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("Image compression finished",
		"total", len(report.Outcomes),
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
	)

	return report, nil
}

// compressOne runs the read, upload, download and overwrite steps for a single image
func (uc *compression) compressOne(ctx context.Context, path, apiKey string) model.ImageOutcome {
	logger := ctxlog.From(ctx)
	outcome := model.ImageOutcome{Path: path, Stage: model.StageRead}

	fail := func(stage model.CompressionStage, err error) model.ImageOutcome {
		outcome.Stage = stage
		outcome.Err = goerr.Wrap(err, "failed to compress image",
			goerr.V("path", path),
			goerr.V("stage", string(stage)),
		)
		outcome.Error = outcome.Err.Error()
		logger.Error("Error compressing image", "path", path, "stage", stage, "error", err)
		return outcome
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(model.StageRead, fmt.Errorf("%w: %w", model.ErrReadImage, err))
	}
	outcome.InputSize = int64(len(data))

	if uc.limiter != nil {
		if err := uc.limiter.Wait(ctx); err != nil {
			return fail(model.StageUpload, fmt.Errorf("%w: %w", model.ErrUpload, err))
		}
	}

	result, err := uc.client.Shrink(ctx, apiKey, data)
	if err != nil {
		if errors.Is(err, model.ErrProtocol) {
			return fail(model.StageParse, err)
		}
		return fail(model.StageUpload, ensureSentinel(err, model.ErrUpload))
	}
	if result == nil || result.Output.URL == "" {
		return fail(model.StageParse, goerr.Wrap(model.ErrProtocol, "response has no output url"))
	}

	compressed, err := uc.client.Download(ctx, result.Output.URL)
	if err != nil {
		return fail(model.StageDownload, ensureSentinel(err, model.ErrDownload))
	}

	if err := safefile.WriteFile(path, compressed, 0o644); err != nil {
		return fail(model.StageWrite, fmt.Errorf("%w: %w", model.ErrWrite, err))
	}

	outcome.Stage = model.StageDone
	outcome.OutputSize = int64(len(compressed))
	logger.Info("Compressed image saved",
		"path", path,
		"input_size", outcome.InputSize,
		"output_size", outcome.OutputSize,
	)
	return outcome
}

func ensureSentinel(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
