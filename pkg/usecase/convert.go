package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/sscarsdale-chl/donutshop/pkg/utils/async"
	"github.com/sscarsdale-chl/donutshop/pkg/utils/safefile"
)

type converter struct {
	compressUC interfaces.CompressUseCase
}

// NewConverter creates a new instance of ConvertUseCase
func NewConverter(compressUC interfaces.CompressUseCase) interfaces.ConvertUseCase {
	return &converter{compressUC: compressUC}
}

// Convert rewrites the creative's HTML around the bootstrap template, then starts
// compressing its images in the background. The returned creative is marked converted as
// soon as the HTML write succeeded, whatever happens to the images later.
func (uc *converter) Convert(ctx context.Context, creative model.Creative, clickTag, apiKey string, onImage func(model.ImageOutcome)) (*model.Conversion, error) {
	logger := ctxlog.From(ctx)

	if clickTag == "" {
		return nil, goerr.Wrap(model.ErrMissingClickTag, "cannot convert creative",
			goerr.V("location", creative.Location))
	}
	if creative.HasImages() && apiKey == "" {
		return nil, goerr.Wrap(model.ErrMissingCredential, "cannot compress creative images",
			goerr.V("location", creative.Location))
	}

	conv := &model.Conversion{
		ID:       uuid.NewString(),
		Creative: creative.Clone(),
	}
	logger.Info("Converting creative",
		"conversion_id", conv.ID,
		"name", creative.Name,
		"location", creative.Location,
		"images", len(creative.Images),
	)

	html, err := Render(creative, clickTag)
	if err != nil {
		return nil, err
	}

	if err := safefile.WriteFile(creative.Location, []byte(html), 0o644); err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrWrite, err), "failed to write creative HTML",
			goerr.V("location", creative.Location))
	}
	conv.Creative.Converted = true

	if creative.HasImages() {
		images := append([]string(nil), creative.Images...)
		conv.Compression = async.Go(ctx, func(ctx context.Context) (*model.CompressionReport, error) {
			return uc.compressUC.Compress(ctx, images, apiKey, onImage)
		}, nil)
	}

	return conv, nil
}
