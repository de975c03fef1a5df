package interfaces

import (
	"context"

	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

// ScanUseCase discovers exported creatives below a directory
type ScanUseCase interface {
	// Scan walks root and returns every creative in discovery order. It returns
	// model.ErrNoCreatives together with an empty result when nothing matched.
	Scan(ctx context.Context, root string) (*model.ScanResult, error)
}

// CompressUseCase compresses images in place through the remote service
type CompressUseCase interface {
	// Compress runs one pipeline per image and returns after all of them settled.
	// onImage, if not nil, is called once per image and may be called concurrently.
	Compress(ctx context.Context, images []string, apiKey string, onImage func(model.ImageOutcome)) (*model.CompressionReport, error)
}

// ConvertUseCase rewrites a creative's HTML and starts compressing its images
type ConvertUseCase interface {
	Convert(ctx context.Context, creative model.Creative, clickTag, apiKey string, onImage func(model.ImageOutcome)) (*model.Conversion, error)
}

// PreviewUseCase writes a preview page listing banners below a directory
type PreviewUseCase interface {
	Generate(ctx context.Context, root string) (string, error)
}

// WorkspaceUseCase is the state held on behalf of the presentation shell
type WorkspaceUseCase interface {
	SelectFolder(ctx context.Context, folder string) <-chan struct{}
	SetClickTag(ctx context.Context, raw string) (string, error)
	Convert(ctx context.Context, location string) (*model.Conversion, error)
	SetAPIKey(ctx context.Context, key string) error
	DeleteAPIKey(ctx context.Context) error
	GeneratePreview(ctx context.Context) (string, error)
	Snapshot() *model.WorkspaceState
}
