package interfaces

import (
	"context"

	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

// Compressor talks to the remote image compression service
type Compressor interface {
	// Shrink uploads raw image bytes and returns the service's description of the result
	Shrink(ctx context.Context, apiKey string, image []byte) (*model.ShrinkResult, error)

	// Download fetches the compressed bytes from the output URL returned by Shrink
	Download(ctx context.Context, url string) ([]byte, error)
}
