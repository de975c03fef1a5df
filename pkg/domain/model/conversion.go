package model

import "github.com/sscarsdale-chl/donutshop/pkg/utils/async"

// Conversion is the result of converting one creative. Compression is nil when the
// creative has no images; otherwise it settles once every image pipeline has finished.
type Conversion struct {
	ID          string
	Creative    Creative
	Compression *async.Future[*CompressionReport]
}
