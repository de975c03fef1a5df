package model

import (
	"errors"
	"fmt"
)

// CompressionStage names the step of an image pipeline.
type CompressionStage string

const (
	StageRead     CompressionStage = "read"
	StageUpload   CompressionStage = "upload"
	StageParse    CompressionStage = "parse"
	StageDownload CompressionStage = "download"
	StageWrite    CompressionStage = "write"
	StageDone     CompressionStage = "done"
)

// ShrinkResult is the part of the compression service response we rely on.
type ShrinkResult struct {
	Input  ShrinkInput  `json:"input"`
	Output ShrinkOutput `json:"output"`
}

type ShrinkInput struct {
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type ShrinkOutput struct {
	Size   int64   `json:"size"`
	Type   string  `json:"type"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Ratio  float64 `json:"ratio"`
	URL    string  `json:"url"`
}

// ImageOutcome is the settled state of one image pipeline.
type ImageOutcome struct {
	Path       string           `json:"path"`
	Stage      CompressionStage `json:"stage"`
	InputSize  int64            `json:"input_size,omitempty"`
	OutputSize int64            `json:"output_size,omitempty"`
	Err        error            `json:"-"`
	Error      string           `json:"error,omitempty"`
}

// Succeeded reports whether the compressed bytes replaced the original file.
func (o ImageOutcome) Succeeded() bool {
	return o.Err == nil && o.Stage == StageDone
}

// CompressionReport aggregates every image outcome of one compression call, in input order.
type CompressionReport struct {
	Outcomes []ImageOutcome `json:"outcomes"`
}

func (r *CompressionReport) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			n++
		}
	}
	return n
}

func (r *CompressionReport) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Err joins all per-image failures, or returns nil when every image succeeded.
func (r *CompressionReport) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

func (r *CompressionReport) Summary() string {
	return fmt.Sprintf("%d of %d images compressed, %d failed", r.Succeeded(), len(r.Outcomes), r.Failed())
}
