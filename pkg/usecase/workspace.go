package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/sscarsdale-chl/donutshop/pkg/utils/async"
)

const statusDone = "ClickTag added, images compressed, you're done!"

type workspace struct {
	scanUC    interfaces.ScanUseCase
	convertUC interfaces.ConvertUseCase
	previewUC interfaces.PreviewUseCase
	secrets   interfaces.SecretStore
	apiKey    string

	// mu guards everything below. Background scans and image pipelines only touch
	// state through methods that take it.
	mu       sync.Mutex
	folder   string
	scanID   string
	scanning bool
	result   *model.ScanResult
	clickTag string
	status   string
	errMsg   string
}

// WorkspaceOption configures the workspace
type WorkspaceOption func(*workspace)

// WithAPIKey sets a credential that takes precedence over the secret store
func WithAPIKey(key string) WorkspaceOption {
	return func(w *workspace) {
		w.apiKey = key
	}
}

// NewWorkspace creates a new instance of WorkspaceUseCase
func NewWorkspace(
	scanUC interfaces.ScanUseCase,
	convertUC interfaces.ConvertUseCase,
	previewUC interfaces.PreviewUseCase,
	secrets interfaces.SecretStore,
	opts ...WorkspaceOption,
) interfaces.WorkspaceUseCase {
	w := &workspace{
		scanUC:    scanUC,
		convertUC: convertUC,
		previewUC: previewUC,
		secrets:   secrets,
		result:    model.NewScanResult(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SelectFolder discards the current scan result and scans folder in the background. The
// returned channel is closed when that scan has finished. A scan superseded by a later
// selection is dropped.
func (w *workspace) SelectFolder(ctx context.Context, folder string) <-chan struct{} {
	id := uuid.NewString()

	w.mu.Lock()
	w.folder = folder
	w.scanID = id
	w.scanning = true
	w.result = model.NewScanResult()
	w.status = ""
	w.errMsg = ""
	w.mu.Unlock()

	ctxlog.From(ctx).Info("Selected folder", "folder", folder, "scan_id", id)

	done := make(chan struct{})
	async.Dispatch(ctx, func(ctx context.Context) error {
		defer close(done)
		result, err := w.scanUC.Scan(ctx, folder)
		w.applyScan(ctx, id, result, err)
		return nil
	})
	return done
}

func (w *workspace) applyScan(ctx context.Context, id string, result *model.ScanResult, err error) {
	logger := ctxlog.From(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.scanID != id {
		logger.Info("Discarding result of superseded scan", "scan_id", id)
		return
	}
	w.scanning = false

	switch {
	case errors.Is(err, model.ErrNoCreatives):
		w.result = model.NewScanResult()
		w.errMsg = model.ErrNoCreatives.Error()
	case err != nil:
		logger.Error("Scan failed", "scan_id", id, "error", err)
		w.result = model.NewScanResult()
		w.errMsg = fmt.Sprintf("Could not access the selected folder: %v", err)
	default:
		w.result = result
	}
}

// SetClickTag normalises and stores the click-through URL
func (w *workspace) SetClickTag(ctx context.Context, raw string) (string, error) {
	normalized, err := model.NormalizeClickTag(raw)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.clickTag = strings.TrimSpace(raw)
		return "", err
	}
	w.clickTag = normalized
	ctxlog.From(ctx).Info("Click tag set", "click_tag", normalized)
	return normalized, nil
}

// Convert rewrites the creative at location and marks it converted. Image compression
// keeps running after Convert returns and reports through the status message.
func (w *workspace) Convert(ctx context.Context, location string) (*model.Conversion, error) {
	w.mu.Lock()
	creative, ok := w.result.Get(location)
	clickTag := w.clickTag
	w.mu.Unlock()

	if !ok {
		return nil, goerr.Wrap(model.ErrCreativeNotFound, "unknown creative", goerr.V("location", location))
	}

	normalized, err := model.NormalizeClickTag(clickTag)
	if err != nil {
		w.setError(err.Error())
		return nil, err
	}

	apiKey := w.resolveAPIKey(ctx)
	if creative.HasImages() && apiKey == "" {
		w.setError(model.ErrMissingCredential.Error())
		return nil, goerr.Wrap(model.ErrMissingCredential, "cannot convert creative", goerr.V("location", location))
	}

	w.mu.Lock()
	w.errMsg = ""
	w.status = "updating: " + creative.Name
	w.mu.Unlock()

	conv, err := w.convertUC.Convert(ctx, creative, normalized, apiKey, w.onImage)
	if err != nil {
		w.setError(fmt.Sprintf("Error transforming file: %v", err))
		return nil, err
	}

	w.mu.Lock()
	w.result.MarkConverted(location)
	if conv.Compression == nil {
		w.status = "Converted: " + creative.Name
	}
	w.mu.Unlock()

	if conv.Compression != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			report, err := conv.Compression.Wait(ctx)
			if err != nil {
				w.setError(fmt.Sprintf("Error compressing images: %v", err))
				return err
			}
			ctxlog.From(ctx).Info("Compression complete",
				"conversion_id", conv.ID,
				"summary", report.Summary(),
			)
			w.mu.Lock()
			w.status = statusDone
			w.mu.Unlock()
			return nil
		})
	}

	return conv, nil
}

func (w *workspace) onImage(outcome model.ImageOutcome) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if outcome.Succeeded() {
		w.status = "Compressed: " + filepath.Base(outcome.Path)
		return
	}
	w.errMsg = fmt.Sprintf("Error compressing image: %v", outcome.Err)
}

func (w *workspace) resolveAPIKey(ctx context.Context) string {
	if w.apiKey != "" {
		return w.apiKey
	}
	if w.secrets == nil {
		return ""
	}
	key, err := w.secrets.APIKey(ctx)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to load API key", "error", err)
		return ""
	}
	return key
}

func (w *workspace) SetAPIKey(ctx context.Context, key string) error {
	if w.secrets == nil {
		return goerr.New("no settings store configured")
	}
	return w.secrets.SetAPIKey(ctx, strings.TrimSpace(key))
}

func (w *workspace) DeleteAPIKey(ctx context.Context) error {
	if w.secrets == nil {
		return goerr.New("no settings store configured")
	}
	return w.secrets.DeleteAPIKey(ctx)
}

// GeneratePreview writes the preview page for the selected folder
func (w *workspace) GeneratePreview(ctx context.Context) (string, error) {
	w.mu.Lock()
	folder := w.folder
	w.mu.Unlock()

	if folder == "" {
		return "", goerr.New("no folder selected")
	}

	path, err := w.previewUC.Generate(ctx, folder)
	if err != nil {
		w.setError(fmt.Sprintf("Error generating preview: %v", err))
		return "", err
	}

	w.mu.Lock()
	w.status = "Preview created: " + filepath.Base(path)
	w.mu.Unlock()
	return path, nil
}

// Snapshot returns a copy of the current state with the derived step flags
func (w *workspace) Snapshot() *model.WorkspaceState {
	w.mu.Lock()
	defer w.mu.Unlock()

	step1 := model.IsStep1Complete(w.folder, w.result)
	return &model.WorkspaceState{
		Folder:        w.folder,
		ScanID:        w.scanID,
		Scanning:      w.scanning,
		ClickTag:      w.clickTag,
		Creatives:     w.result.Creatives(),
		Status:        w.status,
		Error:         w.errMsg,
		Step1Complete: step1,
		Step2Complete: step1 && model.IsStep2Complete(w.clickTag),
	}
}

func (w *workspace) setError(msg string) {
	w.mu.Lock()
	w.errMsg = msg
	w.mu.Unlock()
}
