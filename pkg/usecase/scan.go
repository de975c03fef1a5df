package usecase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

// exportSignatures identify documents written by the authoring tool's HTML5 exporter
// or previously rewritten by this tool.
var exportSignatures = []string{
	"All tokens are represented by",
	"Donut Shop",
}

type scanner struct {
	exclude []string
}

// ScanOption configures the scanner
type ScanOption func(*scanner)

// WithExclude skips entries whose slash-separated path relative to the scan root matches
// any of the doublestar patterns.
func WithExclude(patterns ...string) ScanOption {
	return func(s *scanner) {
		s.exclude = append(s.exclude, patterns...)
	}
}

// NewScanner creates a new instance of ScanUseCase
func NewScanner(opts ...ScanOption) (interfaces.ScanUseCase, error) {
	s := &scanner{}
	for _, opt := range opts {
		opt(s)
	}

	for _, p := range s.exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, goerr.New("invalid exclude pattern", goerr.V("pattern", p))
		}
	}

	return s, nil
}

// Scan walks root depth-first and builds a creative for every signed HTML document
func (s *scanner) Scan(ctx context.Context, root string) (*model.ScanResult, error) {
	logger := ctxlog.From(ctx)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, scanError(err, root)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, scanError(err, absRoot)
	}
	if !info.IsDir() {
		return nil, goerr.Wrap(model.ErrScan, "not a directory", goerr.V("root", absRoot))
	}

	logger.Info("Starting search in directory", "root", absRoot)

	result := model.NewScanResult()
	images := make(map[string][]string)
	var fileCount int

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == absRoot {
				return err
			}
			logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path != absRoot {
			if isHidden(d.Name()) || s.excluded(absRoot, path) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}

		if !d.Type().IsRegular() {
			return nil
		}
		fileCount++

		if !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		creative, ok := s.inspect(ctx, path, images)
		if !ok {
			return nil
		}
		result.Add(creative)
		return nil
	})
	if walkErr != nil {
		return nil, scanError(walkErr, absRoot)
	}

	logger.Info("Scan completed",
		"root", absRoot,
		"files_scanned", fileCount,
		"creatives_found", result.Len(),
	)

	if result.Len() == 0 {
		return result, goerr.Wrap(model.ErrNoCreatives, "scan matched nothing", goerr.V("root", absRoot))
	}

	return result, nil
}

// inspect reads one HTML document and turns it into a creative if it carries a signature
func (s *scanner) inspect(ctx context.Context, path string, images map[string][]string) (model.Creative, bool) {
	logger := ctxlog.From(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read HTML file", "path", path, "error", err)
		return model.Creative{}, false
	}
	if !utf8.Valid(data) {
		logger.Warn("Skipping HTML file that is not valid UTF-8", "path", path)
		return model.Creative{}, false
	}
	content := string(data)

	if !hasExportSignature(content) {
		logger.Debug("Found generic HTML file", "path", path)
		return model.Creative{}, false
	}

	dir := filepath.Dir(path)
	siblings, ok := images[dir]
	if !ok {
		siblings = listImages(ctx, dir)
		images[dir] = siblings
	}

	markup := ExtractMarkup(content)
	return model.Creative{
		Location:           path,
		Name:               strings.TrimSuffix(filepath.Base(path), ".html"),
		Width:              markup.Width,
		Height:             markup.Height,
		CompositionBinding: markup.CompositionBinding,
		Images:             append([]string(nil), siblings...),
	}, true
}

// scanError keeps both the taxonomy sentinel and the underlying cause matchable
func scanError(err error, root string) error {
	return goerr.Wrap(fmt.Errorf("%w: %w", model.ErrScan, err), "failed to scan directory", goerr.V("root", root))
}

func (s *scanner) excluded(root, path string) bool {
	if len(s.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range s.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// listImages returns the png and jpg files directly inside dir
func listImages(ctx context.Context, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to list images", "dir", dir, "error", err)
		return nil
	}

	var images []string
	for _, e := range entries {
		if isHidden(e.Name()) || !e.Type().IsRegular() {
			continue
		}
		if isImage(e.Name()) {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	return images
}

func hasExportSignature(content string) bool {
	for _, sig := range exportSignatures {
		if strings.Contains(content, sig) {
			return true
		}
	}
	return false
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg":
		return true
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
