package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/sscarsdale-chl/donutshop/pkg/utils/safefile"
)

// PreviewFileName is written at the root of the previewed directory.
const PreviewFileName = "preview-generated.html"

//go:embed templates/preview.html.tmpl
var previewTemplateText string

var previewTemplate = template.Must(template.New("preview").Parse(previewTemplateText))

// bannerDirPattern matches size directories such as 300x250
var bannerDirPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

type previewer struct{}

// NewPreviewer creates a new instance of PreviewUseCase
func NewPreviewer() interfaces.PreviewUseCase {
	return &previewer{}
}

// Generate writes a page embedding every <W>x<H>/html/*.html banner found under root and
// returns its path.
func (uc *previewer) Generate(ctx context.Context, root string) (string, error) {
	logger := ctxlog.From(ctx)

	banners, err := collectBanners(root)
	if err != nil {
		return "", err
	}
	if len(banners) == 0 {
		return "", goerr.Wrap(model.ErrNoBanners, "nothing to preview", goerr.V("root", root))
	}

	var vertical, horizontal []model.Banner
	for _, b := range banners {
		if b.IsVertical() {
			vertical = append(vertical, b)
		} else {
			horizontal = append(horizontal, b)
		}
	}

	logger.Info("Collected banners",
		"root", root,
		"total", len(banners),
		"vertical", len(vertical),
		"horizontal", len(horizontal),
	)

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, map[string]any{
		"Title":      filepath.Base(filepath.Clean(root)),
		"Vertical":   vertical,
		"Horizontal": horizontal,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render preview template")
	}

	out := filepath.Join(root, PreviewFileName)
	if err := safefile.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return "", goerr.Wrap(fmt.Errorf("%w: %w", model.ErrWrite, err), "failed to write preview", goerr.V("path", out))
	}

	logger.Info("Preview HTML file created", "path", out)
	return out, nil
}

// collectBanners lists the HTML files of every size directory directly below root
func collectBanners(root string) ([]model.Banner, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrScan, err), "failed to read preview root", goerr.V("root", root))
	}

	var banners []model.Banner
	for _, e := range entries {
		if !e.IsDir() || isHidden(e.Name()) {
			continue
		}
		m := bannerDirPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		width, _ := strconv.Atoi(m[1])
		height, _ := strconv.Atoi(m[2])

		files, err := os.ReadDir(filepath.Join(root, e.Name(), "html"))
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".html") {
				continue
			}
			banners = append(banners, model.Banner{
				Size:     e.Name(),
				Width:    width,
				Height:   height,
				Path:     e.Name() + "/html/" + f.Name(),
				Filename: f.Name(),
			})
		}
	}
	return banners, nil
}
