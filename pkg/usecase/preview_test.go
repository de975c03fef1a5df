package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/sscarsdale-chl/donutshop/pkg/usecase"
)

func TestPreviewer_Generate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Campaign")
	writeFile(t, filepath.Join(root, "160x600", "html", "sky.html"), "<html></html>")
	writeFile(t, filepath.Join(root, "300x250", "html", "mpu.html"), "<html></html>")
	writeFile(t, filepath.Join(root, "300x250", "html", "mpu.js"), "")
	writeFile(t, filepath.Join(root, "assets", "html", "ignored.html"), "<html></html>")
	writeFile(t, filepath.Join(root, "728x90", "mpu.html"), "<html></html>")

	path, err := usecase.NewPreviewer().Generate(context.Background(), root)
	gt.NoError(t, err)
	gt.V(t, path).Equal(filepath.Join(root, usecase.PreviewFileName))

	page := readFile(t, path)
	gt.String(t, page).Contains("<h1>Campaign HTML Preview</h1>")
	gt.String(t, page).Contains(`<iframe src="160x600/html/sky.html" width="160" height="600" title="160x600 Banner">`)
	gt.String(t, page).Contains(`<iframe src="300x250/html/mpu.html" width="300" height="250" title="300x250 Banner">`)
	gt.False(t, strings.Contains(page, "ignored.html"))
	gt.False(t, strings.Contains(page, "728x90"))

	// vertical units come first
	gt.True(t, strings.Index(page, "160x600") < strings.Index(page, "300x250"))
	gt.V(t, strings.Count(page, "horizontal-units\"")).Equal(1)
}

func TestPreviewer_NoBanners(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.txt"), "")

	_, err := usecase.NewPreviewer().Generate(context.Background(), root)
	gt.True(t, errors.Is(err, model.ErrNoBanners))
}

func TestPreviewer_MissingRoot(t *testing.T) {
	_, err := usecase.NewPreviewer().Generate(context.Background(), filepath.Join(t.TempDir(), "missing"))
	gt.True(t, errors.Is(err, model.ErrScan))
}
