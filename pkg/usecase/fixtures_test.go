package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

const compositionLine = "\tvar comp=AdobeAn.getComposition(\"ABC123\");"

// exportedDoc mimics an HTML5 export of a 300x250 stage
const exportedDoc = `<!DOCTYPE html>
<!--
	NOTES:
	1. All tokens are represented by '$' sign in the template.
-->
<html>
<head>
<meta charset="UTF-8">
<title>banner</title>
<script>
var canvas, stage, exportRoot;
function init() {
	canvas = document.getElementById("canvas");
` + compositionLine + `
	var lib=comp.getLibrary();
}
</script>
</head>
<body onload="init();">
	<div id="animation_container" style="width:300px; height:250px">
	</div>
</body>
</html>
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	return string(data)
}

// eventually polls cond until it holds or a second has passed
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

// MockCompressor is a hand-written mock of interfaces.Compressor
type MockCompressor struct {
	ShrinkFunc   func(ctx context.Context, apiKey string, image []byte) (*model.ShrinkResult, error)
	DownloadFunc func(ctx context.Context, url string) ([]byte, error)

	mu          sync.Mutex
	shrinkCalls int
}

func (m *MockCompressor) Shrink(ctx context.Context, apiKey string, image []byte) (*model.ShrinkResult, error) {
	m.mu.Lock()
	m.shrinkCalls++
	m.mu.Unlock()
	return m.ShrinkFunc(ctx, apiKey, image)
}

func (m *MockCompressor) Download(ctx context.Context, url string) ([]byte, error) {
	return m.DownloadFunc(ctx, url)
}

func (m *MockCompressor) ShrinkCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shrinkCalls
}

// MockCompressUseCase is a hand-written mock of interfaces.CompressUseCase
type MockCompressUseCase struct {
	CompressFunc func(ctx context.Context, images []string, apiKey string, onImage func(model.ImageOutcome)) (*model.CompressionReport, error)

	mu    sync.Mutex
	calls [][]string
}

func (m *MockCompressUseCase) Compress(ctx context.Context, images []string, apiKey string, onImage func(model.ImageOutcome)) (*model.CompressionReport, error) {
	m.mu.Lock()
	m.calls = append(m.calls, images)
	m.mu.Unlock()
	if m.CompressFunc == nil {
		outcomes := make([]model.ImageOutcome, len(images))
		for i, p := range images {
			outcomes[i] = model.ImageOutcome{Path: p, Stage: model.StageDone}
			if onImage != nil {
				onImage(outcomes[i])
			}
		}
		return &model.CompressionReport{Outcomes: outcomes}, nil
	}
	return m.CompressFunc(ctx, images, apiKey, onImage)
}

func (m *MockCompressUseCase) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
