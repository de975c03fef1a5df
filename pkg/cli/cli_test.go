package cli_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/sscarsdale-chl/donutshop/pkg/cli"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
	"github.com/sscarsdale-chl/donutshop/pkg/infra/settings"
)

const signedDoc = `<!-- All tokens are represented by '$' sign in the template. -->
<script>
var comp=AdobeAn.getComposition("ABC123");
</script>
<div style="width:300px; height:250px"></div>
`

func setupFolder(t *testing.T) (root, html, image string) {
	t.Helper()
	root = t.TempDir()
	dir := filepath.Join(root, "300x250")
	gt.NoError(t, os.MkdirAll(dir, 0o755))
	html = filepath.Join(dir, "banner.html")
	image = filepath.Join(dir, "bg.png")
	gt.NoError(t, os.WriteFile(html, []byte(signedDoc), 0o644))
	gt.NoError(t, os.WriteFile(image, []byte("original"), 0o644))
	return root, html, image
}

func newTinifyServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shrink":
			_, _ = io.Copy(io.Discard, r.Body)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"output":{"size":4,"url":"` + srv.URL + `/output/1"}}`))
		case "/output/1":
			_, _ = w.Write([]byte("tiny"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Scan(t *testing.T) {
	root, _, _ := setupFolder(t)
	gt.NoError(t, cli.Run(context.Background(), []string{"donutshop", "scan", root}))
}

func TestRun_ScanRequiresFolder(t *testing.T) {
	gt.Error(t, cli.Run(context.Background(), []string{"donutshop", "scan"}))
}

func TestRun_Convert(t *testing.T) {
	root, html, image := setupFolder(t)
	srv := newTinifyServer(t)

	err := cli.Run(context.Background(), []string{
		"donutshop", "convert",
		"--click-tag", "example.com/ad",
		"--tinify-api-key", "test-key",
		"--tinify-endpoint", srv.URL + "/shrink",
		"--settings-file", filepath.Join(t.TempDir(), "settings.toml"),
		root,
	})
	gt.NoError(t, err)

	data, err := os.ReadFile(html)
	gt.NoError(t, err)
	gt.String(t, string(data)).Contains(`var clickTag = "https://example.com/ad";`)
	gt.String(t, string(data)).Contains("var comp=AdobeAn.getComposition(\"ABC123\");")

	data, err = os.ReadFile(image)
	gt.NoError(t, err)
	gt.V(t, string(data)).Equal("tiny")
}

func TestRun_ConvertWithoutKey(t *testing.T) {
	t.Setenv("TINYPNG_API_KEY", "")
	t.Setenv("DONUTSHOP_TINIFY_API_KEY", "")
	root, html, image := setupFolder(t)

	err := cli.Run(context.Background(), []string{
		"donutshop", "convert",
		"--click-tag", "example.com/ad",
		"--settings-file", filepath.Join(t.TempDir(), "settings.toml"),
		root,
	})
	gt.True(t, errors.Is(err, model.ErrMissingCredential))

	data, err := os.ReadFile(html)
	gt.NoError(t, err)
	gt.V(t, string(data)).Equal(signedDoc)
	data, err = os.ReadFile(image)
	gt.NoError(t, err)
	gt.V(t, string(data)).Equal("original")
}

func TestRun_ConvertUsesStoredKey(t *testing.T) {
	t.Setenv("TINYPNG_API_KEY", "")
	t.Setenv("DONUTSHOP_TINIFY_API_KEY", "")
	root, _, image := setupFolder(t)
	srv := newTinifyServer(t)
	settingsPath := filepath.Join(t.TempDir(), "settings.toml")

	gt.NoError(t, cli.Run(context.Background(), []string{
		"donutshop", "config", "--settings-file", settingsPath, "set-api-key", "stored-key",
	}))
	key, err := settings.NewFile(settingsPath).APIKey(context.Background())
	gt.NoError(t, err)
	gt.V(t, key).Equal("stored-key")

	gt.NoError(t, cli.Run(context.Background(), []string{
		"donutshop", "convert",
		"--click-tag", "https://example.com",
		"--tinify-endpoint", srv.URL + "/shrink",
		"--settings-file", settingsPath,
		root,
	}))
	data, err := os.ReadFile(image)
	gt.NoError(t, err)
	gt.V(t, string(data)).Equal("tiny")
}

func TestRun_ConvertOnlyUnknown(t *testing.T) {
	root, _, _ := setupFolder(t)

	err := cli.Run(context.Background(), []string{
		"donutshop", "convert",
		"--click-tag", "example.com",
		"--only", "missing",
		root,
	})
	gt.True(t, errors.Is(err, model.ErrCreativeNotFound))
}

func TestRun_Preview(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "300x250", "html")
	gt.NoError(t, os.MkdirAll(dir, 0o755))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "mpu.html"), []byte(signedDoc), 0o644))

	gt.NoError(t, cli.Run(context.Background(), []string{"donutshop", "preview", root}))

	data, err := os.ReadFile(filepath.Join(root, "preview-generated.html"))
	gt.NoError(t, err)
	gt.True(t, strings.Contains(string(data), "300x250/html/mpu.html"))
}

func TestRun_InvalidLogLevel(t *testing.T) {
	gt.Error(t, cli.Run(context.Background(), []string{"donutshop", "--log-level", "loud", "scan", t.TempDir()}))
}

func TestRun_ServeReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	gt.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = cli.Run(ctx, []string{"donutshop", "serve", "--ephemeral", "--addr", ln.Addr().String()})
	gt.Error(t, err)
	gt.NoError(t, ctx.Err())
}

func TestRun_ServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	gt.NoError(t, cli.Run(ctx, []string{
		"donutshop", "serve",
		"--ephemeral",
		"--addr", "127.0.0.1:0",
		"--shutdown-timeout", "1s",
	}))
}
