package settings

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/utils/safefile"
)

// document is the on-disk layout of the settings file
type document struct {
	TinyPNGAPIKey string `toml:"tinypng_api_key,omitempty" masq:"secret"`
}

// File stores settings in a TOML file readable only by the owner
type File struct {
	path string
	mu   sync.Mutex
}

var _ interfaces.SecretStore = (*File)(nil)

// NewFile returns a store backed by path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultPath returns <user config dir>/<app>/settings.toml
func DefaultPath(app string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(dir, app, "settings.toml"), nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) APIKey(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", err
	}
	return doc.TinyPNGAPIKey, nil
}

func (f *File) SetAPIKey(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	doc.TinyPNGAPIKey = key
	return f.save(doc)
}

func (f *File) DeleteAPIKey(ctx context.Context) error {
	return f.SetAPIKey(ctx, "")
}

func (f *File) load() (*document, error) {
	var doc document

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &doc, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read settings", goerr.V("path", f.path))
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse settings", goerr.V("path", f.path))
	}
	return &doc, nil
}

func (f *File) save(doc *document) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return goerr.Wrap(err, "failed to encode settings")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return goerr.Wrap(err, "failed to create settings directory", goerr.V("path", f.path))
	}
	if err := safefile.WriteFile(f.path, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write settings", goerr.V("path", f.path))
	}
	return nil
}
