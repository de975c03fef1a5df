package settings

import (
	"context"
	"sync"

	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
)

// Memory keeps settings in process memory. Used by tests and by `serve --ephemeral`.
type Memory struct {
	mu  sync.Mutex
	key string
}

var _ interfaces.SecretStore = (*Memory)(nil)

func NewMemory(key string) *Memory {
	return &Memory{key: key}
}

func (m *Memory) APIKey(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key, nil
}

func (m *Memory) SetAPIKey(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = key
	return nil
}

func (m *Memory) DeleteAPIKey(ctx context.Context) error {
	return m.SetAPIKey(ctx, "")
}
