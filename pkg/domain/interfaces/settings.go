package interfaces

import "context"

// SecretStore keeps the compression service credential in user-scoped storage
type SecretStore interface {
	// APIKey returns the stored key, or an empty string if none is stored
	APIKey(ctx context.Context) (string, error)
	SetAPIKey(ctx context.Context, key string) error
	DeleteAPIKey(ctx context.Context) error
}
