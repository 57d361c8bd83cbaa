package apikey

import "context"

// Repository describes API key lookups for the credential gate.
type Repository interface {
	GetByHash(ctx context.Context, hash string) (Key, bool, error)
	TouchLastUsed(ctx context.Context, keyID string) error
}
