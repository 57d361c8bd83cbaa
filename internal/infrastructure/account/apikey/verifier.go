// Package apikey verifies bearer tokens against the api_keys table.
// Keys are stored as SHA-256 hashes; the raw key never touches disk.
package apikey

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	domain "github.com/courtsync/courtsync/internal/domain/apikey"
	"github.com/courtsync/courtsync/internal/platform/logging"
	"github.com/courtsync/courtsync/internal/usecase"
)

type Verifier struct {
	repo   domain.Repository
	logger *logging.Logger
}

func NewVerifier(repo domain.Repository, logger *logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Verifier{repo: repo, logger: logger}
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	sum := sha256.Sum256([]byte(token))
	hash := hex.EncodeToString(sum[:])

	key, found, err := v.repo.GetByHash(ctx, hash)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("look up api key: %w", err)
	}
	if !found {
		return domain.Principal{}, fmt.Errorf("%w: unknown api key", usecase.ErrUnauthorized)
	}

	// Best effort; a failed timestamp update must not reject the caller.
	if err := v.repo.TouchLastUsed(ctx, key.ID); err != nil {
		v.logger.WarnContext(ctx, "update api key last_used_at failed", "key_id", key.ID, "error", err.Error())
	}

	return domain.Principal{KeyID: key.ID, Label: key.Label}, nil
}
