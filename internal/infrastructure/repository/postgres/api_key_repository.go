package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtsync/courtsync/internal/domain/apikey"
	qb "github.com/courtsync/courtsync/internal/platform/querybuilder"
)

type APIKeyRepository struct {
	db *sqlx.DB
}

func NewAPIKeyRepository(db *sqlx.DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) GetByHash(ctx context.Context, hash string) (apikey.Key, bool, error) {
	query, args, err := qb.Select("*").From("api_keys").
		Where(qb.Eq("key_hash", hash)).
		Limit(1).
		ToSQL()
	if err != nil {
		return apikey.Key{}, false, fmt.Errorf("build select api key query: %w", err)
	}

	var row apiKeyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return apikey.Key{}, false, nil
		}
		return apikey.Key{}, false, fmt.Errorf("select api key by hash: %w", err)
	}

	return apikey.Key{
		ID:         row.ID,
		Hash:       row.KeyHash,
		Label:      row.Label,
		CreatedAt:  row.CreatedAt.UTC(),
		LastUsedAt: row.LastUsedAt,
	}, true, nil
}

func (r *APIKeyRepository) TouchLastUsed(ctx context.Context, keyID string) error {
	query, args, err := qb.Update("api_keys").
		SetExpr("last_used_at", "NOW()").
		Where(qb.Eq("id", keyID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build touch api key query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("touch api key id=%s: %w", keyID, err)
	}
	return nil
}
