package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtsync/courtsync/internal/domain/team"
)

// BootstrapSeed makes sure the 30 franchises exist before the first
// ingestion run. It is a no-op when the teams table is already
// populated.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	repo := NewTeamRepository(db)
	if _, err := repo.SeedAll(ctx, team.DefaultTeams()); err != nil {
		return fmt.Errorf("bootstrap seed teams: %w", err)
	}
	return nil
}
