package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtsync/courtsync/internal/domain/player"
	qb "github.com/courtsync/courtsync/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerUpsertSuffix = `ON CONFLICT (player_id)
DO UPDATE SET
    player_name = EXCLUDED.player_name,
    jersey_num = EXCLUDED.jersey_num,
    team_id = EXCLUDED.team_id,
    updated_at = EXCLUDED.updated_at`

// UpsertAll keys on the upstream player id. A conflicting row picks up
// the latest name and team, which is how traded players move between
// franchises without a separate migration step.
func (r *PlayerRepository) UpsertAll(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	for _, item := range players {
		insertModel := playerInsertModel{
			PlayerID:   item.ID,
			PlayerName: item.Name,
			JerseyNum:  item.JerseyNum,
			TeamID:     item.TeamID,
			UpdatedAt:  now,
		}

		query, args, err := qb.InsertModel("players", insertModel, playerUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player player_id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert players tx: %w", err)
	}
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("player_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}

	return player.Player{
		ID:        row.PlayerID,
		Name:      row.PlayerName,
		JerseyNum: row.JerseyNum,
		TeamID:    row.TeamID,
	}, true, nil
}
