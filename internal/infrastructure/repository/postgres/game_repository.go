package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtsync/courtsync/internal/domain/game"
	qb "github.com/courtsync/courtsync/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

const gameUpsertSuffix = `ON CONFLICT (game_id)
DO UPDATE SET
    game_time = EXCLUDED.game_time,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    game_status = EXCLUDED.game_status,
    period = EXCLUDED.period,
    updated_at = EXCLUDED.updated_at`

// UpsertAll inserts or updates every game in one transaction. Each row
// is a single INSERT ... ON CONFLICT statement, so concurrent runs for
// the same slate converge on the latest write instead of failing.
func (r *GameRepository) UpsertAll(ctx context.Context, games []game.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range games {
		insertModel := gameInsertModel{
			GameID:     item.ID,
			GameTime:   item.GameTime.UTC(),
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			GameStatus: item.Status,
			Period:     item.Period,
			UpdatedAt:  item.UpdatedAt.UTC(),
		}

		query, args, err := qb.InsertModel("games", insertModel, gameUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game game_id=%s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert games tx: %w", err)
	}
	return nil
}

func (r *GameRepository) ListByDate(ctx context.Context, date time.Time) ([]game.Game, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Expr("game_time >= ?", dayStart),
			qb.Expr("game_time < ?", dayEnd),
		).
		OrderBy("game_time", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by date query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by date: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameRow(row))
	}
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("game_id", gameID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by id: %w", err)
	}
	return mapGameRow(row), true, nil
}

func mapGameRow(row gameTableModel) game.Game {
	return game.Game{
		ID:         row.GameID,
		GameTime:   row.GameTime.UTC(),
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Status:     row.GameStatus,
		Period:     row.Period,
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
}
