package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtsync/courtsync/internal/domain/playerstats"
	qb "github.com/courtsync/courtsync/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

const playerStatUpsertSuffix = `ON CONFLICT (game_id, player_id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    player_name = EXCLUDED.player_name,
    minutes_played = EXCLUDED.minutes_played,
    points = EXCLUDED.points,
    rebounds = EXCLUDED.rebounds,
    assists = EXCLUDED.assists,
    steals = EXCLUDED.steals,
    blocks = EXCLUDED.blocks,
    turnovers = EXCLUDED.turnovers,
    fouls = EXCLUDED.fouls,
    field_goals_made = EXCLUDED.field_goals_made,
    field_goals_attempted = EXCLUDED.field_goals_attempted,
    three_pointers_made = EXCLUDED.three_pointers_made,
    three_pointers_attempted = EXCLUDED.three_pointers_attempted,
    free_throws_made = EXCLUDED.free_throws_made,
    free_throws_attempted = EXCLUDED.free_throws_attempted,
    plus_minus = EXCLUDED.plus_minus,
    fantasy_points = EXCLUDED.fantasy_points,
    updated_at = EXCLUDED.updated_at`

// UpsertAll overwrites the full stat line on conflict of the
// (game_id, player_id) pair, so re-ingesting a finished game replaces
// the row instead of stacking duplicates.
func (r *PlayerStatsRepository) UpsertAll(ctx context.Context, stats []playerstats.GameStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert player stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stat := range stats {
		insertModel := playerStatInsertModel{
			GameID:                 stat.GameID,
			PlayerID:               stat.PlayerID,
			TeamID:                 stat.TeamID,
			PlayerName:             stat.PlayerName,
			MinutesPlayed:          playerstats.FormatMinutes(stat.MinutesPlayed),
			Points:                 stat.Line.Points,
			Rebounds:               stat.Line.Rebounds,
			Assists:                stat.Line.Assists,
			Steals:                 stat.Line.Steals,
			Blocks:                 stat.Line.Blocks,
			Turnovers:              stat.Line.Turnovers,
			Fouls:                  stat.Line.Fouls,
			FieldGoalsMade:         stat.Line.FieldGoalsMade,
			FieldGoalsAttempted:    stat.Line.FieldGoalsAttempted,
			ThreePointersMade:      stat.Line.ThreePointersMade,
			ThreePointersAttempted: stat.Line.ThreePointersAttempted,
			FreeThrowsMade:         stat.Line.FreeThrowsMade,
			FreeThrowsAttempted:    stat.Line.FreeThrowsAttempted,
			PlusMinus:              stat.Line.PlusMinus,
			FantasyPoints:          stat.FantasyPoints,
			UpdatedAt:              stat.UpdatedAt.UTC(),
		}

		query, args, err := qb.InsertModel("player_stats", insertModel, playerStatUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert player stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player stat game_id=%s player_id=%d: %w", stat.GameID, stat.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert player stats tx: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) ListByGame(ctx context.Context, gameID string) ([]playerstats.GameStat, error) {
	query, args, err := qb.Select("*").From("player_stats").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("fantasy_points DESC", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats by game query: %w", err)
	}

	var rows []playerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player stats by game: %w", err)
	}

	out := make([]playerstats.GameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.GameStat{
			GameID:        row.GameID,
			PlayerID:      row.PlayerID,
			TeamID:        row.TeamID,
			PlayerName:    row.PlayerName,
			MinutesPlayed: parseIntervalText(row.MinutesPlayed),
			Line: playerstats.StatLine{
				Points:                 row.Points,
				Rebounds:               row.Rebounds,
				Assists:                row.Assists,
				Steals:                 row.Steals,
				Blocks:                 row.Blocks,
				Turnovers:              row.Turnovers,
				Fouls:                  row.Fouls,
				FieldGoalsMade:         row.FieldGoalsMade,
				FieldGoalsAttempted:    row.FieldGoalsAttempted,
				ThreePointersMade:      row.ThreePointersMade,
				ThreePointersAttempted: row.ThreePointersAttempted,
				FreeThrowsMade:         row.FreeThrowsMade,
				FreeThrowsAttempted:    row.FreeThrowsAttempted,
				PlusMinus:              row.PlusMinus,
			},
			FantasyPoints: row.FantasyPoints,
			UpdatedAt:     row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}
