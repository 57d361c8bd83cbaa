package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtsync/courtsync/internal/domain/team"
	qb "github.com/courtsync/courtsync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("team_name", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTeamRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("team_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return mapTeamRow(row), true, nil
}

// SeedAll inserts franchises that do not exist yet and reports how
// many rows were created. Existing rows are left untouched.
func (r *TeamRepository) SeedAll(ctx context.Context, teams []team.Team) (int, error) {
	if len(teams) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed teams tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	inserted := 0
	for _, item := range teams {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (team_id, team_name, abbreviation, simple_name, location)
VALUES (:team_id, :team_name, :abbreviation, :simple_name, :location)
ON CONFLICT (team_id) DO NOTHING`, map[string]any{
			"team_id":      item.ID,
			"team_name":    item.Name,
			"abbreviation": item.Abbreviation,
			"simple_name":  item.SimpleName,
			"location":     item.Location,
		})
		if err != nil {
			return 0, fmt.Errorf("bind seed team %d query: %w", item.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		result, err := tx.ExecContext(ctx, sqlQuery, args...)
		if err != nil {
			return 0, fmt.Errorf("seed team %d: %w", item.ID, err)
		}
		if affected, err := result.RowsAffected(); err == nil {
			inserted += int(affected)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed teams tx: %w", err)
	}
	return inserted, nil
}

func mapTeamRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.TeamID,
		Name:         row.TeamName,
		Abbreviation: row.Abbreviation,
		SimpleName:   row.SimpleName,
		Location:     row.Location,
	}
}
