package postgres

import "time"

type teamTableModel struct {
	TeamID       int64     `db:"team_id"`
	TeamName     string    `db:"team_name"`
	Abbreviation string    `db:"abbreviation"`
	SimpleName   string    `db:"simple_name"`
	Location     string    `db:"location"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
