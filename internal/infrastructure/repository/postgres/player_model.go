package postgres

import "time"

type playerTableModel struct {
	PlayerID   int64     `db:"player_id"`
	PlayerName string    `db:"player_name"`
	JerseyNum  string    `db:"jersey_num"`
	TeamID     int64     `db:"team_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	PlayerID   int64     `db:"player_id"`
	PlayerName string    `db:"player_name"`
	JerseyNum  string    `db:"jersey_num"`
	TeamID     int64     `db:"team_id"`
	UpdatedAt  time.Time `db:"updated_at"`
}
