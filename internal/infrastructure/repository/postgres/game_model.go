package postgres

import "time"

type gameTableModel struct {
	GameID     string    `db:"game_id"`
	GameTime   time.Time `db:"game_time"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	GameStatus string    `db:"game_status"`
	Period     int       `db:"period"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type gameInsertModel struct {
	GameID     string    `db:"game_id"`
	GameTime   time.Time `db:"game_time"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	GameStatus string    `db:"game_status"`
	Period     int       `db:"period"`
	UpdatedAt  time.Time `db:"updated_at"`
}
