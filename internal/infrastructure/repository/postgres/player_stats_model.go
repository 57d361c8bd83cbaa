package postgres

import "time"

type playerStatTableModel struct {
	GameID                 string    `db:"game_id"`
	PlayerID               int64     `db:"player_id"`
	TeamID                 int64     `db:"team_id"`
	PlayerName             string    `db:"player_name"`
	MinutesPlayed          string    `db:"minutes_played"`
	Points                 int       `db:"points"`
	Rebounds               int       `db:"rebounds"`
	Assists                int       `db:"assists"`
	Steals                 int       `db:"steals"`
	Blocks                 int       `db:"blocks"`
	Turnovers              int       `db:"turnovers"`
	Fouls                  int       `db:"fouls"`
	FieldGoalsMade         int       `db:"field_goals_made"`
	FieldGoalsAttempted    int       `db:"field_goals_attempted"`
	ThreePointersMade      int       `db:"three_pointers_made"`
	ThreePointersAttempted int       `db:"three_pointers_attempted"`
	FreeThrowsMade         int       `db:"free_throws_made"`
	FreeThrowsAttempted    int       `db:"free_throws_attempted"`
	PlusMinus              int       `db:"plus_minus"`
	FantasyPoints          int       `db:"fantasy_points"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

type playerStatInsertModel struct {
	GameID                 string    `db:"game_id"`
	PlayerID               int64     `db:"player_id"`
	TeamID                 int64     `db:"team_id"`
	PlayerName             string    `db:"player_name"`
	MinutesPlayed          string    `db:"minutes_played"`
	Points                 int       `db:"points"`
	Rebounds               int       `db:"rebounds"`
	Assists                int       `db:"assists"`
	Steals                 int       `db:"steals"`
	Blocks                 int       `db:"blocks"`
	Turnovers              int       `db:"turnovers"`
	Fouls                  int       `db:"fouls"`
	FieldGoalsMade         int       `db:"field_goals_made"`
	FieldGoalsAttempted    int       `db:"field_goals_attempted"`
	ThreePointersMade      int       `db:"three_pointers_made"`
	ThreePointersAttempted int       `db:"three_pointers_attempted"`
	FreeThrowsMade         int       `db:"free_throws_made"`
	FreeThrowsAttempted    int       `db:"free_throws_attempted"`
	PlusMinus              int       `db:"plus_minus"`
	FantasyPoints          int       `db:"fantasy_points"`
	UpdatedAt              time.Time `db:"updated_at"`
}
