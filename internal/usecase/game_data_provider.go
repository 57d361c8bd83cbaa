package usecase

import (
	"context"
	"time"
)

// GameDataProvider is the read side of the upstream NBA data feed. A box
// score for a game that has not tipped off yet is reported via
// ErrGameNotYetAvailable so callers can skip it without failing the batch.
type GameDataProvider interface {
	FetchBoxScore(ctx context.Context, gameID string) (ExternalBoxScore, error)
	FetchScoreboard(ctx context.Context) ([]ExternalScoreboardGame, error)
	FetchGameLog(ctx context.Context, date time.Time) ([]ExternalGameLogRow, error)
}

type ExternalBoxScore struct {
	GameID      string
	GameTimeUTC time.Time
	Status      string
	Period      int
	HomeTeam    ExternalTeamBox
	AwayTeam    ExternalTeamBox
}

type ExternalTeamBox struct {
	TeamID       int64
	Name         string
	Abbreviation string
	Score        int
	Players      []ExternalPlayerLine
}

type ExternalPlayerLine struct {
	PersonID   int64
	Name       string
	JerseyNum  string
	Statistics ExternalStatLine
}

// ExternalStatLine carries the raw counting stats from the upstream box
// score. Minutes keeps the provider's ISO-8601 duration string (for
// example "PT36M12.00S") and is parsed downstream.
type ExternalStatLine struct {
	Minutes                string
	Points                 int
	Rebounds               int
	Assists                int
	Steals                 int
	Blocks                 int
	Turnovers              int
	FoulsPersonal          int
	FieldGoalsMade         int
	FieldGoalsAttempted    int
	ThreePointersMade      int
	ThreePointersAttempted int
	FreeThrowsMade         int
	FreeThrowsAttempted    int
	PlusMinus              int
}

type ExternalScoreboardGame struct {
	GameID      string
	GameTimeUTC time.Time
	Status      string
}

type ExternalGameLogRow struct {
	GameID   string
	TeamID   int64
	Matchup  string
	GameDate time.Time
}
