package playerstats

import (
	"fmt"
	"strings"
	"time"
)

// StatLine holds the raw counting statistics of one player in one game,
// exactly as reported by the upstream box score.
type StatLine struct {
	Points                 int
	Rebounds               int
	Assists                int
	Steals                 int
	Blocks                 int
	Turnovers              int
	Fouls                  int
	FieldGoalsMade         int
	FieldGoalsAttempted    int
	ThreePointersMade      int
	ThreePointersAttempted int
	FreeThrowsMade         int
	FreeThrowsAttempted    int
	PlusMinus              int
}

// GameStat is one player's stats row for one game, keyed by the
// composite (game, player) pair. Rows are fully overwritten on every
// ingestion so values always reflect the latest upstream snapshot,
// including in-progress games.
type GameStat struct {
	GameID        string
	PlayerID      int64
	TeamID        int64
	PlayerName    string
	MinutesPlayed time.Duration
	Line          StatLine
	FantasyPoints int
	UpdatedAt     time.Time
}

func (s GameStat) Validate() error {
	if strings.TrimSpace(s.GameID) == "" {
		return fmt.Errorf("game stat game id is required")
	}
	if s.PlayerID <= 0 {
		return fmt.Errorf("game stat player id must be greater than zero")
	}
	if s.TeamID <= 0 {
		return fmt.Errorf("game stat team id must be greater than zero")
	}

	return nil
}
