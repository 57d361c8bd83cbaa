package game

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusFinal    = "Final"
	StatusPregame  = "pregame"
	StatusHalftime = "Halftime"
)

// Game is one NBA game keyed by the league-assigned string identifier.
// Scores, status text and period are overwritten on every ingestion of
// the same identifier; a game row is never duplicated or deleted.
type Game struct {
	ID         string
	GameTime   time.Time
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  int
	AwayScore  int
	Status     string
	Period     int
	UpdatedAt  time.Time
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if g.HomeTeamID <= 0 {
		return fmt.Errorf("game home team id must be greater than zero")
	}
	if g.AwayTeamID <= 0 {
		return fmt.Errorf("game away team id must be greater than zero")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("game home and away teams must be distinct")
	}
	if g.HomeScore < 0 || g.AwayScore < 0 {
		return fmt.Errorf("game scores cannot be negative")
	}

	return nil
}

// IsFinal reports whether the provider status text marks a completed
// game. The upstream uses free text like "Final" or "Final/OT".
func IsFinal(status string) bool {
	return strings.HasPrefix(strings.TrimSpace(status), StatusFinal)
}

func IsLive(status string) bool {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" || IsFinal(trimmed) {
		return false
	}
	switch strings.ToLower(trimmed) {
	case StatusPregame, "pre-game", "ppd", "postponed":
		return false
	}
	return true
}
