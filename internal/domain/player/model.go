package player

import "fmt"

// Player is an NBA athlete keyed by the league-assigned numeric
// identifier. The team reference is the player's current team and
// migrates when the player appears in a box score under a new team.
type Player struct {
	ID        int64
	Name      string
	JerseyNum string
	TeamID    int64
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id must be greater than zero")
	}

	return nil
}
