package team

import "fmt"

// Team is an NBA franchise. Reference data seeded once at bootstrap;
// the league-assigned identifier is stable across seasons.
type Team struct {
	ID           int64
	Name         string
	Abbreviation string
	SimpleName   string
	Location     string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be greater than zero")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Abbreviation == "" {
		return fmt.Errorf("team abbreviation is required")
	}

	return nil
}
