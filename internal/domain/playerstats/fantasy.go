package playerstats

// FantasyPoints computes the derived fantasy value for one stat line.
// Weights are fixed:
//
//	Point = 1, 3PM = 1, FGM = 2, FTM = 1, FGA = -1, FTA = -1,
//	REB = 1, AST = 2, STL = 4, BLK = 4, TOV = -2
//
// Integer arithmetic throughout; the result can be negative for a
// player with many attempts and few makes.
func FantasyPoints(line StatLine) int {
	return line.Points +
		line.ThreePointersMade +
		line.FieldGoalsMade*2 +
		line.FreeThrowsMade -
		line.FieldGoalsAttempted -
		line.FreeThrowsAttempted +
		line.Rebounds +
		line.Assists*2 +
		line.Steals*4 +
		line.Blocks*4 -
		line.Turnovers*2
}
