package nba

// Wire formats for the three upstream feeds. The live-data CDN wraps
// everything in a single top-level object; the stats endpoint returns
// parallel header/rowSet arrays.

type boxScoreEnvelope struct {
	Game boxScoreGame `json:"game"`
}

type boxScoreGame struct {
	GameID         string       `json:"gameId"`
	GameTimeUTC    string       `json:"gameTimeUTC"`
	GameStatusText string       `json:"gameStatusText"`
	Period         int          `json:"period"`
	HomeTeam       boxScoreTeam `json:"homeTeam"`
	AwayTeam       boxScoreTeam `json:"awayTeam"`
}

type boxScoreTeam struct {
	TeamID      int64            `json:"teamId"`
	TeamName    string           `json:"teamName"`
	TeamCity    string           `json:"teamCity"`
	TeamTricode string           `json:"teamTricode"`
	Score       int              `json:"score"`
	Players     []boxScorePlayer `json:"players"`
}

type boxScorePlayer struct {
	PersonID   int64              `json:"personId"`
	Name       string             `json:"name"`
	JerseyNum  string             `json:"jerseyNum"`
	Statistics boxScoreStatistics `json:"statistics"`
}

type boxScoreStatistics struct {
	Minutes                string  `json:"minutes"`
	Points                 int     `json:"points"`
	ReboundsTotal          int     `json:"reboundsTotal"`
	Assists                int     `json:"assists"`
	Steals                 int     `json:"steals"`
	Blocks                 int     `json:"blocks"`
	Turnovers              int     `json:"turnovers"`
	FoulsPersonal          int     `json:"foulsPersonal"`
	FieldGoalsMade         int     `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int     `json:"fieldGoalsAttempted"`
	ThreePointersMade      int     `json:"threePointersMade"`
	ThreePointersAttempted int     `json:"threePointersAttempted"`
	FreeThrowsMade         int     `json:"freeThrowsMade"`
	FreeThrowsAttempted    int     `json:"freeThrowsAttempted"`
	PlusMinusPoints        float64 `json:"plusMinusPoints"`
}

type scoreboardEnvelope struct {
	Scoreboard scoreboardData `json:"scoreboard"`
}

type scoreboardData struct {
	GameDate string           `json:"gameDate"`
	Games    []scoreboardGame `json:"games"`
}

type scoreboardGame struct {
	GameID         string `json:"gameId"`
	GameTimeUTC    string `json:"gameTimeUTC"`
	GameStatusText string `json:"gameStatusText"`
}

type gameLogEnvelope struct {
	ResultSets []gameLogResultSet `json:"resultSets"`
}

type gameLogResultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}
