package team

// DefaultTeams returns the 30 NBA franchises keyed by their upstream
// team IDs. The slice is rebuilt on every call so callers can mutate
// it freely.
func DefaultTeams() []Team {
	return []Team{
		{ID: 1610612737, Name: "Atlanta Hawks", Abbreviation: "ATL", SimpleName: "Hawks", Location: "Atlanta"},
		{ID: 1610612738, Name: "Boston Celtics", Abbreviation: "BOS", SimpleName: "Celtics", Location: "Boston"},
		{ID: 1610612751, Name: "Brooklyn Nets", Abbreviation: "BKN", SimpleName: "Nets", Location: "Brooklyn"},
		{ID: 1610612766, Name: "Charlotte Hornets", Abbreviation: "CHA", SimpleName: "Hornets", Location: "Charlotte"},
		{ID: 1610612741, Name: "Chicago Bulls", Abbreviation: "CHI", SimpleName: "Bulls", Location: "Chicago"},
		{ID: 1610612739, Name: "Cleveland Cavaliers", Abbreviation: "CLE", SimpleName: "Cavaliers", Location: "Cleveland"},
		{ID: 1610612742, Name: "Dallas Mavericks", Abbreviation: "DAL", SimpleName: "Mavericks", Location: "Dallas"},
		{ID: 1610612743, Name: "Denver Nuggets", Abbreviation: "DEN", SimpleName: "Nuggets", Location: "Denver"},
		{ID: 1610612765, Name: "Detroit Pistons", Abbreviation: "DET", SimpleName: "Pistons", Location: "Detroit"},
		{ID: 1610612744, Name: "Golden State Warriors", Abbreviation: "GSW", SimpleName: "Warriors", Location: "Golden State"},
		{ID: 1610612745, Name: "Houston Rockets", Abbreviation: "HOU", SimpleName: "Rockets", Location: "Houston"},
		{ID: 1610612754, Name: "Indiana Pacers", Abbreviation: "IND", SimpleName: "Pacers", Location: "Indiana"},
		{ID: 1610612746, Name: "Los Angeles Clippers", Abbreviation: "LAC", SimpleName: "Clippers", Location: "Los Angeles"},
		{ID: 1610612747, Name: "Los Angeles Lakers", Abbreviation: "LAL", SimpleName: "Lakers", Location: "Los Angeles"},
		{ID: 1610612763, Name: "Memphis Grizzlies", Abbreviation: "MEM", SimpleName: "Grizzlies", Location: "Memphis"},
		{ID: 1610612748, Name: "Miami Heat", Abbreviation: "MIA", SimpleName: "Heat", Location: "Miami"},
		{ID: 1610612749, Name: "Milwaukee Bucks", Abbreviation: "MIL", SimpleName: "Bucks", Location: "Milwaukee"},
		{ID: 1610612750, Name: "Minnesota Timberwolves", Abbreviation: "MIN", SimpleName: "Timberwolves", Location: "Minnesota"},
		{ID: 1610612740, Name: "New Orleans Pelicans", Abbreviation: "NOP", SimpleName: "Pelicans", Location: "New Orleans"},
		{ID: 1610612752, Name: "New York Knicks", Abbreviation: "NYK", SimpleName: "Knicks", Location: "New York"},
		{ID: 1610612760, Name: "Oklahoma City Thunder", Abbreviation: "OKC", SimpleName: "Thunder", Location: "Oklahoma City"},
		{ID: 1610612753, Name: "Orlando Magic", Abbreviation: "ORL", SimpleName: "Magic", Location: "Orlando"},
		{ID: 1610612755, Name: "Philadelphia 76ers", Abbreviation: "PHI", SimpleName: "76ers", Location: "Philadelphia"},
		{ID: 1610612756, Name: "Phoenix Suns", Abbreviation: "PHX", SimpleName: "Suns", Location: "Phoenix"},
		{ID: 1610612757, Name: "Portland Trail Blazers", Abbreviation: "POR", SimpleName: "Trail Blazers", Location: "Portland"},
		{ID: 1610612758, Name: "Sacramento Kings", Abbreviation: "SAC", SimpleName: "Kings", Location: "Sacramento"},
		{ID: 1610612759, Name: "San Antonio Spurs", Abbreviation: "SAS", SimpleName: "Spurs", Location: "San Antonio"},
		{ID: 1610612761, Name: "Toronto Raptors", Abbreviation: "TOR", SimpleName: "Raptors", Location: "Toronto"},
		{ID: 1610612762, Name: "Utah Jazz", Abbreviation: "UTA", SimpleName: "Jazz", Location: "Utah"},
		{ID: 1610612764, Name: "Washington Wizards", Abbreviation: "WAS", SimpleName: "Wizards", Location: "Washington"},
	}
}
