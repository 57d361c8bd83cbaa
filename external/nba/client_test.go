package nba

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courtsync/courtsync/internal/usecase"
)

const sampleBoxScoreJSON = `{
  "game": {
    "gameId": "0022600501",
    "gameTimeUTC": "2026-02-11T00:30:00Z",
    "gameStatusText": "Final",
    "period": 4,
    "homeTeam": {
      "teamId": 1610612738,
      "teamName": "Celtics",
      "teamCity": "Boston",
      "teamTricode": "BOS",
      "score": 112,
      "players": [
        {
          "personId": 1628369,
          "name": "Jayson Tatum",
          "jerseyNum": "0",
          "statistics": {
            "minutes": "PT36M12.00S",
            "points": 20,
            "reboundsTotal": 6,
            "assists": 5,
            "steals": 2,
            "blocks": 1,
            "turnovers": 3,
            "foulsPersonal": 2,
            "fieldGoalsMade": 8,
            "fieldGoalsAttempted": 15,
            "threePointersMade": 3,
            "threePointersAttempted": 7,
            "freeThrowsMade": 4,
            "freeThrowsAttempted": 5,
            "plusMinusPoints": 12.0
          }
        }
      ]
    },
    "awayTeam": {
      "teamId": 1610612752,
      "teamName": "Knicks",
      "teamCity": "New York",
      "teamTricode": "NYK",
      "score": 104,
      "players": []
    }
  }
}`

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BoxScoreBaseURL: serverURL + "/boxscore",
		ScoreboardURL:   serverURL + "/scoreboard.json",
		GameLogURL:      serverURL + "/leaguegamelog",
		Timeout:         2 * time.Second,
	})
}

func TestClientFetchBoxScore(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boxscore/boxscore_0022600501.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sampleBoxScoreJSON))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	box, err := client.FetchBoxScore(context.Background(), "0022600501")
	if err != nil {
		t.Fatalf("fetch box score failed: %v", err)
	}

	if box.GameID != "0022600501" {
		t.Fatalf("unexpected game id got=%s", box.GameID)
	}
	if box.Status != "Final" {
		t.Fatalf("unexpected status got=%s", box.Status)
	}
	if box.HomeTeam.TeamID != 1610612738 || box.HomeTeam.Score != 112 {
		t.Fatalf("unexpected home team %+v", box.HomeTeam)
	}
	if box.HomeTeam.Name != "Boston Celtics" {
		t.Fatalf("unexpected home team name got=%s", box.HomeTeam.Name)
	}
	if len(box.HomeTeam.Players) != 1 {
		t.Fatalf("unexpected player count got=%d", len(box.HomeTeam.Players))
	}

	line := box.HomeTeam.Players[0]
	if line.PersonID != 1628369 || line.Name != "Jayson Tatum" {
		t.Fatalf("unexpected player line %+v", line)
	}
	if line.Statistics.Minutes != "PT36M12.00S" {
		t.Fatalf("unexpected minutes got=%s", line.Statistics.Minutes)
	}
	if line.Statistics.Rebounds != 6 || line.Statistics.PlusMinus != 12 {
		t.Fatalf("unexpected statistics %+v", line.Statistics)
	}
	if !box.GameTimeUTC.Equal(time.Date(2026, 2, 11, 0, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected game time got=%s", box.GameTimeUTC)
	}
}

func TestClientFetchBoxScoreForbiddenMeansNotYetAvailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchBoxScore(context.Background(), "0022600999")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, usecase.ErrGameNotYetAvailable) {
		t.Fatalf("expected ErrGameNotYetAvailable, got %v", err)
	}
}

func TestClientFetchBoxScoreServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchBoxScore(context.Background(), "0022600501")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, usecase.ErrGameNotYetAvailable) {
		t.Fatalf("server errors must not look like a missing box score: %v", err)
	}
}

func TestClientFetchScoreboard(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
  "scoreboard": {
    "gameDate": "2026-02-10",
    "games": [
      {"gameId": "0022600502", "gameTimeUTC": "2026-02-11T02:00:00Z", "gameStatusText": "7:00 pm ET"},
      {"gameId": "0022600501", "gameTimeUTC": "2026-02-11T00:30:00Z", "gameStatusText": "Final"},
      {"gameId": "", "gameStatusText": "Final"}
    ]
  }
}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	games, err := client.FetchScoreboard(context.Background())
	if err != nil {
		t.Fatalf("fetch scoreboard failed: %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("unexpected game count got=%d want=2", len(games))
	}
	if games[0].GameID != "0022600501" || games[1].GameID != "0022600502" {
		t.Fatalf("games must be sorted by id, got %+v", games)
	}
}

func TestClientFetchGameLog(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("DateFrom") != "02/10/2026" || query.Get("DateTo") != "02/10/2026" {
			t.Errorf("unexpected date window %s..%s", query.Get("DateFrom"), query.Get("DateTo"))
		}
		if query.Get("Season") != "2025-26" {
			t.Errorf("unexpected season %s", query.Get("Season"))
		}
		_, _ = w.Write([]byte(`{
  "resultSets": [
    {
      "name": "LeagueGameLog",
      "headers": ["SEASON_ID", "TEAM_ID", "GAME_ID", "GAME_DATE", "MATCHUP"],
      "rowSet": [
        ["22025", 1610612738, "0022600501", "2026-02-10", "BOS vs. NYK"],
        ["22025", 1610612752, "0022600501", "2026-02-10", "NYK @ BOS"],
        ["22025", 1610612747, "0022600502", "2026-02-10", "LAL vs. DEN"]
      ]
    }
  ]
}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	rows, err := client.FetchGameLog(context.Background(), time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch game log failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("unexpected row count got=%d want=3", len(rows))
	}
	if rows[0].GameID != "0022600501" || rows[0].TeamID != 1610612738 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[0].Matchup != "BOS vs. NYK" {
		t.Fatalf("unexpected matchup got=%s", rows[0].Matchup)
	}
	if rows[0].GameDate.Format("2006-01-02") != "2026-02-10" {
		t.Fatalf("unexpected game date got=%s", rows[0].GameDate)
	}
}

func TestClientFetchGameLogMissingResultSet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resultSets": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchGameLog(context.Background(), time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected an error for missing result set")
	}
}

func TestSeasonForDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), "2026-27"},
		{time.Date(2030, 1, 5, 0, 0, 0, 0, time.UTC), "2029-30"},
	}
	for _, tc := range cases {
		if got := seasonForDate(tc.date); got != tc.want {
			t.Fatalf("seasonForDate(%s) got=%s want=%s", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}
