package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/courtsync/courtsync/internal/domain/game"
	"github.com/courtsync/courtsync/internal/domain/playerstats"
	"github.com/courtsync/courtsync/internal/domain/team"
	"github.com/courtsync/courtsync/internal/usecase"
)

type stubGameRepo struct {
	games []game.Game
}

func (s *stubGameRepo) UpsertAll(ctx context.Context, games []game.Game) error { return nil }

func (s *stubGameRepo) ListByDate(ctx context.Context, date time.Time) ([]game.Game, error) {
	return s.games, nil
}

func (s *stubGameRepo) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	for _, g := range s.games {
		if g.ID == gameID {
			return g, true, nil
		}
	}
	return game.Game{}, false, nil
}

type stubStatsRepo struct {
	stats []playerstats.GameStat
}

func (s *stubStatsRepo) UpsertAll(ctx context.Context, stats []playerstats.GameStat) error {
	return nil
}

func (s *stubStatsRepo) ListByGame(ctx context.Context, gameID string) ([]playerstats.GameStat, error) {
	return s.stats, nil
}

type stubTeamRepo struct {
	teams []team.Team
}

func (s *stubTeamRepo) List(ctx context.Context) ([]team.Team, error) { return s.teams, nil }

func (s *stubTeamRepo) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	for _, t := range s.teams {
		if t.ID == teamID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepo) SeedAll(ctx context.Context, teams []team.Team) (int, error) {
	return len(teams), nil
}

func newGamesTestHandler(games []game.Game, stats []playerstats.GameStat) *Handler {
	gameService := usecase.NewGameQueryService(&stubGameRepo{games: games}, &stubStatsRepo{stats: stats})
	teamService := usecase.NewTeamService(&stubTeamRepo{teams: []team.Team{
		{ID: 1610612747, Name: "Los Angeles Lakers", Abbreviation: "LAL", SimpleName: "Lakers", Location: "Los Angeles"},
	}}, nil)
	return NewHandler(nil, teamService, gameService, nil, nil, nil)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestListGamesByDate_ReturnsGames(t *testing.T) {
	handler := newGamesTestHandler([]game.Game{
		{
			ID:         "0022500001",
			GameTime:   time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC),
			HomeTeamID: 1610612747,
			AwayTeamID: 1610612738,
			HomeScore:  112,
			AwayScore:  108,
			Status:     game.StatusFinal,
			Period:     4,
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/games?date=2026-01-15", nil)
	rec := httptest.NewRecorder()
	handler.ListGamesByDate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one game in data, got %v", body["data"])
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["gameId"].(string); got != "0022500001" {
		t.Fatalf("unexpected gameId %v", first["gameId"])
	}
}

func TestListGamesByDate_MissingDate(t *testing.T) {
	handler := newGamesTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	rec := httptest.NewRecorder()
	handler.ListGamesByDate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestListGamesByDate_EmptySlate(t *testing.T) {
	handler := newGamesTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/games?date=2026-07-04", nil)
	rec := httptest.NewRecorder()
	handler.ListGamesByDate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	errorItems, _ := errorObj["errors"].([]any)
	if len(errorItems) != 1 {
		t.Fatalf("expected one error item, got %v", errorObj["errors"])
	}
	item, _ := errorItems[0].(map[string]any)
	if got, _ := item["reason"].(string); got != "noGamesFound" {
		t.Fatalf("expected reason noGamesFound, got %v", item["reason"])
	}
}

func TestGetGameDetails_IncludesStats(t *testing.T) {
	handler := newGamesTestHandler(
		[]game.Game{{
			ID:         "0022500001",
			GameTime:   time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC),
			HomeTeamID: 1610612747,
			AwayTeamID: 1610612738,
			Status:     game.StatusFinal,
			Period:     4,
		}},
		[]playerstats.GameStat{{
			GameID:        "0022500001",
			PlayerID:      2544,
			TeamID:        1610612747,
			PlayerName:    "LeBron James",
			MinutesPlayed: 36*time.Minute + 12*time.Second,
			Line:          playerstats.StatLine{Points: 28, Rebounds: 8, Assists: 11},
			FantasyPoints: 62,
		}},
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/0022500001", nil)
	req.SetPathValue("gameID", "0022500001")
	rec := httptest.NewRecorder()
	handler.GetGameDetails(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	stats, _ := data["stats"].([]any)
	if len(stats) != 1 {
		t.Fatalf("expected one stat line, got %v", data["stats"])
	}
	line, _ := stats[0].(map[string]any)
	if got, _ := line["minutes"].(string); got != "00:36:12" {
		t.Fatalf("unexpected minutes %v", line["minutes"])
	}
	if got, _ := line["fantasyPoints"].(float64); got != 62 {
		t.Fatalf("unexpected fantasyPoints %v", line["fantasyPoints"])
	}
}

func TestGetGameDetails_NotFound(t *testing.T) {
	handler := newGamesTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/0022500099", nil)
	req.SetPathValue("gameID", "0022500099")
	rec := httptest.NewRecorder()
	handler.GetGameDetails(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestListTeams_ReturnsSeededTeams(t *testing.T) {
	handler := newGamesTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams", nil)
	rec := httptest.NewRecorder()
	handler.ListTeams(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one team, got %v", body["data"])
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["abbreviation"].(string); got != "LAL" {
		t.Fatalf("unexpected abbreviation %v", first["abbreviation"])
	}
}

func TestGetTeam_InvalidID(t *testing.T) {
	handler := newGamesTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/not-a-number", nil)
	req.SetPathValue("teamID", "not-a-number")
	rec := httptest.NewRecorder()
	handler.GetTeam(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
