package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/courtsync/courtsync/internal/domain/game"
	"github.com/courtsync/courtsync/internal/domain/player"
	"github.com/courtsync/courtsync/internal/domain/playerstats"
)

type stubGameProvider struct {
	boxScores     map[string]ExternalBoxScore
	boxScoreErrs  map[string]error
	scoreboard    []ExternalScoreboardGame
	scoreboardErr error
	gameLog       []ExternalGameLogRow
	gameLogErr    error
}

func (p *stubGameProvider) FetchBoxScore(_ context.Context, gameID string) (ExternalBoxScore, error) {
	if err := p.boxScoreErrs[gameID]; err != nil {
		return ExternalBoxScore{}, err
	}
	box, ok := p.boxScores[gameID]
	if !ok {
		return ExternalBoxScore{}, fmt.Errorf("unexpected game id %s", gameID)
	}
	return box, nil
}

func (p *stubGameProvider) FetchScoreboard(context.Context) ([]ExternalScoreboardGame, error) {
	return p.scoreboard, p.scoreboardErr
}

func (p *stubGameProvider) FetchGameLog(context.Context, time.Time) ([]ExternalGameLogRow, error) {
	return p.gameLog, p.gameLogErr
}

type stubGameRepo struct {
	mu       sync.Mutex
	upserted []game.Game
}

func (r *stubGameRepo) UpsertAll(_ context.Context, games []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted = append(r.upserted, games...)
	return nil
}

func (r *stubGameRepo) ListByDate(context.Context, time.Time) ([]game.Game, error) {
	return nil, nil
}

func (r *stubGameRepo) GetByID(context.Context, string) (game.Game, bool, error) {
	return game.Game{}, false, nil
}

type stubPlayerRepo struct {
	mu       sync.Mutex
	upserted []player.Player
}

func (r *stubPlayerRepo) UpsertAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted = append(r.upserted, players...)
	return nil
}

func (r *stubPlayerRepo) GetByID(context.Context, int64) (player.Player, bool, error) {
	return player.Player{}, false, nil
}

type stubStatsRepo struct {
	mu       sync.Mutex
	upserted []playerstats.GameStat
}

func (r *stubStatsRepo) UpsertAll(_ context.Context, stats []playerstats.GameStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted = append(r.upserted, stats...)
	return nil
}

func (r *stubStatsRepo) ListByGame(context.Context, string) ([]playerstats.GameStat, error) {
	return nil, nil
}

type stubCacheInvalidator struct {
	mu       sync.Mutex
	prefixes []string
}

func (c *stubCacheInvalidator) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefixes = append(c.prefixes, prefix)
}

type stubRevalidator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (p *stubRevalidator) Publish(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	return p.err
}

func sampleBoxScore(gameID string, homeTeamID, awayTeamID int64) ExternalBoxScore {
	return ExternalBoxScore{
		GameID:      gameID,
		GameTimeUTC: time.Date(2026, 2, 11, 0, 30, 0, 0, time.UTC),
		Status:      game.StatusFinal,
		Period:      4,
		HomeTeam: ExternalTeamBox{
			TeamID: homeTeamID,
			Name:   "Home",
			Score:  112,
			Players: []ExternalPlayerLine{
				{
					PersonID:  homeTeamID*100 + 1,
					Name:      "Home Starter",
					JerseyNum: "11",
					Statistics: ExternalStatLine{
						Minutes:                "PT36M12.00S",
						Points:                 20,
						Rebounds:               6,
						Assists:                5,
						Steals:                 2,
						Blocks:                 1,
						Turnovers:              3,
						FieldGoalsMade:         8,
						FieldGoalsAttempted:    15,
						ThreePointersMade:      3,
						ThreePointersAttempted: 7,
						FreeThrowsMade:         4,
						FreeThrowsAttempted:    5,
					},
				},
			},
		},
		AwayTeam: ExternalTeamBox{
			TeamID: awayTeamID,
			Name:   "Away",
			Score:  104,
			Players: []ExternalPlayerLine{
				{
					PersonID:   awayTeamID*100 + 1,
					Name:       "Away Starter",
					JerseyNum:  "23",
					Statistics: ExternalStatLine{Minutes: "PT30M0.00S", Points: 14, Rebounds: 4},
				},
			},
		},
	}
}

func newTestIngestionService(
	provider GameDataProvider,
	gameRepo *stubGameRepo,
	playerRepo *stubPlayerRepo,
	statsRepo *stubStatsRepo,
	cache *stubCacheInvalidator,
	revalidator *stubRevalidator,
) *IngestionService {
	return NewIngestionService(provider, gameRepo, playerRepo, statsRepo, cache, revalidator, nil, IngestionConfig{}, nil)
}

func TestIngestionServiceRunWritesDiscoveredGames(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{
		gameLog: []ExternalGameLogRow{
			{GameID: "0022600501", TeamID: 1},
			{GameID: "0022600501", TeamID: 2},
			{GameID: "0022600502", TeamID: 3},
		},
		boxScores: map[string]ExternalBoxScore{
			"0022600501": sampleBoxScore("0022600501", 1, 2),
			"0022600502": sampleBoxScore("0022600502", 3, 4),
		},
	}
	gameRepo := &stubGameRepo{}
	playerRepo := &stubPlayerRepo{}
	statsRepo := &stubStatsRepo{}
	cache := &stubCacheInvalidator{}
	revalidator := &stubRevalidator{}

	svc := newTestIngestionService(provider, gameRepo, playerRepo, statsRepo, cache, revalidator)
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Run(context.Background(), RunInput{Date: &date, Revalidate: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.State != RunStateSuccess {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateSuccess)
	}
	if result.GamesWritten != 2 {
		t.Fatalf("unexpected games written got=%d want=2", result.GamesWritten)
	}
	if len(result.GameIDs) != 2 {
		t.Fatalf("duplicate game log rows must collapse to one id per game, got=%d", len(result.GameIDs))
	}
	if len(gameRepo.upserted) != 2 {
		t.Fatalf("unexpected game rows got=%d want=2", len(gameRepo.upserted))
	}
	if len(playerRepo.upserted) != 4 {
		t.Fatalf("unexpected player rows got=%d want=4", len(playerRepo.upserted))
	}
	if len(statsRepo.upserted) != 4 {
		t.Fatalf("unexpected stat rows got=%d want=4", len(statsRepo.upserted))
	}
	if len(cache.prefixes) == 0 {
		t.Fatal("expected cache invalidation after write")
	}
	if len(revalidator.paths) != 1 || revalidator.paths[0] != "/" {
		t.Fatalf("unexpected revalidation paths: %v", revalidator.paths)
	}

	for _, stat := range statsRepo.upserted {
		if stat.PlayerName == "Home Starter" && stat.FantasyPoints != 45 {
			t.Fatalf("unexpected fantasy points got=%d want=45", stat.FantasyPoints)
		}
	}
}

func TestIngestionServiceRunSkipsGamesNotYetAvailable(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{
		gameLog: []ExternalGameLogRow{
			{GameID: "0022600501"},
			{GameID: "0022600502"},
			{GameID: "0022600503"},
		},
		boxScores: map[string]ExternalBoxScore{
			"0022600501": sampleBoxScore("0022600501", 1, 2),
			"0022600503": sampleBoxScore("0022600503", 5, 6),
		},
		boxScoreErrs: map[string]error{
			"0022600502": fmt.Errorf("%w: game 0022600502", ErrGameNotYetAvailable),
		},
	}
	gameRepo := &stubGameRepo{}
	playerRepo := &stubPlayerRepo{}
	statsRepo := &stubStatsRepo{}

	svc := newTestIngestionService(provider, gameRepo, playerRepo, statsRepo, &stubCacheInvalidator{}, nil)
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Run(context.Background(), RunInput{Date: &date})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.State != RunStateSuccess {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateSuccess)
	}
	if result.GamesWritten != 2 {
		t.Fatalf("unexpected games written got=%d want=2", result.GamesWritten)
	}
	if result.GamesSkipped != 1 {
		t.Fatalf("unexpected games skipped got=%d want=1", result.GamesSkipped)
	}
	if len(gameRepo.upserted) != 2 {
		t.Fatalf("unexpected game rows got=%d want=2", len(gameRepo.upserted))
	}
}

func TestIngestionServiceRunAbortsBatchOnFetchError(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{
		gameLog: []ExternalGameLogRow{
			{GameID: "0022600501"},
			{GameID: "0022600502"},
		},
		boxScores: map[string]ExternalBoxScore{
			"0022600501": sampleBoxScore("0022600501", 1, 2),
		},
		boxScoreErrs: map[string]error{
			"0022600502": errors.New("upstream returned status 500"),
		},
	}
	gameRepo := &stubGameRepo{}
	playerRepo := &stubPlayerRepo{}
	statsRepo := &stubStatsRepo{}

	svc := newTestIngestionService(provider, gameRepo, playerRepo, statsRepo, &stubCacheInvalidator{}, nil)
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Run(context.Background(), RunInput{Date: &date})
	if err == nil {
		t.Fatal("expected run to fail")
	}

	if result.State != RunStateFetchFailed {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateFetchFailed)
	}
	if len(gameRepo.upserted) != 0 || len(playerRepo.upserted) != 0 || len(statsRepo.upserted) != 0 {
		t.Fatalf("a failed batch must write nothing, got games=%d players=%d stats=%d",
			len(gameRepo.upserted), len(playerRepo.upserted), len(statsRepo.upserted))
	}
}

func TestIngestionServiceRunEmptySlate(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{}
	gameRepo := &stubGameRepo{}

	svc := newTestIngestionService(provider, gameRepo, &stubPlayerRepo{}, &stubStatsRepo{}, &stubCacheInvalidator{}, nil)
	date := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	result, err := svc.Run(context.Background(), RunInput{Date: &date})
	if err != nil {
		t.Fatalf("empty slate must not be an error: %v", err)
	}

	if result.State != RunStateNoGamesFound {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateNoGamesFound)
	}
	if len(gameRepo.upserted) != 0 {
		t.Fatalf("empty slate must write nothing, got %d rows", len(gameRepo.upserted))
	}
}

func TestIngestionServiceRunAllGamesNotYetAvailable(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{
		gameLog: []ExternalGameLogRow{{GameID: "0022600501"}},
		boxScoreErrs: map[string]error{
			"0022600501": fmt.Errorf("%w: game 0022600501", ErrGameNotYetAvailable),
		},
	}
	gameRepo := &stubGameRepo{}

	svc := newTestIngestionService(provider, gameRepo, &stubPlayerRepo{}, &stubStatsRepo{}, &stubCacheInvalidator{}, nil)
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Run(context.Background(), RunInput{Date: &date})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.State != RunStateNoGamesFound {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateNoGamesFound)
	}
	if result.GamesSkipped != 1 {
		t.Fatalf("unexpected games skipped got=%d want=1", result.GamesSkipped)
	}
}

func TestIngestionServiceRunDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{
		gameLog:   []ExternalGameLogRow{{GameID: "0022600501"}},
		boxScores: map[string]ExternalBoxScore{"0022600501": sampleBoxScore("0022600501", 1, 2)},
	}
	gameRepo := &stubGameRepo{}
	cache := &stubCacheInvalidator{}
	revalidator := &stubRevalidator{}

	svc := newTestIngestionService(provider, gameRepo, &stubPlayerRepo{}, &stubStatsRepo{}, cache, revalidator)
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Run(context.Background(), RunInput{Date: &date, DryRun: true, Revalidate: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.State != RunStateDryRun {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateDryRun)
	}
	if len(result.BoxScores) != 1 {
		t.Fatalf("dry run must return the fetched box scores, got=%d", len(result.BoxScores))
	}
	if len(gameRepo.upserted) != 0 {
		t.Fatalf("dry run must write nothing, got %d rows", len(gameRepo.upserted))
	}
	if len(cache.prefixes) != 0 || len(revalidator.paths) != 0 {
		t.Fatal("dry run must not invalidate caches")
	}
}

func TestIngestionServiceRunDiscoveryFailure(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{scoreboardErr: errors.New("upstream returned status 502")}

	svc := newTestIngestionService(provider, &stubGameRepo{}, &stubPlayerRepo{}, &stubStatsRepo{}, &stubCacheInvalidator{}, nil)
	result, err := svc.Run(context.Background(), RunInput{})
	if err == nil {
		t.Fatal("expected discovery failure")
	}
	if result.State != RunStateDiscoveryFailed {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateDiscoveryFailed)
	}
}

func TestIngestionServiceRunUsesScoreboardWhenNoDate(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{
		scoreboard: []ExternalScoreboardGame{{GameID: "0022600501"}},
		boxScores:  map[string]ExternalBoxScore{"0022600501": sampleBoxScore("0022600501", 1, 2)},
	}
	gameRepo := &stubGameRepo{}

	svc := newTestIngestionService(provider, gameRepo, &stubPlayerRepo{}, &stubStatsRepo{}, &stubCacheInvalidator{}, nil)
	result, err := svc.Run(context.Background(), RunInput{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.State != RunStateSuccess {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateSuccess)
	}
	if len(gameRepo.upserted) != 1 {
		t.Fatalf("unexpected game rows got=%d want=1", len(gameRepo.upserted))
	}
}

func TestIngestionServiceRunRevalidationFailureDoesNotFailRun(t *testing.T) {
	t.Parallel()

	provider := &stubGameProvider{
		scoreboard: []ExternalScoreboardGame{{GameID: "0022600501"}},
		boxScores:  map[string]ExternalBoxScore{"0022600501": sampleBoxScore("0022600501", 1, 2)},
	}
	revalidator := &stubRevalidator{err: errors.New("webhook returned status 500")}

	svc := newTestIngestionService(provider, &stubGameRepo{}, &stubPlayerRepo{}, &stubStatsRepo{}, &stubCacheInvalidator{}, revalidator)
	result, err := svc.Run(context.Background(), RunInput{Revalidate: true})
	if err != nil {
		t.Fatalf("revalidation failure must not fail the run: %v", err)
	}
	if result.State != RunStateSuccess {
		t.Fatalf("unexpected state got=%s want=%s", result.State, RunStateSuccess)
	}
}
