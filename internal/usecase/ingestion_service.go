package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/courtsync/courtsync/internal/domain/game"
	"github.com/courtsync/courtsync/internal/domain/player"
	"github.com/courtsync/courtsync/internal/domain/playerstats"
	"github.com/courtsync/courtsync/internal/platform/id"
	"github.com/courtsync/courtsync/internal/platform/logging"
)

type RunState string

const (
	RunStateSuccess         RunState = "success"
	RunStateNoGamesFound    RunState = "no_games_found"
	RunStateDiscoveryFailed RunState = "discovery_failed"
	RunStateFetchFailed     RunState = "fetch_failed"
	RunStateWriteFailed     RunState = "write_failed"
	RunStateDryRun          RunState = "dry_run"
)

const (
	defaultFetchWorkers   = 8
	defaultRevalidatePath = "/"
	gamesCachePrefix      = "games:"
)

type RunInput struct {
	// Date selects the slate to ingest. Nil means today's scoreboard.
	Date       *time.Time
	DryRun     bool
	Revalidate bool
}

type RunResult struct {
	RunID        string
	State        RunState
	GameIDs      []string
	GamesWritten int
	GamesSkipped int
	// BoxScores is populated only for dry runs.
	BoxScores []ExternalBoxScore
}

type CacheInvalidator interface {
	DeletePrefix(ctx context.Context, prefix string)
}

type RevalidationPublisher interface {
	Publish(ctx context.Context, path string) error
}

type IngestionConfig struct {
	MaxFetchWorkers int
	RevalidatePath  string
}

// IngestionService drives a full ingestion run: discover the slate,
// fan out box score fetches, derive fantasy points and upsert the
// results. A run never leaves partial writes behind: any fetch error
// other than a not-yet-available box score aborts before the first
// database statement.
type IngestionService struct {
	provider    GameDataProvider
	gameRepo    game.Repository
	playerRepo  player.Repository
	statsRepo   playerstats.Repository
	cache       CacheInvalidator
	revalidator RevalidationPublisher
	idGen       id.Generator
	cfg         IngestionConfig
	logger      *logging.Logger
}

func NewIngestionService(
	provider GameDataProvider,
	gameRepo game.Repository,
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	cache CacheInvalidator,
	revalidator RevalidationPublisher,
	idGen id.Generator,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if cfg.MaxFetchWorkers <= 0 {
		cfg.MaxFetchWorkers = defaultFetchWorkers
	}
	if strings.TrimSpace(cfg.RevalidatePath) == "" {
		cfg.RevalidatePath = defaultRevalidatePath
	}

	return &IngestionService{
		provider:    provider,
		gameRepo:    gameRepo,
		playerRepo:  playerRepo,
		statsRepo:   statsRepo,
		cache:       cache,
		revalidator: revalidator,
		idGen:       idGen,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *IngestionService) Run(ctx context.Context, input RunInput) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Run")
	defer span.End()

	if s.provider == nil {
		return RunResult{}, fmt.Errorf("%w: game data provider is not configured", ErrDependencyUnavailable)
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		return RunResult{}, fmt.Errorf("generate run id: %w", err)
	}
	result := RunResult{RunID: runID}

	gameIDs, err := s.discoverGameIDs(ctx, input.Date)
	if err != nil {
		result.State = RunStateDiscoveryFailed
		return result, err
	}
	result.GameIDs = gameIDs

	if len(gameIDs) == 0 {
		s.logger.InfoContext(ctx, "no games discovered for slate", "run_id", runID, "date", slateLabel(input.Date))
		result.State = RunStateNoGamesFound
		return result, nil
	}

	boxScores, skipped, err := s.fetchBoxScores(ctx, gameIDs)
	if err != nil {
		result.State = RunStateFetchFailed
		return result, err
	}
	result.GamesSkipped = skipped

	if len(boxScores) == 0 {
		s.logger.InfoContext(ctx, "all discovered games are not yet available", "run_id", runID, "skipped", skipped)
		result.State = RunStateNoGamesFound
		return result, nil
	}

	if input.DryRun {
		result.State = RunStateDryRun
		result.BoxScores = boxScores
		return result, nil
	}

	if err := s.writeBoxScores(ctx, boxScores); err != nil {
		result.State = RunStateWriteFailed
		return result, err
	}
	result.GamesWritten = len(boxScores)

	s.invalidate(ctx, runID, input.Revalidate)

	s.logger.InfoContext(ctx, "ingestion run finished",
		"run_id", runID,
		"games_written", result.GamesWritten,
		"games_skipped", result.GamesSkipped,
	)
	result.State = RunStateSuccess
	return result, nil
}

func (s *IngestionService) discoverGameIDs(ctx context.Context, date *time.Time) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.discoverGameIDs")
	defer span.End()

	seen := make(map[string]struct{})
	out := make([]string, 0, 16)
	add := func(gameID string) {
		gameID = strings.TrimSpace(gameID)
		if gameID == "" {
			return
		}
		if _, exists := seen[gameID]; exists {
			return
		}
		seen[gameID] = struct{}{}
		out = append(out, gameID)
	}

	if date != nil {
		rows, err := s.provider.FetchGameLog(ctx, *date)
		if err != nil {
			return nil, fmt.Errorf("discover games from game log date=%s: %w", date.Format("2006-01-02"), err)
		}
		for _, row := range rows {
			add(row.GameID)
		}
	} else {
		games, err := s.provider.FetchScoreboard(ctx)
		if err != nil {
			return nil, fmt.Errorf("discover games from scoreboard: %w", err)
		}
		for _, item := range games {
			add(item.GameID)
		}
	}

	sort.Strings(out)
	return out, nil
}

// fetchBoxScores fans out one fetch per game. Games the upstream has
// not published yet are counted and dropped; any other failure aborts
// the whole batch.
func (s *IngestionService) fetchBoxScores(ctx context.Context, gameIDs []string) ([]ExternalBoxScore, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.fetchBoxScores")
	defer span.End()

	workerCount := s.cfg.MaxFetchWorkers
	if workerCount > len(gameIDs) {
		workerCount = len(gameIDs)
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, 0, fmt.Errorf("create fetch worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make(chan ExternalBoxScore, len(gameIDs))
	var skippedCount atomic.Int32
	var firstErr error
	var firstErrOnce sync.Once

	var workers sync.WaitGroup
	for _, gameID := range gameIDs {
		gameID := gameID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			box, err := s.provider.FetchBoxScore(ctx, gameID)
			if err != nil {
				if errors.Is(err, ErrGameNotYetAvailable) {
					skippedCount.Add(1)
					s.logger.InfoContext(ctx, "box score not yet available, skipping game", "game_id", gameID)
					return
				}
				firstErrOnce.Do(func() {
					firstErr = fmt.Errorf("fetch box score game_id=%s: %w", gameID, err)
				})
				return
			}
			results <- box
		}); err != nil {
			workers.Done()
			return nil, 0, fmt.Errorf("submit fetch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	if firstErr != nil {
		return nil, 0, firstErr
	}

	out := make([]ExternalBoxScore, 0, len(gameIDs))
	for box := range results {
		out = append(out, box)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GameID < out[j].GameID
	})

	return out, int(skippedCount.Load()), nil
}

// writeBoxScores persists the batch: games first so player stats never
// reference a missing game, then players and stat lines side by side.
func (s *IngestionService) writeBoxScores(ctx context.Context, boxScores []ExternalBoxScore) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.writeBoxScores")
	defer span.End()

	if len(boxScores) == 0 {
		return nil
	}

	now := time.Now().UTC()
	games := make([]game.Game, 0, len(boxScores))
	players := make([]player.Player, 0, len(boxScores)*24)
	stats := make([]playerstats.GameStat, 0, len(boxScores)*24)

	for _, box := range boxScores {
		mapped, err := s.mapBoxScore(ctx, box, now)
		if err != nil {
			return err
		}
		games = append(games, mapped.game)
		players = append(players, mapped.players...)
		stats = append(stats, mapped.stats...)
	}

	if err := s.gameRepo.UpsertAll(ctx, games); err != nil {
		return fmt.Errorf("upsert games: %w", err)
	}

	writers := pool.New().WithErrors().WithContext(ctx)
	writers.Go(func(ctx context.Context) error {
		if err := s.playerRepo.UpsertAll(ctx, players); err != nil {
			return fmt.Errorf("upsert players: %w", err)
		}
		return nil
	})
	writers.Go(func(ctx context.Context) error {
		if err := s.statsRepo.UpsertAll(ctx, stats); err != nil {
			return fmt.Errorf("upsert player stats: %w", err)
		}
		return nil
	})
	return writers.Wait()
}

type mappedBoxScore struct {
	game    game.Game
	players []player.Player
	stats   []playerstats.GameStat
}

func (s *IngestionService) mapBoxScore(ctx context.Context, box ExternalBoxScore, now time.Time) (mappedBoxScore, error) {
	mapped := mappedBoxScore{
		game: game.Game{
			ID:         strings.TrimSpace(box.GameID),
			GameTime:   box.GameTimeUTC.UTC(),
			HomeTeamID: box.HomeTeam.TeamID,
			AwayTeamID: box.AwayTeam.TeamID,
			HomeScore:  box.HomeTeam.Score,
			AwayScore:  box.AwayTeam.Score,
			Status:     strings.TrimSpace(box.Status),
			Period:     box.Period,
			UpdatedAt:  now,
		},
	}
	if err := mapped.game.Validate(); err != nil {
		return mappedBoxScore{}, fmt.Errorf("%w: box score game_id=%s: %s", ErrInvalidInput, box.GameID, err)
	}

	for _, teamBox := range []ExternalTeamBox{box.HomeTeam, box.AwayTeam} {
		for _, line := range teamBox.Players {
			if line.PersonID <= 0 {
				continue
			}

			minutes, err := playerstats.ParseMinutes(line.Statistics.Minutes)
			if err != nil {
				s.logger.WarnContext(ctx, "unparseable minutes in box score, using zero",
					"game_id", mapped.game.ID,
					"player_id", line.PersonID,
					"minutes", line.Statistics.Minutes,
				)
				minutes = 0
			}

			statLine := playerstats.StatLine{
				Points:                 line.Statistics.Points,
				Rebounds:               line.Statistics.Rebounds,
				Assists:                line.Statistics.Assists,
				Steals:                 line.Statistics.Steals,
				Blocks:                 line.Statistics.Blocks,
				Turnovers:              line.Statistics.Turnovers,
				Fouls:                  line.Statistics.FoulsPersonal,
				FieldGoalsMade:         line.Statistics.FieldGoalsMade,
				FieldGoalsAttempted:    line.Statistics.FieldGoalsAttempted,
				ThreePointersMade:      line.Statistics.ThreePointersMade,
				ThreePointersAttempted: line.Statistics.ThreePointersAttempted,
				FreeThrowsMade:         line.Statistics.FreeThrowsMade,
				FreeThrowsAttempted:    line.Statistics.FreeThrowsAttempted,
				PlusMinus:              line.Statistics.PlusMinus,
			}

			mapped.players = append(mapped.players, player.Player{
				ID:        line.PersonID,
				Name:      strings.TrimSpace(line.Name),
				JerseyNum: strings.TrimSpace(line.JerseyNum),
				TeamID:    teamBox.TeamID,
			})
			mapped.stats = append(mapped.stats, playerstats.GameStat{
				GameID:        mapped.game.ID,
				PlayerID:      line.PersonID,
				TeamID:        teamBox.TeamID,
				PlayerName:    strings.TrimSpace(line.Name),
				MinutesPlayed: minutes,
				Line:          statLine,
				FantasyPoints: playerstats.FantasyPoints(statLine),
				UpdatedAt:     now,
			})
		}
	}

	return mapped, nil
}

// invalidate drops cached reads and pings the revalidation webhook.
// Failures here never fail the run; the data is already durable.
func (s *IngestionService) invalidate(ctx context.Context, runID string, revalidate bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.invalidate")
	defer span.End()

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, gamesCachePrefix)
	}

	if !revalidate || s.revalidator == nil {
		return
	}
	if err := s.revalidator.Publish(ctx, s.cfg.RevalidatePath); err != nil {
		s.logger.WarnContext(ctx, "revalidation webhook failed after successful write",
			"run_id", runID,
			"path", s.cfg.RevalidatePath,
			"error", err.Error(),
		)
	}
}

func slateLabel(date *time.Time) string {
	if date == nil {
		return "today"
	}
	return date.Format("2006-01-02")
}
