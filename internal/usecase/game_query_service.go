package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courtsync/courtsync/internal/domain/game"
	"github.com/courtsync/courtsync/internal/domain/playerstats"
)

type GameDetails struct {
	Game  game.Game
	Stats []playerstats.GameStat
}

// GameQueryService serves read traffic. It sits behind the cached
// repository wrappers, so repeated reads for the same slate do not hit
// the database.
type GameQueryService struct {
	gameRepo  game.Repository
	statsRepo playerstats.Repository
}

func NewGameQueryService(gameRepo game.Repository, statsRepo playerstats.Repository) *GameQueryService {
	return &GameQueryService{gameRepo: gameRepo, statsRepo: statsRepo}
}

func (s *GameQueryService) ListGamesByDate(ctx context.Context, date time.Time) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameQueryService.ListGamesByDate")
	defer span.End()

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	games, err := s.gameRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list games by date: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: no games on %s", ErrNoGamesFound, date.Format("2006-01-02"))
	}
	return games, nil
}

func (s *GameQueryService) GetGameDetails(ctx context.Context, gameID string) (GameDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameQueryService.GetGameDetails")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return GameDetails{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, found, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return GameDetails{}, fmt.Errorf("get game: %w", err)
	}
	if !found {
		return GameDetails{}, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	stats, err := s.statsRepo.ListByGame(ctx, gameID)
	if err != nil {
		return GameDetails{}, fmt.Errorf("list game stats: %w", err)
	}

	return GameDetails{Game: item, Stats: stats}, nil
}
