// Package cache wraps repositories with a read-through in-memory cache.
// Cached reads always return defensive copies so callers can mutate
// results without poisoning the cache.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/courtsync/courtsync/internal/domain/game"
	"github.com/courtsync/courtsync/internal/domain/playerstats"
	"github.com/courtsync/courtsync/internal/domain/team"
	basecache "github.com/courtsync/courtsync/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) SeedAll(ctx context.Context, teams []team.Team) (int, error) {
	count, err := r.next.SeedAll(ctx, teams)
	if err != nil {
		return 0, err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return count, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) ListByDate(ctx context.Context, date time.Time) ([]game.Game, error) {
	key := "games:date:" + date.Format("2006-01-02")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	key := "games:id:" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGameByID)
	return cached.value, cached.exists, nil
}

func (r *GameRepository) UpsertAll(ctx context.Context, games []game.Game) error {
	if err := r.next.UpsertAll(ctx, games); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "games:")
	return nil
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) ListByGame(ctx context.Context, gameID string) ([]playerstats.GameStat, error) {
	key := "games:stats:" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGame(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return append([]playerstats.GameStat(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]playerstats.GameStat)
	return append([]playerstats.GameStat(nil), items...), nil
}

func (r *PlayerStatsRepository) UpsertAll(ctx context.Context, stats []playerstats.GameStat) error {
	if err := r.next.UpsertAll(ctx, stats); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "games:stats:")
	return nil
}
