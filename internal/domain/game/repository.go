package game

import (
	"context"
	"time"
)

// Repository describes game persistence needs from use cases. UpsertAll
// must be atomic per row: insert-or-update keyed by the game identifier,
// never read-then-write.
type Repository interface {
	UpsertAll(ctx context.Context, games []Game) error
	ListByDate(ctx context.Context, date time.Time) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
}
