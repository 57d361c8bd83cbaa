package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	UpsertAll(ctx context.Context, players []Player) error
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
}
