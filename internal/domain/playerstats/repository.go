package playerstats

import "context"

// Repository describes player-stats persistence needs from use cases.
// UpsertAll overwrites every statistical column on conflict of the
// composite (game, player) key.
type Repository interface {
	UpsertAll(ctx context.Context, stats []GameStat) error
	ListByGame(ctx context.Context, gameID string) ([]GameStat, error)
}
