package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrGameNotYetAvailable marks a box score the upstream has not published
	// yet. Callers skip these games instead of failing the whole batch.
	ErrGameNotYetAvailable = errors.New("box score not yet available")

	// ErrNoGamesFound is returned when discovery yields an empty slate.
	ErrNoGamesFound = errors.New("no games found")
)
