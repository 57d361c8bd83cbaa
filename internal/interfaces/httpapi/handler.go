package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/courtsync/courtsync/internal/usecase"
	"github.com/go-playground/validator/v10"
)

const readinessTimeout = 3 * time.Second

// ReadinessChecker reports whether the service's hard dependencies are
// reachable. *sqlx.DB satisfies it.
type ReadinessChecker interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	ingestionService *usecase.IngestionService
	teamService      *usecase.TeamService
	gameService      *usecase.GameQueryService
	cache            usecase.CacheInvalidator
	readiness        ReadinessChecker
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	ingestionService *usecase.IngestionService,
	teamService *usecase.TeamService,
	gameService *usecase.GameQueryService,
	cache usecase.CacheInvalidator,
	readiness ReadinessChecker,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		ingestionService: ingestionService,
		teamService:      teamService,
		gameService:      gameService,
		cache:            cache,
		readiness:        readiness,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness != nil {
		pingCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
		defer cancel()

		if err := h.readiness.PingContext(pingCtx); err != nil {
			h.logger.WarnContext(ctx, "readiness probe failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: database unreachable", usecase.ErrDependencyUnavailable))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
