package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/courtsync/courtsync/internal/usecase"
)

type cacheRevalidationRequest struct {
	// Prefix selects the cache entries to drop, e.g. "games:" or
	// "games:date:2026-01-15".
	Prefix string `json:"prefix" validate:"required,min=1,max=128"`
}

type cacheRevalidationDTO struct {
	Prefix string `json:"prefix"`
	Status string `json:"status"`
}

// RevalidateCache drops read-cache entries by key prefix so the next
// read repopulates from Postgres.
func (h *Handler) RevalidateCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RevalidateCache")
	defer span.End()

	var req cacheRevalidationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	req.Prefix = strings.TrimSpace(req.Prefix)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.cache != nil {
		h.cache.DeletePrefix(ctx, req.Prefix)
	}
	h.logger.InfoContext(ctx, "cache entries invalidated", "prefix", req.Prefix)

	writeSuccess(ctx, w, http.StatusOK, cacheRevalidationDTO{Prefix: req.Prefix, Status: "ok"})
}
