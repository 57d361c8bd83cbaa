package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/courtsync/courtsync/internal/usecase"
)

type runIngestionRequest struct {
	// Date selects the slate in YYYY-MM-DD form. Empty means today's
	// scoreboard rather than the game log.
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DryRun     bool   `json:"dryRun"`
	Revalidate bool   `json:"revalidate"`
}

type ingestionRunDTO struct {
	RunID        string               `json:"runId"`
	State        string               `json:"state"`
	GameIDs      []string             `json:"gameIds"`
	GamesWritten int                  `json:"gamesWritten"`
	GamesSkipped int                  `json:"gamesSkipped"`
	BoxScores    []boxScorePreviewDTO `json:"boxScores,omitempty"`
}

type boxScorePreviewDTO struct {
	GameID    string `json:"gameId"`
	Status    string `json:"status"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Players   int    `json:"players"`
}

type seedTeamsDTO struct {
	Inserted int `json:"inserted"`
}

func (h *Handler) RunIngestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestion")
	defer span.End()

	req, err := h.decodeRunIngestionRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RunInput{DryRun: req.DryRun, Revalidate: req.Revalidate}
	if req.Date != "" {
		date, parseErr := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
		if parseErr != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid date %q", usecase.ErrInvalidInput, req.Date))
			return
		}
		input.Date = &date
	}

	result, err := h.ingestionService.Run(ctx, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion run failed",
			"run_id", result.RunID, "state", string(result.State), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runResultToDTO(result))
}

// RunScheduledIngest is the entry point for the external cron scheduler.
// It always ingests today's slate and triggers frontend revalidation.
func (h *Handler) RunScheduledIngest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScheduledIngest")
	defer span.End()

	result, err := h.ingestionService.Run(ctx, usecase.RunInput{Revalidate: true})
	if err != nil {
		h.logger.ErrorContext(ctx, "scheduled ingest failed",
			"run_id", result.RunID, "state", string(result.State), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runResultToDTO(result))
}

func (h *Handler) SeedTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedTeams")
	defer span.End()

	inserted, err := h.teamService.SeedDefaultTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "seed teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seedTeamsDTO{Inserted: inserted})
}

func (h *Handler) decodeRunIngestionRequest(r *http.Request) (runIngestionRequest, error) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.decodeRunIngestionRequest")
	defer span.End()

	var req runIngestionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		// An empty body means "ingest today with defaults".
		if errors.Is(err, io.EOF) {
			return runIngestionRequest{}, nil
		}
		return runIngestionRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	req.Date = strings.TrimSpace(req.Date)
	if err := h.validateRequest(ctx, req); err != nil {
		return runIngestionRequest{}, err
	}
	return req, nil
}

func runResultToDTO(result usecase.RunResult) ingestionRunDTO {
	dto := ingestionRunDTO{
		RunID:        result.RunID,
		State:        string(result.State),
		GameIDs:      result.GameIDs,
		GamesWritten: result.GamesWritten,
		GamesSkipped: result.GamesSkipped,
	}
	if dto.GameIDs == nil {
		dto.GameIDs = []string{}
	}
	for _, box := range result.BoxScores {
		dto.BoxScores = append(dto.BoxScores, boxScorePreviewDTO{
			GameID:    box.GameID,
			Status:    box.Status,
			HomeTeam:  box.HomeTeam.Abbreviation,
			AwayTeam:  box.AwayTeam.Abbreviation,
			HomeScore: box.HomeTeam.Score,
			AwayScore: box.AwayTeam.Score,
			Players:   len(box.HomeTeam.Players) + len(box.AwayTeam.Players),
		})
	}
	return dto
}
