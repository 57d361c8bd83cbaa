package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/courtsync/courtsync/internal/domain/game"
	"github.com/courtsync/courtsync/internal/domain/playerstats"
	"github.com/courtsync/courtsync/internal/domain/team"
	"github.com/courtsync/courtsync/internal/usecase"
)

type teamDTO struct {
	TeamID       int64  `json:"teamId"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	SimpleName   string `json:"simpleName"`
	Location     string `json:"location"`
}

type gameDTO struct {
	GameID     string    `json:"gameId"`
	GameTime   time.Time `json:"gameTime"`
	HomeTeamID int64     `json:"homeTeamId"`
	AwayTeamID int64     `json:"awayTeamId"`
	HomeScore  int       `json:"homeScore"`
	AwayScore  int       `json:"awayScore"`
	Status     string    `json:"status"`
	Period     int       `json:"period"`
}

type playerStatDTO struct {
	PlayerID               int64  `json:"playerId"`
	PlayerName             string `json:"playerName"`
	TeamID                 int64  `json:"teamId"`
	Minutes                string `json:"minutes"`
	Points                 int    `json:"points"`
	Rebounds               int    `json:"rebounds"`
	Assists                int    `json:"assists"`
	Steals                 int    `json:"steals"`
	Blocks                 int    `json:"blocks"`
	Turnovers              int    `json:"turnovers"`
	Fouls                  int    `json:"fouls"`
	FieldGoalsMade         int    `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int    `json:"fieldGoalsAttempted"`
	ThreePointersMade      int    `json:"threePointersMade"`
	ThreePointersAttempted int    `json:"threePointersAttempted"`
	FreeThrowsMade         int    `json:"freeThrowsMade"`
	FreeThrowsAttempted    int    `json:"freeThrowsAttempted"`
	PlusMinus              int    `json:"plusMinus"`
	FantasyPoints          int    `json:"fantasyPoints"`
}

type gameDetailsDTO struct {
	Game  gameDTO         `json:"game"`
	Stats []playerStatDTO `json:"stats"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := strconv.ParseInt(r.PathValue("teamID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: team id must be numeric", usecase.ErrInvalidInput))
		return
	}

	item, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListGamesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamesByDate")
	defer span.End()

	rawDate := strings.TrimSpace(r.URL.Query().Get("date"))
	if rawDate == "" {
		writeError(ctx, w, fmt.Errorf("%w: date query parameter is required", usecase.ErrInvalidInput))
		return
	}
	date, err := time.ParseInLocation("2006-01-02", rawDate, time.UTC)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput))
		return
	}

	games, err := h.gameService.ListGamesByDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "date", rawDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGameDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameDetails")
	defer span.End()

	gameID := r.PathValue("gameID")
	details, err := h.gameService.GetGameDetails(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game details failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	stats := make([]playerStatDTO, 0, len(details.Stats))
	for _, s := range details.Stats {
		stats = append(stats, gameStatToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, gameDetailsDTO{
		Game:  gameToDTO(details.Game),
		Stats: stats,
	})
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		TeamID:       t.ID,
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
		SimpleName:   t.SimpleName,
		Location:     t.Location,
	}
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		GameID:     g.ID,
		GameTime:   g.GameTime,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
		Status:     g.Status,
		Period:     g.Period,
	}
}

func gameStatToDTO(s playerstats.GameStat) playerStatDTO {
	return playerStatDTO{
		PlayerID:               s.PlayerID,
		PlayerName:             s.PlayerName,
		TeamID:                 s.TeamID,
		Minutes:                playerstats.FormatMinutes(s.MinutesPlayed),
		Points:                 s.Line.Points,
		Rebounds:               s.Line.Rebounds,
		Assists:                s.Line.Assists,
		Steals:                 s.Line.Steals,
		Blocks:                 s.Line.Blocks,
		Turnovers:              s.Line.Turnovers,
		Fouls:                  s.Line.Fouls,
		FieldGoalsMade:         s.Line.FieldGoalsMade,
		FieldGoalsAttempted:    s.Line.FieldGoalsAttempted,
		ThreePointersMade:      s.Line.ThreePointersMade,
		ThreePointersAttempted: s.Line.ThreePointersAttempted,
		FreeThrowsMade:         s.Line.FreeThrowsMade,
		FreeThrowsAttempted:    s.Line.FreeThrowsAttempted,
		PlusMinus:              s.Line.PlusMinus,
		FantasyPoints:          s.FantasyPoints,
	}
}
