// Package nba talks to the NBA's public data feeds: the live-data CDN
// for box scores and today's scoreboard, and the stats endpoint for
// historical game logs.
package nba

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/courtsync/courtsync/internal/platform/logging"
	"github.com/courtsync/courtsync/internal/platform/resilience"
	"github.com/courtsync/courtsync/internal/usecase"
)

const (
	defaultBoxScoreBaseURL = "https://cdn.nba.com/static/json/liveData/boxscore"
	defaultScoreboardURL   = "https://cdn.nba.com/static/json/liveData/scoreboard/todaysScoreboard_00.json"
	defaultGameLogURL      = "https://stats.nba.com/stats/leaguegamelog"

	gameLogResultSetName = "LeagueGameLog"
	leagueIDNBA          = "00"
)

var errNBATransient = crerr.New("nba transient failure")

// errForbidden marks a 403 from the CDN. The CDN answers 403 instead of
// 404 for box scores of games that have not started.
var errForbidden = crerr.New("nba resource forbidden")

type ClientConfig struct {
	HTTPClient      *http.Client
	BoxScoreBaseURL string
	ScoreboardURL   string
	GameLogURL      string
	Timeout         time.Duration
	MaxRetries      int
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient      *http.Client
	boxScoreBaseURL string
	scoreboardURL   string
	gameLogURL      string
	maxRetries      int
	logger          *logging.Logger
	breaker         *resilience.CircuitBreaker
	circuitEnabled  bool
	flight          resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	boxScoreBaseURL := strings.TrimRight(strings.TrimSpace(cfg.BoxScoreBaseURL), "/")
	if boxScoreBaseURL == "" {
		boxScoreBaseURL = defaultBoxScoreBaseURL
	}
	scoreboardURL := strings.TrimSpace(cfg.ScoreboardURL)
	if scoreboardURL == "" {
		scoreboardURL = defaultScoreboardURL
	}
	gameLogURL := strings.TrimSpace(cfg.GameLogURL)
	if gameLogURL == "" {
		gameLogURL = defaultGameLogURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:      httpClient,
		boxScoreBaseURL: boxScoreBaseURL,
		scoreboardURL:   scoreboardURL,
		gameLogURL:      gameLogURL,
		maxRetries:      maxInt(cfg.MaxRetries, 0),
		logger:          logger,
		breaker:         resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled:  breakerCfg.Enabled,
	}
}

func (c *Client) FetchBoxScore(ctx context.Context, gameID string) (usecase.ExternalBoxScore, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return usecase.ExternalBoxScore{}, fmt.Errorf("game id is required")
	}

	fullURL := fmt.Sprintf("%s/boxscore_%s.json", c.boxScoreBaseURL, gameID)
	var envelope boxScoreEnvelope
	if err := c.doJSON(ctx, fullURL, &envelope); err != nil {
		if stderrors.Is(err, errForbidden) {
			return usecase.ExternalBoxScore{}, fmt.Errorf("%w: game_id=%s", usecase.ErrGameNotYetAvailable, gameID)
		}
		return usecase.ExternalBoxScore{}, fmt.Errorf("fetch box score game_id=%s: %w", gameID, err)
	}

	box := mapBoxScoreGame(envelope.Game)
	if box.GameID == "" {
		box.GameID = gameID
	}
	return box, nil
}

func (c *Client) FetchScoreboard(ctx context.Context) ([]usecase.ExternalScoreboardGame, error) {
	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, c.scoreboardURL, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	out := make([]usecase.ExternalScoreboardGame, 0, len(envelope.Scoreboard.Games))
	for _, item := range envelope.Scoreboard.Games {
		gameID := strings.TrimSpace(item.GameID)
		if gameID == "" {
			continue
		}
		out = append(out, usecase.ExternalScoreboardGame{
			GameID:      gameID,
			GameTimeUTC: parseFeedTime(item.GameTimeUTC),
			Status:      strings.TrimSpace(item.GameStatusText),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GameID < out[j].GameID
	})
	return out, nil
}

func (c *Client) FetchGameLog(ctx context.Context, date time.Time) ([]usecase.ExternalGameLogRow, error) {
	day := date.Format("01/02/2006")
	values := url.Values{}
	values.Set("LeagueID", leagueIDNBA)
	values.Set("Season", seasonForDate(date))
	values.Set("SeasonType", "Regular Season")
	values.Set("PlayerOrTeam", "T")
	values.Set("DateFrom", day)
	values.Set("DateTo", day)
	values.Set("Sorter", "DATE")
	values.Set("Direction", "ASC")
	fullURL := c.gameLogURL + "?" + values.Encode()

	var envelope gameLogEnvelope
	if err := c.doJSON(ctx, fullURL, &envelope); err != nil {
		return nil, fmt.Errorf("fetch game log date=%s: %w", date.Format("2006-01-02"), err)
	}

	rows, err := parseGameLogRows(envelope)
	if err != nil {
		return nil, fmt.Errorf("parse game log date=%s: %w", date.Format("2006-01-02"), err)
	}
	return rows, nil
}

func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nba circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: nba feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errNBATransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		// The stats endpoint rejects requests without a browser-like origin.
		req.Header.Set("Referer", "https://www.nba.com/")
		req.Header.Set("Origin", "https://www.nba.com")
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNBATransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errNBATransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusForbidden:
				return nil, fmt.Errorf("%w: feed status=%d", errForbidden, resp.StatusCode)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errNBATransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "nba request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapBoxScoreGame(item boxScoreGame) usecase.ExternalBoxScore {
	return usecase.ExternalBoxScore{
		GameID:      strings.TrimSpace(item.GameID),
		GameTimeUTC: parseFeedTime(item.GameTimeUTC),
		Status:      strings.TrimSpace(item.GameStatusText),
		Period:      item.Period,
		HomeTeam:    mapBoxScoreTeam(item.HomeTeam),
		AwayTeam:    mapBoxScoreTeam(item.AwayTeam),
	}
}

func mapBoxScoreTeam(item boxScoreTeam) usecase.ExternalTeamBox {
	players := make([]usecase.ExternalPlayerLine, 0, len(item.Players))
	for _, p := range item.Players {
		players = append(players, usecase.ExternalPlayerLine{
			PersonID:  p.PersonID,
			Name:      strings.TrimSpace(p.Name),
			JerseyNum: strings.TrimSpace(p.JerseyNum),
			Statistics: usecase.ExternalStatLine{
				Minutes:                strings.TrimSpace(p.Statistics.Minutes),
				Points:                 p.Statistics.Points,
				Rebounds:               p.Statistics.ReboundsTotal,
				Assists:                p.Statistics.Assists,
				Steals:                 p.Statistics.Steals,
				Blocks:                 p.Statistics.Blocks,
				Turnovers:              p.Statistics.Turnovers,
				FoulsPersonal:          p.Statistics.FoulsPersonal,
				FieldGoalsMade:         p.Statistics.FieldGoalsMade,
				FieldGoalsAttempted:    p.Statistics.FieldGoalsAttempted,
				ThreePointersMade:      p.Statistics.ThreePointersMade,
				ThreePointersAttempted: p.Statistics.ThreePointersAttempted,
				FreeThrowsMade:         p.Statistics.FreeThrowsMade,
				FreeThrowsAttempted:    p.Statistics.FreeThrowsAttempted,
				PlusMinus:              int(p.Statistics.PlusMinusPoints),
			},
		})
	}

	name := strings.TrimSpace(item.TeamCity)
	if name != "" && strings.TrimSpace(item.TeamName) != "" {
		name += " "
	}
	name += strings.TrimSpace(item.TeamName)

	return usecase.ExternalTeamBox{
		TeamID:       item.TeamID,
		Name:         name,
		Abbreviation: strings.TrimSpace(item.TeamTricode),
		Score:        item.Score,
		Players:      players,
	}
}

func parseGameLogRows(envelope gameLogEnvelope) ([]usecase.ExternalGameLogRow, error) {
	var set *gameLogResultSet
	for idx := range envelope.ResultSets {
		if envelope.ResultSets[idx].Name == gameLogResultSetName {
			set = &envelope.ResultSets[idx]
			break
		}
	}
	if set == nil {
		return nil, fmt.Errorf("result set %q is missing", gameLogResultSetName)
	}

	colIdx := make(map[string]int, len(set.Headers))
	for idx, header := range set.Headers {
		colIdx[strings.ToUpper(strings.TrimSpace(header))] = idx
	}
	for _, required := range []string{"GAME_ID", "TEAM_ID"} {
		if _, ok := colIdx[required]; !ok {
			return nil, fmt.Errorf("header %s is missing", required)
		}
	}

	out := make([]usecase.ExternalGameLogRow, 0, len(set.RowSet))
	for _, row := range set.RowSet {
		gameID := stringCell(row, colIdx["GAME_ID"])
		if gameID == "" {
			continue
		}
		item := usecase.ExternalGameLogRow{
			GameID: gameID,
			TeamID: int64Cell(row, colIdx["TEAM_ID"]),
		}
		if idx, ok := colIdx["MATCHUP"]; ok {
			item.Matchup = stringCell(row, idx)
		}
		if idx, ok := colIdx["GAME_DATE"]; ok {
			item.GameDate = parseFeedTime(stringCell(row, idx))
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

func stringCell(row []any, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	value, _ := row[idx].(string)
	return strings.TrimSpace(value)
}

func int64Cell(row []any, idx int) int64 {
	if idx < 0 || idx >= len(row) {
		return 0
	}
	switch value := row[idx].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func parseFeedTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// seasonForDate maps a calendar date to the NBA season label, e.g.
// 2026-02-10 is part of "2025-26".
func seasonForDate(date time.Time) string {
	startYear := date.Year()
	if date.Month() < time.September {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
