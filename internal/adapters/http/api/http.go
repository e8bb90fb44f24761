// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tanayv/lila/internal/adapters/repository"
	"github.com/tanayv/lila/internal/domain/model"
	"github.com/tanayv/lila/internal/domain/rating"
	"github.com/tanayv/lila/internal/domain/updater"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Submit queues a finished game for rating. accepted is false on
	// backpressure; duplicate is true when the game id was already seen.
	Submit(ctx context.Context, result model.GameResult) (accepted, duplicate bool)

	// PlayerRatings returns a player's full per-category record set.
	PlayerRatings(ctx context.Context, playerID string) (map[string]rating.Perf, error)

	// Leaderboard returns the top players of a category.
	Leaderboard(ctx context.Context, c rating.Category, n int) ([]repository.Entry, error)
}

// StatsProvider exposes service statistics for monitoring.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	gamesHandler       *GamesHandler
	playersHandler     *PlayersHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		gamesHandler:       NewGamesHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/games", MetricsMiddleware(s.gamesHandler.HandlePostGame, "games"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetRatings, "players"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

// gameRequest mirrors the request schema for POST /games.
type gameRequest struct {
	GameID   string `json:"game_id"`
	WhiteID  string `json:"white_id"`
	BlackID  string `json:"black_id"`
	Variant  string `json:"variant"`
	Speed    string `json:"speed"`
	Winner   string `json:"winner"`
	Rated    bool   `json:"rated"`
	Aborted  bool   `json:"aborted"`
	PlayedAt string `json:"played_at"`
}

func (g gameRequest) validate() error {
	switch {
	case strings.TrimSpace(g.WhiteID) == "":
		return errors.New("missing white_id")
	case strings.TrimSpace(g.BlackID) == "":
		return errors.New("missing black_id")
	case g.WhiteID == g.BlackID:
		return errors.New("white_id and black_id must differ")
	case strings.TrimSpace(g.Variant) == "":
		return errors.New("missing variant")
	case strings.TrimSpace(g.Speed) == "":
		return errors.New("missing speed")
	}
	if _, ok := rating.ParseVariant(g.Variant); !ok {
		return errors.New("unknown variant")
	}
	if _, ok := rating.ParseSpeed(g.Speed); !ok {
		return errors.New("unknown speed")
	}
	if _, ok := rating.ParseOutcome(g.Winner); !ok {
		return errors.New("winner must be white, black or draw")
	}
	if g.PlayedAt != "" {
		if _, err := time.Parse(time.RFC3339, g.PlayedAt); err != nil {
			return errors.New("invalid played_at; must be RFC3339")
		}
	}
	return nil
}

// toResult converts a validated request to the queued domain form, minting a
// game id when the client did not supply one.
func (g gameRequest) toResult() model.GameResult {
	id := strings.TrimSpace(g.GameID)
	if id == "" {
		id = uuid.NewString()
	}
	variant, _ := rating.ParseVariant(g.Variant)
	speed, _ := rating.ParseSpeed(g.Speed)
	outcome, _ := rating.ParseOutcome(g.Winner)
	playedAt := time.Now().UTC()
	if g.PlayedAt != "" {
		playedAt, _ = time.Parse(time.RFC3339, g.PlayedAt)
	}
	return model.GameResult{
		Game: updater.Game{
			ID:          id,
			Variant:     variant,
			Speed:       speed,
			Outcome:     outcome,
			Rated:       g.Rated,
			Finished:    true,
			Accountable: !g.Aborted,
			PlayedAt:    playedAt,
		},
		WhiteID: g.WhiteID,
		BlackID: g.BlackID,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	GameID    string `json:"game_id"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
