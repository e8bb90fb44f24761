package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tanayv/lila/internal/adapters/repository"
	"github.com/tanayv/lila/internal/domain/rating"
)

// defaultLeaderboardLimit applies when the client omits ?limit.
const defaultLeaderboardLimit = 10

// LeaderboardHandler handles per-category ranking queries.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /leaderboard?category=blitz&limit=10.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	category, ok := rating.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("unknown category"))
		return
	}

	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := h.deps.Leaderboard(r.Context(), category, limit)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidLimit) || errors.Is(err, repository.ErrBadCategory) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category.String(),
		"entries":  entries,
	})
}
