package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tanayv/lila/internal/adapters/repository"
)

// PlayersHandler handles player rating queries.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetRatings handles GET /players/{player_id}/ratings requests.
func (h *PlayersHandler) HandleGetRatings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/players/")
	playerID, ok := strings.CutSuffix(path, "/ratings")
	if !ok || playerID == "" || strings.Contains(playerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	perfs, err := h.deps.PlayerRatings(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"player_id": playerID,
		"ratings":   perfs,
	})
}
