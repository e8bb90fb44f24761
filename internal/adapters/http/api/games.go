package api

import (
	"encoding/json"
	"net/http"
)

// GamesHandler handles game-result submissions.
type GamesHandler struct {
	deps Dependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps Dependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

// HandlePostGame handles POST /games requests.
func (h *GamesHandler) HandlePostGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result := req.toResult()
	accepted, duplicate := h.deps.Submit(r.Context(), result)
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", GameID: result.Game.ID, Duplicate: true})
		return
	}
	if !accepted {
		writeError(w, http.StatusServiceUnavailable, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued", GameID: result.Game.ID})
}
