// Package model contains domain models passed between layers.
package model

import (
	"github.com/tanayv/lila/internal/domain/updater"
)

// GameResult is a finished game submitted for rating, queued between the
// ingestion surface and the rating workers.
type GameResult struct {
	Game    updater.Game
	WhiteID string
	BlackID string
}
