// Package repository defines the player record store interface and errors.
package repository

import (
	"context"

	"github.com/tanayv/lila/internal/domain/rating"
)

// PlayerRecord is a player's stored rating state.
type PlayerRecord struct {
	ID    string
	Bot   bool
	Lame  bool
	Perfs rating.PerfSet
}

// Entry is one row of a per-category ranking.
type Entry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Rating   int    `json:"rating"`
	Games    int    `json:"games"`
}

// Store provides read/write access to player rating records.
type Store interface {
	// Get returns the record for a player id.
	// Returns ErrNotFound if the player is unknown.
	Get(ctx context.Context, playerID string) (PlayerRecord, error)

	// GetOrCreate returns the record for a player id, creating a fresh
	// default record if the player is unknown.
	GetOrCreate(ctx context.Context, playerID string) (PlayerRecord, error)

	// Put replaces a player's record wholesale.
	Put(ctx context.Context, rec PlayerRecord) error

	// TopN returns the top-N entries for a category ordered by rating desc.
	TopN(ctx context.Context, c rating.Category, n int) ([]Entry, error)

	// Count returns the number of players tracked.
	Count(ctx context.Context) int
}
