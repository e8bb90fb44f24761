package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/tanayv/lila/internal/domain/rating"
	"github.com/tanayv/lila/pkg/metrics"
)

// defaultShardCount spreads lock contention across independent maps.
const defaultShardCount = 8

// shard is one lock-protected slice of the player map.
type shard struct {
	mu      sync.RWMutex
	records map[string]PlayerRecord
}

// MemStore is a sharded in-memory Store.
type MemStore struct {
	shards []*shard
}

// NewMemStore creates a new in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	cfg := storeConfig{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &MemStore{shards: make([]*shard, cfg.shardCount)}
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]PlayerRecord)}
	}

	return s
}

func (s *MemStore) shardFor(playerID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(playerID))
	return s.shards[int(h.Sum32())%len(s.shards)]
}

// Get returns the record for a player id.
func (s *MemStore) Get(_ context.Context, playerID string) (PlayerRecord, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.records[playerID]
	if !ok {
		return PlayerRecord{}, ErrNotFound
	}
	return rec, nil
}

// GetOrCreate returns the record for a player id, creating a default one if
// the player is unknown.
func (s *MemStore) GetOrCreate(_ context.Context, playerID string) (PlayerRecord, error) {
	sh := s.shardFor(playerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.records[playerID]
	if !ok {
		rec = PlayerRecord{ID: playerID, Perfs: rating.NewPerfSet()}
		sh.records[playerID] = rec
	}
	return rec, nil
}

// Put replaces a player's record wholesale.
func (s *MemStore) Put(ctx context.Context, rec PlayerRecord) error {
	sh := s.shardFor(rec.ID)
	sh.mu.Lock()
	sh.records[rec.ID] = rec
	sh.mu.Unlock()

	metrics.UpdateTotalPlayers(s.Count(ctx))
	return nil
}

// TopN returns the top-N entries for a category ordered by rating desc,
// breaking ties by game count then player id.
func (s *MemStore) TopN(_ context.Context, c rating.Category, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	if !c.Valid() {
		return nil, ErrBadCategory
	}

	var entries []Entry
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, rec := range sh.records {
			perf := rec.Perfs.Get(c)
			if perf.Games == 0 {
				continue
			}
			entries = append(entries, Entry{
				PlayerID: rec.ID,
				Rating:   perf.IntRating(),
				Games:    perf.Games,
			})
		}
		sh.mu.RUnlock()
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		if entries[i].Games != entries[j].Games {
			return entries[i].Games > entries[j].Games
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Count returns the number of players tracked.
func (s *MemStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.records)
		sh.mu.RUnlock()
	}
	return total
}
