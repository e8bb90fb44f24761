// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/tanayv/lila/internal/adapters/mq/queue"
	"github.com/tanayv/lila/internal/adapters/mq/worker"
	"github.com/tanayv/lila/internal/adapters/repository"
	"github.com/tanayv/lila/internal/domain/dedupe"
	"github.com/tanayv/lila/internal/domain/glicko"
	"github.com/tanayv/lila/internal/domain/model"
	"github.com/tanayv/lila/internal/domain/rating"
	"github.com/tanayv/lila/internal/domain/updater"
	"github.com/tanayv/lila/pkg/logger"
	"github.com/tanayv/lila/pkg/metrics"
)

// Service wires the rating engine, the game-result queue, the worker pool
// and the player record store behind the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	gameQueue  queue.Queue
	updater    *updater.Updater
	workerPool *worker.Pool

	// Configuration
	workerCount       int
	queueSize         int
	dedupeSize        int
	shardCount        int
	maxLeaderboard    int
	tau               float64
	regulationFactors map[string]float64
	farming           updater.FarmingDetector

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of rating workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the game-result queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the rated-game id cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of shards in the player store.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithMaxLeaderboardLimit caps the page size of leaderboard queries.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboard = limit
		}
	}
}

// WithTau sets the Glicko-2 volatility change constraint.
func WithTau(tau float64) Option {
	return func(s *Service) {
		if tau > 0 {
			s.tau = tau
		}
	}
}

// WithRegulationFactors sets per-category rating-change scaling factors,
// keyed by category name.
func WithRegulationFactors(factors map[string]float64) Option {
	return func(s *Service) {
		s.regulationFactors = factors
	}
}

// WithFarmingDetector sets the farming detector consulted per game.
func WithFarmingDetector(d updater.FarmingDetector) Option {
	return func(s *Service) {
		if d != nil {
			s.farming = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    0, // worker pool picks its own default
		queueSize:      100_000,
		dedupeSize:     500_000,
		shardCount:     8,
		maxLeaderboard: 100,
		tau:            0.75,
		farming:        updater.NoopDetector{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting rating service...")

	s.store = repository.NewMemStore(
		repository.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.gameQueue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
	)
	s.updater = updater.New(
		updater.WithCalculator(glicko.NewCalculator(glicko.WithTau(s.tau))),
		updater.WithFarmingDetector(s.farming),
		updater.WithFactorSource(updater.StaticFactors(parseFactors(s.regulationFactors))),
		updater.WithLogger(s.logger.Named("updater")),
	)

	s.workerPool = worker.NewPool(s.workerCount, s.gameQueue, s.updater, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "rating service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Float64("tau", s.tau),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping rating service...")

	if s.gameQueue != nil {
		_ = s.gameQueue.Close()
	}
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "rating service stopped")
}

// parseFactors converts name-keyed factors from configuration to the
// category-keyed form the updater consumes. Unknown names are dropped.
func parseFactors(byName map[string]float64) updater.Factors {
	factors := make(updater.Factors, len(byName))
	for name, factor := range byName {
		if c, ok := rating.ParseCategory(name); ok {
			factors[c] = factor
		}
	}
	return factors
}

// Submit queues a finished game for rating. accepted is false on
// backpressure; duplicate is true when the game id was already rated or
// queued.
func (s *Service) Submit(ctx context.Context, result model.GameResult) (accepted, duplicate bool) {
	if s.deduper.SeenAndRecord(ctx, result.Game.ID) {
		metrics.RecordGameDuplicate()
		s.logger.Debug(ctx, "duplicate game result, skipping",
			logger.String("gameID", result.Game.ID),
		)
		return false, true
	}

	if !s.gameQueue.Enqueue(ctx, result) {
		// Allow a retry after backpressure.
		s.deduper.Unrecord(ctx, result.Game.ID)
		s.logger.Warn(ctx, "game-result queue full, rejecting",
			logger.String("gameID", result.Game.ID),
		)
		return false, false
	}
	return true, false
}

// PlayerRatings returns a player's full per-category record set.
func (s *Service) PlayerRatings(ctx context.Context, playerID string) (map[string]rating.Perf, error) {
	rec, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return rec.Perfs.Map(), nil
}

// Leaderboard returns the top players of a category. Requested sizes above
// the configured cap are clamped rather than rejected.
func (s *Service) Leaderboard(ctx context.Context, c rating.Category, n int) ([]repository.Entry, error) {
	if n > s.maxLeaderboard {
		n = s.maxLeaderboard
	}
	return s.store.TopN(ctx, c, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		stats["queueLength"] = s.gameQueue.Len(ctx)
		stats["totalPlayers"] = s.store.Count(ctx)
		stats["seenGames"] = s.deduper.Size()
	}

	return stats
}
