// Package worker drains the game-result queue into the rating pipeline and
// writes the updated records back to the store.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/tanayv/lila/internal/adapters/repository"
	"github.com/tanayv/lila/internal/domain/model"
	"github.com/tanayv/lila/internal/domain/updater"
	"github.com/tanayv/lila/pkg/logger"
	"github.com/tanayv/lila/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Rater runs the rating pipeline for one finished game.
type Rater interface {
	Process(ctx context.Context, g updater.Game, white, black updater.Player) (*updater.Update, error)
}

// Queue defines how workers receive game results.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.GameResult
}

// Worker processes game results until stopped.
type Worker struct {
	queue Queue
	rater Rater
	store repository.Store
	name  string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a new worker with configuration options.
func NewWorker(queue Queue, rater Rater, store repository.Store, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		rater:    rater,
		store:    store,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop until ctx is canceled or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	results := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case result, ok := <-results:
			if !ok {
				return
			}
			if err := w.processResult(ctx, result); err != nil {
				metrics.RecordWorkerError()
				w.logger.Error(ctx, "error processing game result",
					logger.String("gameID", result.Game.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processResult rates a single game and persists both players' records.
// The two writes are independent; a failure between them leaves the records
// inconsistent and is surfaced to the operator rather than rolled back.
func (w *Worker) processResult(ctx context.Context, result model.GameResult) error {
	start := time.Now()
	defer func() {
		metrics.RecordUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	whiteRec, err := w.store.GetOrCreate(ctx, result.WhiteID)
	if err != nil {
		return fmt.Errorf("load white player %s: %w", result.WhiteID, err)
	}
	blackRec, err := w.store.GetOrCreate(ctx, result.BlackID)
	if err != nil {
		return fmt.Errorf("load black player %s: %w", result.BlackID, err)
	}

	update, err := w.rater.Process(ctx, result.Game,
		playerFromRecord(whiteRec),
		playerFromRecord(blackRec),
	)
	if err != nil {
		return fmt.Errorf("rate game %s: %w", result.Game.ID, err)
	}
	if update == nil {
		// Ineligible; nothing to persist.
		return nil
	}

	whiteRec.Perfs = update.White
	blackRec.Perfs = update.Black
	if err := w.store.Put(ctx, whiteRec); err != nil {
		return fmt.Errorf("persist white player %s: %w", result.WhiteID, err)
	}
	if err := w.store.Put(ctx, blackRec); err != nil {
		return fmt.Errorf("persist black player %s: %w", result.BlackID, err)
	}

	w.logger.Debug(ctx, "rated game",
		logger.String("gameID", result.Game.ID),
		logger.Int("whiteDiff", update.WhiteDiff),
		logger.Int("blackDiff", update.BlackDiff),
	)
	return nil
}

func playerFromRecord(rec repository.PlayerRecord) updater.Player {
	return updater.Player{
		ID:    rec.ID,
		Bot:   rec.Bot,
		Lame:  rec.Lame,
		Perfs: rec.Perfs,
	}
}

// Pool manages multiple workers.
type Pool struct {
	workers []*Worker

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, rater Rater, store repository.Store) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(queue, rater, store,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop halts all workers without draining the queue, waiting briefly for
// each. Use Shutdown for a graceful, queue-draining stop. Safe to call more
// than once.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		select {
		case <-w.shutdown:
		default:
			close(w.shutdown)
		}
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the pool, closing the queue first so
// in-flight results drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.workers[0].queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
