// Package queue defines the contract for enqueuing and consuming finished
// game results awaiting rating.
package queue

import (
	"context"
	"sync"

	"github.com/tanayv/lila/internal/domain/model"
	"github.com/tanayv/lila/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 100000
)

// Result is the payload type flowing through the queue.
type Result = model.GameResult

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a game result to the queue.
	// Returns false if the queue is full and the result was not enqueued.
	Enqueue(ctx context.Context, r Result) bool

	// Dequeue returns a channel receiving results as they become available.
	// The channel is closed when the queue is closed or ctx is cancelled.
	Dequeue(ctx context.Context) <-chan Result

	// Len returns the current number of queued results.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue. After closing, no new results
	// can be enqueued and the dequeue channel is closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	results  chan Result
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.results = make(chan Result, q.capacity)

	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds a game result to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Result) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.results <- r:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.results))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		// queue is full
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue returns a channel receiving results as they become available. The
// channel is closed when the queue is closed or ctx is cancelled. A result
// already pulled when ctx is cancelled may still be handed over or dropped;
// consumers cancel only on shutdown, where the loss is acceptable.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case r, ok := <-q.results:
				if !ok {
					return
				}
				select {
				case out <- r:
					metrics.RecordQueueDequeue()
					metrics.UpdateQueueSize(len(q.results))
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len returns the current number of queued results.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.results)
	metrics.UpdateQueueSize(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.results)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
