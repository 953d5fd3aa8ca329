package feedback

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"skuqty/internal"
)

type job struct {
	text   string
	result internal.ParsedQuantity
}

// Queue runs reinforcement off the parse path. Jobs are dropped when the
// buffer is full.
type Queue struct {
	r    *Reinforcer
	jobs chan job
	log  *zap.Logger

	mu      sync.Mutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewQueue(r *Reinforcer, size int, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = 1
	}
	return &Queue{r: r, jobs: make(chan job, size), log: logger.With(zap.String("component", "feedback_queue"))}
}

// Start launches the single worker. It stops when ctx is done or Close is
// called.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case j, ok := <-q.jobs:
				if !ok {
					return
				}
				if _, err := q.r.Reinforce(ctx, j.text, j.result); err != nil {
					q.log.Debug("reinforcement interrupted", zap.Error(err))
				}
			}
		}
	}()
}

// Submit enqueues without blocking.
func (q *Queue) Submit(_ context.Context, text string, result internal.ParsedQuantity) {
	if !eligible(result) {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	select {
	case q.jobs <- job{text: text, result: result}:
	default:
		q.log.Debug("reinforcement dropped: queue full", zap.String("text", text))
	}
}

// Close drains pending jobs and waits for the worker.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) Len() int { return len(q.jobs) }
