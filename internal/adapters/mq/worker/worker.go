// Package worker runs the goroutines that evaluate ranking candidates pulled
// off the job queue. Evaluations are independent per candidate, so the pool
// needs no coordination beyond delivering each job's outcome on its reply
// channel.
package worker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Mackliffe/rent2own-engine/internal/adapters/mq/queue"
	"github.com/Mackliffe/rent2own-engine/internal/domain/rank"
	"github.com/Mackliffe/rent2own-engine/pkg/logger"
	"github.com/Mackliffe/rent2own-engine/pkg/metrics"
)

// defaultWorkerCount is used when the pool is built without an explicit size.
const defaultWorkerCount = 8

// Evaluator scores one candidate for a buyer.
type Evaluator interface {
	EvaluateCandidate(buyer rank.Buyer, c rank.Candidate) (rank.Recommendation, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes evaluation jobs until its queue closes or the context is
// cancelled.
type Worker struct {
	queue     Queue
	evaluator Evaluator
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(q Queue, evaluator Evaluator, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		evaluator: evaluator,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes jobs until the context is cancelled, the worker is shut down,
// or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			// The queue is closed before workers are shut down; jobs
			// still buffered must deliver their outcomes, or a batch
			// waiting on replies would hang.
			w.drain(ctx, jobs)
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, job)
		}
	}
}

// drain processes any jobs still buffered on the queue, then returns.
func (w *Worker) drain(ctx context.Context, jobs <-chan queue.Job) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, job)
		default:
			return
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight job to finish.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out", logger.String("worker", w.name))
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process evaluates a single job and delivers its outcome. The reply channel
// must be buffered for the batch size; delivery never blocks past ctx.
func (w *Worker) process(ctx context.Context, job queue.Job) {
	recommendation, err := w.evaluator.EvaluateCandidate(job.Buyer, job.Candidate)
	if err != nil {
		metrics.RecordCandidateSkipped()
	} else {
		metrics.RecordCandidateEvaluated()
	}

	outcome := queue.Outcome{
		PropertyID:     job.Candidate.ID,
		Recommendation: recommendation,
		Err:            err,
	}
	select {
	case job.Reply <- outcome:
	case <-ctx.Done():
		w.logger.Warn(ctx, "dropping outcome, context cancelled",
			logger.String("property_id", job.Candidate.ID))
	}
}

// Pool manages a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
}

// NewPool creates a pool of workerCount workers.
func NewPool(workerCount int, q Queue, evaluator Evaluator) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{workers: make([]*Worker, workerCount)}
	for i := range pool.workers {
		pool.workers[i] = NewWorker(q, evaluator, WithName("worker-"+strconv.Itoa(i)))
	}
	return pool
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown stops all workers, returning the first error encountered.
func (p *Pool) Shutdown(ctx context.Context) error {
	var first error
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}
