// Package shardqueue runs lookup jobs on a fixed set of worker goroutines.
// Jobs are partitioned by a stable hash of their key, so jobs with the same
// key run one after another in submission order while different keys proceed
// in parallel. Recoverable failures are retried with exponential backoff.
package shardqueue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/fanfou-go/client/internal/errors"
)

type queuedJob struct {
	ctx    context.Context
	job    Job
	finish func(error) // may be nil
}

// ShardExecutor executes Jobs on worker goroutines partitioned by key.
type ShardExecutor struct {
	cfg    Config
	queues []chan queuedJob // len == cfg.Shards

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 → running, 1 → closed

	// enqueue holds mu for reading from the closed check until the job is
	// queued; Stop holds it for writing while closing done.
	mu sync.RWMutex

	wg sync.WaitGroup
}

// NewShardExecutor constructs the executor and starts its shard workers.
func NewShardExecutor(cfg Config) *ShardExecutor {
	if cfg.Shards <= 0 {
		cfg.Shards = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 128
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = 100 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	p := &ShardExecutor{
		cfg:    cfg,
		queues: make([]chan queuedJob, cfg.Shards),
		done:   make(chan struct{}),
	}
	for i := 0; i < cfg.Shards; i++ {
		ch := make(chan queuedJob, cfg.QueueSize)
		p.queues[i] = ch
		p.wg.Add(1)
		go p.runWorker(i, ch)
	}
	return p
}

// Submit enqueues job for the shard derived from key and returns without
// waiting for it to run.
//
//   - Returns ErrExecutorClosed if the executor is stopped.
//   - Returns *QueueFullError if the shard is still full after EnqueueTimeout.
//   - Returns ctx.Err() if the caller-provided context is cancelled first.
func (p *ShardExecutor) Submit(ctx context.Context, key string, job Job) error {
	return p.enqueue(ctx, key, queuedJob{ctx: ctx, job: job})
}

// Do enqueues job and blocks until it has finished, returning the job's final
// error after retries. Cancelling ctx abandons the wait; the job observes the
// same ctx and is skipped or aborted by the worker.
func (p *ShardExecutor) Do(ctx context.Context, key string, job Job) error {
	result := make(chan error, 1)
	qj := queuedJob{ctx: ctx, job: job, finish: func(err error) { result <- err }}
	if err := p.enqueue(ctx, key, qj); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *ShardExecutor) enqueue(ctx context.Context, key string, qj queuedJob) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if atomic.LoadUint32(&p.closed) == 1 {
		return ErrExecutorClosed
	}

	shard := p.shardFor(key)
	ch := p.queues[shard]

	timer := time.NewTimer(p.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- qj:
		submissionsTotal.WithLabelValues(labelFor(shard)).Inc()
		return nil

	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		queueFullTotal.WithLabelValues(labelFor(shard)).Inc()
		return &QueueFullError{
			Key:      key,
			Shard:    shard,
			Length:   len(ch),
			Capacity: cap(ch),
		}
	}
}

// Stop lets every worker drain its queue, waits for them to terminate and
// returns. It is idempotent and safe for concurrent use.
func (p *ShardExecutor) Stop() {
	if !atomic.CompareAndSwapUint32(&p.closed, 0, 1) {
		return
	}
	log.Debug().Int("shards", p.cfg.Shards).Msg("shardqueue: stopping executor")
	// In-flight enqueues complete before the workers start draining.
	p.mu.Lock()
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
	log.Debug().Msg("shardqueue: executor stopped, all queues drained")
}

// Close lets ShardExecutor satisfy io.Closer.
func (p *ShardExecutor) Close() error {
	p.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (p *ShardExecutor) runWorker(idx int, ch <-chan queuedJob) {
	defer p.wg.Done()

	label := labelFor(idx)

	for {
		select {
		case qj := <-ch:
			if qj.job != nil {
				p.finish(qj, p.runWithRetry(label, qj))
			}
			queueDepth.WithLabelValues(label).Set(float64(len(ch)))

		case <-p.done:
			// Drain remaining jobs once each, preserving FIFO, then exit.
			drained := 0
			for {
				select {
				case qj := <-ch:
					if qj.job != nil {
						p.finish(qj, p.runOnce(qj))
						drained++
					}
				default:
					if drained > 0 {
						log.Debug().Int("worker", idx).Int("jobs", drained).Msg("shardqueue: drained queue")
					}
					queueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		}
	}
}

// runWithRetry runs qj until it succeeds, fails irrecoverably, exhausts
// MaxAttempts, or its context ends.
func (p *ShardExecutor) runWithRetry(label string, qj queuedJob) error {
	// A cancelled job must not stall the shard.
	if err := qj.ctx.Err(); err != nil {
		return err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = p.cfg.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := p.runOnce(qj)
		runDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

		if err == nil || errors.IsIrrecoverable(err) || attempt >= p.cfg.MaxAttempts {
			return err
		}

		retriesTotal.WithLabelValues(label).Inc()
		wait := exp.NextBackOff()
		log.Debug().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("shardqueue: retrying job")

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-p.done:
			timer.Stop()
			return err
		case <-qj.ctx.Done():
			timer.Stop()
			return qj.ctx.Err()
		}
	}
}

// runOnce protects the worker from a panicking job.
func (p *ShardExecutor) runOnce(qj queuedJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("shardqueue: job panic")
			err = &PanicError{Value: r}
		}
	}()
	return qj.job.Run(qj.ctx)
}

// finish reports the final outcome of qj; the error handler sees it before
// any waiter is released.
func (p *ShardExecutor) finish(qj queuedJob, err error) {
	p.safeHandleError(err)
	if qj.finish != nil {
		qj.finish(err)
	}
}

func (p *ShardExecutor) safeHandleError(err error) {
	if err == nil || p.cfg.ErrorHandler == nil {
		return
	}
	defer func() {
		// Guard against panics in the user-supplied handler.
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("shardqueue: error handler panic")
		}
	}()
	p.cfg.ErrorHandler(err)
}

func (p *ShardExecutor) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(p.cfg.Shards))
}
