// Package shardqueue runs background jobs on a fixed set of shard workers.
//
// Jobs that share a key land on the same shard and run in submission order;
// different keys may run in parallel. A job that fails with a recoverable
// error is retried with exponential backoff; irrecoverable errors (see
// client/internal/errors) fail fast.
//
// Callers must not Submit concurrently for the same key if they rely on
// FIFO order.
package shardqueue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	apierrors "github.com/capydiary/capydiary/client/internal/errors"
)

type queued struct {
	ctx context.Context
	key string
	job Job
}

// Executor owns the shard workers.
type Executor struct {
	cfg    Config
	queues []chan queued

	// stopping is canceled by Stop and aborts backoff waits.
	stopping context.Context
	stop     context.CancelFunc
	closed   atomic.Bool

	// Submit holds mu for reading around the send; Stop takes it for writing
	// before closing quit, so every accepted job is queued before the
	// workers drain.
	mu   sync.RWMutex
	quit chan struct{}

	wg sync.WaitGroup
}

// New starts cfg.Shards workers. Zero fields of cfg take their defaults.
func New(cfg Config) *Executor {
	cfg = cfg.withDefaults()
	stopping, stop := context.WithCancel(context.Background())
	e := &Executor{
		cfg:      cfg,
		queues:   make([]chan queued, cfg.Shards),
		stopping: stopping,
		stop:     stop,
		quit:     make(chan struct{}),
	}
	for i := range e.queues {
		ch := make(chan queued, cfg.QueueSize)
		e.queues[i] = ch
		e.wg.Add(1)
		go e.worker(i, ch)
	}
	return e
}

// Submit enqueues job on the shard for key. It returns ErrExecutorClosed
// after Stop, a *QueueFullError when the shard stays full for
// EnqueueTimeout, or ctx.Err() if ctx ends first. ctx is also the context
// the job runs with.
func (e *Executor) Submit(ctx context.Context, key string, job Job) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	shard := e.shardFor(key)
	ch := e.queues[shard]

	timer := time.NewTimer(e.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- queued{ctx: ctx, key: key, job: job}:
		submissionsTotal.WithLabelValues(labelFor(shard)).Inc()
		return nil
	case <-e.stopping.Done():
		return ErrExecutorClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		queueFullTotal.WithLabelValues(labelFor(shard)).Inc()
		return &QueueFullError{Key: key, Shard: shard, Capacity: cap(ch)}
	}
}

// Barrier waits until every job submitted for key before the call has finished.
func (e *Executor) Barrier(ctx context.Context, key string) error {
	done := make(chan struct{})
	if err := e.Submit(ctx, key, JobFunc(func(context.Context) error {
		close(done)
		return nil
	})); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Stop rejects new work, runs what is already queued once without retries
// and waits for the workers to exit. Safe to call more than once.
func (e *Executor) Stop() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.cfg.Logger.Debug().Int("shards", e.cfg.Shards).Msg("stopping warm-up executor")
	e.stop()
	e.mu.Lock()
	close(e.quit)
	e.mu.Unlock()
	e.wg.Wait()
}

// Close implements io.Closer.
func (e *Executor) Close() error {
	e.Stop()
	return nil
}

func (e *Executor) worker(idx int, ch <-chan queued) {
	defer e.wg.Done()
	label := labelFor(idx)
	for {
		select {
		case q := <-ch:
			e.process(label, q)
			queueDepth.WithLabelValues(label).Set(float64(len(ch)))
		case <-e.quit:
			e.drain(label, ch)
			return
		}
	}
}

// process runs one job with retries, recovering from panics so a bad job
// cannot take the shard down.
func (e *Executor) process(label string, q queued) {
	if q.job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.cfg.Logger.Error().Interface("panic", r).Str("key", q.key).Msg("warm-up job panicked")
			outcomesTotal.WithLabelValues("failed").Inc()
		}
	}()

	if err := q.ctx.Err(); err != nil {
		outcomesTotal.WithLabelValues("canceled").Inc()
		e.report(q, err)
		return
	}

	// Waits between attempts end early on Stop or when the job's context ends.
	waitCtx, cancel := context.WithCancel(q.ctx)
	defer cancel()
	unhook := context.AfterFunc(e.stopping, cancel)
	defer unhook()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = e.cfg.BaseBackoff
	exp.MaxInterval = e.cfg.MaxInterval
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(e.cfg.MaxAttempts-1)), waitCtx)

	attempt := func() error {
		start := time.Now()
		err := q.job.Run(q.ctx)
		runDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		if err != nil && apierrors.IsIrrecoverable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		retriesTotal.WithLabelValues(label).Inc()
		e.cfg.Logger.Debug().Err(err).Str("key", q.key).Str("job", jobName(q.job)).Dur("wait", wait).Msg("retrying warm-up job")
	}

	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		outcomesTotal.WithLabelValues("failed").Inc()
		e.report(q, err)
		return
	}
	outcomesTotal.WithLabelValues("ok").Inc()
}

// drain runs the jobs still queued at Stop, once each, in FIFO order.
func (e *Executor) drain(label string, ch <-chan queued) {
	n := 0
	for {
		select {
		case q := <-ch:
			if q.job == nil || q.ctx.Err() != nil {
				continue
			}
			if err := e.runOnce(q); err != nil {
				e.report(q, err)
			}
			n++
		default:
			if n > 0 {
				e.cfg.Logger.Debug().Str("shard", label).Int("jobs", n).Msg("drained warm-up queue")
			}
			queueDepth.WithLabelValues(label).Set(0)
			return
		}
	}
}

func (e *Executor) runOnce(q queued) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.cfg.Logger.Error().Interface("panic", r).Str("key", q.key).Msg("warm-up job panicked")
		}
	}()
	return q.job.Run(q.ctx)
}

func (e *Executor) report(q queued, err error) {
	e.cfg.Logger.Debug().Err(err).Str("key", q.key).Str("job", jobName(q.job)).Msg("warm-up job gave up")
	if e.cfg.ErrorHandler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.cfg.Logger.Error().Interface("panic", r).Msg("warm-up error handler panicked")
		}
	}()
	e.cfg.ErrorHandler(q.key, err)
}

func (e *Executor) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(e.cfg.Shards))
}
