// Package sender runs outbound Telegram calls on a worker pool with retries.
package sender

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cnbridge/leadbot/core/logger"
	"github.com/cnbridge/leadbot/core/metrics"
	"github.com/cnbridge/leadbot/core/telegram/netutil"
)

var (
	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull is returned when the queue cannot take another job.
	ErrQueueFull = errors.New("telegram sender: queue full")
)

// Options tune the dispatcher. Zero values pick defaults.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent on one job including retries.
	MaxDuration time.Duration
}

// Job is one outbound call.
type Job struct {
	Action   string
	Endpoint string
	// Run performs the call. It must be safe to repeat.
	Run func() error
	// Done, when set, receives the final error (nil on success).
	Done func(error)
}

type queued struct {
	ctx context.Context
	job Job
}

// Dispatcher executes jobs asynchronously.
type Dispatcher struct {
	opts Options
	jobs chan queued

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	failed atomic.Uint64
}

// NewDispatcher starts the worker pool.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 2 * time.Second
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 12 * time.Second
	}

	d := &Dispatcher{opts: opts, jobs: make(chan queued, opts.QueueSize)}
	d.wg.Add(opts.Workers)
	for range opts.Workers {
		go func() {
			defer d.wg.Done()
			for q := range d.jobs {
				d.process(q.ctx, q.job)
			}
		}()
	}
	return d
}

// Enqueue schedules job without blocking.
func (d *Dispatcher) Enqueue(ctx context.Context, job Job) error {
	if job.Run == nil {
		return errors.New("telegram sender: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- queued{ctx: context.WithoutCancel(ctx), job: job}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Failed returns the number of jobs that gave up.
func (d *Dispatcher) Failed() uint64 {
	return d.failed.Load()
}

// Close stops accepting jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) process(ctx context.Context, job Job) {
	deadline, cancel := context.WithTimeout(ctx, d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attempts := d.opts.MaxRetries + 1
	var err error
	attempt := 1
	for ; attempt <= attempts; attempt++ {
		if err = job.Run(); err == nil {
			break
		}
		if attempt == attempts || !netutil.ShouldRetry(err) {
			break
		}
		delay := d.opts.RetryBackoff * time.Duration(attempt)
		metrics.IncDispatchRetry()
		logger.Debug(ctx, "tg.sender", "send.retry",
			append(jobAttrs(job), slog.Int("attempts", attempt), slog.Duration("backoff", delay))...)
		timer := time.NewTimer(delay)
		select {
		case <-deadline.Done():
			timer.Stop()
			err = errors.Join(err, deadline.Err())
			attempt = attempts + 1
		case <-timer.C:
		}
	}

	took := logger.Took(start)
	if err != nil {
		d.failed.Add(1)
		logger.Error(ctx, "tg.sender", "send.fail",
			append(jobAttrs(job),
				slog.String("err", SanitizeError(err)),
				slog.String("err_code", ClassifyError(err)),
				slog.Int("attempts", min(attempt, attempts)),
				slog.Duration("duration", took),
			)...)
	} else {
		logger.Debug(ctx, "tg.sender", "send.ok",
			append(jobAttrs(job), slog.Int("attempts", attempt), slog.Duration("duration", took))...)
	}
	if job.Done != nil {
		job.Done(err)
	}
}

func jobAttrs(job Job) []slog.Attr {
	attrs := []slog.Attr{slog.String("op", job.Action)}
	if job.Endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", job.Endpoint))
	}
	return attrs
}
