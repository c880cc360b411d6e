// Package broadcast replays an admin message to every known user.
package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/cnbridge/leadbot/core/logger"
	"github.com/cnbridge/leadbot/core/metrics"
	"github.com/cnbridge/leadbot/core/telegram/sender"
	"github.com/cnbridge/leadbot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

// DefaultDelay is the pause between two deliveries.
const DefaultDelay = 50 * time.Millisecond

// Sender delivers one message. *tele.Bot satisfies it.
type Sender interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

// StatStore persists run statistics.
type StatStore interface {
	SaveBroadcastStat(ctx context.Context, st domain.BroadcastStat) error
}

// Result counts the outcome per recipient. Sent is what the admin is shown.
type Result struct {
	Total       int
	Sent        int
	Unreachable int
	Failed      int
	Skipped     int
}

// Options tune an Operator.
type Options struct {
	// Delay between deliveries; zero uses DefaultDelay.
	Delay time.Duration
}

// Operator runs broadcasts one recipient at a time.
type Operator struct {
	sender Sender
	stats  StatStore
	delay  time.Duration
	now    func() time.Time
}

// New builds an Operator. stats may be nil.
func New(s Sender, stats StatStore, opts Options) *Operator {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	return &Operator{sender: s, stats: stats, delay: opts.Delay, now: time.Now}
}

// Run sends msg to every recipient in order. It never stops early: unreachable
// recipients are skipped quietly, other errors are logged and skipped.
// Shutdown does not interrupt a run in progress.
func (o *Operator) Run(ctx context.Context, recipients []int64, msg Message) Result {
	ctx = context.WithoutCancel(ctx)
	runID := uuid.New()
	started := o.now()
	res := Result{Total: len(recipients)}

	attrs := []slog.Attr{
		slog.String("run_id", runID.String()),
		slog.String("kind", string(msg.Kind)),
		slog.Int("total", res.Total),
	}
	logger.Info(ctx, "broadcast", "broadcast.start", attrs...)

	if !msg.Supported() {
		res.Skipped = res.Total
		logger.Warn(ctx, "broadcast", "broadcast.unsupported", attrs...)
		o.finish(ctx, runID, msg, started, res)
		return res
	}

	what := msg.sendable()
	limiter := rate.NewLimiter(rate.Every(o.delay), 1)
	for _, id := range recipients {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		_, err := o.sender.Send(tele.ChatID(id), what)
		switch {
		case err == nil:
			res.Sent++
		case sender.Unreachable(err):
			res.Unreachable++
			logger.Debug(ctx, "broadcast", "recipient.unreachable",
				slog.Int64("user_id", id),
				slog.Int("http_code", sender.HTTPStatus(err)),
			)
		default:
			res.Failed++
			logger.Warn(ctx, "broadcast", "recipient.failed",
				slog.Int64("user_id", id),
				slog.String("err", sender.SanitizeError(err)),
				slog.String("err_code", sender.ClassifyError(err)),
			)
		}
	}

	o.finish(ctx, runID, msg, started, res)
	return res
}

func (o *Operator) finish(ctx context.Context, runID uuid.UUID, msg Message, started time.Time, res Result) {
	finished := o.now()
	took := finished.Sub(started)
	metrics.AddBroadcast(res.Sent, res.Unreachable, res.Failed, took)

	logger.Info(ctx, "broadcast", "broadcast.done",
		slog.String("run_id", runID.String()),
		slog.String("kind", string(msg.Kind)),
		slog.Int("total", res.Total),
		slog.Int("sent", res.Sent),
		slog.Int("unreachable", res.Unreachable),
		slog.Int("failed", res.Failed),
		slog.Int("skipped", res.Skipped),
		slog.Duration("duration", took),
	)

	if o.stats == nil {
		return
	}
	err := o.stats.SaveBroadcastStat(ctx, domain.BroadcastStat{
		ID:          runID,
		Kind:        string(msg.Kind),
		Total:       res.Total,
		Sent:        res.Sent,
		Unreachable: res.Unreachable,
		Failed:      res.Failed,
		Skipped:     res.Skipped,
		StartedAt:   started,
		FinishedAt:  finished,
	})
	if err != nil {
		logger.Error(ctx, "broadcast", "stat.save_failed",
			slog.String("run_id", runID.String()),
			slog.String("err", err.Error()),
		)
	}
}
