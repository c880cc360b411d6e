package middleware

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	coreconfig "github.com/cnbridge/leadbot/core/config"
	"github.com/cnbridge/leadbot/core/logger"
	tghelpers "github.com/cnbridge/leadbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures RateLimitMiddleware.
type RateLimitOptions struct {
	// Interval is the minimum gap between two updates from one user.
	Interval time.Duration
	// Exclude lists update groups that bypass limiting: callback, message, inline_query.
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
	// Bypass exempts a user entirely, e.g. the admin uploading a broadcast.
	Bypass func(userID int64) bool
}

// RateLimitMiddleware drops updates that arrive faster than one per Interval per user.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[int64]*rate.Limiter)
	)
	limiterFor := func(id int64) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[id]
		if !ok {
			l = rate.NewLimiter(rate.Every(opts.Interval), 1)
			limiters[id] = l
		}
		return l
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			if opts.Bypass != nil && opts.Bypass(user.ID) {
				return next(c)
			}
			if _, skip := opts.Exclude[updateGroup(c.Update())]; skip {
				return next(c)
			}
			if limiterFor(user.ID).Allow() {
				return next(c)
			}
			logger.Warn(tghelpers.BuildContext(c), "tg", "tg.rate_limit",
				slog.String("status", "rate_limited"),
			)
			if opts.OnLimited != nil {
				_ = opts.OnLimited(c)
			}
			return nil
		}
	}
}

func updateGroup(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return coreconfig.UpdateCallback
	case upd.Message != nil:
		return coreconfig.UpdateMessage
	case upd.Query != nil:
		return coreconfig.UpdateInlineQuery
	}
	return "other"
}
