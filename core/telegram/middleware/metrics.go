package middleware

import (
	"sync/atomic"

	"github.com/cnbridge/leadbot/core/metrics"

	tele "gopkg.in/telebot.v4"
)

const countersKey = "reply_counters"

type replyCounters struct {
	messages atomic.Int32
	keyboard atomic.Bool
}

// countingContext counts successful replies sent while handling one update.
type countingContext struct {
	tele.Context
	counters *replyCounters
}

func (m countingContext) track(err error, opts []any) error {
	if err != nil {
		return err
	}
	m.counters.messages.Add(1)
	if hasKeyboard(opts) {
		m.counters.keyboard.Store(true)
	}
	return nil
}

func hasKeyboard(opts []any) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func (m countingContext) Send(what any, opts ...any) error {
	return m.track(m.Context.Send(what, opts...), opts)
}

func (m countingContext) Reply(what any, opts ...any) error {
	return m.track(m.Context.Reply(what, opts...), opts)
}

func (m countingContext) Edit(what any, opts ...any) error {
	return m.track(m.Context.Edit(what, opts...), opts)
}

func (m countingContext) EditOrSend(what any, opts ...any) error {
	return m.track(m.Context.EditOrSend(what, opts...), opts)
}

// MessageMetricsMiddleware counts replies per update and exports the total.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		counters := &replyCounters{}
		c.Set(countersKey, counters)
		err := next(countingContext{Context: c, counters: counters})
		metrics.AddMessagesSent(int(counters.messages.Load()))
		return err
	}
}

// GetCounters returns the number of replies sent so far and whether any carried a keyboard.
func GetCounters(c tele.Context) (int, bool) {
	counters, ok := c.Get(countersKey).(*replyCounters)
	if !ok {
		return 0, false
	}
	return int(counters.messages.Load()), counters.keyboard.Load()
}
