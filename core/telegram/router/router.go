// Package router binds one entry handler to every update kind the bot serves
// and logs a summary line per handled update.
package router

import (
	"log/slog"
	"time"

	"github.com/cnbridge/leadbot/core/logger"
	tg "github.com/cnbridge/leadbot/core/telegram"
	"github.com/cnbridge/leadbot/core/telegram/callbacks"
	"github.com/cnbridge/leadbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Endpoints lists the non-command update kinds routed to the entry handler.
var Endpoints = []string{
	tele.OnText,
	tele.OnContact,
	tele.OnCallback,
	tele.OnPhoto,
	tele.OnVideo,
	tele.OnDocument,
	tele.OnAnimation,
	tele.OnVoice,
	tele.OnVideoNote,
	tele.OnSticker,
	tele.OnAudio,
	tele.OnLocation,
	tele.OnVenue,
	tele.OnPoll,
	tele.OnDice,
}

// Routes returns routes sending every registered command and every endpoint
// in Endpoints to entry.
func Routes(reg *tg.Registry, entry tele.HandlerFunc) []tg.Route {
	routes := make([]tg.Route, 0, len(Endpoints)+8)
	if reg != nil {
		for _, name := range reg.Names() {
			routes = append(routes, tg.Route{
				Endpoint: name,
				Handler:  wrap("cmd."+normalizeHandlerName(name), entry),
			})
		}
	}
	for _, ep := range Endpoints {
		routes = append(routes, tg.Route{Endpoint: ep, Handler: wrap("", entry)})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "routes"),
		slog.Int("count", len(routes)),
	)
	return routes
}

func wrap(name string, entry tele.HandlerFunc) tele.HandlerFunc {
	h := func(c tele.Context) error {
		start := time.Now()
		handler := name
		upd := c.Update()
		if handler == "" {
			handler = middleware.UpdateKind(upd)
		}
		var extras []slog.Attr
		if cb := c.Callback(); cb != nil {
			key, _ := callbacks.Parse(cb)
			handler = "callback." + normalizeHandlerName(key)
			extras = append(extras, slog.String("cb_key", key))
			_ = c.Respond()
		}
		return handleWithSummary(c, handler, middleware.UpdateKind(upd), start, func() error {
			return entry(c)
		}, extras...)
	}
	return middleware.RecoverMiddleware(h)
}
