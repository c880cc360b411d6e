package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/cnbridge/leadbot/core/logger"
	"github.com/cnbridge/leadbot/core/metrics"
	tghelpers "github.com/cnbridge/leadbot/core/telegram/helpers"
	"github.com/cnbridge/leadbot/core/telegram/middleware"
	"github.com/cnbridge/leadbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

func handleWithSummary(c tele.Context, handler, kind string, start time.Time, fn func() error, extras ...slog.Attr) error {
	tghelpers.WithHandler(c, handler)
	err := fn()
	logHandlerSummary(c, handler, kind, start, err, extras...)
	return err
}

func logHandlerSummary(c tele.Context, handler, kind string, start time.Time, err error, extras ...slog.Attr) {
	ctx := tghelpers.WithHandler(c, handler)
	msgs, kb := middleware.GetCounters(c)
	took := time.Since(start)

	status, level := "ok", slog.LevelInfo
	if err != nil {
		status, level = "fail", slog.LevelError
	}
	metrics.ObserveUpdate(kind, status, handler, took)

	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("outcome", status),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", took),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(sender.SanitizeError(err), 256)),
			slog.String("err_code", deriveErrorCode(err)),
		)
	}
	attrs = append(attrs, extras...)
	logger.LogEvent(ctx, logger.Component("tg"), level, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

func deriveErrorCode(err error) string {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return "TG_" + strings.ToUpper(sender.ClassifyError(err))
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToUpper(t.Name())
	}
	return "UNKNOWN_ERROR"
}
