// Package ui holds presentation helpers shared by bot handlers.
package ui

import (
	"context"
	"log/slog"

	"github.com/cnbridge/leadbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Presenter sends rich and plain messages to one chat.
type Presenter interface {
	Text(text string, markup *tele.ReplyMarkup) error
	Photo(path, caption string, markup *tele.ReplyMarkup) error
}

// Card is an image with a caption. An empty Image means the asset is missing.
type Card struct {
	Name    string
	Image   string
	Caption string
	Markup  *tele.ReplyMarkup
}

// ShowCard sends the card as a photo and falls back to a text message with the
// same caption when the image is missing or the upload fails.
func ShowCard(ctx context.Context, p Presenter, card Card) error {
	if card.Image != "" {
		err := p.Photo(card.Image, card.Caption, card.Markup)
		if err == nil {
			return nil
		}
		logger.Warn(ctx, "tg.ui", "card.photo_failed",
			slog.String("asset", card.Name),
			slog.String("err", err.Error()),
		)
	} else {
		logger.Debug(ctx, "tg.ui", "card.asset_missing", slog.String("asset", card.Name))
	}
	return p.Text(card.Caption, card.Markup)
}
