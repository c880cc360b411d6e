package helpers

import (
	"path/filepath"

	tele "gopkg.in/telebot.v4"
)

// Reply answers in the chat of the current update using HTML parse mode.
type Reply struct {
	C tele.Context
}

func (r Reply) opts(markup *tele.ReplyMarkup) *tele.SendOptions {
	return &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: markup, DisableWebPagePreview: true}
}

// Text sends an HTML message.
func (r Reply) Text(text string, markup *tele.ReplyMarkup) error {
	return r.C.Send(text, r.opts(markup))
}

// Photo uploads the image at path with an HTML caption.
func (r Reply) Photo(path, caption string, markup *tele.ReplyMarkup) error {
	return r.C.Send(&tele.Photo{File: tele.FromDisk(path), Caption: caption}, r.opts(markup))
}

// Document uploads the file at path with an HTML caption.
func (r Reply) Document(path, caption string, markup *tele.ReplyMarkup) error {
	return r.C.Send(&tele.Document{File: tele.FromDisk(path), FileName: filepath.Base(path), Caption: caption}, r.opts(markup))
}
