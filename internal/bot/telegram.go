package bot

import (
	"strings"

	tg "github.com/cnbridge/leadbot/core/telegram"
	"github.com/cnbridge/leadbot/core/telegram/callbacks"
	"github.com/cnbridge/leadbot/core/telegram/commands"
	"github.com/cnbridge/leadbot/core/telegram/format"
	"github.com/cnbridge/leadbot/core/telegram/helpers"
	"github.com/cnbridge/leadbot/internal/broadcast"
	"github.com/cnbridge/leadbot/internal/content"
	"github.com/cnbridge/leadbot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

// RegisterCommands adds the bot's slash commands to reg.
func RegisterCommands(reg *tg.Registry) error {
	if err := reg.RegisterCommand(content.CmdStart, commands.Command{
		Description: "Главное меню",
		Aliases:     []string{"menu"},
	}); err != nil {
		return err
	}
	return reg.RegisterCommand(content.CmdAdmin, commands.Command{
		Description: "Админ-панель",
		AdminOnly:   true,
	})
}

// Telebot adapts Handle to a telebot handler.
func (b *Bot) Telebot(reg *tg.Registry) tele.HandlerFunc {
	return func(c tele.Context) error {
		return b.Handle(helpers.BuildContext(c), InputFrom(c, reg), helpers.Reply{C: c})
	}
}

// InputFrom reads an Input from the update. Slash commands count only when
// reg knows them; anything else is plain text.
func InputFrom(c tele.Context, reg *tg.Registry) Input {
	var in Input
	if u := c.Sender(); u != nil {
		in.User = domain.User{
			ID:        u.ID,
			Username:  format.StringPtr(u.Username),
			FirstName: format.StringPtr(u.FirstName),
			LastName:  format.StringPtr(u.LastName),
		}
	}
	if ch := c.Chat(); ch != nil {
		in.ChatID = ch.ID
	}
	if cb := c.Callback(); cb != nil {
		in.Callback, _ = callbacks.Parse(cb)
		return in
	}

	msg := c.Message()
	if msg == nil {
		return in
	}
	in.Text = msg.Text
	if reg != nil && strings.HasPrefix(msg.Text, "/") {
		if name, _, ok := reg.LookupCommand(msg.Text); ok {
			in.Command = name
		}
	}
	if msg.Contact != nil {
		in.Contact = &domain.Contact{
			UserID:    msg.Contact.UserID,
			Phone:     msg.Contact.PhoneNumber,
			FirstName: msg.Contact.FirstName,
			LastName:  msg.Contact.LastName,
		}
	}
	in.Media = msg.Text == "" && msg.Contact == nil
	in.Message = broadcast.FromTelegram(msg)
	return in
}
