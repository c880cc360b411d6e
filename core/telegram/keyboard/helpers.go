// Package keyboard builds reply and inline keyboards.
package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes one inline button. URL buttons ignore Unique and Data.
// Without Unique, Data is sent as the raw callback payload.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
	URL    string
}

// RemoveKeyboard hides the reply keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a resized reply keyboard from rows of labels.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.Btn, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// ContactRequest builds a one-time keyboard asking for the user's phone number,
// with extra label rows below it.
func ContactRequest(label string, extra ...string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	rows := []tele.Row{markup.Row(markup.Contact(label))}
	for _, l := range extra {
		rows = append(rows, markup.Row(markup.Text(l)))
	}
	markup.Reply(rows...)
	return markup
}

// InlineButtons places each button on its own row.
func InlineButtons(buttons []InlineBtn) *tele.ReplyMarkup {
	rows := make([][]InlineBtn, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []InlineBtn{b})
	}
	return InlineButtonsRows(rows...)
}

// InlineButtonsRows builds an inline keyboard from rows of buttons.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			r = append(r, b.inline(markup))
		}
		inline = append(inline, r)
	}
	markup.InlineKeyboard = inline
	return markup
}

func (b InlineBtn) inline(markup *tele.ReplyMarkup) tele.InlineButton {
	switch {
	case b.URL != "":
		return *markup.URL(b.Text, b.URL).Inline()
	case b.Unique != "":
		return *markup.Data(b.Text, b.Unique, b.Data).Inline()
	default:
		return tele.InlineButton{Text: b.Text, Data: b.Data}
	}
}
