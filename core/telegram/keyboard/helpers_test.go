package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyButtons(t *testing.T) {
	m := ReplyButtons([]string{"a", "b"}, []string{"c"})
	require.Len(t, m.ReplyKeyboard, 2)
	assert.Equal(t, "b", m.ReplyKeyboard[0][1].Text)
	assert.True(t, m.ResizeKeyboard)
}

func TestContactRequest(t *testing.T) {
	m := ContactRequest("📱 Share", "⬅️ Back")
	require.Len(t, m.ReplyKeyboard, 2)
	assert.True(t, m.ReplyKeyboard[0][0].Contact)
	assert.Equal(t, "⬅️ Back", m.ReplyKeyboard[1][0].Text)
}

func TestInlineButtonsRows(t *testing.T) {
	m := InlineButtonsRows(
		[]InlineBtn{{Text: "site", URL: "https://cnbridge.ru"}},
		[]InlineBtn{{Text: "card", Data: "company_card"}, {Text: "x", Unique: "u", Data: "p"}},
	)
	require.Len(t, m.InlineKeyboard, 2)
	assert.Equal(t, "https://cnbridge.ru", m.InlineKeyboard[0][0].URL)
	assert.Equal(t, "company_card", m.InlineKeyboard[1][0].Data)
	assert.Equal(t, "u", m.InlineKeyboard[1][1].Unique)
}
