package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestParse(t *testing.T) {
	cases := []struct {
		cb          *tele.Callback
		key, payload string
	}{
		{nil, "", ""},
		{&tele.Callback{Data: "company_card"}, "company_card", ""},
		{&tele.Callback{Data: "\fservice|delivery"}, "service", "delivery"},
		{&tele.Callback{Unique: "service", Data: "money"}, "service", "money"},
	}
	for _, tc := range cases {
		key, payload := Parse(tc.cb)
		assert.Equal(t, tc.key, key)
		assert.Equal(t, tc.payload, payload)
	}
}

func TestTrimKey(t *testing.T) {
	rest, ok := TrimKey("get_service_delivery", "get_service_")
	assert.True(t, ok)
	assert.Equal(t, "delivery", rest)

	_, ok = TrimKey("get_service_", "get_service_")
	assert.False(t, ok)
	_, ok = TrimKey("company_card", "get_service_")
	assert.False(t, ok)
}
