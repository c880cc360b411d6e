package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/cnbridge/leadbot/core/telegram"
	"github.com/cnbridge/leadbot/core/telegram/commands"
)

type fakeContext struct {
	tele.Context
	upd       tele.Update
	store     map[string]any
	responded bool
}

func (f *fakeContext) Update() tele.Update { return f.upd }
func (f *fakeContext) Callback() *tele.Callback {
	return f.upd.Callback
}
func (f *fakeContext) Sender() *tele.User {
	if f.upd.Callback != nil {
		return f.upd.Callback.Sender
	}
	if f.upd.Message != nil {
		return f.upd.Message.Sender
	}
	return nil
}
func (f *fakeContext) Chat() *tele.Chat    { return nil }
func (f *fakeContext) Get(k string) any    { return f.store[k] }
func (f *fakeContext) Set(k string, v any) { f.store[k] = v }
func (f *fakeContext) Respond(...*tele.CallbackResponse) error {
	f.responded = true
	return nil
}

func TestRoutesCoverCommandsAndEndpoints(t *testing.T) {
	reg := tg.NewRegistry()
	require.NoError(t, reg.RegisterCommand("/start", commands.Command{Description: "menu"}))
	require.NoError(t, reg.RegisterCommand("/admin", commands.Command{Description: "admin", AdminOnly: true}))

	routes := Routes(reg, func(tele.Context) error { return nil })
	require.Len(t, routes, len(Endpoints)+2)

	seen := map[any]bool{}
	for _, r := range routes {
		seen[r.Endpoint] = true
		assert.NotNil(t, r.Handler)
	}
	for _, ep := range append([]string{"/start", "/admin"}, Endpoints...) {
		assert.True(t, seen[ep], ep)
	}
}

func TestWrapRespondsToCallbacksAndPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	var got tele.Context
	h := wrap("", func(c tele.Context) error {
		got = c
		return boom
	})
	fc := &fakeContext{
		upd:   tele.Update{ID: 3, Callback: &tele.Callback{Data: "company_card", Sender: &tele.User{ID: 9}}},
		store: map[string]any{},
	}
	err := h(fc)
	assert.ErrorIs(t, err, boom)
	assert.True(t, fc.responded)
	assert.Same(t, fc, got)
}

func TestWrapRecoversPanics(t *testing.T) {
	h := wrap("cmd.start", func(tele.Context) error { panic("nil map") })
	fc := &fakeContext{upd: tele.Update{ID: 1, Message: &tele.Message{Text: "/start", Sender: &tele.User{ID: 1}}}, store: map[string]any{}}
	assert.Error(t, h(fc))
}

func TestNormalizeHandlerName(t *testing.T) {
	assert.Equal(t, "start", normalizeHandlerName("/start"))
	assert.Equal(t, "get_service_delivery", normalizeHandlerName("get_service_delivery"))
	assert.Equal(t, "unknown", normalizeHandlerName(" "))
}

func TestDeriveErrorCode(t *testing.T) {
	assert.Equal(t, "TG_FORBIDDEN", deriveErrorCode(tele.ErrBlockedByUser))
	assert.Equal(t, "ERRORSTRING", deriveErrorCode(errors.New("x")))
}
