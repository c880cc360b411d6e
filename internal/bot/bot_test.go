package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/cnbridge/leadbot/core/telegram/state"
	"github.com/cnbridge/leadbot/internal/assets"
	"github.com/cnbridge/leadbot/internal/broadcast"
	"github.com/cnbridge/leadbot/internal/content"
	"github.com/cnbridge/leadbot/internal/domain"
	"github.com/cnbridge/leadbot/internal/flow"
)

type memStore struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	leads     []domain.Lead
	runs      []domain.BroadcastStat
	appendErr error
	countErr  error
}

func newMemStore() *memStore { return &memStore{users: map[int64]domain.User{}} }

func (s *memStore) UpsertUser(_ context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		s.users[u.ID] = u
	}
	return nil
}

func (s *memStore) UpdateContact(_ context.Context, userID int64, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return errors.New("not found")
	}
	u.Phone = &phone
	u.ContactShared = true
	s.users[userID] = u
	return nil
}

func (s *memStore) GetUser(_ context.Context, userID int64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return domain.User{}, errors.New("not found")
	}
	return u, nil
}

func (s *memStore) AppendLead(_ context.Context, lead domain.Lead) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	s.leads = append(s.leads, lead)
	return int64(len(s.leads)), nil
}

func (s *memStore) ListUserIDs(context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memStore) CountUsers(context.Context) (int, error) {
	return len(s.users), s.countErr
}

func (s *memStore) CountLeads(context.Context) (int, error) {
	return len(s.leads), s.countErr
}

func (s *memStore) RecentBroadcastStats(context.Context, int) ([]domain.BroadcastStat, error) {
	return s.runs, nil
}

type fakeNotifier struct {
	leads    []domain.Lead
	contacts []domain.Contact
}

func (n *fakeNotifier) Notify(_ context.Context, lead domain.Lead) { n.leads = append(n.leads, lead) }
func (n *fakeNotifier) NotifyContact(_ context.Context, c domain.Contact, _ int64) {
	n.contacts = append(n.contacts, c)
}

type fakeBroadcaster struct {
	recipients []int64
	msg        broadcast.Message
}

func (f *fakeBroadcaster) Run(_ context.Context, recipients []int64, msg broadcast.Message) broadcast.Result {
	f.recipients, f.msg = recipients, msg
	return broadcast.Result{Total: len(recipients), Sent: len(recipients)}
}

type reply struct {
	kind   string
	body   string
	markup *tele.ReplyMarkup
}

type recorder struct {
	out      []reply
	photoErr error
}

func (r *recorder) Text(text string, markup *tele.ReplyMarkup) error {
	r.out = append(r.out, reply{"text", text, markup})
	return nil
}

func (r *recorder) Photo(path, caption string, markup *tele.ReplyMarkup) error {
	if r.photoErr != nil {
		return r.photoErr
	}
	r.out = append(r.out, reply{"photo:" + filepath.Base(path), caption, markup})
	return nil
}

func (r *recorder) Document(path, caption string, markup *tele.ReplyMarkup) error {
	r.out = append(r.out, reply{"document:" + filepath.Base(path), caption, markup})
	return nil
}

func (r *recorder) last() reply {
	if len(r.out) == 0 {
		return reply{}
	}
	return r.out[len(r.out)-1]
}

type harness struct {
	bot      *Bot
	store    *memStore
	notes    *fakeNotifier
	bc       *fakeBroadcaster
	sessions *state.Memory[flow.Session]
	assets   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    newMemStore(),
		notes:    &fakeNotifier{},
		bc:       &fakeBroadcaster{},
		sessions: state.NewMemory[flow.Session](),
		assets:   t.TempDir(),
	}
	h.bot = New(Deps{
		Store:       h.store,
		Sessions:    h.sessions,
		Notifier:    h.notes,
		Broadcaster: h.bc,
		Assets:      assets.Dir{Root: h.assets},
		AdminID:     adminID,
	})
	return h
}

func (h *harness) send(t *testing.T, in Input) *recorder {
	t.Helper()
	r := &recorder{}
	require.NoError(t, h.bot.Handle(context.Background(), in, r))
	return r
}

func (h *harness) state(t *testing.T, userID int64) flow.State {
	t.Helper()
	s, _, err := h.sessions.Get(context.Background(), userID)
	require.NoError(t, err)
	return s.State
}

func (h *harness) asset(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(h.assets, name), []byte("x"), 0o644))
}

func contactFrom(user int64, phone string) Input {
	return Input{User: domain.User{ID: user}, Contact: &domain.Contact{UserID: user, Phone: phone}}
}

func TestCalcFlowStoresLeadAndNotifies(t *testing.T) {
	h := newHarness(t)

	r := h.send(t, textFrom(1, content.BtnCalc))
	assert.Equal(t, content.AskCargoName, r.last().body)
	h.send(t, textFrom(1, "Мебель"))
	h.send(t, textFrom(1, "2 м3"))
	r = h.send(t, textFrom(1, "150 кг"))
	assert.Equal(t, content.AskCalcContact, r.last().body)
	assert.True(t, r.last().markup.ReplyKeyboard[0][0].Contact)

	r = h.send(t, contactFrom(1, "+79991234567"))
	assert.Equal(t, content.LeadSent, r.last().body)
	assert.Equal(t, flow.StateNone, h.state(t, 1))

	want := domain.Lead{
		UserID:      1,
		Service:     domain.ServiceCalculation,
		CargoName:   "Мебель",
		CargoVolume: "2 м3",
		CargoWeight: "150 кг",
		Phone:       "+79991234567",
	}
	require.Len(t, h.store.leads, 1)
	assert.Equal(t, want, h.store.leads[0])
	require.Len(t, h.notes.leads, 1)
	assert.Equal(t, int64(1), h.notes.leads[0].ID)

	u, err := h.store.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, u.ContactShared)
	assert.Equal(t, "+79991234567", u.PhoneNumber())
}

func TestCalcSkipsContactWhenShared(t *testing.T) {
	h := newHarness(t)
	h.send(t, contactFrom(1, "+7000"))

	h.send(t, textFrom(1, content.BtnCalc))
	h.send(t, textFrom(1, "Станок"))
	h.send(t, textFrom(1, "1"))
	r := h.send(t, textFrom(1, "500"))

	assert.Equal(t, content.LeadSent, r.last().body)
	require.Len(t, h.store.leads, 1)
	assert.Equal(t, "+7000", h.store.leads[0].Phone)
}

func TestServiceFlow(t *testing.T) {
	h := newHarness(t)
	buyout, _ := content.ServiceBySlug("buyout")

	r := h.send(t, Input{User: domain.User{ID: 1}, Callback: content.CbGetService + "buyout"})
	assert.Equal(t, content.AskServiceContact, r.last().body)
	r = h.send(t, contactFrom(1, "+7111"))
	assert.Equal(t, content.AskName, r.last().body)
	r = h.send(t, textFrom(1, "Иван"))
	assert.Equal(t, content.ServiceSent, r.last().body)

	require.Len(t, h.store.leads, 1)
	assert.Equal(t, domain.Lead{UserID: 1, Service: buyout.Label, CustomerName: "Иван", Phone: "+7111"}, h.store.leads[0])
}

func TestServiceWithoutSlugUsesUnknownLabel(t *testing.T) {
	h := newHarness(t)
	h.send(t, contactFrom(1, "+7111"))

	r := h.send(t, textFrom(1, content.BtnGetService))
	assert.Equal(t, content.AskName, r.last().body)
	h.send(t, textFrom(1, "Анна"))

	require.Len(t, h.store.leads, 1)
	assert.Equal(t, content.UnknownService, h.store.leads[0].Service)
}

func TestDeliveryFlow(t *testing.T) {
	h := newHarness(t)

	r := h.send(t, Input{User: domain.User{ID: 1}, Callback: content.CbDeliveryMethod})
	assert.Equal(t, content.AskDeliveryMethod, r.last().body)
	r = h.send(t, textFrom(1, content.DeliveryMethods[0]))
	assert.Equal(t, content.AskDeliveryContact, r.last().body)
	h.send(t, contactFrom(1, "+7222"))

	require.Len(t, h.store.leads, 1)
	assert.Equal(t, domain.ServiceDelivery, h.store.leads[0].Service)
	assert.Equal(t, content.DeliveryMethods[0], h.store.leads[0].DeliveryMethod)
}

func TestCancelFromEveryFlow(t *testing.T) {
	starts := []Input{
		textFrom(adminID, content.BtnCalc),
		textFrom(adminID, content.BtnGetService),
		{User: domain.User{ID: adminID}, Callback: content.CbDeliveryMethod},
		textFrom(adminID, content.BtnBroadcast),
		textFrom(adminID, content.Materials[0].Button),
	}
	for _, start := range starts {
		h := newHarness(t)
		h.send(t, start)
		require.NotEqual(t, flow.StateNone, h.state(t, adminID))

		r := h.send(t, textFrom(adminID, content.BtnBack))
		assert.Equal(t, content.MainMenu, r.last().body)
		assert.Equal(t, flow.StateNone, h.state(t, adminID))
		assert.Empty(t, h.store.leads)
	}
}

func TestStartResetsFlow(t *testing.T) {
	h := newHarness(t)
	h.send(t, textFrom(1, content.BtnCalc))

	r := h.send(t, Input{User: domain.User{ID: 1}, Command: content.CmdStart})
	assert.Equal(t, flow.StateNone, h.state(t, 1))
	assert.Equal(t, content.Welcome, r.last().body)
}

func TestRepromptOnWrongAnswer(t *testing.T) {
	h := newHarness(t)
	h.send(t, textFrom(1, content.BtnCalc))

	r := h.send(t, Input{User: domain.User{ID: 1}, Media: true})
	assert.Equal(t, content.AskCargoName, r.last().body)
	assert.Equal(t, flow.CalcCargoName, h.state(t, 1))

	r = h.send(t, contactFrom(1, "+7"))
	assert.Equal(t, content.AskCargoName, r.last().body)
	assert.Equal(t, flow.CalcCargoName, h.state(t, 1))
}

func TestMenuLabelsDuringFlowAreAnswers(t *testing.T) {
	h := newHarness(t)
	h.send(t, textFrom(1, content.BtnCalc))
	h.send(t, textFrom(1, content.BtnFAQ))

	assert.Equal(t, flow.CalcCargoVolume, h.state(t, 1))
}

func TestStoreFailureStillConfirms(t *testing.T) {
	h := newHarness(t)
	h.store.appendErr = errors.New("disk full")
	h.send(t, contactFrom(1, "+7"))

	h.send(t, textFrom(1, content.BtnGetService))
	r := h.send(t, textFrom(1, "Олег"))

	assert.Equal(t, content.ServiceSent, r.last().body)
	require.Len(t, h.notes.leads, 1)
	assert.Zero(t, h.notes.leads[0].ID)
	assert.Equal(t, flow.StateNone, h.state(t, 1))
}

func TestAdminGate(t *testing.T) {
	h := newHarness(t)

	for _, in := range []Input{
		{User: domain.User{ID: 7}, Command: content.CmdAdmin},
		textFrom(7, content.BtnBroadcast),
		textFrom(7, content.BtnStats),
	} {
		r := h.send(t, in)
		assert.Equal(t, content.AdminDenied, r.last().body)
		assert.Equal(t, flow.StateNone, h.state(t, 7))
	}
	assert.Nil(t, h.bc.recipients)

	r := h.send(t, Input{User: domain.User{ID: adminID}, Command: content.CmdAdmin})
	assert.Equal(t, content.AdminPanel, r.last().body)
}

func TestBroadcastFlow(t *testing.T) {
	h := newHarness(t)
	h.send(t, textFrom(1, "hi"))
	h.send(t, textFrom(2, "hi"))

	r := h.send(t, textFrom(adminID, content.BtnBroadcast))
	assert.Equal(t, content.AskBroadcast, r.last().body)

	msg := broadcast.Message{Kind: broadcast.KindText, Text: "Новости"}
	r = h.send(t, Input{User: domain.User{ID: adminID}, Text: "Новости", Message: msg})
	assert.Equal(t, content.BroadcastDone(3, 3), r.last().body)
	assert.ElementsMatch(t, []int64{1, 2, adminID}, h.bc.recipients)
	assert.Equal(t, msg, h.bc.msg)
	assert.Equal(t, flow.StateNone, h.state(t, adminID))
}

func TestStats(t *testing.T) {
	h := newHarness(t)
	h.send(t, textFrom(1, "hi"))

	r := h.send(t, textFrom(adminID, content.BtnStats))
	assert.Equal(t, content.Stats(2, 0, nil), r.last().body)

	h.store.countErr = errors.New("db down")
	r = h.send(t, textFrom(adminID, content.BtnStats))
	assert.Equal(t, content.StatsUnavailable, r.last().body)
}

func TestCardsFallBackToText(t *testing.T) {
	h := newHarness(t)

	r := h.send(t, Input{User: domain.User{ID: 1}, Command: content.CmdStart})
	assert.Equal(t, "text", r.last().kind)
	assert.Equal(t, content.Welcome, r.last().body)

	h.asset(t, content.ImageWelcome)
	r = h.send(t, Input{User: domain.User{ID: 1}, Command: content.CmdStart})
	assert.Equal(t, "photo:"+content.ImageWelcome, r.last().kind)

	r = &recorder{photoErr: errors.New("upload failed")}
	require.NoError(t, h.bot.Handle(context.Background(), Input{User: domain.User{ID: 1}, Command: content.CmdStart}, r))
	assert.Equal(t, "text", r.last().kind)
}

func TestServiceCardWithCourseAddsBackHint(t *testing.T) {
	h := newHarness(t)
	money, _ := content.ServiceBySlug("money")

	r := h.send(t, textFrom(1, money.Button))
	require.Len(t, r.out, 2)
	assert.Equal(t, money.Caption, r.out[0].body)
	assert.Equal(t, content.BackHint, r.out[1].body)

	delivery, _ := content.ServiceBySlug("delivery")
	r = h.send(t, textFrom(1, delivery.Button))
	assert.Len(t, r.out, 1)
}

func TestMaterialRequiresContact(t *testing.T) {
	h := newHarness(t)
	m := content.Materials[0]
	h.asset(t, m.File)

	r := h.send(t, textFrom(1, m.Button))
	assert.Equal(t, content.AskMaterialContact, r.last().body)

	r = h.send(t, contactFrom(1, "+7333"))
	assert.Equal(t, "document:"+m.File, r.last().kind)
	require.Len(t, h.notes.contacts, 1)
	assert.Equal(t, flow.StateNone, h.state(t, 1))

	r = h.send(t, textFrom(1, m.Button))
	assert.Equal(t, "document:"+m.File, r.last().kind)
	assert.Len(t, h.notes.contacts, 1)
}

func TestMaterialMissingFile(t *testing.T) {
	h := newHarness(t)
	h.send(t, contactFrom(1, "+7"))

	r := h.send(t, textFrom(1, content.Materials[1].Button))
	assert.Equal(t, content.FileUnavailable, r.last().body)
}

func TestStandaloneContact(t *testing.T) {
	h := newHarness(t)

	r := h.send(t, contactFrom(1, "+7444"))
	assert.Equal(t, content.ContactSaved, r.last().body)
	require.Len(t, h.notes.contacts, 1)
	assert.Equal(t, "+7444", h.notes.contacts[0].Phone)

	u, err := h.store.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, u.ContactShared)
}

func TestUnknownInputIsIgnored(t *testing.T) {
	h := newHarness(t)
	r := h.send(t, textFrom(1, "что-то"))
	assert.Empty(t, r.out)

	r = h.send(t, Input{Text: "no sender"})
	assert.Empty(t, r.out)
}
