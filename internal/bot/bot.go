package bot

import (
	"context"
	"log/slog"

	"github.com/cnbridge/leadbot/core/logger"
	"github.com/cnbridge/leadbot/core/telegram/middleware"
	"github.com/cnbridge/leadbot/core/telegram/state"
	"github.com/cnbridge/leadbot/core/telegram/ui"
	"github.com/cnbridge/leadbot/internal/assets"
	"github.com/cnbridge/leadbot/internal/broadcast"
	"github.com/cnbridge/leadbot/internal/content"
	"github.com/cnbridge/leadbot/internal/domain"
	"github.com/cnbridge/leadbot/internal/flow"

	tele "gopkg.in/telebot.v4"
)

// Store is the persistence the handlers need. *storage.Store satisfies it.
type Store interface {
	UpsertUser(ctx context.Context, u domain.User) error
	UpdateContact(ctx context.Context, userID int64, phone string) error
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	AppendLead(ctx context.Context, lead domain.Lead) (int64, error)
	ListUserIDs(ctx context.Context) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
	CountLeads(ctx context.Context) (int, error)
	RecentBroadcastStats(ctx context.Context, limit int) ([]domain.BroadcastStat, error)
}

// Notifier forwards leads and contacts to the operator.
type Notifier interface {
	Notify(ctx context.Context, lead domain.Lead)
	NotifyContact(ctx context.Context, c domain.Contact, from int64)
}

// Broadcaster fans a message out to recipients.
type Broadcaster interface {
	Run(ctx context.Context, recipients []int64, msg broadcast.Message) broadcast.Result
}

// Responder answers in the chat of the current update.
type Responder interface {
	ui.Presenter
	Document(path, caption string, markup *tele.ReplyMarkup) error
}

// Deps wires a Bot.
type Deps struct {
	Store       Store
	Sessions    state.Store[flow.Session]
	Notifier    Notifier
	Broadcaster Broadcaster
	Assets      assets.Dir
	Links       content.Links
	AdminID     int64
}

// Bot handles updates one user at a time.
type Bot struct {
	store       Store
	sessions    state.Store[flow.Session]
	notifier    Notifier
	broadcaster Broadcaster
	assets      assets.Dir
	links       content.Links
	dispatcher  Dispatcher
	locks       *state.KeyedMutex
}

// statsRuns is how many recent broadcasts the statistics screen lists.
const statsRuns = 3

// New builds a Bot. A nil Sessions uses an in-memory store.
func New(d Deps) *Bot {
	if d.Sessions == nil {
		d.Sessions = state.NewMemory[flow.Session]()
	}
	return &Bot{
		store:       d.Store,
		sessions:    d.Sessions,
		notifier:    d.Notifier,
		broadcaster: d.Broadcaster,
		assets:      d.Assets,
		links:       d.Links.WithDefaults(),
		dispatcher:  Dispatcher{Gate: middleware.AdminGate{AdminID: d.AdminID}},
		locks:       state.NewKeyedMutex(),
	}
}

// Handle processes one input. Updates of the same user are serialized.
func (b *Bot) Handle(ctx context.Context, in Input, r Responder) error {
	uid := in.User.ID
	if uid == 0 {
		return nil
	}
	unlock := b.locks.Lock(uid)
	defer unlock()

	if err := b.store.UpsertUser(ctx, in.User); err != nil {
		logger.Error(ctx, "bot", "user.upsert_failed", slog.String("err", err.Error()))
	}
	sess, _, err := b.sessions.Get(ctx, uid)
	if err != nil {
		logger.Warn(ctx, "bot", "session.load_failed", slog.String("err", err.Error()))
		sess = flow.Session{}
	}

	route := b.dispatcher.Dispatch(sess.State, in)
	logger.Debug(ctx, "bot", "route",
		slog.String("op", string(route.Action)),
		slog.String("state", string(sess.State)),
	)
	return b.run(ctx, route, sess, in, r)
}

func (b *Bot) run(ctx context.Context, route Route, sess flow.Session, in Input, r Responder) error {
	uid := in.User.ID
	switch route.Action {
	case ActCancel:
		b.clear(ctx, uid)
		return r.Text(content.MainMenu, content.MainMenuKeyboard())
	case ActStart:
		b.clear(ctx, uid)
		return b.card(ctx, r, content.ImageWelcome, content.Welcome, content.MainMenuKeyboard())
	case ActStep:
		return b.step(ctx, sess, in, r)
	case ActContact:
		return b.sharedContact(ctx, in, r)

	case ActCalc:
		return b.apply(ctx, in, r, flow.BeginCalc())
	case ActServiceRequest:
		label := content.UnknownService
		if s, ok := content.ServiceBySlug(route.Arg); ok {
			label = s.Label
		}
		return b.apply(ctx, in, r, flow.BeginService(label, b.profile(ctx, uid)))
	case ActDelivery:
		return b.apply(ctx, in, r, flow.BeginDelivery())
	case ActMaterial:
		return b.apply(ctx, in, r, flow.BeginMaterial(route.Arg, b.profile(ctx, uid)))

	case ActServices:
		return r.Text(content.ServicesIntro, content.ServicesKeyboard())
	case ActServiceCard:
		return b.serviceCard(ctx, route.Arg, r)
	case ActAbout:
		if err := b.card(ctx, r, content.ImageAbout, content.About, content.AboutKeyboard(b.links)); err != nil {
			return err
		}
		return r.Text(content.BackHint, content.BackKeyboard())
	case ActReviews:
		return r.Text(content.Reviews(b.links.Reviews), nil)
	case ActMaterials:
		return r.Text(content.MaterialsIntro, content.MaterialsKeyboard())
	case ActFAQ:
		return b.card(ctx, r, content.ImageFAQ, content.FAQ, content.BackKeyboard())
	case ActCourse:
		return r.Text(content.Course(b.links.Course), nil)
	case ActCompanyCard:
		return b.card(ctx, r, content.ImageCompany, content.CompanyCard, nil)
	case ActSocials:
		return b.card(ctx, r, content.ImageSocials, content.Socials, content.SocialsKeyboard(b.links))

	case ActAdminPanel:
		return r.Text(content.AdminPanel, content.AdminKeyboard())
	case ActBroadcast:
		return b.apply(ctx, in, r, flow.BeginBroadcast())
	case ActStats:
		return b.stats(ctx, r)
	case ActDenied:
		logger.Warn(ctx, "bot", "admin.denied")
		return r.Text(content.AdminDenied, nil)
	}
	return nil
}

func (b *Bot) card(ctx context.Context, r Responder, image, caption string, markup *tele.ReplyMarkup) error {
	return ui.ShowCard(ctx, r, ui.Card{
		Name:    image,
		Image:   b.assets.PathOrEmpty(image),
		Caption: caption,
		Markup:  markup,
	})
}

func (b *Bot) clear(ctx context.Context, userID int64) {
	if err := b.sessions.Clear(ctx, userID); err != nil {
		logger.Warn(ctx, "bot", "session.clear_failed", slog.String("err", err.Error()))
	}
}

// profile reads the stored contact state. Errors count as no contact shared.
func (b *Bot) profile(ctx context.Context, userID int64) flow.Profile {
	p := flow.Profile{UserID: userID}
	u, err := b.store.GetUser(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "bot", "profile.load_failed", slog.String("err", err.Error()))
		return p
	}
	p.ContactShared = u.ContactShared
	p.Phone = u.PhoneNumber()
	return p
}
