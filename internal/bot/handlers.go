package bot

import (
	"context"
	"log/slog"

	"github.com/cnbridge/leadbot/core/logger"
	"github.com/cnbridge/leadbot/core/metrics"
	"github.com/cnbridge/leadbot/internal/content"
	"github.com/cnbridge/leadbot/internal/domain"
	"github.com/cnbridge/leadbot/internal/flow"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) step(ctx context.Context, sess flow.Session, in Input, r Responder) error {
	t := flow.Step(sess, in.Answer(), b.profile(ctx, in.User.ID))
	logger.Info(ctx, "flow", "flow.step",
		slog.String("state", string(sess.State)),
		slog.String("flow", string(sess.Flow())),
		slog.String("outcome", t.Outcome.String()),
	)
	return b.apply(ctx, in, r, t)
}

// apply carries out a transition: contact first, then the outcome.
func (b *Bot) apply(ctx context.Context, in Input, r Responder, t flow.Transition) error {
	uid := in.User.ID
	if t.Contact != nil {
		b.saveContact(ctx, uid, t.Contact.Phone)
	}

	switch t.Outcome {
	case flow.OutcomePrompt:
		if err := b.sessions.Set(ctx, uid, t.Session); err != nil {
			logger.Error(ctx, "bot", "session.store_failed", slog.String("err", err.Error()))
		}
		return b.prompt(r, t.Prompt)
	case flow.OutcomeReprompt:
		return b.prompt(r, t.Prompt)
	case flow.OutcomeComplete:
		err := b.complete(ctx, r, *t.Lead)
		b.clear(ctx, uid)
		return err
	case flow.OutcomeDeliverMaterial:
		b.clear(ctx, uid)
		if t.Contact != nil {
			b.notifier.NotifyContact(ctx, *t.Contact, uid)
		}
		return b.sendMaterial(ctx, r, t.Material)
	case flow.OutcomeBroadcast:
		b.clear(ctx, uid)
		return b.runBroadcast(ctx, in, r)
	}
	b.clear(ctx, uid)
	return r.Text(content.MainMenu, content.MainMenuKeyboard())
}

// complete stores the lead, tells the operator and confirms to the user.
// A failed insert is logged; the user still gets the confirmation.
func (b *Bot) complete(ctx context.Context, r Responder, lead domain.Lead) error {
	id, err := b.store.AppendLead(ctx, lead)
	if err != nil {
		logger.Error(ctx, "bot", "lead.store_failed",
			slog.String("service", lead.Service),
			slog.String("err", err.Error()),
		)
	} else {
		lead.ID = id
		logger.Info(ctx, "bot", "lead.stored",
			slog.String("status", "ok"),
			slog.Int64("lead_id", id),
			slog.String("service", lead.Service),
		)
	}
	metrics.IncLead(lead.Service)
	b.notifier.Notify(ctx, lead)

	confirm := content.LeadSent
	if lead.CustomerName != "" {
		confirm = content.ServiceSent
	}
	return r.Text(confirm, content.MainMenuKeyboard())
}

func (b *Bot) saveContact(ctx context.Context, userID int64, phone string) {
	if err := b.store.UpdateContact(ctx, userID, phone); err != nil {
		logger.Error(ctx, "bot", "contact.store_failed", slog.String("err", err.Error()))
		return
	}
	logger.Info(ctx, "bot", "contact.saved", slog.String("phone", phone))
}

// sharedContact handles a contact sent outside of any flow.
func (b *Bot) sharedContact(ctx context.Context, in Input, r Responder) error {
	c := *in.Contact
	if c.UserID == 0 {
		c.UserID = in.User.ID
	}
	b.saveContact(ctx, in.User.ID, c.Phone)
	b.notifier.NotifyContact(ctx, c, in.User.ID)
	return r.Text(content.ContactSaved, content.MainMenuKeyboard())
}

func (b *Bot) sendMaterial(ctx context.Context, r Responder, key string) error {
	m, ok := content.MaterialByKey(key)
	if !ok {
		return r.Text(content.FileUnavailable, content.MainMenuKeyboard())
	}
	if err := r.Text(content.SendingMaterial(m.Button), content.MaterialsKeyboard()); err != nil {
		return err
	}
	file := b.assets.Lookup(m.File)
	if file.Missing() {
		logger.Warn(ctx, "bot", "material.missing", slog.String("asset", m.File))
		return r.Text(content.FileUnavailable, nil)
	}
	if err := r.Document(file.Path, m.Button, nil); err != nil {
		logger.Warn(ctx, "bot", "material.send_failed",
			slog.String("asset", m.File),
			slog.String("err", err.Error()),
		)
		return r.Text(content.FileUnavailable, nil)
	}
	return nil
}

func (b *Bot) serviceCard(ctx context.Context, slug string, r Responder) error {
	s, ok := content.ServiceBySlug(slug)
	if !ok {
		return nil
	}
	if err := b.card(ctx, r, s.Image, s.Caption, content.ServiceKeyboard(s, b.links)); err != nil {
		return err
	}
	if s.Course {
		return r.Text(content.BackHint, content.BackKeyboard())
	}
	return nil
}

func (b *Bot) runBroadcast(ctx context.Context, in Input, r Responder) error {
	ids, err := b.store.ListUserIDs(ctx)
	if err != nil {
		logger.Error(ctx, "broadcast", "broadcast.recipients_failed", slog.String("err", err.Error()))
		return r.Text(content.BroadcastFailed, content.AdminKeyboard())
	}
	res := b.broadcaster.Run(ctx, ids, in.Message)
	return r.Text(content.BroadcastDone(res.Sent, res.Total), content.AdminKeyboard())
}

func (b *Bot) stats(ctx context.Context, r Responder) error {
	users, err := b.store.CountUsers(ctx)
	var leads int
	if err == nil {
		leads, err = b.store.CountLeads(ctx)
	}
	if err != nil {
		logger.Error(ctx, "bot", "stats.failed", slog.String("err", err.Error()))
		return r.Text(content.StatsUnavailable, content.AdminKeyboard())
	}
	runs, err := b.store.RecentBroadcastStats(ctx, statsRuns)
	if err != nil {
		logger.Warn(ctx, "bot", "stats.runs_failed", slog.String("err", err.Error()))
	}
	return r.Text(content.Stats(users, leads, runs), content.AdminKeyboard())
}

func (b *Bot) prompt(r Responder, p flow.Prompt) error {
	text, markup := promptMessage(p)
	if text == "" {
		return r.Text(content.MainMenu, content.MainMenuKeyboard())
	}
	return r.Text(text, markup)
}

func promptMessage(p flow.Prompt) (string, *tele.ReplyMarkup) {
	switch p {
	case flow.PromptCargoName:
		return content.AskCargoName, content.BackKeyboard()
	case flow.PromptCargoVolume:
		return content.AskCargoVolume, content.BackKeyboard()
	case flow.PromptCargoWeight:
		return content.AskCargoWeight, content.BackKeyboard()
	case flow.PromptCalcContact:
		return content.AskCalcContact, content.ContactKeyboard()
	case flow.PromptServiceContact:
		return content.AskServiceContact, content.ContactKeyboard()
	case flow.PromptServiceName:
		return content.AskName, content.BackKeyboard()
	case flow.PromptDeliveryMethod:
		return content.AskDeliveryMethod, content.DeliveryMethodsKeyboard()
	case flow.PromptDeliveryContact:
		return content.AskDeliveryContact, content.ContactKeyboard()
	case flow.PromptMaterialContact:
		return content.AskMaterialContact, content.ContactKeyboard()
	case flow.PromptBroadcastContent:
		return content.AskBroadcast, content.BackKeyboard()
	}
	return "", nil
}
