// Package notify forwards leads and shared contacts to the operator chat.
// Delivery runs on the async sender; failures are logged and never returned.
package notify

import (
	"context"
	"log/slog"

	"github.com/cnbridge/leadbot/core/logger"
	"github.com/cnbridge/leadbot/core/metrics"
	"github.com/cnbridge/leadbot/core/telegram/sender"
	"github.com/cnbridge/leadbot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

// Sender delivers one message. *tele.Bot satisfies it.
type Sender interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

// Queue runs jobs asynchronously. *sender.Dispatcher satisfies it.
type Queue interface {
	Enqueue(ctx context.Context, job sender.Job) error
}

// Profiles reads stored user profiles.
type Profiles interface {
	GetUser(ctx context.Context, userID int64) (domain.User, error)
}

// Notifier sends operator notifications.
type Notifier struct {
	sender   Sender
	queue    Queue
	profiles Profiles
	operator int64
}

// New builds a Notifier delivering to the operator chat. A nil queue sends inline.
func New(s Sender, q Queue, profiles Profiles, operatorID int64) *Notifier {
	return &Notifier{sender: s, queue: q, profiles: profiles, operator: operatorID}
}

// Notify forwards a completed lead together with the owner's profile.
func (n *Notifier) Notify(ctx context.Context, lead domain.Lead) {
	n.deliver(ctx, "notify.lead", RenderLead(n.profile(ctx, lead.UserID), lead),
		slog.Int64("lead_id", lead.ID),
		slog.String("service", lead.Service),
	)
}

// NotifyContact forwards a contact shared outside of a lead.
func (n *Notifier) NotifyContact(ctx context.Context, c domain.Contact, from int64) {
	n.deliver(ctx, "notify.contact", RenderContact(n.profile(ctx, from), c))
}

func (n *Notifier) profile(ctx context.Context, userID int64) domain.User {
	u, err := n.profiles.GetUser(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "notify", "profile.lookup_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return domain.User{ID: userID}
	}
	return u
}

func (n *Notifier) deliver(ctx context.Context, action, text string, attrs ...slog.Attr) {
	if n.operator == 0 {
		logger.Warn(ctx, "notify", action+".skipped", append(attrs, slog.String("cause", "operator not configured"))...)
		return
	}
	job := sender.Job{
		Action:   action,
		Endpoint: "sendMessage",
		Run: func() error {
			_, err := n.sender.Send(tele.ChatID(n.operator), text, &tele.SendOptions{
				ParseMode:             tele.ModeHTML,
				DisableWebPagePreview: true,
			})
			return err
		},
		Done: func(err error) {
			metrics.IncNotify(err == nil)
			if err == nil {
				logger.Info(ctx, "notify", action, append(attrs, slog.String("status", "ok"))...)
			}
		},
	}
	if n.queue == nil {
		err := job.Run()
		if err != nil {
			logger.Error(ctx, "notify", action, append(attrs,
				slog.String("status", "fail"),
				slog.String("err", sender.SanitizeError(err)),
			)...)
		}
		job.Done(err)
		return
	}
	if err := n.queue.Enqueue(ctx, job); err != nil {
		metrics.IncNotify(false)
		logger.Error(ctx, "notify", action, append(attrs,
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)...)
	}
}
