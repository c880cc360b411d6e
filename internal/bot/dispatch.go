// Package bot turns chat updates into conversation steps: a pure dispatcher
// picks the action, handlers apply it against the session and user stores.
package bot

import (
	"strings"

	"github.com/cnbridge/leadbot/core/telegram/callbacks"
	"github.com/cnbridge/leadbot/core/telegram/middleware"
	"github.com/cnbridge/leadbot/internal/broadcast"
	"github.com/cnbridge/leadbot/internal/content"
	"github.com/cnbridge/leadbot/internal/domain"
	"github.com/cnbridge/leadbot/internal/flow"
)

// Input is one inbound update reduced to what routing needs.
type Input struct {
	// User is the sender as Telegram reports it.
	User   domain.User
	ChatID int64

	// Command is the canonical registered command, e.g. "/start".
	Command  string
	Text     string
	Callback string
	Contact  *domain.Contact
	// Media marks a message carrying neither text nor a contact.
	Media bool
	// Message is the update as a broadcast template.
	Message broadcast.Message
}

// Answer converts the input for the state machine.
func (in Input) Answer() flow.Answer {
	return flow.Answer{Text: in.Text, Contact: in.Contact, Media: in.Media}
}

// Action names what a handler does with an input.
type Action string

const (
	ActIgnore Action = "ignore"
	ActCancel Action = "cancel"
	ActStart  Action = "start"
	ActStep   Action = "flow.step"

	ActCalc           Action = "menu.calc"
	ActServices       Action = "menu.services"
	ActServiceCard    Action = "menu.service"
	ActAbout          Action = "menu.about"
	ActReviews        Action = "menu.reviews"
	ActMaterials      Action = "menu.materials"
	ActMaterial       Action = "menu.material"
	ActFAQ            Action = "menu.faq"
	ActCourse         Action = "menu.course"
	ActCompanyCard    Action = "about.company"
	ActSocials        Action = "about.socials"
	ActServiceRequest Action = "service.request"
	ActDelivery       Action = "delivery.request"
	ActContact        Action = "contact.shared"

	ActAdminPanel Action = "admin.panel"
	ActBroadcast  Action = "admin.broadcast"
	ActStats      Action = "admin.stats"
	ActDenied     Action = "admin.denied"
)

// Route is the dispatcher's decision. Arg carries a service slug or material key.
type Route struct {
	Action    Action
	Arg       string
	AdminOnly bool
}

// Dispatcher maps (state, input) to a Route. It has no side effects.
type Dispatcher struct {
	Gate middleware.AdminGate
}

// Dispatch resolves the route for in while the user is in state.
// Precedence: back to menu, commands, the active flow, callbacks and menu
// labels, admin labels. Admin routes pass the gate or become ActDenied.
func (d Dispatcher) Dispatch(state flow.State, in Input) Route {
	r := d.route(state, in)
	if r.AdminOnly && !d.Gate.Allow(in.User.ID) {
		return Route{Action: ActDenied}
	}
	return r
}

func (d Dispatcher) route(state flow.State, in Input) Route {
	text := strings.TrimSpace(in.Text)
	switch {
	case in.Callback == "" && text == content.BtnBack:
		return Route{Action: ActCancel}
	case in.Command != "":
		return commandRoute(in.Command)
	case in.Callback != "":
		return callbackRoute(in.Callback)
	case state != flow.StateNone:
		return Route{Action: ActStep, AdminOnly: state == flow.BroadcastContent}
	case in.Contact != nil:
		return Route{Action: ActContact}
	}
	return menuRoute(text)
}

func commandRoute(cmd string) Route {
	switch cmd {
	case content.CmdStart:
		return Route{Action: ActStart}
	case content.CmdAdmin:
		return Route{Action: ActAdminPanel, AdminOnly: true}
	}
	return Route{Action: ActIgnore}
}

func callbackRoute(key string) Route {
	switch key {
	case content.CbCompanyCard:
		return Route{Action: ActCompanyCard}
	case content.CbSocials:
		return Route{Action: ActSocials}
	case content.CbDeliveryMethod:
		return Route{Action: ActDelivery}
	}
	if slug, ok := callbacks.TrimKey(key, content.CbGetService); ok {
		return Route{Action: ActServiceRequest, Arg: slug}
	}
	return Route{Action: ActIgnore}
}

var menuLabels = map[string]Route{
	content.BtnCalc:       {Action: ActCalc},
	content.BtnServices:   {Action: ActServices},
	content.BtnAbout:      {Action: ActAbout},
	content.BtnReviews:    {Action: ActReviews},
	content.BtnMaterials:  {Action: ActMaterials},
	content.BtnFAQ:        {Action: ActFAQ},
	content.BtnCourse:     {Action: ActCourse},
	content.BtnGetService: {Action: ActServiceRequest},
	content.BtnBroadcast:  {Action: ActBroadcast, AdminOnly: true},
	content.BtnStats:      {Action: ActStats, AdminOnly: true},
}

func menuRoute(text string) Route {
	if r, ok := menuLabels[text]; ok {
		return r
	}
	if s, ok := content.ServiceByButton(text); ok {
		return Route{Action: ActServiceCard, Arg: s.Slug}
	}
	if m, ok := content.MaterialByButton(text); ok {
		return Route{Action: ActMaterial, Arg: m.Key}
	}
	return Route{Action: ActIgnore}
}
