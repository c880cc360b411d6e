package flow

import (
	"strings"

	"github.com/cnbridge/leadbot/internal/domain"
)

// Outcome tells the caller what to do with a Transition.
type Outcome int

const (
	// OutcomeIdle means there was no active flow to advance.
	OutcomeIdle Outcome = iota
	// OutcomePrompt asks the next question; store Session.
	OutcomePrompt
	// OutcomeReprompt repeats the current question; nothing was stored.
	OutcomeReprompt
	// OutcomeComplete persists Lead, notifies the operator and clears the session.
	OutcomeComplete
	// OutcomeDeliverMaterial sends Material and clears the session.
	OutcomeDeliverMaterial
	// OutcomeBroadcast fans the admin's message out and clears the session.
	OutcomeBroadcast
)

func (o Outcome) String() string {
	switch o {
	case OutcomePrompt:
		return "prompt"
	case OutcomeReprompt:
		return "reprompt"
	case OutcomeComplete:
		return "complete"
	case OutcomeDeliverMaterial:
		return "deliver_material"
	case OutcomeBroadcast:
		return "broadcast"
	default:
		return "idle"
	}
}

// Prompt identifies the question shown for a state.
type Prompt string

const (
	PromptNone             Prompt = ""
	PromptCargoName        Prompt = "cargo_name"
	PromptCargoVolume      Prompt = "cargo_volume"
	PromptCargoWeight      Prompt = "cargo_weight"
	PromptCalcContact      Prompt = "calc_contact"
	PromptServiceContact   Prompt = "service_contact"
	PromptServiceName      Prompt = "service_name"
	PromptDeliveryMethod   Prompt = "delivery_method"
	PromptDeliveryContact  Prompt = "delivery_contact"
	PromptBroadcastContent Prompt = "broadcast_content"
	PromptMaterialContact  Prompt = "material_contact"
)

var prompts = map[State]Prompt{
	CalcCargoName:    PromptCargoName,
	CalcCargoVolume:  PromptCargoVolume,
	CalcCargoWeight:  PromptCargoWeight,
	CalcContact:      PromptCalcContact,
	ServiceContact:   PromptServiceContact,
	ServiceName:      PromptServiceName,
	DeliveryMethod:   PromptDeliveryMethod,
	DeliveryContact:  PromptDeliveryContact,
	BroadcastContent: PromptBroadcastContent,
	MaterialContact:  PromptMaterialContact,
}

// PromptFor returns the question belonging to state.
func PromptFor(state State) Prompt { return prompts[state] }

// Answer is one user message as the machine sees it.
type Answer struct {
	Text    string
	Contact *domain.Contact
	// Media is set for non-text messages: photos, documents, stickers and so on.
	Media bool
}

// Profile is what the store knows about the user.
type Profile struct {
	UserID        int64
	ContactShared bool
	Phone         string
}

// Transition is the result of starting or advancing a flow.
// A zero Session means the session must be cleared.
type Transition struct {
	Session Session
	Outcome Outcome
	Prompt  Prompt
	// Contact is a phone shared in this step; the caller persists it.
	Contact  *domain.Contact
	Lead     *domain.Lead
	Material string
}

func prompt(state State, form Form) Transition {
	return Transition{Session: Session{State: state, Form: form}, Outcome: OutcomePrompt, Prompt: PromptFor(state)}
}

func reprompt(s Session) Transition {
	return Transition{Session: s, Outcome: OutcomeReprompt, Prompt: PromptFor(s.State)}
}

func complete(p Profile, lead domain.Lead, contact *domain.Contact) Transition {
	lead.UserID = p.UserID
	return Transition{Outcome: OutcomeComplete, Lead: &lead, Contact: contact}
}

// BeginCalc starts the cargo calculation flow.
func BeginCalc() Transition {
	return prompt(CalcCargoName, &CalcForm{})
}

// BeginService starts a request for service. Users who already shared a
// contact go straight to the name question.
func BeginService(service string, p Profile) Transition {
	form := &ServiceForm{Service: service}
	if p.ContactShared {
		form.Phone = p.Phone
		return prompt(ServiceName, form)
	}
	return prompt(ServiceContact, form)
}

// BeginDelivery starts the delivery method flow.
func BeginDelivery() Transition {
	return prompt(DeliveryMethod, &DeliveryForm{})
}

// BeginBroadcast waits for the message an admin wants to broadcast.
func BeginBroadcast() Transition {
	return prompt(BroadcastContent, &BroadcastForm{})
}

// BeginMaterial hands out material at once when the contact is known and asks
// for it otherwise.
func BeginMaterial(material string, p Profile) Transition {
	if p.ContactShared {
		return Transition{Outcome: OutcomeDeliverMaterial, Material: material}
	}
	return prompt(MaterialContact, &MaterialForm{Material: material})
}

// Step feeds one answer to the session. Blank text, or an answer of the wrong
// kind for the state, leaves the session untouched and repeats the question.
func Step(s Session, a Answer, p Profile) Transition {
	if !s.Active() {
		return Transition{Outcome: OutcomeIdle}
	}
	text := strings.TrimSpace(a.Text)
	isText := text != "" && a.Contact == nil && !a.Media
	isContact := a.Contact != nil && strings.TrimSpace(a.Contact.Phone) != ""

	switch form := s.Form.(type) {
	case *CalcForm:
		if s.State == CalcContact {
			if !isContact {
				return reprompt(s)
			}
			return complete(p, form.lead(a.Contact.Phone), a.Contact)
		}
		if !isText {
			return reprompt(s)
		}
		next := *form
		switch s.State {
		case CalcCargoName:
			next.CargoName = text
			return prompt(CalcCargoVolume, &next)
		case CalcCargoVolume:
			next.CargoVolume = text
			return prompt(CalcCargoWeight, &next)
		case CalcCargoWeight:
			next.CargoWeight = text
			if p.ContactShared {
				return complete(p, next.lead(p.Phone), nil)
			}
			return prompt(CalcContact, &next)
		}

	case *ServiceForm:
		next := *form
		switch s.State {
		case ServiceContact:
			if !isContact {
				return reprompt(s)
			}
			next.Phone = a.Contact.Phone
			t := prompt(ServiceName, &next)
			t.Contact = a.Contact
			return t
		case ServiceName:
			if !isText {
				return reprompt(s)
			}
			next.Name = text
			phone := next.Phone
			if phone == "" {
				phone = p.Phone
			}
			return complete(p, domain.Lead{Service: next.Service, CustomerName: next.Name, Phone: phone}, nil)
		}

	case *DeliveryForm:
		next := *form
		switch s.State {
		case DeliveryMethod:
			if !isText {
				return reprompt(s)
			}
			next.Method = text
			if p.ContactShared {
				return complete(p, next.lead(p.Phone), nil)
			}
			return prompt(DeliveryContact, &next)
		case DeliveryContact:
			if !isContact {
				return reprompt(s)
			}
			return complete(p, next.lead(a.Contact.Phone), a.Contact)
		}

	case *BroadcastForm:
		if s.State == BroadcastContent {
			return Transition{Outcome: OutcomeBroadcast}
		}

	case *MaterialForm:
		if s.State == MaterialContact {
			if !isContact {
				return reprompt(s)
			}
			return Transition{Outcome: OutcomeDeliverMaterial, Material: form.Material, Contact: a.Contact}
		}
	}

	// state and form disagree; drop the broken session
	return Transition{Outcome: OutcomeIdle}
}

func (f CalcForm) lead(phone string) domain.Lead {
	return domain.Lead{
		Service:     domain.ServiceCalculation,
		CargoName:   f.CargoName,
		CargoVolume: f.CargoVolume,
		CargoWeight: f.CargoWeight,
		Phone:       phone,
	}
}

func (f DeliveryForm) lead(phone string) domain.Lead {
	return domain.Lead{
		Service:        domain.ServiceDelivery,
		DeliveryMethod: f.Method,
		Phone:          phone,
	}
}
