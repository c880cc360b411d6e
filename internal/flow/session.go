// Package flow implements the per-user conversation state machine that collects
// lead data. It is pure: callers persist sessions, store leads and send replies
// based on the returned Transition.
package flow

// State tags the input a session waits for. The zero State means no active flow.
type State string

const (
	StateNone State = ""

	CalcCargoName   State = "calc.cargo_name"
	CalcCargoVolume State = "calc.cargo_volume"
	CalcCargoWeight State = "calc.cargo_weight"
	CalcContact     State = "calc.contact"

	ServiceContact State = "service.contact"
	ServiceName    State = "service.name"

	DeliveryMethod  State = "delivery.method"
	DeliveryContact State = "delivery.contact"

	BroadcastContent State = "broadcast.content"

	MaterialContact State = "material.contact"
)

// Kind names a flow.
type Kind string

const (
	KindCalc      Kind = "calc"
	KindService   Kind = "service"
	KindDelivery  Kind = "delivery"
	KindBroadcast Kind = "broadcast"
	KindMaterial  Kind = "material"
)

// Form is the typed scratchpad of one flow kind.
type Form interface {
	Kind() Kind
}

// CalcForm collects the cargo calculation answers.
type CalcForm struct {
	CargoName   string
	CargoVolume string
	CargoWeight string
}

// ServiceForm collects a service request. Phone is set once the contact arrives.
type ServiceForm struct {
	Service string
	Phone   string
	Name    string
}

// DeliveryForm collects a delivery method request.
type DeliveryForm struct {
	Method string
}

// BroadcastForm marks an admin authoring a broadcast.
type BroadcastForm struct{}

// MaterialForm remembers which material waits for the user's contact.
type MaterialForm struct {
	Material string
}

func (*CalcForm) Kind() Kind      { return KindCalc }
func (*ServiceForm) Kind() Kind   { return KindService }
func (*DeliveryForm) Kind() Kind  { return KindDelivery }
func (*BroadcastForm) Kind() Kind { return KindBroadcast }
func (*MaterialForm) Kind() Kind  { return KindMaterial }

// Session is one user's in-progress flow.
type Session struct {
	State State
	Form  Form
}

// Active reports whether the session waits for input.
func (s Session) Active() bool { return s.State != StateNone && s.Form != nil }

// Flow returns the kind of the active flow, or "".
func (s Session) Flow() Kind {
	if s.Form == nil {
		return ""
	}
	return s.Form.Kind()
}
