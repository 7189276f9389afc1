package nrf24

import "time"

// EventKind classifies a radio event.
type EventKind int

// Event kinds.
const (
	EventReceived EventKind = iota + 1
	EventSent
)

func (k EventKind) String() string {
	switch k {
	case EventReceived:
		return "received"
	case EventSent:
		return "sent"
	}
	return "unknown"
}

// Delivery is the outcome of a transmission.
type Delivery int

// Delivery outcomes. Unchecked is reported when delivery confirmation is off.
const (
	Unchecked Delivery = iota
	Delivered
	Lost
	Unconfirmed
)

func (d Delivery) String() string {
	switch d {
	case Unchecked:
		return "unchecked"
	case Delivered:
		return "delivered"
	case Lost:
		return "lost"
	case Unconfirmed:
		return "unconfirmed"
	}
	return "unknown"
}

// Event describes one completed transmit or receive.
type Event struct {
	Kind     EventKind
	Device   string
	Role     Role
	Payload  Payload
	Status   Status
	Delivery Delivery
	Time     time.Time
}

// Reporter observes radio events. Report must not block.
type Reporter interface {
	Report(Event)
}

// ReportFunc is the func form of Reporter.
type ReportFunc func(Event)

// Report implements Reporter.
func (f ReportFunc) Report(ev Event) {
	f(ev)
}
