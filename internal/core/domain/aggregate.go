package domain

type AggregateKind string

const (
	AggregateProject AggregateKind = "project"
	AggregateTeam    AggregateKind = "team"
)

// Aggregate is the view the unit of work has of an aggregate root.
type Aggregate interface {
	Deletable
	Kind() AggregateKind
	ID() int64
	Version() int64
	PendingEvents() []Event
	ClearEvents()
}

// AggregateRoot is an Entity with a buffer of events raised by mutations
// that have not been delivered yet.
type AggregateRoot struct {
	Entity
	events []Event
}

func (a *AggregateRoot) record(e Event) {
	a.events = append(a.events, e)
}

// PendingEvents returns a copy of the buffered events in insertion order.
func (a *AggregateRoot) PendingEvents() []Event {
	if len(a.events) == 0 {
		return nil
	}
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

func (a *AggregateRoot) ClearEvents() {
	a.events = nil
}
