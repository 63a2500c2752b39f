package domain

import "time"

type EventKind string

const (
	EventProjectCreated    EventKind = "project.created"
	EventProjectArchived   EventKind = "project.archived"
	EventTaskCreated       EventKind = "task.created"
	EventTaskAssigned      EventKind = "task.assigned"
	EventTaskCompleted     EventKind = "task.completed"
	EventTeamMemberAdded   EventKind = "team.member_added"
	EventTeamLeaderChanged EventKind = "team.leader_changed"
)

// Event is the closed set of domain events. Only types in this package can
// implement it.
type Event interface {
	Kind() EventKind
	OccurredAt() time.Time
	sealed()
}

type ProjectCreated struct {
	Name      string
	OwnerID   int64
	CreatedAt time.Time
}

type ProjectArchived struct {
	ArchivedAt time.Time
}

type TaskCreated struct {
	TaskID    int64
	Title     string
	CreatedAt time.Time
}

type TaskAssigned struct {
	TaskID     int64
	AssigneeID int64
	AssignedAt time.Time
}

type TaskCompleted struct {
	TaskID      int64
	CompletedAt time.Time
}

type TeamMemberAdded struct {
	UserID  int64
	Role    TeamRole
	AddedAt time.Time
}

type TeamLeaderChanged struct {
	OldLeaderID int64
	NewLeaderID int64
	ChangedAt   time.Time
}

func (ProjectCreated) Kind() EventKind    { return EventProjectCreated }
func (ProjectArchived) Kind() EventKind   { return EventProjectArchived }
func (TaskCreated) Kind() EventKind       { return EventTaskCreated }
func (TaskAssigned) Kind() EventKind      { return EventTaskAssigned }
func (TaskCompleted) Kind() EventKind     { return EventTaskCompleted }
func (TeamMemberAdded) Kind() EventKind   { return EventTeamMemberAdded }
func (TeamLeaderChanged) Kind() EventKind { return EventTeamLeaderChanged }

func (e ProjectCreated) OccurredAt() time.Time    { return e.CreatedAt }
func (e ProjectArchived) OccurredAt() time.Time   { return e.ArchivedAt }
func (e TaskCreated) OccurredAt() time.Time       { return e.CreatedAt }
func (e TaskAssigned) OccurredAt() time.Time      { return e.AssignedAt }
func (e TaskCompleted) OccurredAt() time.Time     { return e.CompletedAt }
func (e TeamMemberAdded) OccurredAt() time.Time   { return e.AddedAt }
func (e TeamLeaderChanged) OccurredAt() time.Time { return e.ChangedAt }

func (ProjectCreated) sealed()    {}
func (ProjectArchived) sealed()   {}
func (TaskCreated) sealed()       {}
func (TaskAssigned) sealed()      {}
func (TaskCompleted) sealed()     {}
func (TeamMemberAdded) sealed()   {}
func (TeamLeaderChanged) sealed() {}

// Envelope is what dispatchers receive: the event plus the identity of the
// aggregate that raised it, resolved after the write so that freshly
// inserted aggregates carry their store-assigned id.
type Envelope struct {
	ID            string
	AggregateKind AggregateKind
	AggregateID   int64
	Event         Event
}
