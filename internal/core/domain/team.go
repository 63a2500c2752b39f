package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	maxTeamNameLength        = 100
	maxTeamDescriptionLength = 1000
	MaxMembersPerTeam        = 50
)

// Team is the aggregate root owning its members. The leader is always a
// live member with role Leader.
type Team struct {
	AggregateRoot
	name        string
	description *string
	leaderID    int64
	members     []*TeamMember
}

type TeamSnapshot struct {
	Entity      Entity
	Name        string
	Description *string
	LeaderID    int64
	Members     []TeamMemberSnapshot
}

// NewTeam creates a team whose only member is the leader and records
// TeamMemberAdded for it.
func NewTeam(name string, description *string, leaderID int64) (*Team, error) {
	t := &Team{AggregateRoot: AggregateRoot{Entity: newEntity()}}
	if err := t.setName(name); err != nil {
		return nil, err
	}
	if err := t.setDescription(description); err != nil {
		return nil, err
	}
	if leaderID <= 0 {
		return nil, invariant("leader id must be greater than zero")
	}
	leader, err := newTeamMember(0, leaderID, TeamRoleLeader)
	if err != nil {
		return nil, err
	}
	t.leaderID = leaderID
	t.members = append(t.members, leader)
	t.record(TeamMemberAdded{UserID: leaderID, Role: TeamRoleLeader, AddedAt: leader.joinedAt})
	return t, nil
}

func RestoreTeam(s TeamSnapshot) *Team {
	t := &Team{
		AggregateRoot: AggregateRoot{Entity: s.Entity},
		name:          s.Name,
		description:   copyString(s.Description),
		leaderID:      s.LeaderID,
		members:       make([]*TeamMember, 0, len(s.Members)),
	}
	for _, ms := range s.Members {
		t.members = append(t.members, restoreTeamMember(ms))
	}
	return t
}

func (t *Team) Kind() AggregateKind  { return AggregateTeam }
func (t *Team) Name() string         { return t.name }
func (t *Team) Description() *string { return copyString(t.description) }
func (t *Team) LeaderID() int64      { return t.leaderID }

// Members returns copies of the live members.
func (t *Team) Members() []TeamMember {
	out := make([]TeamMember, 0, len(t.members))
	for _, m := range t.members {
		if !m.isDeleted {
			out = append(out, *m)
		}
	}
	return out
}

// Member returns a copy of the live membership of userID.
func (t *Team) Member(userID int64) (TeamMember, bool) {
	if m := t.liveMember(userID); m != nil {
		return *m, true
	}
	return TeamMember{}, false
}

func (t *Team) Snapshot() TeamSnapshot {
	s := TeamSnapshot{
		Entity:      t.Entity,
		Name:        t.name,
		Description: copyString(t.description),
		LeaderID:    t.leaderID,
		Members:     make([]TeamMemberSnapshot, 0, len(t.members)),
	}
	for _, m := range t.members {
		s.Members = append(s.Members, m.Snapshot())
	}
	return s
}

// AssignID also propagates the team id to the owned members.
func (t *Team) AssignID(id int64) {
	t.Entity.AssignID(id)
	for _, m := range t.members {
		m.teamID = t.id
	}
}

// AssignMemberID lets the store record the row id of a newly inserted member.
func (t *Team) AssignMemberID(userID, id int64) {
	for _, m := range t.members {
		if m.userID == userID && m.id == 0 {
			m.id = id
			return
		}
	}
}

// AddMember appends a member and records TeamMemberAdded. Leadership is only
// granted through ChangeLeader.
func (t *Team) AddMember(userID int64, role TeamRole) (TeamMember, error) {
	if err := t.ensureNotDeleted(); err != nil {
		return TeamMember{}, err
	}
	if userID <= 0 {
		return TeamMember{}, invariant("user id must be greater than zero")
	}
	if !role.Valid() {
		return TeamMember{}, invariant("invalid team role %q", role)
	}
	if t.liveCount() >= MaxMembersPerTeam {
		return TeamMember{}, invariant("a team cannot have more than %d members", MaxMembersPerTeam)
	}
	if t.liveMember(userID) != nil {
		return TeamMember{}, invariant("the same user cannot be added twice to the same team")
	}
	if role == TeamRoleLeader {
		return TeamMember{}, invariant("use ChangeLeader to assign the team leader")
	}

	m, err := newTeamMember(t.id, userID, role)
	if err != nil {
		return TeamMember{}, err
	}
	t.members = append(t.members, m)
	t.touch()
	t.record(TeamMemberAdded{UserID: userID, Role: role, AddedAt: m.joinedAt})
	return *m, nil
}

// ChangeLeader demotes the current leader and promotes newLeaderID, which
// must be a live member. Choosing the current leader is a no-op.
func (t *Team) ChangeLeader(newLeaderID int64) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	if newLeaderID <= 0 {
		return invariant("new leader id must be greater than zero")
	}
	if newLeaderID == t.leaderID {
		return nil
	}
	next := t.liveMember(newLeaderID)
	if next == nil {
		return invariant("leader must be a team member")
	}
	current := t.liveMember(t.leaderID)
	if current == nil {
		return invariant("team %d has no live leader", t.id)
	}

	current.role = TeamRoleMember
	current.touch()
	next.role = TeamRoleLeader
	next.touch()

	old := t.leaderID
	t.leaderID = newLeaderID
	t.touch()
	t.record(TeamLeaderChanged{OldLeaderID: old, NewLeaderID: newLeaderID, ChangedAt: now()})
	return nil
}

// RemoveMember soft-deletes the membership of userID. Removing the leader
// requires a successor, and the leader change happens first. No event is
// recorded for the removal itself.
func (t *Team) RemoveMember(userID int64, newLeaderID *int64) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	m := t.liveMember(userID)
	if m == nil {
		return notFound("team member %d not found", userID)
	}

	if userID == t.leaderID {
		if newLeaderID == nil {
			return invariant("cannot remove the team leader without assigning a new one")
		}
		if *newLeaderID == t.leaderID {
			return invariant("new leader must be different from current leader")
		}
		if *newLeaderID <= 0 || t.liveMember(*newLeaderID) == nil {
			return invariant("leader must be a team member")
		}
		if err := t.ChangeLeader(*newLeaderID); err != nil {
			return err
		}
	}

	if err := m.SoftDelete(); err != nil {
		return err
	}
	t.touch()
	return nil
}

// ChangeMemberRole may only be invoked by the current leader. Promoting a
// member to Leader is a ChangeLeader; the leader cannot be demoted directly.
func (t *Team) ChangeMemberRole(actorUserID, targetUserID int64, newRole TeamRole) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	if actorUserID != t.leaderID {
		return forbidden("role can only be changed by the team leader")
	}
	if !newRole.Valid() {
		return invariant("invalid team role %q", newRole)
	}
	target := t.liveMember(targetUserID)
	if target == nil {
		return notFound("team member %d not found", targetUserID)
	}
	if targetUserID == t.leaderID && newRole != TeamRoleLeader {
		return invariant("cannot demote the team leader without assigning a new one")
	}
	if newRole == TeamRoleLeader {
		return t.ChangeLeader(targetUserID)
	}
	if err := target.changeRole(newRole); err != nil {
		return err
	}
	t.touch()
	return nil
}

func (t *Team) liveMember(userID int64) *TeamMember {
	for _, m := range t.members {
		if m.userID == userID && !m.isDeleted {
			return m
		}
	}
	return nil
}

func (t *Team) liveCount() int {
	n := 0
	for _, m := range t.members {
		if !m.isDeleted {
			n++
		}
	}
	return n
}

func (t *Team) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invariant("team name cannot be empty or whitespace")
	}
	if utf8.RuneCountInString(trimmed) > maxTeamNameLength {
		return invariant("team name cannot exceed %d characters", maxTeamNameLength)
	}
	t.name = trimmed
	return nil
}

func (t *Team) setDescription(description *string) error {
	normalized, err := normalizeDescription(description, maxTeamDescriptionLength, "team")
	if err != nil {
		return err
	}
	t.description = normalized
	return nil
}

func (t *Team) ensureNotDeleted() error {
	if t.isDeleted {
		return invariant("cannot modify a deleted team")
	}
	return nil
}
