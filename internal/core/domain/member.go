package domain

import "time"

type TeamRole string

const (
	TeamRoleLeader TeamRole = "leader"
	TeamRoleMember TeamRole = "member"
	TeamRoleViewer TeamRole = "viewer"
)

func (r TeamRole) Valid() bool {
	switch r {
	case TeamRoleLeader, TeamRoleMember, TeamRoleViewer:
		return true
	}
	return false
}

// TeamMember is owned by exactly one Team and is only mutated through it.
type TeamMember struct {
	Entity
	teamID   int64
	userID   int64
	role     TeamRole
	joinedAt time.Time
}

type TeamMemberSnapshot struct {
	Entity   Entity
	TeamID   int64
	UserID   int64
	Role     TeamRole
	JoinedAt time.Time
}

func newTeamMember(teamID, userID int64, role TeamRole) (*TeamMember, error) {
	if userID <= 0 {
		return nil, invariant("user id must be greater than zero")
	}
	if !role.Valid() {
		return nil, invariant("invalid team role %q", role)
	}
	m := &TeamMember{Entity: newEntity(), teamID: teamID, userID: userID, role: role}
	m.joinedAt = m.createdAt
	return m, nil
}

func restoreTeamMember(s TeamMemberSnapshot) *TeamMember {
	return &TeamMember{
		Entity:   s.Entity,
		teamID:   s.TeamID,
		userID:   s.UserID,
		role:     s.Role,
		joinedAt: s.JoinedAt,
	}
}

func (m *TeamMember) TeamID() int64       { return m.teamID }
func (m *TeamMember) UserID() int64       { return m.userID }
func (m *TeamMember) Role() TeamRole      { return m.role }
func (m *TeamMember) JoinedAt() time.Time { return m.joinedAt }

func (m *TeamMember) Snapshot() TeamMemberSnapshot {
	return TeamMemberSnapshot{
		Entity:   m.Entity,
		TeamID:   m.teamID,
		UserID:   m.userID,
		Role:     m.role,
		JoinedAt: m.joinedAt,
	}
}

func (m *TeamMember) changeRole(role TeamRole) error {
	if m.isDeleted {
		return invariant("cannot change role for a deleted team member")
	}
	if !role.Valid() {
		return invariant("invalid team role %q", role)
	}
	m.role = role
	m.touch()
	return nil
}
