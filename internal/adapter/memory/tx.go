package memory

import (
	"context"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

// staged is a pending write together with the version it was based on.
type staged[S any] struct {
	snapshot S
	base     int64
}

type tx struct {
	store    *Store
	projects map[int64]staged[domain.ProjectSnapshot]
	teams    map[int64]staged[domain.TeamSnapshot]
	done     bool
}

var _ ports.StoreTx = (*tx)(nil)

func (t *tx) FindProject(ctx context.Context, id int64) (*domain.Project, error) {
	if st, ok := t.projects[id]; ok {
		if st.snapshot.Entity.Deleted() {
			return nil, domain.NotFound(domain.AggregateProject, id)
		}
		return domain.RestoreProject(st.snapshot), nil
	}
	return t.store.FindProject(ctx, id)
}

func (t *tx) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return liveProjects(t.store.projects, t.projects), nil
}

func (t *tx) FindTeam(ctx context.Context, id int64) (*domain.Team, error) {
	if st, ok := t.teams[id]; ok {
		if st.snapshot.Entity.Deleted() {
			return nil, domain.NotFound(domain.AggregateTeam, id)
		}
		return domain.RestoreTeam(st.snapshot), nil
	}
	return t.store.FindTeam(ctx, id)
}

func (t *tx) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return liveTeams(t.store.teams, t.teams), nil
}

func (t *tx) SaveProject(ctx context.Context, p *domain.Project) (int64, error) {
	if err := t.check(ctx); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.failWrites != nil {
		return 0, domain.Persistence("save project", t.store.failWrites)
	}

	base := p.Version()
	if p.ID() == 0 {
		t.store.nextProjectID++
		p.AssignID(t.store.nextProjectID)
	} else if current := t.projectVersion(p.ID()); current != base {
		return 0, &domain.Error{Kind: domain.ErrConcurrencyConflict, Message: "project was modified by another transaction"}
	}

	committed := base
	if st, ok := t.projects[p.ID()]; ok {
		committed = st.base
	}
	p.SetVersion(base + 1)
	snap := p.Snapshot()
	t.projects[p.ID()] = staged[domain.ProjectSnapshot]{snapshot: snap, base: committed}
	return int64(1 + len(snap.Tasks)), nil
}

func (t *tx) SaveTeam(ctx context.Context, team *domain.Team) (int64, error) {
	if err := t.check(ctx); err != nil {
		return 0, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.failWrites != nil {
		return 0, domain.Persistence("save team", t.store.failWrites)
	}

	if !team.Deleted() && teamNameTaken(team.Name(), team.ID(), liveTeams(t.store.teams, t.teams)) {
		return 0, domain.Conflict("team name %q is already taken", team.Name())
	}

	base := team.Version()
	if team.ID() == 0 {
		t.store.nextTeamID++
		team.AssignID(t.store.nextTeamID)
	} else if current := t.teamVersion(team.ID()); current != base {
		return 0, &domain.Error{Kind: domain.ErrConcurrencyConflict, Message: "team was modified by another transaction"}
	}
	for _, m := range team.Snapshot().Members {
		if m.Entity.ID() == 0 {
			t.store.nextMemberID++
			team.AssignMemberID(m.UserID, t.store.nextMemberID)
		}
	}

	committed := base
	if st, ok := t.teams[team.ID()]; ok {
		committed = st.base
	}
	team.SetVersion(base + 1)
	snap := team.Snapshot()
	t.teams[team.ID()] = staged[domain.TeamSnapshot]{snapshot: snap, base: committed}
	return int64(1 + len(snap.Members)), nil
}

// Commit applies the staged writes after checking that no other transaction
// committed over them in the meantime.
func (t *tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCommit != nil {
		return s.failCommit
	}
	for id, st := range t.projects {
		if cur, ok := s.projects[id]; ok && cur.Entity.Version() != st.base {
			return &domain.Error{Kind: domain.ErrConcurrencyConflict, Message: "project was modified by another transaction"}
		}
	}
	for id, st := range t.teams {
		if cur, ok := s.teams[id]; ok && cur.Entity.Version() != st.base {
			return &domain.Error{Kind: domain.ErrConcurrencyConflict, Message: "team was modified by another transaction"}
		}
	}
	// Another transaction may have committed the same name since SaveTeam.
	merged := liveTeams(s.teams, t.teams)
	for _, st := range t.teams {
		snap := st.snapshot
		if !snap.Entity.Deleted() && teamNameTaken(snap.Name, snap.Entity.ID(), merged) {
			return domain.Conflict("team name %q is already taken", snap.Name)
		}
	}
	for id, st := range t.projects {
		s.projects[id] = st.snapshot
	}
	for id, st := range t.teams {
		s.teams[id] = st.snapshot
	}
	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.projects = nil
	t.teams = nil
	return nil
}

func (t *tx) check(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	return ctx.Err()
}

// projectVersion and teamVersion must be called with the store lock held.
func (t *tx) projectVersion(id int64) int64 {
	if st, ok := t.projects[id]; ok {
		return st.snapshot.Entity.Version()
	}
	snap := t.store.projects[id]
	return snap.Entity.Version()
}

func (t *tx) teamVersion(id int64) int64 {
	if st, ok := t.teams[id]; ok {
		return st.snapshot.Entity.Version()
	}
	snap := t.store.teams[id]
	return snap.Entity.Version()
}
