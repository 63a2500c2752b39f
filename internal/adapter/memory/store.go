// Package memory is a ports.Store kept entirely in process. It is used by the
// tests and by local runs with STORE_DRIVER=memory.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

var ErrTxDone = errors.New("memory: transaction already finished")

type Store struct {
	mu            sync.RWMutex
	projects      map[int64]domain.ProjectSnapshot
	teams         map[int64]domain.TeamSnapshot
	nextProjectID int64
	nextTeamID    int64
	nextMemberID  int64

	failWrites error
	failCommit error
}

var _ ports.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		projects: make(map[int64]domain.ProjectSnapshot),
		teams:    make(map[int64]domain.TeamSnapshot),
	}
}

// FailWrites makes every subsequent Save return err. Pass nil to reset.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = err
}

// FailCommit makes every subsequent Commit return err. Pass nil to reset.
func (s *Store) FailCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCommit = err
}

func (s *Store) Begin(ctx context.Context) (ports.StoreTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &tx{
		store:    s,
		projects: make(map[int64]staged[domain.ProjectSnapshot]),
		teams:    make(map[int64]staged[domain.TeamSnapshot]),
	}, nil
}

func (s *Store) FindProject(ctx context.Context, id int64) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.projects[id]
	if !ok || snap.Entity.Deleted() {
		return nil, domain.NotFound(domain.AggregateProject, id)
	}
	return domain.RestoreProject(snap), nil
}

func (s *Store) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return liveProjects(s.projects, nil), nil
}

func (s *Store) FindTeam(ctx context.Context, id int64) (*domain.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.teams[id]
	if !ok || snap.Entity.Deleted() {
		return nil, domain.NotFound(domain.AggregateTeam, id)
	}
	return domain.RestoreTeam(snap), nil
}

func (s *Store) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return liveTeams(s.teams, nil), nil
}

// ProjectVersion returns the committed concurrency token of a project.
func (s *Store) ProjectVersion(id int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.projects[id]
	return snap.Entity.Version()
}

func liveProjects(base map[int64]domain.ProjectSnapshot, overlay map[int64]staged[domain.ProjectSnapshot]) []*domain.Project {
	merged := make(map[int64]domain.ProjectSnapshot, len(base)+len(overlay))
	for id, snap := range base {
		merged[id] = snap
	}
	for id, st := range overlay {
		merged[id] = st.snapshot
	}
	ids := sortedIDs(merged)
	out := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		if snap := merged[id]; !snap.Entity.Deleted() {
			out = append(out, domain.RestoreProject(snap))
		}
	}
	return out
}

func liveTeams(base map[int64]domain.TeamSnapshot, overlay map[int64]staged[domain.TeamSnapshot]) []*domain.Team {
	merged := make(map[int64]domain.TeamSnapshot, len(base)+len(overlay))
	for id, snap := range base {
		merged[id] = snap
	}
	for id, st := range overlay {
		merged[id] = st.snapshot
	}
	ids := sortedIDs(merged)
	out := make([]*domain.Team, 0, len(ids))
	for _, id := range ids {
		if snap := merged[id]; !snap.Entity.Deleted() {
			out = append(out, domain.RestoreTeam(snap))
		}
	}
	return out
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func teamNameTaken(name string, selfID int64, teams []*domain.Team) bool {
	for _, t := range teams {
		if t.ID() != selfID && strings.EqualFold(t.Name(), name) {
			return true
		}
	}
	return false
}
