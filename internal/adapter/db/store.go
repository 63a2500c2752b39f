package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

const (
	selectProjectsQuery = `
SELECT id, name, description, owner_id, status, is_deleted, version, created_at, updated_at
FROM projects
WHERE is_deleted = 0`

	selectTasksQuery = `
SELECT project_id, id, title, description, priority, status, due_date, assignee_id,
  estimated_hours, is_deleted, created_at, updated_at
FROM tasks
WHERE project_id IN (?)
ORDER BY project_id, id`

	selectTeamsQuery = `
SELECT id, name, description, leader_id, is_deleted, version, created_at, updated_at
FROM teams
WHERE is_deleted = 0`

	selectMembersQuery = `
SELECT id, team_id, user_id, role, joined_at, is_deleted, created_at, updated_at
FROM team_members
WHERE team_id IN (?)
ORDER BY team_id, id`
)

// Store is the MySQL implementation of ports.Store.
type Store struct {
	db *sqlx.DB
}

var _ ports.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (ports.StoreTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

func (s *Store) FindProject(ctx context.Context, id int64) (*domain.Project, error) {
	return findProject(ctx, s.db, id)
}

func (s *Store) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return listProjects(ctx, s.db)
}

func (s *Store) FindTeam(ctx context.Context, id int64) (*domain.Team, error) {
	return findTeam(ctx, s.db, id)
}

func (s *Store) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return listTeams(ctx, s.db)
}

func findProject(ctx context.Context, q sqlx.ExtContext, id int64) (*domain.Project, error) {
	var row projectRow
	if err := sqlx.GetContext(ctx, q, &row, selectProjectsQuery+" AND id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(domain.AggregateProject, id)
		}
		return nil, domain.Persistence("find project", err)
	}
	projects, err := attachTasks(ctx, q, []projectRow{row})
	if err != nil {
		return nil, err
	}
	return projects[0], nil
}

func listProjects(ctx context.Context, q sqlx.ExtContext) ([]*domain.Project, error) {
	var rows []projectRow
	if err := sqlx.SelectContext(ctx, q, &rows, selectProjectsQuery+" ORDER BY id"); err != nil {
		return nil, domain.Persistence("list projects", err)
	}
	return attachTasks(ctx, q, rows)
}

func attachTasks(ctx context.Context, q sqlx.ExtContext, rows []projectRow) ([]*domain.Project, error) {
	if len(rows) == 0 {
		return []*domain.Project{}, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := sqlx.In(selectTasksQuery, ids)
	if err != nil {
		return nil, domain.Persistence("list tasks", err)
	}
	var tasks []taskRow
	if err := sqlx.SelectContext(ctx, q, &tasks, q.Rebind(query), args...); err != nil {
		return nil, domain.Persistence("list tasks", err)
	}

	byProject := make(map[int64][]taskRow, len(rows))
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}
	projects := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, domain.RestoreProject(mapProjectRow(row, byProject[row.ID])))
	}
	return projects, nil
}

func findTeam(ctx context.Context, q sqlx.ExtContext, id int64) (*domain.Team, error) {
	var row teamRow
	if err := sqlx.GetContext(ctx, q, &row, selectTeamsQuery+" AND id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(domain.AggregateTeam, id)
		}
		return nil, domain.Persistence("find team", err)
	}
	teams, err := attachMembers(ctx, q, []teamRow{row})
	if err != nil {
		return nil, err
	}
	return teams[0], nil
}

func listTeams(ctx context.Context, q sqlx.ExtContext) ([]*domain.Team, error) {
	var rows []teamRow
	if err := sqlx.SelectContext(ctx, q, &rows, selectTeamsQuery+" ORDER BY id"); err != nil {
		return nil, domain.Persistence("list teams", err)
	}
	return attachMembers(ctx, q, rows)
}

func attachMembers(ctx context.Context, q sqlx.ExtContext, rows []teamRow) ([]*domain.Team, error) {
	if len(rows) == 0 {
		return []*domain.Team{}, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := sqlx.In(selectMembersQuery, ids)
	if err != nil {
		return nil, domain.Persistence("list team members", err)
	}
	var members []memberRow
	if err := sqlx.SelectContext(ctx, q, &members, q.Rebind(query), args...); err != nil {
		return nil, domain.Persistence("list team members", err)
	}

	byTeam := make(map[int64][]memberRow, len(rows))
	for _, m := range members {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], m)
	}
	teams := make([]*domain.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, domain.RestoreTeam(mapTeamRow(row, byTeam[row.ID])))
	}
	return teams, nil
}
