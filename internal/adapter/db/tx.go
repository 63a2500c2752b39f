package db

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

const (
	mysqlDuplicateEntry = 1062

	insertProjectQuery = `
INSERT INTO projects (name, description, owner_id, status, is_deleted, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	updateProjectQuery = `
UPDATE projects
SET name = ?, description = ?, owner_id = ?, status = ?, is_deleted = ?, version = version + 1, updated_at = ?
WHERE id = ? AND version = ?`

	upsertTaskQuery = `
INSERT INTO tasks (project_id, id, title, description, priority, status, due_date, assignee_id,
  estimated_hours, is_deleted, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title = VALUES(title),
  description = VALUES(description),
  priority = VALUES(priority),
  status = VALUES(status),
  due_date = VALUES(due_date),
  assignee_id = VALUES(assignee_id),
  estimated_hours = VALUES(estimated_hours),
  is_deleted = VALUES(is_deleted),
  updated_at = VALUES(updated_at)`

	insertTeamQuery = `
INSERT INTO teams (name, description, leader_id, is_deleted, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateTeamQuery = `
UPDATE teams
SET name = ?, description = ?, leader_id = ?, is_deleted = ?, version = version + 1, updated_at = ?
WHERE id = ? AND version = ?`

	insertMemberQuery = `
INSERT INTO team_members (team_id, user_id, role, joined_at, is_deleted, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateMemberQuery = `
UPDATE team_members
SET role = ?, is_deleted = ?, updated_at = ?
WHERE id = ?`
)

// Tx writes aggregates inside one MySQL transaction.
type Tx struct {
	tx *sqlx.Tx
}

var _ ports.StoreTx = (*Tx)(nil)

func (t *Tx) FindProject(ctx context.Context, id int64) (*domain.Project, error) {
	return findProject(ctx, t.tx, id)
}

func (t *Tx) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return listProjects(ctx, t.tx)
}

func (t *Tx) FindTeam(ctx context.Context, id int64) (*domain.Team, error) {
	return findTeam(ctx, t.tx, id)
}

func (t *Tx) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return listTeams(ctx, t.tx)
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) SaveProject(ctx context.Context, p *domain.Project) (int64, error) {
	snap := p.Snapshot()
	base := snap.Entity.Version()

	if snap.Entity.ID() == 0 {
		res, err := t.tx.ExecContext(ctx, insertProjectQuery,
			snap.Name, toNullString(snap.Description), snap.OwnerID, string(snap.Status),
			snap.Entity.Deleted(), base+1, snap.Entity.CreatedAt(), toNullTime(snap.Entity.UpdatedAt()),
		)
		if err != nil {
			return 0, domain.Persistence("insert project", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, domain.Persistence("insert project", err)
		}
		p.AssignID(id)
		snap = p.Snapshot()
	} else {
		res, err := t.tx.ExecContext(ctx, updateProjectQuery,
			snap.Name, toNullString(snap.Description), snap.OwnerID, string(snap.Status),
			snap.Entity.Deleted(), toNullTime(snap.Entity.UpdatedAt()), snap.Entity.ID(), base,
		)
		if err != nil {
			return 0, domain.Persistence("update project", err)
		}
		if err := expectOneRow(res, "project"); err != nil {
			return 0, err
		}
	}

	for _, task := range snap.Tasks {
		_, err := t.tx.ExecContext(ctx, upsertTaskQuery,
			snap.Entity.ID(), task.Entity.ID(), task.Title, toNullString(task.Description),
			string(task.Priority), string(task.Status), toNullTime(task.DueDate), toNullInt64(task.AssigneeID),
			toNullFloat64(task.EstimatedHours), task.Entity.Deleted(), task.Entity.CreatedAt(),
			toNullTime(task.Entity.UpdatedAt()),
		)
		if err != nil {
			return 0, domain.Persistence("save task", err)
		}
	}

	p.SetVersion(base + 1)
	return int64(1 + len(snap.Tasks)), nil
}

func (t *Tx) SaveTeam(ctx context.Context, team *domain.Team) (int64, error) {
	snap := team.Snapshot()
	base := snap.Entity.Version()

	if snap.Entity.ID() == 0 {
		res, err := t.tx.ExecContext(ctx, insertTeamQuery,
			snap.Name, toNullString(snap.Description), snap.LeaderID,
			snap.Entity.Deleted(), base+1, snap.Entity.CreatedAt(), toNullTime(snap.Entity.UpdatedAt()),
		)
		if err != nil {
			return 0, teamWriteError("insert team", snap.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, domain.Persistence("insert team", err)
		}
		team.AssignID(id)
		snap = team.Snapshot()
	} else {
		res, err := t.tx.ExecContext(ctx, updateTeamQuery,
			snap.Name, toNullString(snap.Description), snap.LeaderID,
			snap.Entity.Deleted(), toNullTime(snap.Entity.UpdatedAt()), snap.Entity.ID(), base,
		)
		if err != nil {
			return 0, teamWriteError("update team", snap.Name, err)
		}
		if err := expectOneRow(res, "team"); err != nil {
			return 0, err
		}
	}

	for _, m := range snap.Members {
		if m.Entity.ID() == 0 {
			res, err := t.tx.ExecContext(ctx, insertMemberQuery,
				snap.Entity.ID(), m.UserID, string(m.Role), m.JoinedAt,
				m.Entity.Deleted(), m.Entity.CreatedAt(), toNullTime(m.Entity.UpdatedAt()),
			)
			if err != nil {
				return 0, domain.Persistence("insert team member", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return 0, domain.Persistence("insert team member", err)
			}
			team.AssignMemberID(m.UserID, id)
			continue
		}
		if _, err := t.tx.ExecContext(ctx, updateMemberQuery,
			string(m.Role), m.Entity.Deleted(), toNullTime(m.Entity.UpdatedAt()), m.Entity.ID(),
		); err != nil {
			return 0, domain.Persistence("update team member", err)
		}
	}

	team.SetVersion(base + 1)
	return int64(1 + len(snap.Members)), nil
}

type rowsAffected interface {
	RowsAffected() (int64, error)
}

// expectOneRow turns a version-guarded update that matched nothing into a
// concurrency conflict.
func expectOneRow(res rowsAffected, kind string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Persistence("update "+kind, err)
	}
	if n == 0 {
		return &domain.Error{Kind: domain.ErrConcurrencyConflict, Message: kind + " was modified by another transaction"}
	}
	return nil
}

func teamWriteError(op, name string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return domain.Conflict("team name %q is already taken", name)
	}
	return domain.Persistence(op, err)
}
