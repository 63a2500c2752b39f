package db

import (
	"database/sql"
	"time"

	"taskhub/internal/core/domain"
)

type projectRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	OwnerID     int64          `db:"owner_id"`
	Status      string         `db:"status"`
	IsDeleted   bool           `db:"is_deleted"`
	Version     int64          `db:"version"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

type taskRow struct {
	ProjectID      int64           `db:"project_id"`
	ID             int64           `db:"id"`
	Title          string          `db:"title"`
	Description    sql.NullString  `db:"description"`
	Priority       string          `db:"priority"`
	Status         string          `db:"status"`
	DueDate        sql.NullTime    `db:"due_date"`
	AssigneeID     sql.NullInt64   `db:"assignee_id"`
	EstimatedHours sql.NullFloat64 `db:"estimated_hours"`
	IsDeleted      bool            `db:"is_deleted"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      sql.NullTime    `db:"updated_at"`
}

type teamRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	LeaderID    int64          `db:"leader_id"`
	IsDeleted   bool           `db:"is_deleted"`
	Version     int64          `db:"version"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

type memberRow struct {
	ID        int64        `db:"id"`
	TeamID    int64        `db:"team_id"`
	UserID    int64        `db:"user_id"`
	Role      string       `db:"role"`
	JoinedAt  time.Time    `db:"joined_at"`
	IsDeleted bool         `db:"is_deleted"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

func mapProjectRow(row projectRow, tasks []taskRow) domain.ProjectSnapshot {
	snap := domain.ProjectSnapshot{
		Entity:      domain.RestoreEntity(row.ID, row.CreatedAt, nullTime(row.UpdatedAt), row.IsDeleted, row.Version),
		Name:        row.Name,
		Description: nullString(row.Description),
		OwnerID:     row.OwnerID,
		Status:      domain.ProjectStatus(row.Status),
		Tasks:       make([]domain.TaskSnapshot, 0, len(tasks)),
	}
	for _, t := range tasks {
		ts := domain.TaskSnapshot{
			Entity:      domain.RestoreEntity(t.ID, t.CreatedAt, nullTime(t.UpdatedAt), t.IsDeleted, 0),
			ProjectID:   t.ProjectID,
			Title:       t.Title,
			Description: nullString(t.Description),
			Priority:    domain.Priority(t.Priority),
			Status:      domain.TaskStatus(t.Status),
			DueDate:     nullTime(t.DueDate),
		}
		if t.AssigneeID.Valid {
			value := t.AssigneeID.Int64
			ts.AssigneeID = &value
		}
		if t.EstimatedHours.Valid {
			value := t.EstimatedHours.Float64
			ts.EstimatedHours = &value
		}
		snap.Tasks = append(snap.Tasks, ts)
	}
	return snap
}

func mapTeamRow(row teamRow, members []memberRow) domain.TeamSnapshot {
	snap := domain.TeamSnapshot{
		Entity:      domain.RestoreEntity(row.ID, row.CreatedAt, nullTime(row.UpdatedAt), row.IsDeleted, row.Version),
		Name:        row.Name,
		Description: nullString(row.Description),
		LeaderID:    row.LeaderID,
		Members:     make([]domain.TeamMemberSnapshot, 0, len(members)),
	}
	for _, m := range members {
		snap.Members = append(snap.Members, domain.TeamMemberSnapshot{
			Entity:   domain.RestoreEntity(m.ID, m.CreatedAt, nullTime(m.UpdatedAt), m.IsDeleted, 0),
			TeamID:   m.TeamID,
			UserID:   m.UserID,
			Role:     domain.TeamRole(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return snap
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	value := v.String
	return &value
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	value := v.Time
	return &value
}

func toNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func toNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func toNullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
