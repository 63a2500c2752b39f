package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskhub/internal/adapter/http/middleware"
	"taskhub/internal/core/domain"
	"taskhub/pkg/apierrors"
)

var (
	createdAt = time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC)
	updatedAt = time.Date(2026, 2, 13, 11, 20, 30, 0, time.UTC)
	dueDate   = time.Date(2026, 2, 20, 23, 59, 59, 0, time.UTC)
)

func fixtureProject(status domain.ProjectStatus) *domain.Project {
	description := "ship the api"
	assignee := int64(9)
	return domain.RestoreProject(domain.ProjectSnapshot{
		Entity:      domain.RestoreEntity(1, createdAt, &updatedAt, false, 3),
		Name:        "Launch",
		Description: &description,
		OwnerID:     7,
		Status:      status,
		Tasks: []domain.TaskSnapshot{
			{
				Entity:     domain.RestoreEntity(1, createdAt, nil, false, 0),
				ProjectID:  1,
				Title:      "Write handlers",
				Priority:   domain.PriorityHigh,
				Status:     domain.TaskStatusInProgress,
				DueDate:    &dueDate,
				AssigneeID: &assignee,
			},
		},
	})
}

func fixtureTask() domain.TaskItem {
	task, _ := fixtureProject(domain.ProjectStatusActive).Task(1)
	return task
}

func fixtureTeam() *domain.Team {
	return domain.RestoreTeam(domain.TeamSnapshot{
		Entity:   domain.RestoreEntity(4, createdAt, nil, false, 2),
		Name:     "Platform",
		LeaderID: 7,
		Members: []domain.TeamMemberSnapshot{
			{Entity: domain.RestoreEntity(10, createdAt, nil, false, 0), TeamID: 4, UserID: 7, Role: domain.TeamRoleLeader, JoinedAt: createdAt},
			{Entity: domain.RestoreEntity(11, createdAt, nil, false, 0), TeamID: 4, UserID: 8, Role: domain.TeamRoleMember, JoinedAt: updatedAt},
			{Entity: domain.RestoreEntity(12, createdAt, nil, true, 0), TeamID: 4, UserID: 9, Role: domain.TeamRoleViewer, JoinedAt: updatedAt},
		},
	})
}

func invariantErr(message string) error {
	return &domain.Error{Kind: domain.ErrInvariantViolation, Message: message}
}

func serve(router *gin.Engine, method, target, body, lang string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Language", lang)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	return router
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.Err {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, rec.Code, got.ErrDetails.Code)
	return got.ErrDetails
}
