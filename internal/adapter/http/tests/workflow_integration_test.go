//go:build integration
// +build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	dbadapter "taskhub/internal/adapter/db"
	"taskhub/internal/adapter/events"
	httpadapter "taskhub/internal/adapter/http"
	"taskhub/internal/adapter/http/dto"
	"taskhub/internal/adapter/http/handlers"
	appservice "taskhub/internal/app/service"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/uow"
	"taskhub/internal/config"
	"taskhub/pkg/apierrors"
)

type WorkflowIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine

	mu    sync.Mutex
	kinds []domain.EventKind
}

func TestWorkflowIntegrationSuite(t *testing.T) {
	suite.Run(t, new(WorkflowIntegrationSuite))
}

func (s *WorkflowIntegrationSuite) SetupTest() {
	s.ResetDatabase()
	s.kinds = nil

	bus := events.NewBus()
	bus.SubscribeAll(func(_ context.Context, env domain.Envelope) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.kinds = append(s.kinds, env.Event.Kind())
		return nil
	})

	factory := uow.NewFactory(dbadapter.NewStore(s.DB), bus)
	tx := appservice.NewTransactor(factory, zap.NewNop())

	router := gin.New()
	httpadapter.RegisterRoutes(
		router,
		handlers.NewHealthHandler(config.StoreDriverMySQL, s.DB.PingContext, nil),
		handlers.NewProjectHandler(appservice.NewProjectService(tx, factory)),
		handlers.NewTeamHandler(appservice.NewTeamService(tx, factory)),
	)
	s.router = router
}

func (s *WorkflowIntegrationSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, target, &payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *WorkflowIntegrationSuite) recorded() []domain.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.EventKind(nil), s.kinds...)
}

func (s *WorkflowIntegrationSuite) TestHealth_ReportsMysql() {
	rec := s.do(http.MethodGet, "/api/health/report", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got handlers.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(handlers.StatusOk, got.Status.Mysql)
	s.Require().Equal(handlers.StatusDisabled, got.Status.Redis)
}

func (s *WorkflowIntegrationSuite) TestProjectLifecycle() {
	rec := s.do(http.MethodPost, "/api/projects", map[string]any{"name": "Launch", "owner_id": 7})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var project dto.ProjectItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &project))
	s.Require().NotZero(project.ID)
	s.Require().Equal(int64(1), project.Version)

	tasksURL := fmt.Sprintf("/api/projects/%d/tasks", project.ID)
	rec = s.do(http.MethodPost, tasksURL, map[string]any{"title": "Write handlers", "priority": "high"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var task dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &task))
	s.Require().Equal(int64(1), task.ID)
	s.Require().Equal(project.ID, task.ProjectID)

	taskURL := fmt.Sprintf("%s/%d", tasksURL, task.ID)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, taskURL+"/assign", map[string]any{"assignee_id": 9}).Code)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, taskURL+"/status", map[string]any{"status": "in_progress"}).Code)

	// archiving is refused while the task is active
	archiveURL := fmt.Sprintf("/api/projects/%d/archive", project.ID)
	rec = s.do(http.MethodPost, archiveURL, nil)
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)

	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, taskURL+"/complete", nil).Code)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, archiveURL, nil).Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &project))
	s.Require().Equal("archived", project.Status)
	s.Require().Len(project.Tasks, 1)
	s.Require().Equal("done", project.Tasks[0].Status)
	s.Require().Equal(int64(9), *project.Tasks[0].AssigneeID)

	s.Require().Equal([]domain.EventKind{
		domain.EventProjectCreated,
		domain.EventTaskCreated,
		domain.EventTaskAssigned,
		domain.EventTaskCompleted,
		domain.EventProjectArchived,
	}, s.recorded())
}

func (s *WorkflowIntegrationSuite) TestTeamWorkflow() {
	rec := s.do(http.MethodPost, "/api/teams", map[string]any{"name": "Platform", "leader_id": 7})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var team dto.TeamItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &team))
	s.Require().Len(team.Members, 1)

	membersURL := fmt.Sprintf("/api/teams/%d/members", team.ID)
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, membersURL, map[string]any{"user_id": 8, "role": "member"}).Code)

	rec = s.do(http.MethodPost, membersURL, map[string]any{"user_id": 8, "role": "viewer"})
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/teams/%d/leader", team.ID), map[string]any{"new_leader_id": 8})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &team))
	s.Require().Equal(int64(8), team.LeaderID)

	rec = s.do(http.MethodDelete, fmt.Sprintf("%s/7", membersURL), nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/teams/%d", team.ID), nil)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &team))
	s.Require().Len(team.Members, 1)
	s.Require().Equal(int64(8), team.Members[0].UserID)

	// the removed member can join again
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, membersURL, map[string]any{"user_id": 7, "role": "viewer"}).Code)

	s.Require().Equal([]domain.EventKind{
		domain.EventTeamMemberAdded,
		domain.EventTeamMemberAdded,
		domain.EventTeamLeaderChanged,
		domain.EventTeamMemberAdded,
	}, s.recorded())
}

func (s *WorkflowIntegrationSuite) TestDuplicateTeamName_Conflict() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/teams", map[string]any{"name": "Platform", "leader_id": 7}).Code)

	rec := s.do(http.MethodPost, "/api/teams", map[string]any{"name": "platform", "leader_id": 8})
	s.Require().Equal(http.StatusConflict, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(http.StatusConflict, got.ErrDetails.Code)
	s.Require().Len(s.recorded(), 1)
}

func (s *WorkflowIntegrationSuite) TestProjectNotFound() {
	rec := s.do(http.MethodGet, "/api/projects/404", nil)
	s.Require().Equal(http.StatusNotFound, rec.Code)
}
