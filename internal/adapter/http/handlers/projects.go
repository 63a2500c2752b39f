package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taskhub/internal/adapter/http/dto"
	"taskhub/internal/adapter/http/mapper"
	"taskhub/internal/adapter/http/validation"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
	"taskhub/pkg/apierrors"
)

type ProjectHandler struct {
	projectService ports.ProjectService
	now            func() time.Time
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, now: time.Now}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), domain.CreateProjectInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgProjectNotFound, apierrors.MsgFailSaveProject)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ownerID, ok := queryID(c, "owner_id", apierrors.MsgInvalidUserID)
	if !ok {
		return
	}

	var projects []*domain.Project
	var err error
	if ownerID != nil {
		projects, err = h.projectService.ListProjectsByOwner(c.Request.Context(), *ownerID)
	} else {
		projects, err = h.projectService.ListProjects(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, apierrors.MsgProjectNotFound, apierrors.MsgFailListProjects)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItems(projects))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := paramID(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, apierrors.MsgProjectNotFound, apierrors.MsgFailListProjects)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := paramID(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, domain.UpdateProjectInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgProjectNotFound, apierrors.MsgFailSaveProject)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	projectID, ok := paramID(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return
	}

	project, err := h.projectService.ArchiveProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, apierrors.MsgProjectNotFound, apierrors.MsgFailSaveProject)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) CreateTask(c *gin.Context) {
	projectID, ok := paramID(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	details, err := validation.BuildTaskDetails(req.TaskPayload, raw)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.projectService.CreateTask(c.Request.Context(), domain.CreateTaskInput{
		ProjectID:  projectID,
		Details:    details,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgProjectNotFound, apierrors.MsgFailSaveTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *ProjectHandler) ListTasks(c *gin.Context) {
	projectID, ok := paramID(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return
	}

	tasks, err := h.projectService.ListTasks(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, apierrors.MsgProjectNotFound, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *ProjectHandler) GetTask(c *gin.Context) {
	projectID, taskID, ok := taskParams(c)
	if !ok {
		return
	}

	task, err := h.projectService.GetTask(c.Request.Context(), projectID, taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgTaskNotFound, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	projectID, taskID, ok := taskParams(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	details, err := validation.BuildTaskDetails(req.TaskPayload, raw)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.projectService.UpdateTask(c.Request.Context(), projectID, taskID, details)
	if err != nil {
		respondError(c, err, apierrors.MsgTaskNotFound, apierrors.MsgFailSaveTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *ProjectHandler) AssignTask(c *gin.Context) {
	projectID, taskID, ok := taskParams(c)
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.projectService.AssignTask(c.Request.Context(), projectID, taskID, req.AssigneeID)
	if err != nil {
		respondError(c, err, apierrors.MsgTaskNotFound, apierrors.MsgFailSaveTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *ProjectHandler) ChangeTaskStatus(c *gin.Context) {
	projectID, taskID, ok := taskParams(c)
	if !ok {
		return
	}

	var req dto.ChangeTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.projectService.ChangeTaskStatus(c.Request.Context(), projectID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		respondError(c, err, apierrors.MsgTaskNotFound, apierrors.MsgFailSaveTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *ProjectHandler) CompleteTask(c *gin.Context) {
	projectID, taskID, ok := taskParams(c)
	if !ok {
		return
	}

	task, err := h.projectService.CompleteTask(c.Request.Context(), projectID, taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgTaskNotFound, apierrors.MsgFailSaveTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

// ListTasksByAssignee requires the assignee_id query parameter.
func (h *ProjectHandler) ListTasksByAssignee(c *gin.Context) {
	assigneeID, ok := queryID(c, "assignee_id", apierrors.MsgInvalidUserID)
	if !ok {
		return
	}
	if assigneeID == nil {
		respondBadRequest(c, apierrors.MsgInvalidUserID)
		return
	}

	tasks, err := h.projectService.ListTasksByAssignee(c.Request.Context(), *assigneeID)
	if err != nil {
		respondError(c, err, apierrors.MsgTaskNotFound, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

// ListOverdueTasks evaluates overdue status at the optional "at" query
// parameter, defaulting to the current time.
func (h *ProjectHandler) ListOverdueTasks(c *gin.Context) {
	at := h.now().UTC()
	if value := c.Query("at"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			respondBadRequest(c, apierrors.MsgInvalidPayload)
			return
		}
		at = parsed.UTC()
	}

	tasks, err := h.projectService.ListOverdueTasks(c.Request.Context(), at)
	if err != nil {
		respondError(c, err, apierrors.MsgTaskNotFound, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToOverdueTaskItems(tasks))
}

func taskParams(c *gin.Context) (int64, int64, bool) {
	projectID, ok := paramID(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return 0, 0, false
	}
	taskID, ok := paramID(c, "taskId", apierrors.MsgInvalidTaskID)
	if !ok {
		return 0, 0, false
	}
	return projectID, taskID, true
}
