package http

import (
	"taskhub/internal/adapter/http/handlers"
	"taskhub/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	projectHandler *handlers.ProjectHandler,
	teamHandler *handlers.TeamHandler,
) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects", projectHandler.ListProjects)
		api.GET("/projects/:id", projectHandler.GetProject)
		api.PUT("/projects/:id", projectHandler.UpdateProject)
		api.POST("/projects/:id/archive", projectHandler.ArchiveProject)
		api.POST("/projects/:id/tasks", projectHandler.CreateTask)
		api.GET("/projects/:id/tasks", projectHandler.ListTasks)
		api.GET("/projects/:id/tasks/:taskId", projectHandler.GetTask)
		api.PUT("/projects/:id/tasks/:taskId", projectHandler.UpdateTask)
		api.POST("/projects/:id/tasks/:taskId/assign", projectHandler.AssignTask)
		api.POST("/projects/:id/tasks/:taskId/status", projectHandler.ChangeTaskStatus)
		api.POST("/projects/:id/tasks/:taskId/complete", projectHandler.CompleteTask)
		api.GET("/tasks", projectHandler.ListTasksByAssignee)
		api.GET("/tasks/overdue", projectHandler.ListOverdueTasks)

		api.POST("/teams", teamHandler.CreateTeam)
		api.GET("/teams", teamHandler.ListTeams)
		api.GET("/teams/:id", teamHandler.GetTeam)
		api.POST("/teams/:id/members", teamHandler.AddMember)
		api.DELETE("/teams/:id/members/:userId", teamHandler.RemoveMember)
		api.PUT("/teams/:id/members/:userId/role", teamHandler.ChangeMemberRole)
		api.PUT("/teams/:id/leader", teamHandler.ChangeLeader)
	}
}
