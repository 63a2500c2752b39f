package mapper

import (
	"time"

	"taskhub/internal/adapter/http/dto"
	"taskhub/internal/core/domain"
)

func ToProjectItems(projects []*domain.Project) []dto.ProjectItem {
	items := make([]dto.ProjectItem, 0, len(projects))
	for _, project := range projects {
		items = append(items, ToProjectItem(project))
	}
	return items
}

func ToProjectItem(project *domain.Project) dto.ProjectItem {
	return dto.ProjectItem{
		ID:          project.ID(),
		Name:        project.Name(),
		Description: copyString(project.Description()),
		OwnerID:     project.OwnerID(),
		Status:      string(project.Status()),
		Version:     project.Version(),
		CreatedAt:   project.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   formatTime(project.UpdatedAt()),
		Tasks:       ToTaskItems(liveTasks(project.Tasks())),
	}
}

func liveTasks(tasks []domain.TaskItem) []domain.TaskItem {
	out := tasks[:0]
	for _, task := range tasks {
		if !task.Deleted() {
			out = append(out, task)
		}
	}
	return out
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	value := t.Format(time.RFC3339)
	return &value
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	value := *s
	return &value
}
