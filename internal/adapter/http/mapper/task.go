package mapper

import (
	"time"

	"taskhub/internal/adapter/http/dto"
	"taskhub/internal/core/domain"
)

func ToTaskItems(tasks []domain.TaskItem) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.TaskItem) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID(),
		ProjectID:   task.ProjectID(),
		Title:       task.Title(),
		Description: copyString(task.Description()),
		Priority:    string(task.Priority()),
		Status:      string(task.Status()),
		DueDate:     formatTime(task.DueDate()),
		CreatedAt:   task.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   formatTime(task.UpdatedAt()),
	}

	if assignee := task.AssigneeID(); assignee != nil {
		value := *assignee
		item.AssigneeID = &value
	}

	if hours := task.EstimatedHours(); hours != nil {
		value := *hours
		item.EstimatedHours = &value
	}

	return item
}

func ToOverdueTaskItems(tasks []domain.OverdueTask) []dto.OverdueTaskItem {
	items := make([]dto.OverdueTaskItem, 0, len(tasks))
	for _, overdue := range tasks {
		items = append(items, dto.OverdueTaskItem{
			ProjectID:   overdue.ProjectID,
			ProjectName: overdue.ProjectName,
			Task:        ToTaskItem(overdue.Task),
		})
	}
	return items
}
