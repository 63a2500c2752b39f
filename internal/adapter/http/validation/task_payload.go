package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskhub/internal/adapter/http/dto"
	"taskhub/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

const dateLayout = "2006-01-02"

// BuildTaskDetails turns a task payload into domain details. raw is the
// decoded body, used to tell an explicit null apart from a missing field.
func BuildTaskDetails(req dto.TaskPayload, raw map[string]json.RawMessage) (domain.TaskDetails, error) {
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.TaskDetails{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "title") && isJSONNull(raw["title"]) {
		return domain.TaskDetails{}, ErrInvalidTaskPayload
	}

	priority := domain.PriorityMedium
	if req.Priority != nil {
		priority = domain.Priority(*req.Priority)
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := ParseDueDate(*req.DueDate)
		if err != nil {
			return domain.TaskDetails{}, ErrInvalidTaskPayload
		}
		dueDate = &parsed
	}

	return domain.TaskDetails{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Priority:       priority,
		DueDate:        dueDate,
		EstimatedHours: req.EstimatedHours,
	}, nil
}

// ParseDueDate accepts an RFC 3339 timestamp or a bare date, which is read
// as the end of that day in UTC.
func ParseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(24*time.Hour - time.Second), nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
