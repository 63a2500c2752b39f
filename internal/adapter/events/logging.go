package events

import (
	"context"

	"go.uber.org/zap"

	"taskhub/internal/core/domain"
)

// RegisterLoggingSubscribers logs every domain event kind with its payload.
func RegisterLoggingSubscribers(bus *Bus, logger *zap.Logger) {
	bus.Subscribe(domain.EventProjectCreated, func(_ context.Context, env domain.Envelope) error {
		e := env.Event.(domain.ProjectCreated)
		logger.Info("project created", envelopeFields(env,
			zap.String("name", e.Name),
			zap.Int64("owner_id", e.OwnerID),
		)...)
		return nil
	})
	bus.Subscribe(domain.EventProjectArchived, func(_ context.Context, env domain.Envelope) error {
		logger.Info("project archived", envelopeFields(env)...)
		return nil
	})
	bus.Subscribe(domain.EventTaskCreated, func(_ context.Context, env domain.Envelope) error {
		e := env.Event.(domain.TaskCreated)
		logger.Info("task created", envelopeFields(env,
			zap.Int64("task_id", e.TaskID),
			zap.String("title", e.Title),
		)...)
		return nil
	})
	bus.Subscribe(domain.EventTaskAssigned, func(_ context.Context, env domain.Envelope) error {
		e := env.Event.(domain.TaskAssigned)
		logger.Info("task assigned", envelopeFields(env,
			zap.Int64("task_id", e.TaskID),
			zap.Int64("assignee_id", e.AssigneeID),
		)...)
		return nil
	})
	bus.Subscribe(domain.EventTaskCompleted, func(_ context.Context, env domain.Envelope) error {
		e := env.Event.(domain.TaskCompleted)
		logger.Info("task completed", envelopeFields(env, zap.Int64("task_id", e.TaskID))...)
		return nil
	})
	bus.Subscribe(domain.EventTeamMemberAdded, func(_ context.Context, env domain.Envelope) error {
		e := env.Event.(domain.TeamMemberAdded)
		logger.Info("team member added", envelopeFields(env,
			zap.Int64("user_id", e.UserID),
			zap.String("role", string(e.Role)),
		)...)
		return nil
	})
	bus.Subscribe(domain.EventTeamLeaderChanged, func(_ context.Context, env domain.Envelope) error {
		e := env.Event.(domain.TeamLeaderChanged)
		logger.Info("team leader changed", envelopeFields(env,
			zap.Int64("old_leader_id", e.OldLeaderID),
			zap.Int64("new_leader_id", e.NewLeaderID),
		)...)
		return nil
	})
}

func envelopeFields(env domain.Envelope, extra ...zap.Field) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", env.ID),
		zap.String("aggregate", string(env.AggregateKind)),
		zap.Int64("aggregate_id", env.AggregateID),
		zap.Time("occurred_at", env.Event.OccurredAt()),
	}
	return append(fields, extra...)
}
