package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"careflow/models"

	"github.com/hibiken/asynq"
)

const TypeVisitReminder = "visit:reminder"

// Scheduler queues visit reminders for later delivery.
type Scheduler interface {
	ScheduleVisitReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// NewVisitReminderTask builds the asynq task for a visit reminder.
func NewVisitReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeVisitReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqScheduler implements Scheduler on an asynq client.
type AsynqScheduler struct {
	Client *asynq.Client
}

// ScheduleVisitReminder enqueues a reminder to fire at the given time.
func (s *AsynqScheduler) ScheduleVisitReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewVisitReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build visit reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue visit reminder: %w", err)
	}
	return nil
}
