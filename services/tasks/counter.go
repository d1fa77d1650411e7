package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"theray/models"

	"github.com/hibiken/asynq"
)

const TypeIncrementProviderSessions = "provider:sessions:increment"

// NewCounterIncrementTask builds the retry task for a provider counter bump.
// The task id is derived from the session so a booking is counted once.
func NewCounterIncrementTask(payload models.CounterTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeIncrementProviderSessions, b)
	opts := []asynq.Option{
		asynq.TaskID("counter:" + payload.SessionID),
		asynq.MaxRetry(10),
	}
	return task, opts, nil
}

// TaskClient is the part of *asynq.Client the enqueuer needs.
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CounterEnqueuer puts counter retries on the asynq queue.
type CounterEnqueuer struct {
	Client TaskClient
}

func (e *CounterEnqueuer) EnqueueCounterIncrement(ctx context.Context, payload models.CounterTaskPayload) error {
	task, opts, err := NewCounterIncrementTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build counter task: %w", err)
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue counter task for session %s: %w", payload.SessionID, err)
	}
	return nil
}
