package repository

import (
	"context"
	"time"

	"task-tracker-bot/internal/model"
)

// Repository is the composed interface for the task data store.
type Repository interface {
	TaskRepository
	FocusRepository
}

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) error
	ListActiveTasks(ctx context.Context, userID int64) ([]model.Task, error)
	CountTasksSince(ctx context.Context, userID int64, since time.Time) (int, error)
	CountTasks(ctx context.Context, userID int64) (int, error)
}

// FocusRepository defines data access for focus (pomodoro) sessions.
type FocusRepository interface {
	CreateFocusSession(ctx context.Context, opt CreateFocusSessionOptions) error
	SumFocusMinutes(ctx context.Context, userID int64) (int, error)
}
