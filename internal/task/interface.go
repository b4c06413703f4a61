package task

import (
	"context"

	"task-tracker-bot/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Create validates the input and stores one active task for the scope's user.
	Create(ctx context.Context, sc model.Scope, input CreateInput) error

	// ListActive returns the user's active tasks in insertion order.
	ListActive(ctx context.Context, sc model.Scope) ([]model.Task, error)

	// Activity reports how many tasks the user created over the last week, month and
	// all time, plus their total focus minutes.
	Activity(ctx context.Context, sc model.Scope) (ActivityOutput, error)

	// LogFocus records a completed focus session.
	LogFocus(ctx context.Context, sc model.Scope, input LogFocusInput) error
}
