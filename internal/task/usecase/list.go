package usecase

import (
	"context"

	"task-tracker-bot/internal/model"
)

// ListActive returns the user's active tasks in insertion order.
func (uc *implUseCase) ListActive(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	return uc.repo.ListActiveTasks(ctx, sc.UserID)
}
