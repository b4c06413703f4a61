package usecase

import (
	"context"
	"fmt"

	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task"
	"task-tracker-bot/internal/task/repository"
)

const (
	weekDays  = 7
	monthDays = 30
)

// Activity issues four reads in fixed order: week, month, all time, focus minutes.
func (uc *implUseCase) Activity(ctx context.Context, sc model.Scope) (task.ActivityOutput, error) {
	now := uc.now()

	week, err := uc.repo.CountTasksSince(ctx, sc.UserID, now.AddDate(0, 0, -weekDays))
	if err != nil {
		return task.ActivityOutput{}, fmt.Errorf("weekly count: %w", err)
	}
	month, err := uc.repo.CountTasksSince(ctx, sc.UserID, now.AddDate(0, 0, -monthDays))
	if err != nil {
		return task.ActivityOutput{}, fmt.Errorf("monthly count: %w", err)
	}
	all, err := uc.repo.CountTasks(ctx, sc.UserID)
	if err != nil {
		return task.ActivityOutput{}, fmt.Errorf("total count: %w", err)
	}
	minutes, err := uc.repo.SumFocusMinutes(ctx, sc.UserID)
	if err != nil {
		return task.ActivityOutput{}, fmt.Errorf("focus minutes: %w", err)
	}

	return task.ActivityOutput{
		TasksWeek:    week,
		TasksMonth:   month,
		TasksAllTime: all,
		FocusMinutes: minutes,
	}, nil
}

// LogFocus records a completed focus session.
func (uc *implUseCase) LogFocus(ctx context.Context, sc model.Scope, input task.LogFocusInput) error {
	if err := uc.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", task.ErrInvalidFocus, err)
	}
	return uc.repo.CreateFocusSession(ctx, repository.CreateFocusSessionOptions{
		UserID:          sc.UserID,
		DurationMinutes: input.Minutes,
	})
}
