package usecase

import (
	"context"
	"fmt"
	"time"

	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task"
	"task-tracker-bot/internal/task/repository"
	"task-tracker-bot/pkg/deadline"
	"task-tracker-bot/pkg/gcalendar"
)

const calendarEventDuration = 15 * time.Minute

// Create validates the input and stores one active task.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) error {
	if err := uc.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", task.ErrInvalidInput, err)
	}

	canonical, err := deadline.Format(input.Deadline)
	if err != nil {
		return fmt.Errorf("%w: %w", task.ErrInvalidDeadline, err)
	}

	err = uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		UserID:      sc.UserID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    canonical,
		Priority:    input.Priority,
	})
	if err != nil {
		return err
	}

	uc.l.Infof(ctx, "internal.task.usecase.Create: user_id=%d priority=%d deadline=%s", sc.UserID, input.Priority, canonical)

	if uc.calendar != nil {
		uc.mirrorDeadline(ctx, input.Title, input.Description, canonical)
	}
	return nil
}

// mirrorDeadline creates a calendar event at the deadline. Failures are logged only.
func (uc *implUseCase) mirrorDeadline(ctx context.Context, title, description, canonical string) {
	start, err := deadline.Parse(canonical, uc.location)
	if err != nil {
		uc.l.Warnf(ctx, "internal.task.usecase.mirrorDeadline: %v", err)
		return
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:      uc.calendarID,
		Summary:         title,
		Description:     description,
		StartTime:       start,
		EndTime:         start.Add(calendarEventDuration),
		Timezone:        uc.location.String(),
		ReminderMinutes: uc.reminder,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.task.usecase.mirrorDeadline: calendar event not created: %v", err)
		return
	}
	uc.l.Debugf(ctx, "internal.task.usecase.mirrorDeadline: event %s created", event.ID)
}
