package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"task-tracker-bot/internal/task/repository"
	"task-tracker-bot/pkg/gcalendar"
	pkgLog "task-tracker-bot/pkg/log"
)

// Calendar mirrors task deadlines as calendar events.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// Config holds the optional settings of the task UseCase.
type Config struct {
	Calendar        Calendar // nil disables the deadline mirror
	CalendarID      string
	ReminderMinutes int
	Location        *time.Location // zone deadlines are written in; nil means UTC
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	calendar   Calendar
	calendarID string
	reminder   int
	location   *time.Location
	validate   *validator.Validate
	now        func() time.Time
}

// New creates a new task UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository, cfg Config) *implUseCase {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &implUseCase{
		l:          l,
		repo:       repo,
		calendar:   cfg.Calendar,
		calendarID: cfg.CalendarID,
		reminder:   cfg.ReminderMinutes,
		location:   loc,
		validate:   validator.New(),
		now:        time.Now,
	}
}
