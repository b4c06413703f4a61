package usecase

import (
	"context"
	"time"

	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task/repository"
	"task-tracker-bot/pkg/gcalendar"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock repository recording every call in order
type mockRepo struct {
	calls []string

	created      []repository.CreateTaskOptions
	createErr    error
	tasks        []model.Task
	listErr      error
	sinceResults []int // consumed in order by CountTasksSince
	sinceArgs    []time.Time
	total        int
	focusMinutes int
	countErr     error
	focusLogged  []repository.CreateFocusSessionOptions
}

func (m *mockRepo) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) error {
	m.calls = append(m.calls, "CreateTask")
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, opt)
	return nil
}

func (m *mockRepo) ListActiveTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	m.calls = append(m.calls, "ListActiveTasks")
	return m.tasks, m.listErr
}

func (m *mockRepo) CountTasksSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	m.calls = append(m.calls, "CountTasksSince")
	m.sinceArgs = append(m.sinceArgs, since)
	if m.countErr != nil {
		return 0, m.countErr
	}
	v := m.sinceResults[0]
	m.sinceResults = m.sinceResults[1:]
	return v, nil
}

func (m *mockRepo) CountTasks(ctx context.Context, userID int64) (int, error) {
	m.calls = append(m.calls, "CountTasks")
	return m.total, nil
}

func (m *mockRepo) CreateFocusSession(ctx context.Context, opt repository.CreateFocusSessionOptions) error {
	m.calls = append(m.calls, "CreateFocusSession")
	m.focusLogged = append(m.focusLogged, opt)
	return nil
}

func (m *mockRepo) SumFocusMinutes(ctx context.Context, userID int64) (int, error) {
	m.calls = append(m.calls, "SumFocusMinutes")
	return m.focusMinutes, nil
}

// Mock calendar capturing created events
type mockCalendar struct {
	requests []gcalendar.CreateEventRequest
	err      error
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: "evt-1", Summary: req.Summary, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}
