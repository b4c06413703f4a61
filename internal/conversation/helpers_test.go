package conversation

import (
	"context"
	"sync"

	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task"
)

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

// Mock usecase capturing created tasks
type mockUseCase struct {
	mu        sync.Mutex
	created   []task.CreateInput
	createErr error
}

func (m *mockUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, input)
	return nil
}

func (m *mockUseCase) ListActive(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	return nil, nil
}

func (m *mockUseCase) Activity(ctx context.Context, sc model.Scope) (task.ActivityOutput, error) {
	return task.ActivityOutput{}, nil
}

func (m *mockUseCase) LogFocus(ctx context.Context, sc model.Scope, input task.LogFocusInput) error {
	return nil
}

func (m *mockUseCase) createdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}
