package sqlstore

import (
	"context"
	"fmt"

	repo "task-tracker-bot/internal/task/repository"
)

const (
	insertFocusSessionQuery = `INSERT INTO focus_sessions (user_id, duration_minutes, completed_at) VALUES (?, ?, ?)`

	sumFocusMinutesQuery = `SELECT SUM(duration_minutes) FROM focus_sessions WHERE user_id = ?`
)

// CreateFocusSession logs one completed focus session.
func (r *implRepository) CreateFocusSession(ctx context.Context, opt repo.CreateFocusSessionOptions) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertFocusSessionQuery), opt.UserID, opt.DurationMinutes, r.timestamp())
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateFocusSession"), err)
		return fmt.Errorf("%w: %v", repo.ErrFailedToInsert, err)
	}
	return nil
}

// SumFocusMinutes totals the user's focus minutes.
func (r *implRepository) SumFocusMinutes(ctx context.Context, userID int64) (int, error) {
	return r.scalar(ctx, "SumFocusMinutes", sumFocusMinutesQuery, userID)
}
