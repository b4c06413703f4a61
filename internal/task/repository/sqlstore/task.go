package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"task-tracker-bot/internal/model"
	repo "task-tracker-bot/internal/task/repository"
)

const (
	insertTaskQuery = `INSERT INTO tasks (user_id, title, description, deadline, priority, status, creation_date)
           VALUES (?, ?, ?, ?, ?, ?, ?)`

	listActiveTasksQuery = `SELECT id, user_id, title, description, deadline, priority, status, creation_date
		FROM tasks WHERE user_id = ? AND status = ? ORDER BY id`

	countTasksSinceQuery = `SELECT COUNT(*) FROM tasks WHERE user_id = ? AND creation_date >= ?`

	countTasksQuery = `SELECT COUNT(*) FROM tasks WHERE user_id = ?`
)

// CreateTask inserts exactly one active task stamped with the current time.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertTaskQuery),
		opt.UserID, opt.Title, opt.Description, opt.Deadline, opt.Priority,
		string(model.TaskStatusActive), r.timestamp(),
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return fmt.Errorf("%w: %v", repo.ErrFailedToInsert, err)
	}
	return nil
}

// ListActiveTasks returns the user's active tasks in insertion order.
func (r *implRepository) ListActiveTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(listActiveTasksQuery), userID, string(model.TaskStatusActive))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListActiveTasks"), err)
		return nil, fmt.Errorf("%w: %v", repo.ErrFailedToList, err)
	}
	return tasks, nil
}

// CountTasksSince counts tasks the user created at or after since.
func (r *implRepository) CountTasksSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	return r.scalar(ctx, "CountTasksSince", countTasksSinceQuery, userID, since.Format(TimestampLayout))
}

// CountTasks counts every task the user ever created.
func (r *implRepository) CountTasks(ctx context.Context, userID int64) (int, error) {
	return r.scalar(ctx, "CountTasks", countTasksQuery, userID)
}

// scalar runs a single-value aggregate. A missing row or NULL reads as 0.
func (r *implRepository) scalar(ctx context.Context, method, query string, args ...any) (int, error) {
	var v sql.NullInt64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn(method), err)
		return 0, fmt.Errorf("%w: %v", repo.ErrFailedToCount, err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}
