package model

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusDone      TaskStatus = "done"      // reserved
	TaskStatusCancelled TaskStatus = "cancelled" // reserved
)

// Task is a task row owned by a Telegram user.
type Task struct {
	ID           int64      `db:"id"`
	UserID       int64      `db:"user_id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	Deadline     string     `db:"deadline"` // canonical DD.MM.YYYY HH:MM
	Priority     int        `db:"priority"`
	Status       TaskStatus `db:"status"`
	CreationDate string     `db:"creation_date"`
}
