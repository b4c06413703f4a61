package repository

// CreateTaskOptions holds the fields of a new task. Deadline must already be canonical.
type CreateTaskOptions struct {
	UserID      int64
	Title       string
	Description string
	Deadline    string
	Priority    int
}

// CreateFocusSessionOptions holds the parameters for logging a focus session.
type CreateFocusSessionOptions struct {
	UserID          int64
	DurationMinutes int
}
