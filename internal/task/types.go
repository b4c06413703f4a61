package task

// Field limits. The validate tags below repeat them as literals.
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 4000
)

// CreateInput is a fully collected task. Deadline is canonical DD.MM.YYYY HH:MM.
type CreateInput struct {
	Title       string `validate:"required,max=256"`
	Description string `validate:"max=4000"`
	Deadline    string `validate:"required"`
	Priority    int    `validate:"min=1,max=5"`
}

// LogFocusInput is a completed focus session.
type LogFocusInput struct {
	Minutes int `validate:"min=1,max=600"`
}

// ActivityOutput holds the four activity counters in report order.
type ActivityOutput struct {
	TasksWeek    int
	TasksMonth   int
	TasksAllTime int
	FocusMinutes int
}
