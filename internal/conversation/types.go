package conversation

import "time"

// Stage is a step of the add-task dialogue.
type Stage int

const (
	StageTitle Stage = iota
	StageDescription
	StageDeadline
	StagePriority
	StageDone
)

// transitions is the only way a dialogue advances.
var transitions = map[Stage]Stage{
	StageTitle:       StageDescription,
	StageDescription: StageDeadline,
	StageDeadline:    StagePriority,
	StagePriority:    StageDone,
}

// Next returns the stage that follows s. StageDone has no successor.
func (s Stage) Next() Stage {
	if next, ok := transitions[s]; ok {
		return next
	}
	return StageDone
}

func (s Stage) String() string {
	switch s {
	case StageTitle:
		return "TITLE"
	case StageDescription:
		return "DESCRIPTION"
	case StageDeadline:
		return "DEADLINE"
	case StagePriority:
		return "PRIORITY"
	case StageDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// Draft accumulates the task fields collected so far.
type Draft struct {
	Title       string
	Description string
	Deadline    string // canonical once set
	Priority    int
}

// Session is one user's open add-task dialogue.
type Session struct {
	UserID    int64
	Stage     Stage
	Draft     Draft
	StartedAt time.Time
}

// Reply is what the bot answers to one dialogue step.
type Reply struct {
	Text  string
	Stage Stage
}

// Policy decides what /add does while a dialogue is already open.
type Policy string

const (
	// PolicyRestart drops the open draft and starts over.
	PolicyRestart Policy = "restart"
	// PolicyReject keeps the open draft and repeats its current prompt.
	PolicyReject Policy = "reject"
)

// Config configures the dialogue controller.
type Config struct {
	TTL         time.Duration
	MaxSessions int
	Policy      Policy
}
