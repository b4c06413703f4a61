package sqlstore

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"task-tracker-bot/internal/task/repository"
	"task-tracker-bot/pkg/log"
)

// TimestampLayout is the text form of creation_date and completed_at.
// It sorts lexically in time order, which the window counts rely on.
const TimestampLayout = "2006-01-02 15:04:05"

type implRepository struct {
	db  *sqlx.DB
	l   log.Logger
	now func() time.Time
}

// Option customizes the repository.
type Option func(*implRepository)

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *implRepository) {
		r.now = now
	}
}

// New creates an sqlx-backed Repository. Works with any driver sqlx can rebind for.
func New(db *sqlx.DB, l log.Logger, opts ...Option) repository.Repository {
	if db == nil {
		panic("task/repository/sqlstore: db is required")
	}
	r := &implRepository{db: db, l: l, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("internal.task.repository.sqlstore.%s", method)
}

func (r *implRepository) timestamp() string {
	return r.now().Format(TimestampLayout)
}
