package conversation

import (
	"context"
	"sync"
	"time"

	"task-tracker-bot/internal/metrics"
	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task"
	"task-tracker-bot/pkg/log"
)

// Controller drives the multi-step add-task dialogue.
type Controller interface {
	// Start opens a dialogue and asks for the title.
	Start(ctx context.Context, sc model.Scope) (Reply, error)
	// Handle feeds one message into the user's open dialogue.
	// handled is false when the user has no open dialogue.
	Handle(ctx context.Context, sc model.Scope, text string) (reply Reply, handled bool, err error)
	// Cancel destroys the user's open dialogue, reporting whether there was one.
	Cancel(ctx context.Context, sc model.Scope) bool
}

// Dialogue is the Controller backed by an in-memory session Store.
type Dialogue struct {
	l       log.Logger
	uc      task.UseCase
	store   *Store
	policy  Policy
	metrics *metrics.Metrics
	now     func() time.Time

	locks [lockStripes]sync.Mutex
}

var _ Controller = (*Dialogue)(nil)

// New creates a Dialogue. m may be nil.
func New(l log.Logger, uc task.UseCase, cfg Config, m *metrics.Metrics) *Dialogue {
	policy := cfg.Policy
	if policy != PolicyReject {
		policy = PolicyRestart
	}
	return &Dialogue{
		l:       l,
		uc:      uc,
		store:   NewStore(cfg.MaxSessions, cfg.TTL),
		policy:  policy,
		metrics: m,
		now:     time.Now,
	}
}

// lockStripes bounds the lock table. Users sharing a stripe are
// serialized against each other.
const lockStripes = 256

func (d *Dialogue) lockFor(userID int64) *sync.Mutex {
	return &d.locks[uint64(userID)%lockStripes]
}

// lock serializes dialogue steps of one user.
func (d *Dialogue) lock(userID int64) func() {
	m := d.lockFor(userID)
	m.Lock()
	return m.Unlock
}
