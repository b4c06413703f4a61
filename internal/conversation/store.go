package conversation

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps open sessions keyed by user id. Idle sessions expire after ttl;
// when full, the least recently used session is evicted.
type Store struct {
	sessions *expirable.LRU[int64, *Session]
}

// NewStore creates a Store. ttl <= 0 disables expiry.
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	return &Store{
		sessions: expirable.NewLRU[int64, *Session](size, nil, ttl),
	}
}

// Get returns the user's open session.
func (s *Store) Get(userID int64) (*Session, bool) {
	return s.sessions.Get(userID)
}

// Put stores the session and restarts its idle timer.
func (s *Store) Put(sess *Session) {
	s.sessions.Add(sess.UserID, sess)
}

// Delete destroys the user's session. It reports whether one existed.
func (s *Store) Delete(userID int64) bool {
	return s.sessions.Remove(userID)
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}
