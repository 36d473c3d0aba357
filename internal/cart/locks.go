package cart

import "sync"

// SessionLocks serializes work on one session's cart. A Store only guards its
// own in-memory copy, so callers that load, mutate and save a slot hold the
// session lock for the whole sequence.
//
// Locks live only in this process; entries are dropped once nobody holds or
// waits for them.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: map[string]*sessionLock{}}
}

// Lock blocks until sessionID is free and returns the matching unlock.
func (l *SessionLocks) Lock(sessionID string) (unlock func()) {
	l.mu.Lock()
	sl, ok := l.locks[sessionID]
	if !ok {
		sl = &sessionLock{}
		l.locks[sessionID] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sl.mu.Unlock()

			l.mu.Lock()
			sl.refs--
			if sl.refs == 0 {
				delete(l.locks, sessionID)
			}
			l.mu.Unlock()
		})
	}
}

