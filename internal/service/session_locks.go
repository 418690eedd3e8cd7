package service

import (
	"sync"
	"time"
)

// SessionLockArena serializes sync sessions per user. A lock is held for at
// most one lease; a holder that crashed without releasing is recovered when
// its lease expires, either by the next acquirer or by the background reaper.
type SessionLockArena struct {
	mu    sync.Mutex
	lease time.Duration
	held  map[int64]time.Time

	// now is swappable for tests.
	now func() time.Time
}

func NewSessionLockArena(lease time.Duration) *SessionLockArena {
	return &SessionLockArena{
		lease: lease,
		held:  make(map[int64]time.Time),
		now:   time.Now,
	}
}

// Acquire takes the user's session lock. Returns false when another session
// holds a still-valid lease.
func (a *SessionLockArena) Acquire(userID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if expiry, ok := a.held[userID]; ok && a.now().Before(expiry) {
		return false
	}

	a.held[userID] = a.now().Add(a.lease)
	return true
}

// Release frees the user's session lock.
func (a *SessionLockArena) Release(userID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.held, userID)
}

// ReapExpired drops leases whose holders never released, returning how many
// were removed.
func (a *SessionLockArena) ReapExpired() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	reaped := 0
	now := a.now()
	for userID, expiry := range a.held {
		if !now.Before(expiry) {
			delete(a.held, userID)
			reaped++
		}
	}

	return reaped
}
