package booking

import "sync"

// unitLocks serializes check-then-write sequences per lodging unit so two
// concurrent bookings for the same unit cannot both observe "available".
// Operations on different units proceed independently; there is no global
// lock.
type unitLocks struct {
	mu    sync.RWMutex
	units map[int64]*sync.Mutex
}

func newUnitLocks() *unitLocks {
	return &unitLocks{units: make(map[int64]*sync.Mutex)}
}

func (l *unitLocks) get(unitID int64) *sync.Mutex {
	l.mu.RLock()
	m, ok := l.units[unitID]
	l.mu.RUnlock()
	if ok {
		return m
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.units[unitID]; ok {
		return m
	}
	m = &sync.Mutex{}
	l.units[unitID] = m
	return m
}

// Lock acquires the mutex for one unit and returns its unlock func.
func (l *unitLocks) Lock(unitID int64) func() {
	m := l.get(unitID)
	m.Lock()
	return m.Unlock
}
