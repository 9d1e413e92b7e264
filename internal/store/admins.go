package store

import (
	"sort"
	"sync"
)

// Admins is the set of bot-wide administrators.
type Admins struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewAdmins constructs an empty bot-admin set.
func NewAdmins() *Admins {
	return &Admins{ids: make(map[int64]struct{})}
}

// Add inserts userID. Adding an existing admin leaves the set unchanged.
func (a *Admins) Add(userID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ids[userID] = struct{}{}
}

// Remove deletes userID and reports whether it was present.
func (a *Admins) Remove(userID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.ids[userID]; !ok {
		return false
	}
	delete(a.ids, userID)
	return true
}

// Contains reports whether userID is a bot admin.
func (a *Admins) Contains(userID int64) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.ids[userID]
	return ok
}

// List returns the bot admins in ascending order.
func (a *Admins) List() []int64 {
	a.mu.RLock()
	ids := make([]int64, 0, len(a.ids))
	for id := range a.ids {
		ids = append(ids, id)
	}
	a.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of bot admins.
func (a *Admins) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.ids)
}
