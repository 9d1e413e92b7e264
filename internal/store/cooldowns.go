package store

import (
	"sort"
	"sync"
	"time"
)

// PinInterval is the minimum time between two pins of the same user in the
// same chat.
const PinInterval = 12 * time.Hour

// PinKey identifies one member of one chat.
type PinKey struct {
	ChatID int64
	UserID int64
}

// Cooldowns records the last successful pin per (chat, user). Entries are
// never pruned.
type Cooldowns struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[PinKey]time.Time
}

// NewCooldowns constructs an empty cooldown store enforcing interval.
func NewCooldowns(interval time.Duration) *Cooldowns {
	return &Cooldowns{
		interval: interval,
		last:     make(map[PinKey]time.Time),
	}
}

// Reservation is a pending pin slot returned by Reserve. Release it when the
// pin does not go through so the previous timestamp is restored.
type Reservation struct {
	key     PinKey
	at      time.Time
	prev    time.Time
	hadPrev bool
}

// Reserve records now for key when at least the cooldown interval has passed
// since the last recorded pin, or when none exists. ok is false while the
// cooldown is active, in which case remaining is the time left.
// The record is visible to Len and Chats until a matching Release undoes it.
func (c *Cooldowns) Reserve(key PinKey, now time.Time) (res Reservation, remaining time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, hadPrev := c.last[key]
	if hadPrev {
		if elapsed := now.Sub(prev); elapsed < c.interval {
			return Reservation{}, c.interval - elapsed, false
		}
	}

	c.last[key] = now
	return Reservation{key: key, at: now, prev: prev, hadPrev: hadPrev}, 0, true
}

// Release undoes a reservation whose pin failed. It is a no-op when another
// reservation has replaced the entry in the meantime.
func (c *Cooldowns) Release(res Reservation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.last[res.key]
	if !ok || !current.Equal(res.at) {
		return
	}

	if res.hadPrev {
		c.last[res.key] = res.prev
		return
	}
	delete(c.last, res.key)
}

// LastPin returns the last recorded pin time for key.
func (c *Cooldowns) LastPin(key PinKey) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	at, ok := c.last[key]
	return at, ok
}

// Len returns the number of (chat, user) entries across all chats.
func (c *Cooldowns) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.last)
}

// Chats returns every distinct chat that has at least one recorded pin, in
// ascending order.
func (c *Cooldowns) Chats() []int64 {
	c.mu.Lock()
	seen := make(map[int64]struct{}, len(c.last))
	for key := range c.last {
		seen[key.ChatID] = struct{}{}
	}
	c.mu.Unlock()

	chats := make([]int64, 0, len(seen))
	for chatID := range seen {
		chats = append(chats, chatID)
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i] < chats[j] })

	return chats
}
