// Package store holds the bot's process-wide state: group keywords, pin
// cooldowns and the bot-admin set. Nothing is persisted; every store starts
// empty (apart from the seeded bot admin) and is discarded at exit.
package store

import "errors"

// State owns every in-memory store. Each store guards its own map, so handlers
// for different events can use them concurrently.
type State struct {
	keywords  *Keywords
	cooldowns *Cooldowns
	admins    *Admins
}

// NewState constructs empty stores and seeds the bot-admin set with seedAdmins.
func NewState(seedAdmins ...int64) (*State, error) {
	admins := NewAdmins()
	for _, id := range seedAdmins {
		if id == 0 {
			return nil, errors.New("seed admin id is required")
		}
		admins.Add(id)
	}

	return &State{
		keywords:  NewKeywords(),
		cooldowns: NewCooldowns(PinInterval),
		admins:    admins,
	}, nil
}

// Keywords returns the per-group keyword store.
func (s *State) Keywords() *Keywords {
	return s.keywords
}

// Cooldowns returns the pin cooldown store.
func (s *State) Cooldowns() *Cooldowns {
	return s.cooldowns
}

// Admins returns the bot-admin set.
func (s *State) Admins() *Admins {
	return s.admins
}
