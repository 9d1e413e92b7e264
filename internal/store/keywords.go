package store

import "sync"

// Keywords maps a chat to its required biography keyword. A chat has at most
// one keyword; Set overwrites.
type Keywords struct {
	mu     sync.RWMutex
	byChat map[int64]string
}

// NewKeywords constructs an empty keyword store.
func NewKeywords() *Keywords {
	return &Keywords{byChat: make(map[int64]string)}
}

// Set stores keyword for chatID, replacing any previous value.
func (k *Keywords) Set(chatID int64, keyword string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.byChat[chatID] = keyword
}

// Get returns the keyword for chatID. ok is false when none is configured.
func (k *Keywords) Get(chatID int64) (keyword string, ok bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	keyword, ok = k.byChat[chatID]
	return keyword, ok && keyword != ""
}

// Len returns the number of chats with a keyword.
func (k *Keywords) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return len(k.byChat)
}
