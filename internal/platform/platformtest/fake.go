// Package platformtest provides an in-memory platform.Client for handler tests.
package platformtest

import (
	"context"
	"sync"

	"keyword_pin_bot/internal/platform"
)

// Sent is one message recorded by Fake.SendMessage.
type Sent struct {
	ChatID   int64
	Text     string
	Keyboard platform.Keyboard
}

// Edited is one message edit recorded by Fake.EditMessage.
type Edited struct {
	ChatID    int64
	MessageID int
	Text      string
}

// Pinned is one pin recorded by Fake.PinMessage.
type Pinned struct {
	ChatID    int64
	MessageID int
}

// Fake is a scriptable platform.Client. Zero value is ready to use: every
// member is a plain "member" with an empty bio and every call succeeds.
type Fake struct {
	mu sync.Mutex

	// Statuses maps chat -> user -> member status.
	Statuses map[int64]map[int64]string
	// Bios maps user -> profile biography.
	Bios map[int64]string

	MemberErr error
	BioErr    error
	PinErr    error
	EditErr   error
	// SendErrs fails sends to specific chats.
	SendErrs map[int64]error

	MemberCalls int
	BioCalls    int
	sent        []Sent
	edited      []Edited
	pinned      []Pinned
	answered    []string
}

var _ platform.Client = (*Fake)(nil)

// SetStatus records the member status of userID in chatID.
func (f *Fake) SetStatus(chatID, userID int64, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Statuses == nil {
		f.Statuses = make(map[int64]map[int64]string)
	}
	if f.Statuses[chatID] == nil {
		f.Statuses[chatID] = make(map[int64]string)
	}
	f.Statuses[chatID][userID] = status
}

// SetBio records the profile biography of userID.
func (f *Fake) SetBio(userID int64, bio string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Bios == nil {
		f.Bios = make(map[int64]string)
	}
	f.Bios[userID] = bio
}

func (f *Fake) ChatMemberStatus(_ context.Context, chatID, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.MemberCalls++
	if f.MemberErr != nil {
		return "", f.MemberErr
	}
	if status, ok := f.Statuses[chatID][userID]; ok {
		return status, nil
	}
	return "member", nil
}

func (f *Fake) UserBio(_ context.Context, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.BioCalls++
	if f.BioErr != nil {
		return "", f.BioErr
	}
	return f.Bios[userID], nil
}

func (f *Fake) PinMessage(_ context.Context, chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.PinErr != nil {
		return f.PinErr
	}
	f.pinned = append(f.pinned, Pinned{ChatID: chatID, MessageID: messageID})
	return nil
}

func (f *Fake) SendMessage(_ context.Context, chatID int64, text string, keyboard platform.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.SendErrs[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, Sent{ChatID: chatID, Text: text, Keyboard: keyboard})
	return nil
}

func (f *Fake) AnswerCallback(_ context.Context, queryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.answered = append(f.answered, queryID)
	return nil
}

func (f *Fake) EditMessage(_ context.Context, chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.EditErr != nil {
		return f.EditErr
	}
	f.edited = append(f.edited, Edited{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

// SentMessages returns a copy of every successful send.
func (f *Fake) SentMessages() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Sent(nil), f.sent...)
}

// LastSent returns the most recent successful send.
func (f *Fake) LastSent() (Sent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.sent) == 0 {
		return Sent{}, false
	}
	return f.sent[len(f.sent)-1], true
}

// PinnedMessages returns a copy of every successful pin.
func (f *Fake) PinnedMessages() []Pinned {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Pinned(nil), f.pinned...)
}

// EditedMessages returns a copy of every successful edit.
func (f *Fake) EditedMessages() []Edited {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Edited(nil), f.edited...)
}

// AnsweredCallbacks returns the callback query ids acknowledged so far.
func (f *Fake) AnsweredCallbacks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.answered...)
}
