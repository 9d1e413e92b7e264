package domain

import "strings"

// Chat types that the pin logic acts on.
const (
	ChatTypeGroup      = "group"
	ChatTypeSupergroup = "supergroup"
	ChatTypePrivate    = "private"
)

// Event is one decoded inbound platform update. The set of implementations is
// closed: Command, CallbackAction and TextMessage.
type Event interface {
	// Origin returns the chat and user the event came from.
	Origin() (chatID, userID int64)
	isEvent()
}

// Command is a slash command with its whitespace-separated arguments.
// Mention is the bot username from a "/name@bot" suffix, empty when absent.
type Command struct {
	ChatID    int64
	ChatType  string
	UserID    int64
	MessageID int
	Name      string
	Mention   string
	Args      []string
}

// CallbackAction is an inline keyboard button press.
type CallbackAction struct {
	QueryID   string
	ChatID    int64
	MessageID int
	UserID    int64
	Data      string
}

// TextMessage is a plain, non-command text message.
type TextMessage struct {
	ChatID    int64
	ChatType  string
	ChatTitle string
	UserID    int64
	UserName  string
	MessageID int
	Text      string
}

func (c Command) Origin() (int64, int64)        { return c.ChatID, c.UserID }
func (c CallbackAction) Origin() (int64, int64) { return c.ChatID, c.UserID }
func (m TextMessage) Origin() (int64, int64)    { return m.ChatID, m.UserID }

func (Command) isEvent()        {}
func (CallbackAction) isEvent() {}
func (TextMessage) isEvent()    {}

// AddressedTo reports whether the command carries no bot suffix or names
// username. Usernames compare case-insensitively.
func (c Command) AddressedTo(username string) bool {
	return c.Mention == "" || strings.EqualFold(c.Mention, strings.TrimPrefix(username, "@"))
}

// InGroup reports whether the message was sent to a group or supergroup.
func (m TextMessage) InGroup() bool {
	return IsGroupChat(m.ChatType)
}

// IsGroupChat reports whether chatType is a group or supergroup.
func IsGroupChat(chatType string) bool {
	return chatType == ChatTypeGroup || chatType == ChatTypeSupergroup
}

// ParseCommand splits text of the form "/name@bot arg1 arg2" into a lowercased
// command name, the bot mention and the arguments. ok is false when text is
// not a command.
func ParseCommand(text string) (name, mention string, args []string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", "", nil, false
	}

	name = strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name, mention = name[:at], name[at+1:]
	}
	if name == "" {
		return "", "", nil, false
	}

	return strings.ToLower(name), mention, fields[1:], true
}
