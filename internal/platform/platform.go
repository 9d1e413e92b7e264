// Package platform adapts the Telegram Bot API to the small set of calls the
// bot makes. Every call is bounded by a per-call timeout.
package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Button is one inline keyboard button.
type Button struct {
	Text         string
	CallbackData string
}

// Keyboard is an inline keyboard laid out in rows.
type Keyboard [][]Button

// MemberLookup resolves a user's role within a chat.
type MemberLookup interface {
	// ChatMemberStatus returns the member status of userID in chatID, e.g.
	// "administrator" or "creator".
	ChatMemberStatus(ctx context.Context, chatID, userID int64) (string, error)
}

// Messenger sends messages to chats.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard Keyboard) error
}

// Client is the chat-platform surface used by handlers.
type Client interface {
	MemberLookup
	Messenger
	// UserBio returns the profile biography of userID, empty when unset.
	UserBio(ctx context.Context, userID int64) (string, error)
	PinMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, queryID string) error
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
}

var _ Client = (*Telegram)(nil)

// Telegram implements Client on top of a go-telegram bot instance.
type Telegram struct {
	bot     *bot.Bot
	timeout time.Duration
}

// NewTelegram wraps b, bounding each call by timeout.
func NewTelegram(b *bot.Bot, timeout time.Duration) (*Telegram, error) {
	if b == nil {
		return nil, errors.New("telegram bot is required")
	}
	if timeout <= 0 {
		return nil, errors.New("platform timeout must be greater than 0")
	}

	return &Telegram{bot: b, timeout: timeout}, nil
}

// ChatMemberStatus queries getChatMember.
func (t *Telegram) ChatMemberStatus(ctx context.Context, chatID, userID int64) (string, error) {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	member, err := t.bot.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return "", fmt.Errorf("get chat member: %w", err)
	}
	if member == nil {
		return "", errors.New("get chat member: empty result")
	}

	return string(member.Type), nil
}

// UserBio queries getChat on the user's private chat, which carries the bio.
func (t *Telegram) UserBio(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	chat, err := t.bot.GetChat(ctx, &bot.GetChatParams{ChatID: userID})
	if err != nil {
		return "", fmt.Errorf("get chat: %w", err)
	}
	if chat == nil {
		return "", nil
	}

	return chat.Bio, nil
}

// PinMessage pins messageID in chatID.
func (t *Telegram) PinMessage(ctx context.Context, chatID int64, messageID int) error {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	if _, err := t.bot.PinChatMessage(ctx, &bot.PinChatMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		return fmt.Errorf("pin chat message: %w", err)
	}

	return nil
}

// SendMessage sends text to chatID with an optional inline keyboard.
func (t *Telegram) SendMessage(ctx context.Context, chatID int64, text string, keyboard Keyboard) error {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if len(keyboard) > 0 {
		params.ReplyMarkup = inlineMarkup(keyboard)
	}

	if _, err := t.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// AnswerCallback acknowledges a callback query so the client stops its spinner.
func (t *Telegram) AnswerCallback(ctx context.Context, queryID string) error {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	if _, err := t.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
	}); err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}

	return nil
}

// EditMessage replaces the text of a message previously sent by the bot.
func (t *Telegram) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	if _, err := t.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}); err != nil {
		return fmt.Errorf("edit message text: %w", err)
	}

	return nil
}

func (t *Telegram) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithTimeout(ctx, t.timeout)
}

func inlineMarkup(keyboard Keyboard) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:         button.Text,
				CallbackData: button.CallbackData,
			})
		}
		rows = append(rows, buttons)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
