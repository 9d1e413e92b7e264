package telegram

import (
	"strings"

	"github.com/go-telegram/bot/models"

	"keyword_pin_bot/internal/domain"
)

// decodeUpdate turns a raw update into one of the domain event variants.
// Edited messages, messages without text or sender, commands addressed to
// another bot, and every other update kind are dropped.
func decodeUpdate(update *models.Update, botUsername string) (domain.Event, bool) {
	switch {
	case update == nil:
		return nil, false
	case update.Message != nil:
		return decodeMessage(update.Message, botUsername)
	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		return domain.CallbackAction{
			QueryID:   query.ID,
			ChatID:    messageChatID(query.Message),
			MessageID: messageID(query.Message),
			UserID:    query.From.ID,
			Data:      strings.TrimSpace(query.Data),
		}, true
	default:
		return nil, false
	}
}

func decodeMessage(msg *models.Message, botUsername string) (domain.Event, bool) {
	if msg.From == nil || strings.TrimSpace(msg.Text) == "" {
		return nil, false
	}

	if name, mention, args, ok := domain.ParseCommand(msg.Text); ok {
		cmd := domain.Command{
			ChatID:    msg.Chat.ID,
			ChatType:  string(msg.Chat.Type),
			UserID:    msg.From.ID,
			MessageID: msg.ID,
			Name:      name,
			Mention:   mention,
			Args:      args,
		}
		if !cmd.AddressedTo(botUsername) {
			return nil, false
		}
		return cmd, true
	}

	return domain.TextMessage{
		ChatID:    msg.Chat.ID,
		ChatType:  string(msg.Chat.Type),
		ChatTitle: msg.Chat.Title,
		UserID:    msg.From.ID,
		UserName:  msg.From.FirstName,
		MessageID: msg.ID,
		Text:      msg.Text,
	}, true
}
