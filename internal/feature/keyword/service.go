// Package keyword manages the per-group keyword and the group admin panel.
package keyword

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"keyword_pin_bot/internal/domain"
	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/platform"
)

type keywordStore interface {
	Set(chatID int64, keyword string)
	Get(chatID int64) (string, bool)
}

type pinCounter interface {
	Len() int
}

type groupAuthorizer interface {
	IsGroupAdmin(ctx context.Context, members platform.MemberLookup, chatID, userID int64) bool
}

// API is the platform surface needed to answer keyword commands.
type API interface {
	platform.MemberLookup
	platform.Messenger
}

// CallbackAPI is the platform surface needed to answer panel buttons.
type CallbackAPI interface {
	AnswerCallback(ctx context.Context, queryID string) error
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
}

// PanelKeyboard is the inline keyboard attached to the admin panel.
var PanelKeyboard = platform.Keyboard{
	{{Text: domain.ButtonSetKeyword, CallbackData: domain.CallbackSetKeywordTip}},
	{{Text: domain.ButtonViewKeyword, CallbackData: domain.CallbackViewKeyword}},
}

// Service configures group keywords on behalf of group administrators.
type Service struct {
	keywords keywordStore
	pins     pinCounter
	auth     groupAuthorizer
	logger   *logrus.Entry
}

// NewService constructs a Service.
func NewService(keywords keywordStore, pins pinCounter, auth groupAuthorizer, logger *logrus.Entry) *Service {
	if logger == nil {
		logger = logging.Logger()
	}

	return &Service{
		keywords: keywords,
		pins:     pins,
		auth:     auth,
		logger:   logger,
	}
}

// SetKeyword handles /setkeyword <word>. Only the first argument is used and
// it replaces any previous keyword for the chat.
func (s *Service) SetKeyword(ctx context.Context, api API, cmd domain.Command) error {
	if err := s.ready(api); err != nil {
		return err
	}

	if !s.auth.IsGroupAdmin(ctx, api, cmd.ChatID, cmd.UserID) {
		return reply(ctx, api, cmd.ChatID, domain.TextSetKeywordForbidden)
	}

	if len(cmd.Args) == 0 {
		return reply(ctx, api, cmd.ChatID, domain.TextSetKeywordUsage)
	}

	word := cmd.Args[0]
	s.keywords.Set(cmd.ChatID, word)

	s.logger.WithFields(logging.Fields{
		"event":   "keyword_set",
		"chat_id": cmd.ChatID,
		"user_id": cmd.UserID,
		"keyword": word,
	}).Info("group keyword updated")

	return reply(ctx, api, cmd.ChatID, domain.KeywordSetText(word))
}

// AdminPanel handles /admin. The pinned-user count covers every chat, not only
// the one the panel was opened in.
func (s *Service) AdminPanel(ctx context.Context, api API, cmd domain.Command) error {
	if err := s.ready(api); err != nil {
		return err
	}

	if !s.auth.IsGroupAdmin(ctx, api, cmd.ChatID, cmd.UserID) {
		return reply(ctx, api, cmd.ChatID, domain.TextNotGroupAdmin)
	}

	text := domain.AdminPanelText(s.ViewKeyword(cmd.ChatID), s.pins.Len())
	if err := api.SendMessage(ctx, cmd.ChatID, text, PanelKeyboard); err != nil {
		return fmt.Errorf("send admin panel: %w", err)
	}

	return nil
}

// ViewKeyword returns the chat's keyword or domain.KeywordNotSet.
func (s *Service) ViewKeyword(chatID int64) string {
	if keyword, ok := s.keywords.Get(chatID); ok {
		return keyword
	}

	return domain.KeywordNotSet
}

// HandleCallback answers the admin panel buttons. Unknown callback data is
// acknowledged and otherwise ignored.
func (s *Service) HandleCallback(ctx context.Context, api CallbackAPI, action domain.CallbackAction) error {
	if api == nil {
		return errors.New("callback api is required")
	}

	if err := api.AnswerCallback(ctx, action.QueryID); err != nil {
		s.logger.WithFields(logging.Fields{
			"event":   "callback_answer_failed",
			"chat_id": action.ChatID,
		}).WithError(err).Warn("failed to answer callback query")
	}

	var text string
	switch action.Data {
	case domain.CallbackViewKeyword:
		text = domain.CurrentKeywordText(s.ViewKeyword(action.ChatID))
	case domain.CallbackSetKeywordTip:
		text = domain.TextSetKeywordTip
	default:
		s.logger.WithFields(logging.Fields{
			"event":   "callback_ignored",
			"chat_id": action.ChatID,
			"data":    action.Data,
		}).Debug("ignored unknown callback data")
		return nil
	}

	if err := api.EditMessage(ctx, action.ChatID, action.MessageID, text); err != nil {
		return fmt.Errorf("edit panel message: %w", err)
	}

	return nil
}

func (s *Service) ready(api API) error {
	if s == nil || s.keywords == nil || s.pins == nil || s.auth == nil {
		return errors.New("keyword service is not initialized")
	}
	if api == nil {
		return errors.New("platform api is required")
	}

	return nil
}

func reply(ctx context.Context, api platform.Messenger, chatID int64, text string) error {
	if err := api.SendMessage(ctx, chatID, text, nil); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}

	return nil
}
