// Package botadmin implements the bot-wide admin commands: managing the
// bot-admin set and broadcasting to groups.
package botadmin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"keyword_pin_bot/internal/domain"
	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/platform"
)

type adminStore interface {
	Add(userID int64)
	Remove(userID int64) bool
	List() []int64
}

type botAuthorizer interface {
	IsBotAdmin(userID int64) bool
}

type pinnedChats interface {
	Chats() []int64
}

// Service handles bot-admin commands.
type Service struct {
	admins adminStore
	auth   botAuthorizer
	chats  pinnedChats
	logger *logrus.Entry
}

// NewService constructs a Service.
func NewService(admins adminStore, auth botAuthorizer, chats pinnedChats, logger *logrus.Entry) *Service {
	if logger == nil {
		logger = logging.Logger()
	}

	return &Service{
		admins: admins,
		auth:   auth,
		chats:  chats,
		logger: logger,
	}
}

// EnsureSeed adds the configured seed admin at startup.
func (s *Service) EnsureSeed(seedID int64) error {
	if s == nil || s.admins == nil {
		return errors.New("bot admin service is not initialized")
	}
	if seedID == 0 {
		return errors.New("seed admin id is required")
	}

	s.admins.Add(seedID)

	s.logger.WithFields(logging.Fields{
		"event":      "bot_admin_seed",
		"seed_id":    seedID,
		"bot_admins": len(s.admins.List()),
	}).Info("ensured seed bot admin")

	return nil
}

// AddAdmin handles /addadmin <user_id>. Adding an existing admin succeeds
// without changing the set.
func (s *Service) AddAdmin(ctx context.Context, api platform.Messenger, cmd domain.Command) error {
	if err := s.ready(api); err != nil {
		return err
	}

	if !s.auth.IsBotAdmin(cmd.UserID) {
		return reply(ctx, api, cmd.ChatID, domain.TextAddAdminDenied)
	}
	if len(cmd.Args) == 0 {
		return reply(ctx, api, cmd.ChatID, domain.TextAddAdminUsage)
	}

	target, err := ParseUserID(cmd.Args[0])
	if err != nil {
		return reply(ctx, api, cmd.ChatID, domain.TextInvalidUserID)
	}

	s.admins.Add(target)

	s.logger.WithFields(logging.Fields{
		"event":     "bot_admin_added",
		"user_id":   cmd.UserID,
		"target_id": target,
	}).Info("bot admin added")

	return reply(ctx, api, cmd.ChatID, domain.AdminAddedText(target))
}

// RemoveAdmin handles /removeadmin <user_id>.
func (s *Service) RemoveAdmin(ctx context.Context, api platform.Messenger, cmd domain.Command) error {
	if err := s.ready(api); err != nil {
		return err
	}

	if !s.auth.IsBotAdmin(cmd.UserID) {
		return reply(ctx, api, cmd.ChatID, domain.TextRemoveAdminDenied)
	}
	if len(cmd.Args) == 0 {
		return reply(ctx, api, cmd.ChatID, domain.TextRemoveAdminUsage)
	}

	target, err := ParseUserID(cmd.Args[0])
	if err != nil {
		return reply(ctx, api, cmd.ChatID, domain.TextInvalidUserID)
	}

	if !s.admins.Remove(target) {
		return reply(ctx, api, cmd.ChatID, domain.TextNotABotAdmin)
	}

	s.logger.WithFields(logging.Fields{
		"event":     "bot_admin_removed",
		"user_id":   cmd.UserID,
		"target_id": target,
	}).Info("bot admin removed")

	return reply(ctx, api, cmd.ChatID, domain.AdminRemovedText(target))
}

// ListAdmins handles /listadmins.
func (s *Service) ListAdmins(ctx context.Context, api platform.Messenger, cmd domain.Command) error {
	if err := s.ready(api); err != nil {
		return err
	}

	if !s.auth.IsBotAdmin(cmd.UserID) {
		return reply(ctx, api, cmd.ChatID, domain.TextNotBotAdmin)
	}

	return reply(ctx, api, cmd.ChatID, domain.AdminListText(s.admins.List()))
}

// Broadcast handles /broadcast <message...>. The message goes once to every
// chat that has had at least one pin; chats without a pin are not reached
// even if they have a keyword. Per-chat send failures only lower the count.
func (s *Service) Broadcast(ctx context.Context, api platform.Messenger, cmd domain.Command) (int, error) {
	if err := s.ready(api); err != nil {
		return 0, err
	}
	if s.chats == nil {
		return 0, errors.New("broadcast targets are not configured")
	}

	if !s.auth.IsBotAdmin(cmd.UserID) {
		return 0, reply(ctx, api, cmd.ChatID, domain.TextNotBotAdmin)
	}

	text := strings.Join(cmd.Args, " ")
	if strings.TrimSpace(text) == "" {
		return 0, reply(ctx, api, cmd.ChatID, domain.TextBroadcastUsage)
	}

	targets := s.chats.Chats()
	sent := 0
	for _, chatID := range targets {
		if err := api.SendMessage(ctx, chatID, text, nil); err != nil {
			s.logger.WithFields(logging.Fields{
				"event":   "broadcast_send_failed",
				"chat_id": chatID,
			}).WithError(err).Warn("broadcast delivery failed")
			continue
		}
		sent++
	}

	s.logger.WithFields(logging.Fields{
		"event":   "broadcast_sent",
		"user_id": cmd.UserID,
		"targets": len(targets),
		"sent":    sent,
	}).Info("broadcast finished")

	return sent, reply(ctx, api, cmd.ChatID, domain.BroadcastSentText(sent))
}

// ParseUserID parses a decimal Telegram user id argument.
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse user id %q: %w", raw, err)
	}

	return id, nil
}

func (s *Service) ready(api platform.Messenger) error {
	if s == nil || s.admins == nil || s.auth == nil {
		return errors.New("bot admin service is not initialized")
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
