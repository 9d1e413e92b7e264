// Package pin decides whether a member's group message gets pinned: the
// member's profile bio must contain the chat keyword and the member must not
// have been pinned in that chat within the cooldown window.
package pin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"keyword_pin_bot/internal/domain"
	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/platform"
	"keyword_pin_bot/internal/store"
)

// Outcome describes what HandleMessage did with a message.
type Outcome string

const (
	OutcomeNotGroup         Outcome = "not_group"
	OutcomeAdminExempt      Outcome = "admin_exempt"
	OutcomeMemberLookupFail Outcome = "member_lookup_failed"
	OutcomeNoKeyword        Outcome = "no_keyword"
	OutcomeBioLookupFail    Outcome = "bio_lookup_failed"
	OutcomeNoMatch          Outcome = "no_match"
	OutcomeCooldown         Outcome = "cooldown"
	OutcomePinFailed        Outcome = "pin_failed"
	OutcomePinned           Outcome = "pinned"
)

type keywordLookup interface {
	Get(chatID int64) (string, bool)
}

type cooldownStore interface {
	Reserve(key store.PinKey, now time.Time) (store.Reservation, time.Duration, bool)
	Release(res store.Reservation)
}

type groupAuthorizer interface {
	GroupAdmin(ctx context.Context, members platform.MemberLookup, chatID, userID int64) (bool, error)
}

// API is the platform surface needed by the pin decision.
type API interface {
	platform.MemberLookup
	UserBio(ctx context.Context, userID int64) (string, error)
	PinMessage(ctx context.Context, chatID int64, messageID int) error
}

// Service applies the pin decision to incoming group messages.
type Service struct {
	keywords  keywordLookup
	cooldowns cooldownStore
	auth      groupAuthorizer
	now       func() time.Time
	logger    *logrus.Entry
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source; used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a Service.
func NewService(keywords keywordLookup, cooldowns cooldownStore, auth groupAuthorizer, logger *logrus.Entry, opts ...Option) *Service {
	if logger == nil {
		logger = logging.Logger()
	}

	s := &Service{
		keywords:  keywords,
		cooldowns: cooldowns,
		auth:      auth,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// HandleMessage runs the pin decision for msg. Platform failures are logged
// and reported through the outcome; no state changes unless the pin succeeds.
func (s *Service) HandleMessage(ctx context.Context, api API, msg domain.TextMessage) (Outcome, error) {
	if s == nil || s.keywords == nil || s.cooldowns == nil || s.auth == nil {
		return "", errors.New("pin service is not initialized")
	}
	if api == nil {
		return "", errors.New("platform api is required")
	}

	logger := logging.Enrich(s.logger, logging.Context{ChatID: msg.ChatID, UserID: msg.UserID})

	if !msg.InGroup() {
		return OutcomeNotGroup, nil
	}

	isAdmin, err := s.auth.GroupAdmin(ctx, api, msg.ChatID, msg.UserID)
	if err != nil {
		logger.WithField("event", "pin_member_lookup_failed").WithError(err).Warn("chat member lookup failed, skipping message")
		return OutcomeMemberLookupFail, nil
	}
	if isAdmin {
		return OutcomeAdminExempt, nil
	}

	required, ok := s.keywords.Get(msg.ChatID)
	if !ok {
		return OutcomeNoKeyword, nil
	}

	bio, err := api.UserBio(ctx, msg.UserID)
	if err != nil {
		logger.WithField("event", "pin_bio_lookup_failed").WithError(err).Warn("bio lookup failed, skipping message")
		return OutcomeBioLookupFail, nil
	}

	if !MatchesKeyword(bio, required) {
		logger.WithFields(logging.Fields{
			"event":     "pin_no_match",
			"user_name": msg.UserName,
		}).Info("user bio doesn't contain the required keyword")
		return OutcomeNoMatch, nil
	}

	key := store.PinKey{ChatID: msg.ChatID, UserID: msg.UserID}
	reservation, remaining, ok := s.cooldowns.Reserve(key, s.now())
	if !ok {
		logger.WithFields(logging.Fields{
			"event":     "pin_cooldown",
			"user_name": msg.UserName,
			"remaining": remaining.Round(time.Second).String(),
		}).Info("skipping pin during cooldown")
		return OutcomeCooldown, nil
	}

	if err := api.PinMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
		s.cooldowns.Release(reservation)
		logger.WithFields(logging.Fields{
			"event":      "pin_failed",
			"message_id": msg.MessageID,
		}).WithError(err).Warn("pin failed")
		return OutcomePinFailed, nil
	}

	logger.WithFields(logging.Fields{
		"event":      "pin_pinned",
		"message_id": msg.MessageID,
		"user_name":  msg.UserName,
		"chat_title": msg.ChatTitle,
	}).Info("pinned message")

	return OutcomePinned, nil
}

// MatchesKeyword reports whether keyword occurs in bio, ignoring case.
func MatchesKeyword(bio, keyword string) bool {
	if keyword == "" {
		return false
	}

	return strings.Contains(strings.ToLower(bio), strings.ToLower(keyword))
}
