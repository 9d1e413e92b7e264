// Package auth implements the two independent authorization tiers: group
// administrators (asked live from the platform) and bot admins (held in memory).
package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"keyword_pin_bot/internal/domain"
	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/platform"
)

type adminSet interface {
	Contains(userID int64) bool
}

// Checker answers authorization questions. It holds no per-chat cache; every
// group-admin check is a fresh platform query.
type Checker struct {
	admins adminSet
	logger *logrus.Entry
}

// NewChecker constructs a Checker backed by the bot-admin set.
func NewChecker(admins adminSet, logger *logrus.Entry) *Checker {
	if logger == nil {
		logger = logging.Logger()
	}

	return &Checker{
		admins: admins,
		logger: logger,
	}
}

// GroupAdmin reports whether userID administers chatID according to the
// platform. The lookup error is returned untouched so callers can tell "not an
// admin" apart from "could not ask".
func (c *Checker) GroupAdmin(ctx context.Context, members platform.MemberLookup, chatID, userID int64) (bool, error) {
	if members == nil {
		return false, errors.New("member lookup is not configured")
	}

	status, err := members.ChatMemberStatus(ctx, chatID, userID)
	if err != nil {
		return false, err
	}

	return domain.IsGroupAdminStatus(status), nil
}

// IsGroupAdmin is GroupAdmin with lookup failures treated as "not an admin".
func (c *Checker) IsGroupAdmin(ctx context.Context, members platform.MemberLookup, chatID, userID int64) bool {
	ok, err := c.GroupAdmin(ctx, members, chatID, userID)
	if err != nil {
		logging.Enrich(c.logger, logging.Context{
			ChatID: chatID,
			UserID: userID,
			Event:  "auth_lookup_failed",
		}).WithError(err).Warn("group admin lookup failed, denying")
		return false
	}

	return ok
}

// IsBotAdmin reports whether userID is in the bot-admin set.
func (c *Checker) IsBotAdmin(userID int64) bool {
	if c == nil || c.admins == nil {
		return false
	}

	return c.admins.Contains(userID)
}
