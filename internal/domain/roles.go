// Package domain defines shared domain constants and types.
package domain

import "strings"

const (
	// MemberStatusCreator is the chat member status reported for a group owner.
	MemberStatusCreator = "creator"
	// MemberStatusAdministrator is the chat member status reported for a group administrator.
	MemberStatusAdministrator = "administrator"
)

// Tier names the authorization tier a command requires. Feature services check
// it; the router only logs it. Tiers are independent:
// a bot admin gains nothing in a chat where they are not a group admin, and a
// group admin gains nothing bot-wide.
type Tier string

const (
	// TierNone requires no authorization.
	TierNone Tier = "none"
	// TierGroupAdmin requires the caller to administer the chat the command was sent in.
	TierGroupAdmin Tier = "group_admin"
	// TierBotAdmin requires the caller to be in the bot-admin set.
	TierBotAdmin Tier = "bot_admin"
)

// IsGroupAdminStatus reports whether a platform member status grants group
// administrator privileges.
func IsGroupAdminStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case MemberStatusCreator, MemberStatusAdministrator:
		return true
	default:
		return false
	}
}
