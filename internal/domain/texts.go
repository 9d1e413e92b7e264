package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// KeywordNotSet is shown wherever a chat has no keyword configured.
const KeywordNotSet = "<not set>"

// Callback data carried by the admin panel buttons.
const (
	CallbackViewKeyword   = "viewkeyword"
	CallbackSetKeywordTip = "setkeyword_prompt"
)

// User-visible reply texts.
const (
	TextWelcome = "🙏 Welcome!\n\n📌 If your bio contains the required word set by group admins, your message will be pinned."

	TextNotGroupAdmin       = "❌ You are not an admin!"
	TextSetKeywordForbidden = "❌ Only group admins can set the keyword."
	TextSetKeywordUsage     = "Usage: /setkeyword <word>"
	TextSetKeywordTip       = "Use /setkeyword <word> to update the required keyword."

	TextNotBotAdmin       = "❌ You are not a bot admin!"
	TextAddAdminDenied    = "❌ Only existing bot admins can add new ones!"
	TextRemoveAdminDenied = "❌ Only existing bot admins can remove admins!"
	TextAddAdminUsage     = "Usage: /addadmin <user_id>"
	TextRemoveAdminUsage  = "Usage: /removeadmin <user_id>"
	TextInvalidUserID     = "❌ Invalid user ID."
	TextNotABotAdmin      = "User is not a bot admin."
	TextBroadcastUsage    = "Usage: /broadcast <your message>"

	ButtonSetKeyword  = "Set Keyword"
	ButtonViewKeyword = "View Keyword"
)

// KeywordSetText confirms a new keyword.
func KeywordSetText(keyword string) string {
	return fmt.Sprintf("✅ Required keyword for this group is now: '%s'", keyword)
}

// CurrentKeywordText answers the view-keyword button.
func CurrentKeywordText(keyword string) string {
	return "🔑 Current keyword: " + keyword
}

// AdminPanelText renders the admin panel body.
func AdminPanelText(keyword string, pinnedUsers int) string {
	return fmt.Sprintf("🛠️ Admin Panel\n\n- Required keyword: '%s'\n- Pinned users: %d", keyword, pinnedUsers)
}

// AdminAddedText confirms a bot-admin addition.
func AdminAddedText(userID int64) string {
	return fmt.Sprintf("✅ User %d added as bot admin.", userID)
}

// AdminRemovedText confirms a bot-admin removal.
func AdminRemovedText(userID int64) string {
	return fmt.Sprintf("✅ User %d removed from bot admins.", userID)
}

// AdminListText lists bot admins one per line.
func AdminListText(ids []int64) string {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, strconv.FormatInt(id, 10))
	}
	return "🤖 Bot Admins:\n" + strings.Join(lines, "\n")
}

// BroadcastSentText reports how many groups a broadcast reached.
func BroadcastSentText(groups int) string {
	return fmt.Sprintf("✅ Broadcast sent to %d groups.", groups)
}
