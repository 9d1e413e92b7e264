package store

// Stats is a point-in-time snapshot of the in-memory store sizes.
type Stats struct {
	Groups    int `json:"groups"`
	Pins      int `json:"pins"`
	BotAdmins int `json:"bot_admins"`
}

// Stats reports how many chats have a keyword, how many (chat, user) pin
// records exist and how many bot admins are configured.
func (s *State) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	return Stats{
		Groups:    s.keywords.Len(),
		Pins:      s.cooldowns.Len(),
		BotAdmins: s.admins.Len(),
	}
}
