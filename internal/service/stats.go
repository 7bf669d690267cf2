package service

import (
	"fmt"
	"strings"
)

// StatsService renders ledger statistics for the admin
type StatsService struct {
	ledger *LedgerService
}

// NewStatsService creates a new stats service
func NewStatsService(ledger *LedgerService) *StatsService {
	return &StatsService{ledger: ledger}
}

// BuildReport returns the admin statistics message in Telegram HTML
func (s *StatsService) BuildReport() string {
	stats := s.ledger.Stats()

	var b strings.Builder
	b.WriteString("📊 <b>Bot Statistics</b>\n\n")
	fmt.Fprintf(&b, "<b>Total Users:</b> %d/%d\n", stats.Count, stats.Capacity)
	fmt.Fprintf(&b, "<b>Available Slots:</b> %d\n\n", stats.AvailableSlots())

	if len(stats.Users) == 0 {
		b.WriteString("<i>No registered users yet.</i>")
		return b.String()
	}

	b.WriteString("👥 <b>Registered Users:</b>\n\n")
	for i, u := range stats.Users {
		username := "No username"
		if u.Username != "" {
			username = "@" + u.Username
		}

		fmt.Fprintf(&b, "<b>%d. %s</b> (%s)\n", i+1, u.FirstName, username)
		fmt.Fprintf(&b, "   ID: <code>%d</code>\n", u.ID)
		fmt.Fprintf(&b, "   Joined: %s\n", u.JoinedAt.Format("Jan 02, 2006 15:04"))
		fmt.Fprintf(&b, "   Tokens: %s\n", formatTokens(u.TotalTokens))
		fmt.Fprintf(&b, "   Last Activity: %s\n\n", u.LastActivity.Format("Jan 02, 2006 15:04"))
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatTokens renders a count with thousands separators
func formatTokens(n int) string {
	raw := fmt.Sprintf("%d", n)
	if len(raw) <= 3 {
		return raw
	}

	var b strings.Builder
	lead := len(raw) % 3
	if lead > 0 {
		b.WriteString(raw[:lead])
	}
	for i := lead; i < len(raw); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(raw[i : i+3])
	}
	return b.String()
}
