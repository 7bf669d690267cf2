package handler

import (
	"grammarbot/internal/format"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleAdminStats handles /admin_stats command - only for the admin.
// Being an authorized user is not enough here.
func (h *Handler) handleAdminStats(c tele.Context) error {
	userID := c.Sender().ID

	if !h.ledger.IsAdmin(userID) {
		h.logger.Warn("Non-admin requested stats", zap.Int64("user_id", userID))
		return c.Send("⚠️ This command is only available to the bot administrator.")
	}

	report := h.stats.BuildReport()
	for _, part := range format.Split(report, h.cfg.MaxMessageLength) {
		if err := c.Send(part, tele.ModeHTML); err != nil {
			return err
		}
	}
	return nil
}
