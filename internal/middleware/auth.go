package middleware

import (
	"grammarbot/internal/repository"
	"grammarbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Auth gates every update on the user ledger. Known users get their
// activity refreshed; unknown users are enrolled while a slot is free,
// and turned away once the capacity is reached.
func Auth(ledger *service.LedgerService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			if ledger.IsAuthorized(sender.ID) {
				ledger.Touch(sender.ID)
				return next(c)
			}

			result, err := ledger.Authorize(sender.ID, sender.Username, sender.FirstName)
			if err != nil {
				// Enrolled in memory; the write will be retried on the
				// next mutation
				logger.Error("Failed to persist new user", zap.Error(err))
			}

			switch result {
			case repository.Added:
				logger.Info("Enrolled new user",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
				)
				return next(c)
			case repository.CapacityExceeded:
				logger.Warn("Rejected user over capacity", zap.Int64("user_id", sender.ID))
				return c.Send(
					"⚠️ <b>User limit exceeded</b>\n\n"+
						"This bot has reached its maximum capacity. "+
						"Please wait until the administrator extends the user limit.",
					tele.ModeHTML,
				)
			default:
				return next(c)
			}
		}
	}
}
