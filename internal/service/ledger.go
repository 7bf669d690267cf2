package service

import (
	"grammarbot/internal/domain"
	"grammarbot/internal/repository"

	"go.uber.org/zap"
)

// LedgerService handles authorization and usage accounting
type LedgerService struct {
	store  repository.LedgerStore
	logger *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(store repository.LedgerStore, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		store:  store,
		logger: logger,
	}
}

// IsAuthorized checks if user is in the ledger
func (s *LedgerService) IsAuthorized(userID int64) bool {
	return s.store.IsAuthorized(userID)
}

// IsAdmin checks if user is the bot administrator
func (s *LedgerService) IsAdmin(userID int64) bool {
	return s.store.IsAdmin(userID)
}

// Authorize enrolls a user while there is capacity left
func (s *LedgerService) Authorize(userID int64, username, firstName string) (repository.AuthorizeResult, error) {
	return s.store.Authorize(userID, username, firstName)
}

// RecordUsage adds a completion's token cost to the user's total.
// A persistence failure here is logged but never blocks the reply.
func (s *LedgerService) RecordUsage(userID int64, tokens int) {
	if err := s.store.AddTokens(userID, tokens); err != nil {
		s.logger.Error("Failed to record token usage",
			zap.Int64("user_id", userID),
			zap.Int("tokens", tokens),
			zap.Error(err),
		)
	}
}

// Touch updates the user's last activity timestamp
func (s *LedgerService) Touch(userID int64) {
	if err := s.store.Touch(userID); err != nil {
		s.logger.Error("Failed to update last activity",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// Stats returns a read-only ledger snapshot
func (s *LedgerService) Stats() domain.LedgerStats {
	return s.store.Stats()
}
