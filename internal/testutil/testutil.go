package testutil

import (
	"time"

	"grammarbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test ledger user
func NewTestUser(userID int64, firstName string) domain.User {
	now := time.Now()
	return domain.User{
		ID:           userID,
		FirstName:    firstName,
		JoinedAt:     now,
		LastActivity: now,
	}
}

// NewTestSession creates a session holding a finished correction
func NewTestSession(original, corrected string) domain.Session {
	return domain.Session{
		State:     domain.StateAwaitingAction,
		Original:  original,
		Corrected: corrected,
	}
}
