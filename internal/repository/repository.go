package repository

import "grammarbot/internal/domain"

// AuthorizeResult reports the outcome of an authorization attempt
type AuthorizeResult int

const (
	Added AuthorizeResult = iota
	AlreadyPresent
	CapacityExceeded
)

// LedgerStore defines operations over the persisted set of authorized
// users. Implementations must serialize mutations so concurrent
// authorization attempts cannot race past the capacity check.
type LedgerStore interface {
	IsAuthorized(userID int64) bool
	IsAdmin(userID int64) bool
	Authorize(userID int64, username, firstName string) (AuthorizeResult, error)
	AddTokens(userID int64, tokens int) error
	Touch(userID int64) error
	Stats() domain.LedgerStats
}
