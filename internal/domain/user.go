package domain

import "time"

// User represents a bot user stored in the ledger
type User struct {
	ID           int64
	Username     string
	FirstName    string
	JoinedAt     time.Time
	TotalTokens  int
	LastActivity time.Time
}

// LedgerStats is a read-only snapshot of the ledger for admin reporting
type LedgerStats struct {
	Count    int
	Capacity int
	Users    []User
}

// AvailableSlots returns how many users can still be added
func (s LedgerStats) AvailableSlots() int {
	return s.Capacity - s.Count
}
