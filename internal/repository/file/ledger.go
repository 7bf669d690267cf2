package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"grammarbot/internal/domain"
	"grammarbot/internal/repository"

	"go.uber.org/zap"
)

// Ledger implements repository.LedgerStore on top of a flat JSON file.
// The whole file is rewritten via temp-file-plus-rename on every
// mutation, so a crash mid-write never corrupts the previous state.
type Ledger struct {
	path     string
	adminID  int64
	capacity int
	logger   *zap.Logger

	mu    sync.Mutex
	users map[int64]*domain.User
}

// userRecord is the on-disk form of a ledger entry
type userRecord struct {
	Username     string    `json:"username,omitempty"`
	FirstName    string    `json:"first_name"`
	JoinedAt     time.Time `json:"joined_at"`
	TotalTokens  int       `json:"total_tokens"`
	LastActivity time.Time `json:"last_activity"`
}

type ledgerFile struct {
	Users map[int64]userRecord `json:"users"`
}

// New loads the ledger from path, creating a fresh one holding only the
// admin when the file does not exist. A file that exists but cannot be
// parsed is an error: silently resetting it would drop authorized users.
func New(path string, adminID int64, capacity int, logger *zap.Logger) (*Ledger, error) {
	l := &Ledger{
		path:     path,
		adminID:  adminID,
		capacity: capacity,
		logger:   logger,
		users:    make(map[int64]*domain.User),
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		now := time.Now()
		l.users[adminID] = &domain.User{
			ID:           adminID,
			FirstName:    "Admin",
			JoinedAt:     now,
			LastActivity: now,
		}
		if err := l.persist(); err != nil {
			return nil, fmt.Errorf("failed to create ledger file: %w", err)
		}
		logger.Info("Created new user ledger", zap.String("path", path))

	case err != nil:
		return nil, fmt.Errorf("failed to read ledger file %s: %w", path, err)

	default:
		var raw ledgerFile
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("ledger file %s is corrupt: %w", path, err)
		}
		for id, rec := range raw.Users {
			l.users[id] = &domain.User{
				ID:           id,
				Username:     rec.Username,
				FirstName:    rec.FirstName,
				JoinedAt:     rec.JoinedAt,
				TotalTokens:  rec.TotalTokens,
				LastActivity: rec.LastActivity,
			}
		}
		// The admin is always authorized, even if the file predates them
		if _, ok := l.users[adminID]; !ok {
			now := time.Now()
			l.users[adminID] = &domain.User{
				ID:           adminID,
				FirstName:    "Admin",
				JoinedAt:     now,
				LastActivity: now,
			}
			if err := l.persist(); err != nil {
				return nil, fmt.Errorf("failed to seed admin into ledger: %w", err)
			}
		}
		logger.Info("Loaded user ledger",
			zap.String("path", path),
			zap.Int("users", len(l.users)),
		)
	}

	return l, nil
}

// IsAuthorized reports whether userID is in the ledger
func (l *Ledger) IsAuthorized(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.users[userID]
	return ok
}

// IsAdmin reports whether userID is the distinguished admin
func (l *Ledger) IsAdmin(userID int64) bool {
	return userID == l.adminID
}

// Authorize adds userID while under capacity. The check and the add run
// under one lock so concurrent calls cannot exceed the capacity.
// The admin does not consume a capacity slot.
func (l *Ledger) Authorize(userID int64, username, firstName string) (repository.AuthorizeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.users[userID]; ok {
		return repository.AlreadyPresent, nil
	}
	if l.memberCount() >= l.capacity {
		return repository.CapacityExceeded, nil
	}

	now := time.Now()
	if firstName == "" {
		firstName = "Unknown"
	}
	l.users[userID] = &domain.User{
		ID:           userID,
		Username:     username,
		FirstName:    firstName,
		JoinedAt:     now,
		LastActivity: now,
	}

	if err := l.persistWithRetry(); err != nil {
		return repository.Added, err
	}

	l.logger.Info("Authorized new user",
		zap.Int64("user_id", userID),
		zap.String("first_name", firstName),
		zap.Int("count", len(l.users)),
	)
	return repository.Added, nil
}

// AddTokens adds to a user's total token count
func (l *Ledger) AddTokens(userID int64, tokens int) error {
	if tokens <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[userID]
	if !ok {
		return fmt.Errorf("cannot record tokens for unknown user %d", userID)
	}
	user.TotalTokens += tokens
	return l.persistWithRetry()
}

// Touch updates a user's last activity timestamp
func (l *Ledger) Touch(userID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[userID]
	if !ok {
		return fmt.Errorf("cannot update activity for unknown user %d", userID)
	}
	user.LastActivity = time.Now()
	return l.persistWithRetry()
}

// Stats returns a snapshot of the ledger, newest users first
func (l *Ledger) Stats() domain.LedgerStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	users := make([]domain.User, 0, len(l.users))
	for _, u := range l.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].JoinedAt.After(users[j].JoinedAt)
	})

	return domain.LedgerStats{
		Count:    l.memberCount(),
		Capacity: l.capacity,
		Users:    users,
	}
}

// memberCount counts the users occupying capacity slots; the admin's
// seat is free. Callers must hold l.mu.
func (l *Ledger) memberCount() int {
	n := len(l.users)
	if _, ok := l.users[l.adminID]; ok {
		n--
	}
	return n
}

// persistWithRetry retries a failed write once before surfacing the
// error; a transient write failure must not crash the chat flow
func (l *Ledger) persistWithRetry() error {
	err := l.persist()
	if err == nil {
		return nil
	}

	l.logger.Warn("Ledger write failed, retrying", zap.Error(err))
	if err = l.persist(); err != nil {
		l.logger.Error("Ledger write failed after retry", zap.Error(err))
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	return nil
}

// persist writes the full ledger to a temp file and renames it into
// place. Callers must hold l.mu.
func (l *Ledger) persist() error {
	raw := ledgerFile{Users: make(map[int64]userRecord, len(l.users))}
	for id, u := range l.users {
		raw.Users[id] = userRecord{
			Username:     u.Username,
			FirstName:    u.FirstName,
			JoinedAt:     u.JoinedAt,
			TotalTokens:  u.TotalTokens,
			LastActivity: u.LastActivity,
		}
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger file: %w", err)
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
