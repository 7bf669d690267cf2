package testutil

import (
	"context"

	"grammarbot/internal/domain"
	"grammarbot/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockLedgerStore is a mock for repository.LedgerStore
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) IsAuthorized(userID int64) bool {
	args := m.Called(userID)
	return args.Bool(0)
}

func (m *MockLedgerStore) IsAdmin(userID int64) bool {
	args := m.Called(userID)
	return args.Bool(0)
}

func (m *MockLedgerStore) Authorize(userID int64, username, firstName string) (repository.AuthorizeResult, error) {
	args := m.Called(userID, username, firstName)
	return args.Get(0).(repository.AuthorizeResult), args.Error(1)
}

func (m *MockLedgerStore) AddTokens(userID int64, tokens int) error {
	args := m.Called(userID, tokens)
	return args.Error(0)
}

func (m *MockLedgerStore) Touch(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockLedgerStore) Stats() domain.LedgerStats {
	args := m.Called()
	return args.Get(0).(domain.LedgerStats)
}

// MockCompleter is a mock for service.Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, mode domain.Mode, text string) (domain.Completion, error) {
	args := m.Called(ctx, mode, text)
	return args.Get(0).(domain.Completion), args.Error(1)
}
