package service

import (
	"fmt"
	"testing"

	"grammarbot/internal/domain"
	"grammarbot/internal/repository"
	"grammarbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Authorize(t *testing.T) {
	tests := []struct {
		name       string
		mockResult repository.AuthorizeResult
	}{
		{"added", repository.Added},
		{"already present", repository.AlreadyPresent},
		{"capacity exceeded", repository.CapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(testutil.MockLedgerStore)
			store.On("Authorize", int64(1), "alice", "Alice").Return(tt.mockResult, nil)

			svc := NewLedgerService(store, testutil.NewTestLogger())
			result, err := svc.Authorize(1, "alice", "Alice")

			require.NoError(t, err)
			assert.Equal(t, tt.mockResult, result)
			store.AssertExpectations(t)
		})
	}
}

func TestLedgerService_IsAuthorized(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	store.On("IsAuthorized", int64(1)).Return(true)
	store.On("IsAuthorized", int64(2)).Return(false)

	svc := NewLedgerService(store, testutil.NewTestLogger())

	assert.True(t, svc.IsAuthorized(1))
	assert.False(t, svc.IsAuthorized(2))
	store.AssertExpectations(t)
}

func TestLedgerService_RecordUsage_SwallowsWriteError(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	store.On("AddTokens", int64(1), 100).Return(fmt.Errorf("disk full"))

	svc := NewLedgerService(store, testutil.NewTestLogger())

	// Must not panic or propagate; the reply flow continues
	svc.RecordUsage(1, 100)
	store.AssertExpectations(t)
}

func TestLedgerService_Stats(t *testing.T) {
	expected := domain.LedgerStats{Count: 1, Capacity: 10, Users: []domain.User{testutil.NewTestUser(1, "Alice")}}

	store := new(testutil.MockLedgerStore)
	store.On("Stats").Return(expected)

	svc := NewLedgerService(store, testutil.NewTestLogger())
	assert.Equal(t, expected, svc.Stats())
}
