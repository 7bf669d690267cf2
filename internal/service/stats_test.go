package service

import (
	"testing"
	"time"

	"grammarbot/internal/domain"
	"grammarbot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_BuildReport(t *testing.T) {
	joined := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	store := new(testutil.MockLedgerStore)
	store.On("Stats").Return(domain.LedgerStats{
		Count:    2,
		Capacity: 5,
		Users: []domain.User{
			{ID: 2, Username: "bob", FirstName: "Bob", JoinedAt: joined.Add(time.Hour), TotalTokens: 1234567, LastActivity: joined.Add(2 * time.Hour)},
			{ID: 1, FirstName: "Alice", JoinedAt: joined, TotalTokens: 99, LastActivity: joined},
		},
	})

	svc := NewStatsService(NewLedgerService(store, testutil.NewTestLogger()))
	report := svc.BuildReport()

	assert.Contains(t, report, "<b>Total Users:</b> 2/5")
	assert.Contains(t, report, "<b>Available Slots:</b> 3")
	assert.Contains(t, report, "<b>1. Bob</b> (@bob)")
	assert.Contains(t, report, "<b>2. Alice</b> (No username)")
	assert.Contains(t, report, "ID: <code>1</code>")
	assert.Contains(t, report, "Tokens: 1,234,567")
	assert.Contains(t, report, "Tokens: 99")
	assert.Contains(t, report, "Joined: Mar 14, 2025 09:30")
}

func TestStatsService_BuildReport_Empty(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	store.On("Stats").Return(domain.LedgerStats{Count: 0, Capacity: 10})

	svc := NewStatsService(NewLedgerService(store, testutil.NewTestLogger()))
	report := svc.BuildReport()

	assert.Contains(t, report, "<b>Total Users:</b> 0/10")
	assert.Contains(t, report, "No registered users yet")
}

func TestFormatTokens(t *testing.T) {
	tests := []struct {
		in       int
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatTokens(tt.in), "formatTokens(%d)", tt.in)
	}
}
