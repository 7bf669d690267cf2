package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_CurrentVersion(t *testing.T) {
	tests := []struct {
		name     string
		session  Session
		expected string
	}{
		{
			name:     "no versions falls back to corrected",
			session:  Session{Corrected: "corrected"},
			expected: "corrected",
		},
		{
			name:     "selected version",
			session:  Session{Corrected: "corrected", Versions: []string{"a", "b", "c"}, VersionIndex: 1},
			expected: "b",
		},
		{
			name:     "out of range index falls back to latest",
			session:  Session{Versions: []string{"a", "b"}, VersionIndex: 7},
			expected: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.session.CurrentVersion())
		})
	}
}

func TestSession_Clone(t *testing.T) {
	original := Session{
		State:     StateAwaitingAction,
		Original:  "orig",
		Corrected: "fixed",
		Versions:  []string{"v1", "v2"},
	}

	clone := original.Clone()
	clone.Versions[0] = "mutated"
	clone.Corrected = "changed"

	assert.Equal(t, "v1", original.Versions[0])
	assert.Equal(t, "fixed", original.Corrected)
}
