package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected Action
	}{
		{
			name:     "explain",
			data:     "explain",
			expected: Action{Kind: ActionExplain},
		},
		{
			name:     "fluency menu",
			data:     "fluency",
			expected: Action{Kind: ActionFluencyMenu},
		},
		{
			name:     "formal style",
			data:     "style_formal",
			expected: Action{Kind: ActionStyle, Style: StyleFormal},
		},
		{
			name:     "scientific style",
			data:     "style_scientific",
			expected: Action{Kind: ActionStyle, Style: StyleScientific},
		},
		{
			name:     "unknown style",
			data:     "style_baroque",
			expected: Action{Kind: ActionUnknown},
		},
		{
			name:     "reformulate",
			data:     "reformulate",
			expected: Action{Kind: ActionReformulate},
		},
		{
			name:     "navigation",
			data:     "nav_prev",
			expected: Action{Kind: ActionNavPrev},
		},
		{
			name:     "payload with whitespace",
			data:     "  nav_next \n",
			expected: Action{Kind: ActionNavNext},
		},
		{
			name:     "noop",
			data:     "noop",
			expected: Action{Kind: ActionNoop},
		},
		{
			name:     "garbage",
			data:     "day_20240101",
			expected: Action{Kind: ActionUnknown},
		},
		{
			name:     "empty",
			data:     "",
			expected: Action{Kind: ActionUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAction(tt.data))
		})
	}
}

func TestFluencyMode(t *testing.T) {
	for _, style := range []FluencyStyle{StyleCurrent, StyleFormal, StyleFriendly, StyleScientific} {
		mode, ok := FluencyMode(style)
		assert.True(t, ok, "style %s should map to a mode", style)
		assert.NotEmpty(t, mode)
	}

	_, ok := FluencyMode("baroque")
	assert.False(t, ok)
}
