package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "style_formal",
			expected: "style_formal",
		},
		{
			name:     "string with whitespace",
			input:    "  explain  ",
			expected: "explain",
		},
		{
			name:     "string with newline",
			input:    "refor\nmulate",
			expected: "reformulate",
		},
		{
			name:     "telebot callback prefix",
			input:    "\fexplain",
			expected: "explain",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "nav\x00_prev\x01",
			expected: "nav_prev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPositionLabel(t *testing.T) {
	assert.Equal(t, "1/1", positionLabel(0, 1))
	assert.Equal(t, "3/5", positionLabel(2, 5))
}
