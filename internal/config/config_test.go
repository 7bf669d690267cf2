package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "OPENROUTER_API_KEY", "OPENROUTER_BASE_URL",
		"ADMIN_ID", "MODEL_NAME", "MAX_USERS", "MAX_MESSAGE_LENGTH",
		"MESSAGE_COMBINE_DELAY", "GITHUB_REPO_URL", "USERS_FILE", "PROMPTS_DIR",
	} {
		// t.Setenv restores the original value on cleanup
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing bot token",
			env:     map[string]string{"OPENROUTER_API_KEY": "key", "ADMIN_ID": "1"},
			wantErr: "TELEGRAM_TOKEN",
		},
		{
			name:    "missing api key",
			env:     map[string]string{"TELEGRAM_TOKEN": "token", "ADMIN_ID": "1"},
			wantErr: "OPENROUTER_API_KEY",
		},
		{
			name:    "missing admin id",
			env:     map[string]string{"TELEGRAM_TOKEN": "token", "OPENROUTER_API_KEY": "key"},
			wantErr: "ADMIN_ID",
		},
		{
			name: "non-numeric admin id",
			env: map[string]string{
				"TELEGRAM_TOKEN":     "token",
				"OPENROUTER_API_KEY": "key",
				"ADMIN_ID":           "not-a-number",
			},
			wantErr: "ADMIN_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "test_token")
	t.Setenv("OPENROUTER_API_KEY", "test_key")
	t.Setenv("ADMIN_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "test_key", cfg.APIKey)
	assert.Equal(t, int64(42), cfg.AdminID)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.BaseURL)
	assert.Equal(t, "openai/chatgpt-4o-latest", cfg.ModelName)
	assert.Equal(t, 10, cfg.MaxUsers)
	assert.Equal(t, 4000, cfg.MaxMessageLength)
	assert.Equal(t, 200*time.Millisecond, cfg.CombineDelay)
	assert.Equal(t, "users_data.json", cfg.UsersFile)
	assert.Equal(t, "system_prompts", cfg.PromptsDir)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "test_token")
	t.Setenv("OPENROUTER_API_KEY", "test_key")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("MAX_USERS", "3")
	t.Setenv("MAX_MESSAGE_LENGTH", "1000")
	t.Setenv("MESSAGE_COMBINE_DELAY", "500ms")
	t.Setenv("MODEL_NAME", "some/other-model")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxUsers)
	assert.Equal(t, 1000, cfg.MaxMessageLength)
	assert.Equal(t, 500*time.Millisecond, cfg.CombineDelay)
	assert.Equal(t, "some/other-model", cfg.ModelName)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non-integer max users", "MAX_USERS", "many", "MAX_USERS"},
		{"zero max users", "MAX_USERS", "0", "MAX_USERS"},
		{"non-duration combine delay", "MESSAGE_COMBINE_DELAY", "soon", "MESSAGE_COMBINE_DELAY"},
		{"zero message length", "MAX_MESSAGE_LENGTH", "0", "MAX_MESSAGE_LENGTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TELEGRAM_TOKEN", "test_token")
			t.Setenv("OPENROUTER_API_KEY", "test_key")
			t.Setenv("ADMIN_ID", "42")
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
