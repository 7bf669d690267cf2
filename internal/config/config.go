package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken         string
	APIKey           string
	BaseURL          string
	ModelName        string
	AdminID          int64
	MaxUsers         int
	MaxMessageLength int
	CombineDelay     time.Duration
	RepoURL          string
	UsersFile        string
	PromptsDir       string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:   os.Getenv("TELEGRAM_TOKEN"),
		APIKey:     os.Getenv("OPENROUTER_API_KEY"),
		BaseURL:    getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		ModelName:  getEnv("MODEL_NAME", "openai/chatgpt-4o-latest"),
		RepoURL:    getEnv("GITHUB_REPO_URL", "https://github.com/yourusername/grammar_check_bot_v2"),
		UsersFile:  getEnv("USERS_FILE", "users_data.json"),
		PromptsDir: getEnv("PROMPTS_DIR", "system_prompts"),
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}

	adminRaw := os.Getenv("ADMIN_ID")
	if adminRaw == "" {
		return nil, fmt.Errorf("ADMIN_ID is required")
	}
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID must be a numeric Telegram user id: %w", err)
	}
	cfg.AdminID = adminID

	cfg.MaxUsers, err = getEnvInt("MAX_USERS", 10)
	if err != nil {
		return nil, err
	}
	if cfg.MaxUsers < 1 {
		return nil, fmt.Errorf("MAX_USERS must be at least 1")
	}

	cfg.MaxMessageLength, err = getEnvInt("MAX_MESSAGE_LENGTH", 4000)
	if err != nil {
		return nil, err
	}
	if cfg.MaxMessageLength < 1 {
		return nil, fmt.Errorf("MAX_MESSAGE_LENGTH must be at least 1")
	}

	cfg.CombineDelay, err = getEnvDuration("MESSAGE_COMBINE_DELAY", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 200ms: %w", key, err)
	}
	return d, nil
}
