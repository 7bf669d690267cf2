package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grammarbot/internal/config"
	"grammarbot/internal/handler"
	"grammarbot/internal/middleware"
	"grammarbot/internal/prompts"
	"grammarbot/internal/repository/file"
	"grammarbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Grammar Correction Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Load prompt templates
	promptSet, err := prompts.Load(cfg.PromptsDir)
	if err != nil {
		logger.Fatal("Failed to load prompt templates", zap.Error(err))
	}

	logger.Info("Prompt templates loaded", zap.String("dir", cfg.PromptsDir))

	// Load the user ledger
	ledger, err := file.New(cfg.UsersFile, cfg.AdminID, cfg.MaxUsers, logger)
	if err != nil {
		logger.Fatal("Failed to load user ledger", zap.Error(err))
	}

	logger.Info("User ledger loaded", zap.String("path", cfg.UsersFile))

	// Initialize services
	ledgerService := service.NewLedgerService(ledger, logger)
	statsService := service.NewStatsService(ledgerService)
	completionService := service.NewCompletionService(
		service.NewCompletionClient(cfg.APIKey, cfg.BaseURL),
		promptSet,
		cfg.ModelName,
	)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	bot.Use(middleware.Auth(ledgerService, logger))
	h := handler.NewHandler(bot, ledgerService, statsService, completionService, cfg, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}
