package main

import (
	"flag"
	"log/slog"
	"os"

	"git.skobk.in/skobkin/telegram-summon-bot/bot"
	"git.skobk.in/skobkin/telegram-summon-bot/config"
	"git.skobk.in/skobkin/telegram-summon-bot/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
)

func main() {
	// Parse command-line flags
	verbose := flag.Bool("v", false, "Enable verbose logging (LevelInfo)")
	veryVerbose := flag.Bool("vv", false, "Enable very verbose logging (LevelDebug)")
	flag.Parse()

	// Set up logging
	setLogLevel(*verbose, *veryVerbose)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn("main: Failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("main: Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	slog.Debug("main: Initializing storage", "db_host", cfg.DBHost, "db_name", cfg.DBName)
	store, err := storage.New(mysql.Open(cfg.DSN()))
	if err != nil {
		slog.Error("main: Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize bot
	slog.Debug("main: Initializing bot")
	b, err := bot.New(cfg.Token, cfg.AdminID, store)
	if err != nil {
		slog.Error("main: Failed to initialize bot", "error", err)
		os.Exit(1)
	}

	// Start bot
	slog.Info("main: Starting bot...")
	if err := b.Start(); err != nil {
		slog.Error("main: Failed to start bot", "error", err)
		os.Exit(1)
	}
	slog.Info("main: Bot started successfully")

	// Wait for interrupt signal
	slog.Debug("main: Bot is running, waiting for interrupt signal")
	select {}
}

// setLogLevel configures the logging level based on the provided flags
func setLogLevel(verbose, veryVerbose bool) {
	// Determine logging level based on flags
	logLevel := slog.LevelWarn // Default level
	if veryVerbose {
		logLevel = slog.LevelDebug
	} else if verbose {
		logLevel = slog.LevelInfo
	}

	// Configure structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}
