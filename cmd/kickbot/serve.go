package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mymmrac/telego"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/annihilusop/kickbot/internal/activity"
	"github.com/annihilusop/kickbot/internal/config"
	"github.com/annihilusop/kickbot/internal/logger"
	"github.com/annihilusop/kickbot/internal/moderation"
	"github.com/annihilusop/kickbot/internal/telegram"
)

var (
	serveConfigPath string
	serveLogLevel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start Kick-Bot (main command)",
	Long: `Start Kick-Bot with the specified configuration.
This will connect the activity store, start the Telegram long-poll loop
and handle graceful shutdown.`,
	Run: serveHandler,
}

func serveHandler(cmd *cobra.Command, args []string) {
	if err := config.LoadEnvOptional("./.env"); err != nil {
		fmt.Printf("❌ Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	configPath := serveConfigPath
	if configPath == "" {
		configPath = "./config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if serveLogLevel != "" {
		cfg.Logging.Level = serveLogLevel
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Printf("❌ Configuration validation failed:\n")
		for _, e := range errs {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	log.Info("🚀 Starting Kick-Bot",
		logger.Field{Key: "version", Value: Version},
		logger.Field{Key: "git_commit", Value: GitCommit},
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "storage", Value: cfg.Storage.Backend})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Activity store
	var store activity.Store
	switch cfg.Storage.Backend {
	case "mongo":
		connectCtx, connectCancel := context.WithTimeout(ctx, 15*time.Second)
		mongoStore, err := activity.NewMongoStore(connectCtx, cfg.Storage.URI, cfg.Storage.Database, log)
		connectCancel()
		if err != nil {
			log.Error("Failed to connect to activity store", err)
			os.Exit(1)
		}
		store = mongoStore
	case "memory":
		log.Warn("using in-memory activity store, records are lost on restart")
		store = activity.NewMemoryStore()
	}

	// Telegram bot
	bot, err := telego.NewBot(cfg.Telegram.Token)
	if err != nil {
		log.Error("Failed to initialize telegram bot", err)
		os.Exit(1)
	}
	api := telegram.NewBotAdapter(bot)

	me, err := api.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info, check the bot token", err)
		os.Exit(1)
	}
	log.Info("telegram bot authorized",
		logger.Field{Key: "bot_id", Value: me.ID},
		logger.Field{Key: "username", Value: me.Username})

	// Metrics
	metrics := moderation.InitMetrics("kickbot", nil)
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Info("metrics listener started",
				logger.Field{Key: "addr", Value: cfg.Metrics.ListenAddr})
			if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
				log.Error("metrics listener failed", err)
			}
		}()
	}

	// Moderation core
	svc := moderation.NewService(
		store,
		telegram.NewChatDirectory(api),
		me.ID,
		moderation.Config{
			KickDelay:   time.Duration(cfg.Moderation.KickDelayMs) * time.Millisecond,
			ProposalTTL: time.Duration(cfg.Moderation.ProposalTTLMinutes) * time.Minute,
		},
		log,
		metrics,
	)

	// Telegram connector
	connector := telegram.NewConnector(
		cfg.Telegram,
		api,
		telegram.BotIdentity{ID: me.ID, Username: me.Username},
		svc,
		log,
	)
	if err := connector.Start(ctx); err != nil {
		log.Error("Failed to start telegram connector", err)
		os.Exit(1)
	}

	log.Info("✅ Kick-Bot is running")

	sig := <-sigChan
	log.Info("⏳ Received shutdown signal",
		logger.Field{Key: "signal", Value: sig.String()})

	log.Info("🛑 Shutting down Kick-Bot...")
	cancel()
	connector.Stop()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	if err := store.Close(closeCtx); err != nil {
		log.Error("Failed to close activity store", err)
	}

	log.Info("👋 Kick-Bot stopped gracefully")
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "", "Override log level (debug, info, warn, error)")
}
