package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"task-tracker-bot/config"
	"task-tracker-bot/config/database"
	"task-tracker-bot/internal/conversation"
	"task-tracker-bot/internal/httpserver"
	"task-tracker-bot/internal/metrics"
	tgDelivery "task-tracker-bot/internal/task/delivery/telegram"
	"task-tracker-bot/internal/task/repository/sqlstore"
	"task-tracker-bot/internal/task/usecase"
	"task-tracker-bot/pkg/gcalendar"
	"task-tracker-bot/pkg/log"
	"task-tracker-bot/pkg/ratelimit"
	"task-tracker-bot/pkg/telegram"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		Long:  "Run the bot in webhook or polling mode together with the health and metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token (TELEGRAM_BOT_TOKEN) is required")
	}

	// 2. Logger
	logger := newLogger(cfg)
	logger.Info(ctx, "Starting task tracker bot...")
	logger.Infof(ctx, "Environment: %s, update mode: %s", cfg.Environment.Name, cfg.Telegram.Mode)

	// 3. Database
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		changed, err := database.Migrate(db, database.DirectionUp)
		if err != nil {
			return err
		}
		logger.Infof(ctx, "Schema migrated (changed: %t)", changed)
	}

	// 4. Task domain
	location := time.UTC
	if cfg.GoogleCalendar.Timezone != "" {
		location, _ = time.LoadLocation(cfg.GoogleCalendar.Timezone) // validated by config.Load
	}

	ucCfg := usecase.Config{
		CalendarID:      cfg.GoogleCalendar.CalendarID,
		ReminderMinutes: cfg.GoogleCalendar.ReminderMinutes,
		Location:        location,
	}
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, gcalendar.CredentialsOptions{
			CredentialsPath: cfg.GoogleCalendar.CredentialsPath,
			TokenPath:       cfg.GoogleCalendar.TokenPath,
		})
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			logger.Warn(ctx, "→ Run `taskbot calendar auth` to generate the token file")
		} else {
			ucCfg.Calendar = calendarClient
			logger.Info(ctx, "✅ Google Calendar mirror enabled")
		}
	}

	m := metrics.New()
	repo := sqlstore.New(db, logger)
	taskUC := usecase.New(logger, repo, ucCfg)
	dialogue := conversation.New(logger, taskUC, conversation.Config{
		TTL:         cfg.Conversation.TTL,
		MaxSessions: cfg.Conversation.MaxSessions,
		Policy:      conversation.Policy(cfg.Conversation.NewTaskPolicy),
	}, m)

	bot := telegram.NewBot(cfg.Telegram.BotToken)
	telegramHandler := tgDelivery.New(logger, taskUC, dialogue, bot, ratelimit.New(cfg.RateLimit.PerMin), m)

	// 5. Update source
	var webhookHandler tgDelivery.Handler
	switch cfg.Telegram.Mode {
	case config.ModeWebhook:
		webhookHandler = telegramHandler
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	case config.ModePolling:
		if err := bot.DeleteWebhook(ctx); err != nil {
			return err
		}
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: webhookHandler,
		MetricsHandler:  m.Handler(),
		Database:        db,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Telegram.Mode == config.ModePolling {
		wait := runPolling(ctx, logger, bot, telegramHandler, cfg.Telegram.PollTimeout)
		// Stop and drain polling before db.Close.
		defer wait()
		defer cancel()
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}

	logger.Info(context.Background(), "Server stopped gracefully")
	return nil
}

func newLogger(cfg *config.Config) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

// runPolling starts the long-poll loop. The returned wait blocks until
// it has stopped, which happens once ctx is cancelled.
func runPolling(ctx context.Context, logger log.Logger, src tgDelivery.UpdateSource, h tgDelivery.Handler, timeout time.Duration) (wait func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := tgDelivery.Poll(ctx, logger, src, h, timeout); err != nil {
			logger.Errorf(ctx, "Polling stopped: %v", err)
		}
	}()
	return func() { <-done }
}

// registerWebhook points Telegram at our webhook route: auto-detect ngrok or fall back to manual config.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPIURL != "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.NgrokAPIURL, ngrokRetryDelay)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}

	if webhookURL == "" {
		logger.Warn(ctx, "telegram.webhook_url is empty; assuming the webhook is registered elsewhere")
		return
	}
	if err := bot.SetWebhook(ctx, webhookURL); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}
