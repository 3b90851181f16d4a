package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const shutdownNotifyTimeout = 10 * time.Second

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		// No configuration yet: still record the failure in the log file.
		_ = logger.InitBootstrap()
		var missing *config.MissingError
		if errors.As(err, &missing) {
			logger.Log.WithField("missing", missing.Keys).Fatal("Required environment variables are not set")
		}
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}

	logFile, err := logger.Init(cfg)
	if err != nil {
		logger.Log.Fatalf("Could not initialize logger: %v", err)
	}
	defer logFile.Close()

	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"chat_id":     cfg.TelegramChatID,
		"endpoint":    cfg.PracticumEndpoint,
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAPIURL, cfg.HTTPTimeout)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.NotifyInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.NotifyInterval), 1)
	}
	notifier := app.NewChatNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, limiter, logger.Component("notifier"))

	// Initialize optional cycle journal
	var journal homework.CycleJournal
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		pgJournal := idb.NewPostgresCycleJournal(db)
		if err := pgJournal.EnsureSchema(ctx); err != nil {
			mainLogger.WithError(err).Fatal("Could not prepare cycle journal")
		}
		journal = pgJournal
		mainLogger.Info("Cycle journal enabled")
	}

	retry, err := scheduler.NewRetryScheduler(cfg.PollSchedule, cfg.RetryPeriod)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not build poll schedule")
	}

	fetcher := practicum.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.PracticumEndpoint, cfg.PracticumToken)
	poller := app.NewStatusPoller(
		fetcher,
		app.NewTranslator(homework.DefaultVerdicts()),
		notifier,
		retry,
		journal,
		logger.Component("poller"),
		time.Now().Unix(),
	)

	mainLogger.Info("Application setup complete. Poller is starting...")
	run(ctx, poller, notifier, mainLogger)
	mainLogger.Info("Application shut down gracefully.")
}

type pollRunner interface {
	Run(ctx context.Context) error
}

// run blocks until the poller returns and then sends the stop message.
// ctx is usually cancelled by then, so the message gets its own deadline.
func run(ctx context.Context, poller pollRunner, notifier app.Notifier, log *logrus.Entry) {
	if err := poller.Run(ctx); !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("Poller stopped unexpectedly")
	}

	log.Warn(app.StoppedMessage)
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownNotifyTimeout)
	defer cancel()
	if !notifier.Notify(notifyCtx, app.StoppedMessage) {
		log.Warn("Stop message was not delivered")
	}
}
