// cmd/bot/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nikkeen22/fitness-bot/config"
	"github.com/Nikkeen22/fitness-bot/internal/bot"
	"github.com/Nikkeen22/fitness-bot/internal/db"
	"github.com/Nikkeen22/fitness-bot/internal/gpt"
	"github.com/Nikkeen22/fitness-bot/internal/payment"
	"github.com/Nikkeen22/fitness-bot/internal/scheduler"
	"github.com/Nikkeen22/fitness-bot/internal/server"
	"github.com/Nikkeen22/fitness-bot/pkg/logger"
)

func main() {
	l := logger.New()
	l.Info("Starting AI Fitness Coach bot...")

	cfg, err := config.Load()
	if err != nil {
		l.Fatal("Failed to load config", err)
	}

	if cfg.Telegram.Token == "" {
		l.Fatal("Telegram token is not configured")
	}
	if cfg.GPT.APIKey == "" {
		l.Fatal("GPT API key is not configured")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		l.Errorf("Unknown timezone %q, falling back to UTC", cfg.Timezone)
		loc = time.UTC
	}

	// Database connection with retry: on fresh deployments Postgres may come
	// up after the bot.
	var database *db.PostgresDB
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		database, err = db.NewPostgresDB(cfg.DB)
		if err == nil {
			break
		}
		l.Error("Failed to connect to database, retrying...", err)
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	if database == nil {
		l.Fatal("Failed to connect to database after multiple attempts", err)
	}
	defer database.Close()

	if err := database.InitSchema(context.Background()); err != nil {
		l.Fatal("Failed to initialize database schema", err)
	}

	stripeClient := payment.NewStripeClient(cfg.Stripe)
	gptClient := gpt.NewClient(cfg.GPT.APIKey).
		WithModel(cfg.GPT.Model).
		WithTimeouts(cfg.GPT.GenTimeout, cfg.GPT.ChatTimeout)

	telegramBot, err := bot.NewTelegramBot(cfg.Telegram.Token, database, gptClient, stripeClient, l, bot.Options{
		AdminID:         cfg.Telegram.AdminID,
		GroupID:         cfg.Telegram.GroupID,
		GroupInviteLink: cfg.Telegram.GroupInviteLink,
		CardNumber:      cfg.Payment.CardNumber,
		Location:        loc,
	})
	if err != nil {
		l.Fatal("Failed to create Telegram bot", err)
	}

	jobs := scheduler.NewJobs(database, telegramBot, gptClient, l, cfg.Telegram.GroupID, loc)
	sched := scheduler.New(jobs, l)
	telegramBot.SetExpiry(sched.Expiry())

	ctx, cancelJobs := context.WithCancel(context.Background())
	if err := sched.Start(ctx); err != nil {
		l.Fatal("Failed to start scheduler", err)
	}

	// Auto-delete timers do not survive a restart, so re-arm them from the
	// stored creation times.
	if err := telegramBot.RescheduleChallengeExpiry(ctx); err != nil {
		l.Error("Failed to reschedule challenge expiry timers", err)
	}

	if err := telegramBot.Start(ctx); err != nil {
		l.Fatal("Failed to start Telegram bot", err)
	}
	l.Info("Telegram bot started successfully")

	httpServer := server.NewServer(cfg.Server.Port, telegramBot, l)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Failed to start HTTP server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	sched.Stop()
	cancelJobs()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		l.Error("Error during HTTP server shutdown", err)
	}
	if err := telegramBot.Stop(shutdownCtx); err != nil {
		l.Error("Error during bot shutdown", err)
	}

	l.Info("Bot stopped successfully")
}
