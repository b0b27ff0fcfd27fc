// internal/bot/telegram.go
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Nikkeen22/fitness-bot/internal/db"
	"github.com/Nikkeen22/fitness-bot/internal/gpt"
	"github.com/Nikkeen22/fitness-bot/internal/payment"
	"github.com/Nikkeen22/fitness-bot/internal/scheduler"
	"github.com/Nikkeen22/fitness-bot/pkg/logger"
)

type TelegramBot struct {
	bot             *tgbotapi.BotAPI
	db              *db.PostgresDB
	gptClient       *gpt.Client
	stripeClient    *payment.StripeClient
	logger          *logger.Logger
	sessions        *SessionStore
	expiry          *scheduler.ExpiryRegistry
	adminID         int64
	groupID         int64
	groupInviteLink string
	cardNumber      string
	loc             *time.Location
}

type Options struct {
	AdminID         int64
	GroupID         int64
	GroupInviteLink string
	CardNumber      string
	Location        *time.Location
}

func NewTelegramBot(token string, db *db.PostgresDB, gptClient *gpt.Client, stripeClient *payment.StripeClient, log *logger.Logger, opts Options) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	log.Infof("Authorized on Telegram as @%s", api.Self.UserName)

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	return &TelegramBot{
		bot:             api,
		db:              db,
		gptClient:       gptClient,
		stripeClient:    stripeClient,
		logger:          log,
		sessions:        NewSessionStore(),
		adminID:         opts.AdminID,
		groupID:         opts.GroupID,
		groupInviteLink: opts.GroupInviteLink,
		cardNumber:      opts.CardNumber,
		loc:             loc,
	}, nil
}

// SetExpiry wires the one-shot timer registry, used to auto-delete finished
// challenges.
func (t *TelegramBot) SetExpiry(reg *scheduler.ExpiryRegistry) {
	t.expiry = reg
}

// Start begins receiving updates from Telegram via polling.
func (t *TelegramBot) Start(ctx context.Context) error {
	_, err := t.bot.Request(tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := t.bot.GetUpdatesChan(updateConfig)
	t.logger.Info("Started receiving Telegram updates")

	go t.handleUpdates(ctx, updates)

	return nil
}

func (t *TelegramBot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		go func(update tgbotapi.Update) {
			defer func() {
				if r := recover(); r != nil {
					t.logger.Errorf("recovered from panic while processing update %d: %v", update.UpdateID, r)
				}
			}()

			switch {
			case update.Message != nil:
				t.handleMessage(ctx, update.Message)
			case update.CallbackQuery != nil:
				t.handleCallbackQuery(ctx, update.CallbackQuery)
			}
		}(update)
	}
}

// Stop gracefully shuts down the bot.
func (t *TelegramBot) Stop(ctx context.Context) error {
	t.bot.StopReceivingUpdates()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}
