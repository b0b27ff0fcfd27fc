// internal/bot/gate.go
package bot

import (
	"context"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

// publicCommands are reachable without an active subscription or trial.
var publicCommands = map[string]bool{
	"start":     true,
	"help":      true,
	"newplan":   true,
	"subscribe": true,
	"grant":     true,
	"cancel":    true,
}

// AllowCommand is the pure gating decision: admins pass everything, public
// commands pass everyone, and everything else requires a live trial or an
// active subscription.
func AllowCommand(command string, isAdmin bool, status string) bool {
	if isAdmin {
		return true
	}
	if publicCommands[command] {
		return true
	}
	return status == models.SubscriptionTrial || status == models.SubscriptionActive
}

// checkAccess resolves the user's subscription (applying lazy expiry) and
// either admits the command or sends the paywall message.
func (t *TelegramBot) checkAccess(ctx context.Context, userID, chatID int64, command string) bool {
	if AllowCommand(command, userID == t.adminID, "") {
		return true
	}

	status, _, err := t.db.GetSubscriptionStatus(ctx, userID)
	if err != nil {
		t.logger.Errorf("subscription check for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй ще раз трохи пізніше.")
		return false
	}

	if AllowCommand(command, false, status) {
		return true
	}

	msg := "⏳ Твій пробний період завершився. Оформи підписку, щоб продовжити тренування зі мною!"
	if status == models.SubscriptionNone {
		msg = "Схоже, ми ще не знайомі. Натисни /start, а потім оформи підписку, щоб почати тренування!"
	}
	t.sendWithKeyboard(chatID, msg, subscribeKeyboard())
	return false
}
