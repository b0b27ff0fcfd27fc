// internal/bot/payments.go
package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const subscriptionMonths = 1

// GeneratePaymentCode returns a short transfer reference in the NNN-NNN
// format the admin matches against the bank statement.
func GeneratePaymentCode() string {
	return fmt.Sprintf("%03d-%03d", rand.Intn(1000), rand.Intn(1000))
}

func (t *TelegramBot) handleSubscribe(chatID int64) {
	t.sendWithKeyboard(chatID,
		"💪 *Підписка на AI Fitness Coach*\n\n"+
			"Що входить:\n"+
			"• персональний план тренувань і харчування\n"+
			"• щоденні нагадування та звіти\n"+
			"• челенджі, дуелі та спільнота\n"+
			"• чат з AI-тренером\n\n"+
			"Обери спосіб оплати:",
		subscribeKeyboard())
}

// handleInitiatePayment starts the manual card-transfer flow: the user gets
// the card number plus a unique code to put in the transfer comment.
func (t *TelegramBot) handleInitiatePayment(ctx context.Context, userID, chatID int64) {
	code := GeneratePaymentCode()
	if err := t.db.AddPendingPayment(ctx, userID, code); err != nil {
		t.logger.Errorf("add pending payment for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй ще раз.")
		return
	}

	t.sendMarkdownWithKeyboard(chatID, fmt.Sprintf(
		"Переказ на картку:\n\n"+
			"💳 `%s`\n\n"+
			"⚠️ Обов'язково вкажи у коментарі до переказу код:\n\n"+
			"🔑 `%s`\n\n"+
			"Після оплати натисни кнопку нижче.",
		t.cardNumber, code),
		paymentSentKeyboard())
}

// handleUserConfirmPayment forwards the claim to the admin for manual review.
func (t *TelegramBot) handleUserConfirmPayment(ctx context.Context, userID, chatID int64, username string) {
	code, err := t.db.GetPendingPaymentCode(ctx, userID)
	if err != nil {
		t.logger.Errorf("get pending payment for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй ще раз.")
		return
	}
	if code == "" {
		t.sendText(chatID, "Не бачу активної заявки на оплату. Почни з /subscribe.")
		return
	}

	t.sendText(chatID, "Дякую! Передав заявку на перевірку. Зазвичай це займає до кількох годин. ⏳")

	who := "@" + username
	if username == "" {
		who = fmt.Sprintf("користувач %d", userID)
	}
	t.sendWithKeyboard(t.adminID,
		fmt.Sprintf("💰 Заявка на оплату\n\nВід: %s (ID %d)\nКод переказу: %s", who, userID, code),
		adminPaymentKeyboard(userID))
}

func (t *TelegramBot) handleAdminConfirmPayment(ctx context.Context, adminID, chatID, userID int64) {
	if adminID != t.adminID {
		return
	}

	if err := t.db.ExtendSubscription(ctx, userID, subscriptionMonths); err != nil {
		t.logger.Errorf("extend subscription for %d: %v", userID, err)
		t.sendText(chatID, fmt.Sprintf("Не вдалося продовжити підписку користувачу %d.", userID))
		return
	}
	if err := t.db.DeletePendingPayment(ctx, userID); err != nil {
		t.logger.Errorf("delete pending payment for %d: %v", userID, err)
	}

	t.sendText(chatID, fmt.Sprintf("Підписку користувача %d продовжено на %d міс. ✅", userID, subscriptionMonths))
	t.sendReceipt(ctx, userID)
}

func (t *TelegramBot) handleAdminRejectPayment(ctx context.Context, adminID, chatID, userID int64) {
	if adminID != t.adminID {
		return
	}
	if err := t.db.DeletePendingPayment(ctx, userID); err != nil {
		t.logger.Errorf("delete pending payment for %d: %v", userID, err)
	}
	t.sendText(chatID, fmt.Sprintf("Заявку користувача %d відхилено.", userID))
	t.sendText(userID, "На жаль, оплату не знайдено. 😔 Перевір реквізити та код у коментарі або напиши адміністратору.")
}

func (t *TelegramBot) sendReceipt(ctx context.Context, userID int64) {
	_, expiry, err := t.db.GetSubscriptionStatus(ctx, userID)
	if err != nil {
		t.logger.Errorf("get subscription for receipt %d: %v", userID, err)
	}

	msg := "🎉 Оплату підтверджено! Підписка активна."
	if expiry != nil {
		msg = fmt.Sprintf("🎉 Оплату підтверджено! Підписка активна до %s.", expiry.In(t.loc).Format("02.01.2006"))
	}
	t.sendWithKeyboard(userID, msg, mainMenuKeyboard())
}

// handleStripePayment is the card-less path: a hosted Stripe checkout page.
func (t *TelegramBot) handleStripePayment(userID, chatID int64) {
	if t.stripeClient == nil || t.stripeClient.GetPriceID() == "" {
		t.sendText(chatID, "Онлайн-оплата тимчасово недоступна. Скористайся переказом на картку.")
		return
	}

	successURL := fmt.Sprintf("https://t.me/%s?start=payment_success", t.bot.Self.UserName)
	cancelURL := fmt.Sprintf("https://t.me/%s?start=payment_cancel", t.bot.Self.UserName)

	_, checkoutURL, err := t.stripeClient.CreateCheckoutSession(userID, successURL, cancelURL)
	if err != nil {
		t.logger.Errorf("create checkout session for %d: %v", userID, err)
		t.sendText(chatID, "Не вдалося створити платіжну сесію. Спробуй пізніше.")
		return
	}

	t.sendText(chatID, "Посилання на оплату: "+checkoutURL+"\n\nПісля оплати підписка активується автоматично.")
}

// CompleteStripePayment is called by the webhook server once Stripe reports
// the checkout session as paid.
func (t *TelegramBot) CompleteStripePayment(ctx context.Context, userID int64) {
	if err := t.db.ExtendSubscription(ctx, userID, subscriptionMonths); err != nil {
		t.logger.Errorf("extend subscription after stripe payment for %d: %v", userID, err)
		return
	}
	t.sendReceipt(ctx, userID)
}

// handleGrant is admin-only: /grant @username gives lifetime access.
func (t *TelegramBot) handleGrant(ctx context.Context, userID, chatID int64, args string) {
	if userID != t.adminID {
		t.sendText(chatID, "Ця команда доступна лише адміністратору.")
		return
	}

	username := strings.TrimPrefix(strings.TrimSpace(args), "@")
	if username == "" {
		t.sendText(chatID, "Вкажи користувача: /grant @username")
		return
	}

	user, err := t.db.GetUserByUsername(ctx, username)
	if err != nil {
		t.logger.Errorf("grant lookup %q: %v", username, err)
		t.sendText(chatID, "Сталася помилка. Спробуй ще раз.")
		return
	}
	if user == nil {
		t.sendText(chatID, fmt.Sprintf("Користувача @%s не знайдено.", username))
		return
	}

	if err := t.db.GrantLifetimeAccess(ctx, user.ID); err != nil {
		t.logger.Errorf("grant lifetime to %d: %v", user.ID, err)
		t.sendText(chatID, "Не вдалося надати доступ.")
		return
	}

	t.sendText(chatID, fmt.Sprintf("Користувачу @%s надано довічний доступ. ✅", username))
	t.sendText(user.ID, "🎁 Тобі надано повний доступ до бота. Користуйся на здоров'я!")
}

func init() {
	rand.Seed(time.Now().UnixNano())
}
