// internal/bot/keyboards.go
package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📋 Мій план"),
			tgbotapi.NewKeyboardButton("📈 Прогрес"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🍽 Щоденник харчування"),
			tgbotapi.NewKeyboardButton("🏆 Спільнота"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🛠 Інструменти"),
			tgbotapi.NewKeyboardButton("💬 Чат з тренером"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func genderKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Чоловік"),
			tgbotapi.NewKeyboardButton("Жінка"),
		),
	)
}

func goalKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Схуднення"),
			tgbotapi.NewKeyboardButton("Набір маси"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Підтримка форми"),
		),
	)
}

func activityKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Низький"),
			tgbotapi.NewKeyboardButton("Середній"),
			tgbotapi.NewKeyboardButton("Високий"),
		),
	)
}

func conditionsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Дім"),
			tgbotapi.NewKeyboardButton("Зал"),
			tgbotapi.NewKeyboardButton("Вулиця"),
		),
	)
}

func frequencyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("2"),
			tgbotapi.NewKeyboardButton("3"),
			tgbotapi.NewKeyboardButton("4"),
			tgbotapi.NewKeyboardButton("5"),
		),
	)
}

func durationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("30"),
			tgbotapi.NewKeyboardButton("45"),
			tgbotapi.NewKeyboardButton("60"),
			tgbotapi.NewKeyboardButton("90"),
		),
	)
}

func workoutDoneKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Готово ✅", "workout_done"),
		),
	)
}

func feedbackRatingKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := tgbotapi.NewInlineKeyboardRow()
	for i := 1; i <= 5; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d⭐", i), fmt.Sprintf("feedback_rate_%d", i)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func mealConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Зберегти", "meal_confirm"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Скасувати", "meal_cancel"),
		),
	)
}

func groupInviteKeyboard(inviteLink string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🚀 Приєднатися до спільноти", inviteLink),
		),
	)
}

func communityMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Челенджі", "challenges_list"),
			tgbotapi.NewInlineKeyboardButtonData("⚔️ Дуель", "duel_start"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📸 Поділитися результатом", "share_result"),
			tgbotapi.NewInlineKeyboardButtonData("🖼 Мої результати", "my_results"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Створити челендж", "challenge_create"),
		),
	)
}

func toolsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔢 Калькулятор калорій", "tool_calories"),
			tgbotapi.NewInlineKeyboardButtonData("⏰ Нагадування", "tool_reminders"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍳 Рецепт з продуктів", "tool_recipe"),
			tgbotapi.NewInlineKeyboardButtonData("💡 Порада дня", "tool_tip"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏃 Рівень активності", "tool_activity"),
		),
	)
}

func activityLevelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Низький", "activity_low"),
			tgbotapi.NewInlineKeyboardButtonData("Середній", "activity_medium"),
			tgbotapi.NewInlineKeyboardButtonData("Високий", "activity_high"),
		),
	)
}

func challengeViewKeyboard(challengeID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Долучитися", fmt.Sprintf("challenge_join_%d", challengeID)),
			tgbotapi.NewInlineKeyboardButtonData("💪 Виконав сьогодні", fmt.Sprintf("challenge_do_%d", challengeID)),
		),
	)
}

func duelResponseKeyboard(duelID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚔️ Прийняти", fmt.Sprintf("duel_accept_%d", duelID)),
			tgbotapi.NewInlineKeyboardButtonData("🙅 Відхилити", fmt.Sprintf("duel_reject_%d", duelID)),
		),
	)
}

func duelProofKeyboard(duelID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎥 Надіслати відео-доказ", fmt.Sprintf("duel_proof_%d", duelID)),
		),
	)
}

func subscribeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Переказ на картку", "initiate_payment"),
			tgbotapi.NewInlineKeyboardButtonData("🌐 Оплата Stripe", "stripe_payment"),
		),
	)
}

func paymentSentKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Я оплатив", "user_confirm_payment"),
		),
	)
}

func adminPaymentKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Підтвердити", fmt.Sprintf("admin_confirm_%d", userID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Відхилити", fmt.Sprintf("admin_reject_%d", userID)),
		),
	)
}
