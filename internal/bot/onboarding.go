// internal/bot/onboarding.go
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Nikkeen22/fitness-bot/internal/plan"
)

func (t *TelegramBot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	// Returning from the Stripe checkout page.
	switch message.CommandArguments() {
	case "payment_success":
		t.sendText(chatID, "Дякую за оплату! Щойно Stripe підтвердить платіж, підписка активується автоматично.")
		return
	case "payment_cancel":
		t.sendText(chatID, "Оплату скасовано. Оформити підписку можна будь-коли через /subscribe.")
		return
	}

	planText, err := t.db.GetFitnessPlan(ctx, userID)
	if err != nil {
		t.logger.Errorf("get plan for %d: %v", userID, err)
	}
	if planText != "" {
		t.sendWithKeyboard(chatID,
			"З поверненням! 💪 Твій план уже чекає на тебе. Обери дію з меню, або створи новий план через /newplan.",
			mainMenuKeyboard())
		return
	}

	t.sendText(chatID,
		"Привіт! 👋 Я твій персональний AI фітнес-тренер.\n\n"+
			"Складу для тебе план тренувань і харчування, нагадаю про тренування та допоможу тримати мотивацію.\n\n"+
			"Перші 7 днів - безкоштовно. Почнімо з короткої анкети!")
	t.startOnboarding(chatID, userID)
}

func (t *TelegramBot) startOnboarding(chatID, userID int64) {
	t.sessions.Begin(userID, StateGoal)
	t.sendWithKeyboard(chatID, "Яка твоя головна ціль?", goalKeyboard())
}

// Reply-keyboard choices shared by the onboarding survey and the calorie
// calculator.

func validGoalChoice(text string) bool {
	return text == "Схуднення" || text == "Набір маси" || text == "Підтримка форми"
}

func validGenderChoice(text string) bool {
	return text == "Чоловік" || text == "Жінка"
}

func validActivityChoice(text string) bool {
	return text == "Низький" || text == "Середній" || text == "Високий"
}

// parseBodyParams parses the "вага, зріст, вік" answer, e.g. "75, 180, 28".
func parseBodyParams(text string) (weight, height, age int, err error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected three comma-separated values")
	}
	weight, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || weight < 30 || weight > 300 {
		return 0, 0, 0, fmt.Errorf("invalid weight")
	}
	height, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height < 100 || height > 250 {
		return 0, 0, 0, fmt.Errorf("invalid height")
	}
	age, err = strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || age < 10 || age > 100 {
		return 0, 0, 0, fmt.Errorf("invalid age")
	}
	return weight, height, age, nil
}

func (t *TelegramBot) handleOnboardingStep(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	switch session.State {
	case StateGoal:
		if !validGoalChoice(text) {
			t.sendWithKeyboard(chatID, "Обери ціль кнопкою нижче, будь ласка.", goalKeyboard())
			return
		}
		session.Answers.Goal = text
		session.State = StateGender
		t.sendWithKeyboard(chatID, "Твоя стать?", genderKeyboard())

	case StateGender:
		if !validGenderChoice(text) {
			t.sendWithKeyboard(chatID, "Обери стать кнопкою нижче.", genderKeyboard())
			return
		}
		session.Answers.Gender = text
		session.State = StateParams
		msg := tgbotapi.NewMessage(chatID, "Вкажи вагу (кг), зріст (см) та вік через кому.\nНаприклад: 75, 180, 28")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		t.safeSend(msg)

	case StateParams:
		weight, height, age, err := parseBodyParams(text)
		if err != nil {
			t.sendText(chatID, "Не можу розібрати. Введи три числа через кому, наприклад: 75, 180, 28")
			return
		}
		session.Answers.Weight = weight
		session.Answers.Height = height
		session.Answers.Age = age
		session.State = StateBodyType
		t.sendText(chatID, "Опиши свою статуру кількома словами (наприклад: худорлявий, є живіт, спортивна).")

	case StateBodyType:
		if text == "" {
			t.sendText(chatID, "Опиши статуру текстом, будь ласка.")
			return
		}
		session.Answers.BodyType = text
		session.State = StateActivity
		t.sendWithKeyboard(chatID, "Який у тебе звичний рівень активності?", activityKeyboard())

	case StateActivity:
		if !validActivityChoice(text) {
			t.sendWithKeyboard(chatID, "Обери рівень кнопкою нижче.", activityKeyboard())
			return
		}
		session.Answers.ActivityLevel = text
		session.State = StateConditions
		t.sendWithKeyboard(chatID, "Де плануєш тренуватися?", conditionsKeyboard())

	case StateConditions:
		if text != "Дім" && text != "Зал" && text != "Вулиця" {
			t.sendWithKeyboard(chatID, "Обери варіант кнопкою нижче.", conditionsKeyboard())
			return
		}
		session.Answers.Conditions = text
		session.State = StateFrequency
		t.sendWithKeyboard(chatID, "Скільки тренувань на тиждень тобі комфортно?", frequencyKeyboard())

	case StateFrequency:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > 7 {
			t.sendWithKeyboard(chatID, "Обери кількість тренувань кнопкою нижче.", frequencyKeyboard())
			return
		}
		session.Answers.Frequency = text
		session.State = StateDuration
		t.sendWithKeyboard(chatID, "Скільки хвилин триватиме тренування?", durationKeyboard())

	case StateDuration:
		n, err := strconv.Atoi(text)
		if err != nil || n < 10 || n > 240 {
			t.sendWithKeyboard(chatID, "Обери тривалість кнопкою нижче.", durationKeyboard())
			return
		}
		session.Answers.Duration = text
		session.State = StateFoodPrefs
		msg := tgbotapi.NewMessage(chatID, "Останнє питання: чи є харчові вподобання, алергії або обмеження? Якщо немає - напиши «немає».")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		t.safeSend(msg)

	case StateFoodPrefs:
		if text == "" {
			t.sendText(chatID, "Напиши відповідь текстом, наприклад «немає».")
			return
		}
		session.Answers.FoodPrefs = text
		t.finishOnboarding(ctx, userID, chatID, session)
	}
}

// finishOnboarding is the terminal step: persist answers, generate the plan,
// persist it, grant the first badge and hand back the menu with today's
// workout.
func (t *TelegramBot) finishOnboarding(ctx context.Context, userID, chatID int64, session *Session) {
	answers := session.Answers
	t.sessions.Clear(userID)

	if err := t.db.SaveOnboardingAnswers(ctx, userID, &answers); err != nil {
		t.logger.Errorf("save answers for %d: %v", userID, err)
	}

	t.sendText(chatID, "Дякую! 🧠 Генерую твій персональний план. Це займе до хвилини...")

	today := plan.WeekdayName(time.Now().In(t.loc).Weekday())
	fullPlan, todayWorkout, err := t.gptClient.GeneratePlan(ctx, &answers, today)
	if err != nil {
		t.logger.Errorf("generate plan for %d: %v", userID, err)
		t.sendWithKeyboard(chatID,
			"На жаль, не вдалося створити план просто зараз. Спробуй ще раз через /newplan за кілька хвилин.",
			mainMenuKeyboard())
		return
	}

	if err := t.db.SaveFitnessPlan(ctx, userID, fullPlan); err != nil {
		t.logger.Errorf("save plan for %d: %v", userID, err)
	}

	t.sendMarkdown(chatID, fullPlan)
	t.grantBadge(ctx, userID, chatID, badgeNovice)

	if todayWorkout != "" {
		if plan.IsRestDay(todayWorkout) {
			t.sendText(chatID, "Сьогодні за планом відпочинок. Стартуємо завтра! 😌")
		} else {
			t.sendMarkdownWithKeyboard(chatID,
				"🔥 *Тренування на сьогодні:*\n\n"+todayWorkout+"\n\nНатисни кнопку, коли завершиш.",
				workoutDoneKeyboard())
		}
	}

	if t.groupInviteLink != "" {
		t.sendWithKeyboard(chatID,
			"До речі, у нас є спільнота - челенджі, дуелі та підтримка однодумців. Приєднуйся!",
			groupInviteKeyboard(t.groupInviteLink))
	}

	t.sendWithKeyboard(chatID, "Головне меню завжди під рукою 👇", mainMenuKeyboard())
}

func (t *TelegramBot) handleMyPlan(ctx context.Context, userID, chatID int64) {
	planText, err := t.db.GetFitnessPlan(ctx, userID)
	if err != nil {
		t.logger.Errorf("get plan for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	if planText == "" {
		t.sendText(chatID, "У тебе ще немає плану. Створи його через /newplan!")
		return
	}
	t.sendMarkdown(chatID, planText)
}

func (t *TelegramBot) handleProgress(ctx context.Context, userID, chatID int64) {
	total, err := t.db.CountTotalWorkouts(ctx, userID)
	if err != nil {
		t.logger.Errorf("count workouts for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	week, err := t.db.CountWorkoutsLastNDays(ctx, userID, 7)
	if err != nil {
		t.logger.Errorf("count week workouts for %d: %v", userID, err)
		week = 0
	}
	t.sendMarkdown(chatID, fmt.Sprintf(
		"📈 *Твій прогрес*\n\n"+
			"💪 Усього тренувань: *%d*\n"+
			"🗓 За останні 7 днів: *%d*\n\n"+
			"Кожне тренування наближає тебе до цілі!",
		total, week))
}
