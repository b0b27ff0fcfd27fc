// internal/bot/tools.go
package bot

import (
	"context"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var timeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// ValidTime reports whether the text is a valid HH:MM time of day.
func ValidTime(text string) bool {
	return timeRe.MatchString(strings.TrimSpace(text))
}

// normalizeTime pads "8:30" to "08:30" so stored values compare equal to the
// clock's HH:MM format.
func normalizeTime(text string) string {
	text = strings.TrimSpace(text)
	if len(text) == 4 {
		return "0" + text
	}
	return text
}

// startCalorieCalculator runs its own short survey instead of reusing the
// onboarding answers, so the user can count for any set of parameters.
func (t *TelegramBot) startCalorieCalculator(userID, chatID int64) {
	t.sessions.Begin(userID, StateCalcGender)
	t.sendWithKeyboard(chatID, "🔢 Порахуймо денну норму калорій. Для кого рахуємо - стать?", genderKeyboard())
}

func (t *TelegramBot) handleCalculatorStep(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	switch session.State {
	case StateCalcGender:
		if !validGenderChoice(text) {
			t.sendWithKeyboard(chatID, "Обери стать кнопкою нижче.", genderKeyboard())
			return
		}
		session.Answers.Gender = text
		session.State = StateCalcParams
		msg := tgbotapi.NewMessage(chatID, "Вкажи вагу (кг), зріст (см) та вік через кому.\nНаприклад: 75, 180, 28")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		t.safeSend(msg)

	case StateCalcParams:
		weight, height, age, err := parseBodyParams(text)
		if err != nil {
			t.sendText(chatID, "Не можу розібрати. Введи три числа через кому, наприклад: 75, 180, 28")
			return
		}
		session.Answers.Weight = weight
		session.Answers.Height = height
		session.Answers.Age = age
		session.State = StateCalcActivity
		t.sendWithKeyboard(chatID, "Рівень активності?", activityKeyboard())

	case StateCalcActivity:
		if !validActivityChoice(text) {
			t.sendWithKeyboard(chatID, "Обери рівень кнопкою нижче.", activityKeyboard())
			return
		}
		session.Answers.ActivityLevel = text
		session.State = StateCalcGoal
		t.sendWithKeyboard(chatID, "І ціль?", goalKeyboard())

	case StateCalcGoal:
		if !validGoalChoice(text) {
			t.sendWithKeyboard(chatID, "Обери ціль кнопкою нижче.", goalKeyboard())
			return
		}
		session.Answers.Goal = text
		answers := session.Answers
		t.sessions.Clear(userID)

		t.sendText(chatID, "Рахую твою денну норму... 🔢")
		result, err := t.gptClient.CalculateCalories(ctx, &answers)
		if err != nil {
			t.logger.Errorf("calculate calories for %d: %v", userID, err)
			t.sendWithKeyboard(chatID, "Не вдалося порахувати просто зараз. Спробуй трохи пізніше.", mainMenuKeyboard())
			return
		}
		t.sendMarkdownWithKeyboard(chatID, result, mainMenuKeyboard())
	}
}

func (t *TelegramBot) startReminderSetup(userID, chatID int64) {
	t.sessions.Begin(userID, StateReminderBreakfast)
	t.sendText(chatID, "Налаштуймо нагадування про їжу. ⏰\nО котрій ти снідаєш? (формат ГГ:ХХ, наприклад 08:30)")
}

func (t *TelegramBot) handleReminderStep(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	if !ValidTime(text) {
		t.sendText(chatID, "Не схоже на час. Введи у форматі ГГ:ХХ, наприклад 13:00.")
		return
	}
	value := normalizeTime(text)

	switch session.State {
	case StateReminderBreakfast:
		session.Reminders.Breakfast = value
		session.State = StateReminderLunch
		t.sendText(chatID, "А обідаєш о котрій?")
	case StateReminderLunch:
		session.Reminders.Lunch = value
		session.State = StateReminderDinner
		t.sendText(chatID, "І останнє - час вечері?")
	case StateReminderDinner:
		session.Reminders.Dinner = value
		r := session.Reminders
		t.sessions.Clear(userID)

		if err := t.db.SetMealReminders(ctx, userID, r.Breakfast, r.Lunch, r.Dinner); err != nil {
			t.logger.Errorf("set reminders for %d: %v", userID, err)
			t.sendText(chatID, "Не вдалося зберегти нагадування. Спробуй ще раз.")
			return
		}
		t.sendWithKeyboard(chatID,
			"Готово! Нагадаю про сніданок о "+r.Breakfast+", обід о "+r.Lunch+" та вечерю о "+r.Dinner+". ⏰",
			mainMenuKeyboard())
	}
}

func (t *TelegramBot) startChat(userID, chatID int64) {
	t.sessions.Begin(userID, StateChat)
	msg := tgbotapi.NewMessage(chatID,
		"💬 Я слухаю! Питай про тренування, харчування чи мотивацію.\nЗавершити розмову: /stop_chat")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	t.safeSend(msg)
}

func (t *TelegramBot) handleChatMessage(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	reply, err := t.gptClient.Chat(ctx, session.ChatHistory, text)
	if err != nil {
		t.logger.Errorf("chat reply for %d: %v", message.From.ID, err)
		t.sendText(chatID, "Щось я завис. 🤔 Повтори, будь ласка, питання.")
		return
	}

	session.PushChatTurn("user", text)
	session.PushChatTurn("model", reply)
	t.sendMarkdown(chatID, reply)
}

func (t *TelegramBot) startRecipe(userID, chatID int64) {
	t.sessions.Begin(userID, StateFoodProducts)
	t.sendText(chatID, "🍳 Напиши, які продукти є під рукою, а я складу з них здоровий рецепт.\nНаприклад: курка, рис, броколі")
}

func (t *TelegramBot) handleRecipeProducts(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)
	if text == "" {
		t.sendText(chatID, "Перелічи продукти текстом, будь ласка.")
		return
	}
	t.sessions.Clear(userID)

	answers, err := t.db.GetOnboardingAnswers(ctx, userID)
	if err != nil {
		t.logger.Errorf("get answers for %d: %v", userID, err)
	}

	t.sendText(chatID, "Чаклую над рецептом... 🍳")
	recipe, err := t.gptClient.RecipeFromProducts(ctx, text, answers)
	if err != nil {
		t.logger.Errorf("recipe for %d: %v", userID, err)
		t.sendText(chatID, "Не вдалося скласти рецепт. Спробуй трохи пізніше.")
		return
	}
	t.sendMarkdown(chatID, recipe)
	t.grantBadge(ctx, userID, chatID, badgeChef)
}

func (t *TelegramBot) handleTip(ctx context.Context, chatID int64) {
	tip, err := t.gptClient.FitnessTip(ctx)
	if err != nil {
		t.logger.Errorf("fitness tip: %v", err)
		t.sendText(chatID, "Порада сховалась. 😅 Спробуй ще раз за хвилину.")
		return
	}
	t.sendMarkdown(chatID, "💡 "+tip)
}

func (t *TelegramBot) handleActivityLevel(ctx context.Context, userID, chatID int64, level string) {
	labels := map[string]string{
		"low":    "Низький",
		"medium": "Середній",
		"high":   "Високий",
	}
	label, ok := labels[level]
	if !ok {
		return
	}
	if err := t.db.SetDailyActivity(ctx, userID, label); err != nil {
		t.logger.Errorf("set activity for %d: %v", userID, err)
		t.sendText(chatID, "Не вдалося зберегти. Спробуй ще раз.")
		return
	}
	t.sendText(chatID, "Записав: "+label+" рівень активності на сьогодні. 🏃")
}

// handleFeedbackRating is the first half of the weekly feedback loop: store
// the rating and ask for a comment.
func (t *TelegramBot) handleFeedbackRating(userID, chatID int64, rating int) {
	if rating < 1 || rating > 5 {
		return
	}
	session := t.sessions.Begin(userID, StateFeedbackComment)
	session.FeedbackRating = rating

	if rating >= 4 {
		t.sendText(chatID, "Клас! 🙌 Напиши, що сподобалось найбільше, або «все супер».")
	} else {
		t.sendText(chatID, "Дякую за чесність. Напиши, що саме було не так - і я перегляну план.")
	}
}

// handleFeedbackComment closes the loop: the plan is rebuilt around the
// rating and comment and replaces the stored one.
func (t *TelegramBot) handleFeedbackComment(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	userID := message.From.ID
	comment := strings.TrimSpace(message.Text)
	rating := session.FeedbackRating
	t.sessions.Clear(userID)

	if comment == "" {
		comment = "без коментаря"
	}

	answers, err := t.db.GetOnboardingAnswers(ctx, userID)
	if err != nil || answers == nil {
		t.sendWithKeyboard(chatID, "Дякую за відгук! 🙏", mainMenuKeyboard())
		return
	}
	currentPlan, err := t.db.GetFitnessPlan(ctx, userID)
	if err != nil || currentPlan == "" {
		t.sendWithKeyboard(chatID, "Дякую за відгук! 🙏", mainMenuKeyboard())
		return
	}

	t.sendText(chatID, "Дякую! Адаптую план з урахуванням твого відгуку... 🧠")

	newPlan, err := t.gptClient.AdjustPlan(ctx, answers, currentPlan, rating, comment)
	if err != nil {
		t.logger.Errorf("adjust plan for %d: %v", userID, err)
		t.sendWithKeyboard(chatID, "Поки не вдалося оновити план, лишаю поточний. Спробуємо наступного тижня!", mainMenuKeyboard())
		return
	}

	if err := t.db.SaveFitnessPlan(ctx, userID, newPlan); err != nil {
		t.logger.Errorf("save adjusted plan for %d: %v", userID, err)
	}

	t.sendMarkdown(chatID, "🔄 *Оновлений план:*\n\n"+newPlan)
	t.sendWithKeyboard(chatID, "Гарного тижня! 💪", mainMenuKeyboard())
}
