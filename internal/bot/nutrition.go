// internal/bot/nutrition.go
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agext/levenshtein"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Nikkeen22/fitness-bot/internal/gpt"
	"github.com/Nikkeen22/fitness-bot/internal/models"
)

// fallbackSimilarity is the minimum name similarity for the local lookup to
// claim a match when the AI is unavailable.
const fallbackSimilarity = 0.8

// fallbackMeals is a small local macro table (per typical portion) used when
// the AI analysis fails or times out.
var fallbackMeals = []gpt.MealAnalysis{
	{MealName: "борщ", Calories: 80, Proteins: 2, Fats: 3, Carbs: 10},
	{MealName: "гречка", Calories: 132, Proteins: 4.5, Fats: 1, Carbs: 25},
	{MealName: "вівсянка", Calories: 102, Proteins: 3.5, Fats: 2, Carbs: 18},
	{MealName: "куряче філе", Calories: 165, Proteins: 31, Fats: 3.6, Carbs: 0},
	{MealName: "салат олів'є", Calories: 198, Proteins: 5.5, Fats: 15, Carbs: 10},
	{MealName: "яєчня", Calories: 196, Proteins: 14, Fats: 15, Carbs: 1},
	{MealName: "сирники", Calories: 220, Proteins: 12, Fats: 9, Carbs: 22},
	{MealName: "плов", Calories: 190, Proteins: 7, Fats: 8, Carbs: 23},
	{MealName: "банан", Calories: 89, Proteins: 1.1, Fats: 0.3, Carbs: 23},
	{MealName: "яблуко", Calories: 52, Proteins: 0.3, Fats: 0.2, Carbs: 14},
}

// lookupFallbackMeal fuzzy-matches the description against the local table.
// Returns nil when nothing is close enough.
func lookupFallbackMeal(description string) *gpt.MealAnalysis {
	needle := strings.ToLower(strings.TrimSpace(description))
	if needle == "" {
		return nil
	}

	var best *gpt.MealAnalysis
	bestScore := fallbackSimilarity
	for i := range fallbackMeals {
		score := levenshtein.Match(needle, fallbackMeals[i].MealName, nil)
		if score >= bestScore {
			best = &fallbackMeals[i]
			bestScore = score
		}
	}
	if best == nil {
		return nil
	}
	m := *best
	return &m
}

// needsMealFallback reports whether the AI reply is unusable: an outright
// failure, or a reply that parsed but carries no plausible calorie value.
func needsMealFallback(analysis *gpt.MealAnalysis, err error) bool {
	return err != nil || analysis == nil || analysis.Calories <= 0
}

func (t *TelegramBot) startMealLog(userID, chatID int64) {
	t.sessions.Begin(userID, StateMealLog)
	msg := tgbotapi.NewMessage(chatID, "🍽 Що ти з'їв? Опиши страву та приблизну порцію.\nНаприклад: тарілка борщу зі сметаною")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	t.safeSend(msg)
}

func (t *TelegramBot) handleMealDescription(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)
	if text == "" {
		t.sendText(chatID, "Опиши страву текстом, будь ласка.")
		return
	}

	analysis, err := t.gptClient.AnalyzeMeal(ctx, text)
	if needsMealFallback(analysis, err) {
		t.logger.Warnf("meal analysis unusable (err=%v), trying local table", err)
		analysis = lookupFallbackMeal(text)
		if analysis == nil {
			t.sendText(chatID, "Не вдалося проаналізувати страву. Спробуй описати її інакше або трохи пізніше.")
			return
		}
	}

	session.PendingMeal = analysis
	session.MealText = text

	t.sendMarkdownWithKeyboard(chatID, fmt.Sprintf(
		"Ось що вийшло:\n\n"+
			"🍲 *%s*\n"+
			"🔥 Калорії: %d ккал\n"+
			"🥩 Білки: %.1f г\n"+
			"🧈 Жири: %.1f г\n"+
			"🍞 Вуглеводи: %.1f г\n\n"+
			"Зберегти у щоденник?",
		analysis.MealName, analysis.Calories, analysis.Proteins, analysis.Fats, analysis.Carbs),
		mealConfirmKeyboard())
}

func (t *TelegramBot) handleMealConfirm(ctx context.Context, userID, chatID int64) {
	session := t.sessions.Get(userID)
	if session == nil || session.PendingMeal == nil {
		t.sendText(chatID, "Немає страви для збереження. Відкрий «Щоденник харчування» ще раз.")
		return
	}

	analysis := session.PendingMeal
	entry := &models.MealEntry{
		UserID:      userID,
		Description: session.MealText,
		Calories:    analysis.Calories,
		Proteins:    analysis.Proteins,
		Fats:        analysis.Fats,
		Carbs:       analysis.Carbs,
	}
	t.sessions.Clear(userID)

	if err := t.db.LogMeal(ctx, entry); err != nil {
		t.logger.Errorf("log meal for %d: %v", userID, err)
		t.sendText(chatID, "Не вдалося зберегти страву. Спробуй ще раз.")
		return
	}

	t.sendWithKeyboard(chatID, "Записав! 📝 Подивитися підсумок дня можна через /summary.", mainMenuKeyboard())
}

func (t *TelegramBot) handleMealCancel(userID, chatID int64) {
	t.sessions.Clear(userID)
	t.sendWithKeyboard(chatID, "Скасовано. Нічого не записав.", mainMenuKeyboard())
}

func (t *TelegramBot) handleDailySummary(ctx context.Context, userID, chatID int64) {
	now := time.Now().In(t.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.loc)

	entries, err := t.db.GetDailyFoodSummary(ctx, userID, dayStart)
	if err != nil {
		t.logger.Errorf("daily summary for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	if len(entries) == 0 {
		t.sendText(chatID, "Сьогодні ще немає записів. Залогуй страву через «Щоденник харчування»!")
		return
	}

	var calories int
	var proteins, fats, carbs float64
	var b strings.Builder
	b.WriteString("🌞 *Твій день у їжі:*\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "• %s - %d ккал\n", e.Description, e.Calories)
		calories += e.Calories
		proteins += e.Proteins
		fats += e.Fats
		carbs += e.Carbs
	}
	fmt.Fprintf(&b, "\n*Разом:* %d ккал\n🥩 %.1f г білків | 🧈 %.1f г жирів | 🍞 %.1f г вуглеводів",
		calories, proteins, fats, carbs)

	t.sendMarkdown(chatID, b.String())
}
