// internal/gpt/client.go
package gpt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

// todayWorkoutMarker separates the weekly plan from the "today" section in
// the generated text.
const todayWorkoutMarker = "---TODAY_WORKOUT---"

const coachSystemPrompt = "Ти - досвідчений фітнес-тренер та дієтолог на ім'я AI Fitness Coach. " +
	"Відповідай чітко, експертно, підбадьорливо. Будь дружелюбним."

type Client struct {
	client      *openai.Client
	model       string
	genTimeout  time.Duration
	chatTimeout time.Duration
}

// ChatTurn is one turn of the rolling free-chat history.
type ChatTurn struct {
	Author string `json:"author"` // "user" or "model"
	Text   string `json:"text"`
}

// MealAnalysis is the structured macro estimate for a described meal.
type MealAnalysis struct {
	MealName string  `json:"meal_name"`
	Calories int     `json:"calories"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		client:      openai.NewClient(apiKey),
		model:       openai.GPT4,
		genTimeout:  60 * time.Second,
		chatTimeout: 45 * time.Second,
	}
}

func (c *Client) WithModel(model string) *Client {
	c.model = model
	return c
}

func (c *Client) WithTimeouts(gen, chat time.Duration) *Client {
	if gen > 0 {
		c.genTimeout = gen
	}
	if chat > 0 {
		c.chatTimeout = chat
	}
	return c
}

// generate performs one bounded completion call. All failures, timeouts
// included, come back as errors; the caller picks the user-facing fallback.
func (c *Client) generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.genTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: coachSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   2500,
		Temperature: 0.7,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GeneratePlan builds the full weekly plan plus the "today" excerpt from the
// user's onboarding answers.
func (c *Client) GeneratePlan(ctx context.Context, answers *models.OnboardingAnswers, todayWeekday string) (string, string, error) {
	prompt := fmt.Sprintf(
		"Ви - експертний фітнес-тренер та дієтолог. Створи персоналізований фітнес-план для користувача з наступними даними.\n"+
			"Відповідь має бути чітко структурована у форматі Markdown для Telegram.\n\n"+
			"**Вхідні дані користувача:**\n"+
			"- **Головна ціль:** %s\n"+
			"- **Стать:** %s\n"+
			"- **Вага:** %d кг\n"+
			"- **Зріст:** %d см\n"+
			"- **Вік:** %d років\n"+
			"- **Опис статури:** %s\n"+
			"- **Рівень активності:** %s\n"+
			"- **Умови для тренувань:** %s\n"+
			"- **Частота тренувань:** %s разів на тиждень\n"+
			"- **Тривалість тренування:** %s хвилин\n"+
			"- **Харчові вподобання/обмеження:** %s\n\n"+
			"**Ваше завдання - згенерувати:**\n\n"+
			"**1. МОТИВАЦІЙНЕ ПРИВІТАННЯ:** коротке, надихаюче повідомлення.\n\n"+
			"**2. ПЛАН ХАРЧУВАННЯ:** розрахуйте денну норму КБЖВ і меню на 3 дні.\n\n"+
			"**3. ПРОГРАМА ТРЕНУВАНЬ НА ТИЖДЕНЬ:** детальний план на %s днів + дні відпочинку, "+
			"для кожного дня 5-7 вправ з підходами й повтореннями. Заголовок кожного дня - жирним, "+
			"з українською назвою дня тижня. Завершуйте кожен день рядком: `Орієнтовно спалених калорій: XXX ккал.`\n\n"+
			"**4. ТРЕНУВАННЯ НА СЬОГОДНІ (%s):** почніть секцію з унікального маркера `%s`. "+
			"Якщо день відпочинку - вкажіть.",
		answers.Goal, answers.Gender, answers.Weight, answers.Height, answers.Age,
		answers.BodyType, answers.ActivityLevel, answers.Conditions,
		answers.Frequency, answers.Duration, answers.FoodPrefs,
		answers.Frequency, todayWeekday, todayWorkoutMarker,
	)

	full, err := c.generate(ctx, prompt, false)
	if err != nil {
		return "", "", err
	}

	if idx := strings.Index(full, todayWorkoutMarker); idx >= 0 {
		plan := strings.TrimSpace(full[:idx])
		today := strings.TrimSpace(full[idx+len(todayWorkoutMarker):])
		return plan, today, nil
	}
	return full, "", nil
}

// AnalyzeMeal asks for a structured macro estimate of a free-text meal
// description.
func (c *Client) AnalyzeMeal(ctx context.Context, description string) (*MealAnalysis, error) {
	prompt := fmt.Sprintf(
		"Проаналізуй опис страви та поверни JSON об'єкт з такими полями:\n"+
			"\"meal_name\", \"calories\", \"proteins\", \"fats\", \"carbs\".\n"+
			"Опис страви: %q", description,
	)

	raw, err := c.generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var analysis MealAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse meal analysis: %w", err)
	}
	return &analysis, nil
}

// Chat answers one free-chat turn using the rolling history window.
func (c *Client) Chat(ctx context.Context, history []ChatTurn, newPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.chatTimeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: coachSystemPrompt},
	}
	for _, turn := range history {
		role := openai.ChatMessageRoleAssistant
		if turn.Author == "user" {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: newPrompt})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty chat response")
	}
	return resp.Choices[0].Message.Content, nil
}

// CalculateCalories estimates the daily calorie and macro targets.
func (c *Client) CalculateCalories(ctx context.Context, answers *models.OnboardingAnswers) (string, error) {
	prompt := fmt.Sprintf(
		"Розрахуй добову потребу в калоріях, білках, жирах і вуглеводах для:\n"+
			"- Стать: %s\n- Вік: %d\n- Вага: %d\n- Зріст: %d\n"+
			"- Рівень активності: %s\n- Ціль: %s\n\n"+
			"Вкажи значення у форматі:\nКалорії: XXXX ккал\nБілки: XX г\nЖири: XX г\nВуглеводи: XX г",
		answers.Gender, answers.Age, answers.Weight, answers.Height,
		answers.ActivityLevel, answers.Goal,
	)
	return c.generate(ctx, prompt, false)
}

// DailySummaryInput feeds the evening nutrition analysis.
type DailySummaryInput struct {
	Goal           string
	CaloriesEaten  int
	TargetCalories int
	BurnedCalories int
	ActivityLevel  string
}

func (c *Client) DailyAnalysis(ctx context.Context, in DailySummaryInput) (string, error) {
	prompt := fmt.Sprintf(
		"Зроби короткий аналіз на основі щоденного звіту:\n"+
			"- Калорії спожито: %d\n- Рекомендована норма: %d\n- Калорії спалено: %d\n"+
			"- Ціль: %s\n- Рівень активності: %s\n\n"+
			"Виведи рекомендації на завтра у 3-4 реченнях.",
		in.CaloriesEaten, in.TargetCalories, in.BurnedCalories, in.Goal, in.ActivityLevel,
	)
	return c.generate(ctx, prompt, false)
}

func (c *Client) FitnessTip(ctx context.Context) (string, error) {
	prompt := "Дай одну коротку, корисну та несподівану пораду про фітнес або здоровий спосіб життя. " +
		"Відповідь має бути одним-двома реченнями."
	return c.generate(ctx, prompt, false)
}

// RecipeFromProducts builds a healthy recipe from the user's product list,
// tuned to their onboarding answers.
func (c *Client) RecipeFromProducts(ctx context.Context, products string, answers *models.OnboardingAnswers) (string, error) {
	foodPrefs := "немає"
	goal := "здорове харчування"
	if answers != nil {
		if answers.FoodPrefs != "" {
			foodPrefs = answers.FoodPrefs
		}
		if answers.Goal != "" {
			goal = answers.Goal
		}
	}

	prompt := fmt.Sprintf(
		"Виступи в ролі шеф-кухаря та дієтолога. Створи один здоровий, смачний та простий рецепт, "+
			"використовуючи наступні продукти: %s.\n\n"+
			"Врахуй дані про користувача:\n"+
			"- Харчові вподобання або обмеження: %s\n- Головна ціль користувача: %s\n\n"+
			"Відповідь повинна містити назву страви, короткий опис, список інгредієнтів, "+
			"покрокову інструкцію та приблизний розрахунок КБЖВ на порцію. "+
			"Форматуй відповідь у Markdown.",
		products, foodPrefs, goal,
	)
	return c.generate(ctx, prompt, false)
}

// AdjustPlan rewrites the stored plan based on the weekly 1-5 rating and
// free-text comment. The result replaces the plan wholesale.
func (c *Client) AdjustPlan(ctx context.Context, answers *models.OnboardingAnswers, currentPlan string, rating int, comment string) (string, error) {
	prompt := fmt.Sprintf(
		"Ви - експертний фітнес-тренер.\nКористувач надав фітнес-план:\n%s\n\n"+
			"Користувач оцінив план на %d з 5 і додав коментар:\n%s\n\n"+
			"Враховуючи оцінку та коментар, адаптуйте фітнес-план для кращого результату. "+
			"Залишайте відповідь у форматі Markdown, коротко і чітко. "+
			"Заголовки днів тижня залишайте жирним, з українськими назвами днів.",
		currentPlan, rating, comment,
	)
	return c.generate(ctx, prompt, false)
}
