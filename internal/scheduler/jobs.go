// internal/scheduler/jobs.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Nikkeen22/fitness-bot/internal/gpt"
	"github.com/Nikkeen22/fitness-bot/internal/models"
	"github.com/Nikkeen22/fitness-bot/internal/plan"
	"github.com/Nikkeen22/fitness-bot/pkg/logger"
)

// Store is the slice of the database the recurring jobs read from.
type Store interface {
	GetAllActiveUsers(ctx context.Context) ([]models.User, error)
	GetFitnessPlan(ctx context.Context, userID int64) (string, error)
	GetOnboardingAnswers(ctx context.Context, userID int64) (*models.OnboardingAnswers, error)
	GetDailyFoodSummary(ctx context.Context, userID int64, dayStart time.Time) ([]models.MealEntry, error)
	GetDailyActivity(ctx context.Context, userID int64) (string, error)
	GetTopUsersByWorkouts(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	CountWorkoutsLastNDays(ctx context.Context, userID int64, days int) (int, error)
	GetUserAchievements(ctx context.Context, userID int64) ([]string, error)
	GetAllMealReminders(ctx context.Context) ([]models.MealReminder, error)
	GetUsersNotInGroup(ctx context.Context) ([]int64, error)
	HasAchievement(ctx context.Context, userID int64, achievementID string) (bool, error)
	GrantAchievement(ctx context.Context, userID int64, achievementID string) error
}

// Sender delivers job output. Implemented by the bot layer so jobs stay
// testable without a live Telegram connection.
type Sender interface {
	SendText(chatID int64, text string) error
	SendMarkdown(chatID int64, text string) error
	SendWorkoutPrompt(chatID int64, text string) error
	SendFeedbackPrompt(chatID int64, text string) error
	SendGroupInvite(chatID int64, text string) error
}

// Coach is the AI dependency of the evening summary job.
type Coach interface {
	DailyAnalysis(ctx context.Context, in gpt.DailySummaryInput) (string, error)
}

type Jobs struct {
	store   Store
	sender  Sender
	coach   Coach
	log     *logger.Logger
	groupID int64
	loc     *time.Location
	now     func() time.Time
}

func NewJobs(store Store, sender Sender, coach Coach, log *logger.Logger, groupID int64, loc *time.Location) *Jobs {
	return &Jobs{
		store:   store,
		sender:  sender,
		coach:   coach,
		log:     log,
		groupID: groupID,
		loc:     loc,
		now:     time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (j *Jobs) WithClock(now func() time.Time) *Jobs {
	j.now = now
	return j
}

// DailyWorkoutReminder sends every active user their workout for today,
// with a completion button, or a rest-day note.
func (j *Jobs) DailyWorkoutReminder(ctx context.Context) {
	users, err := j.store.GetAllActiveUsers(ctx)
	if err != nil {
		j.log.Errorf("workout reminder: list users: %v", err)
		return
	}

	weekday := j.now().In(j.loc).Weekday()
	for _, u := range users {
		planText, err := j.store.GetFitnessPlan(ctx, u.ID)
		if err != nil || planText == "" {
			continue
		}
		section := plan.DaySection(planText, weekday)
		if section == "" {
			continue
		}
		if plan.IsRestDay(section) {
			j.send(u.ID, "Сьогодні за планом день відпочинку. Відновлюйся, ти на правильному шляху! 💪")
			continue
		}
		msg := fmt.Sprintf("🔥 Час тренування!\n\n%s\n\nНатисни кнопку, коли завершиш.", section)
		if err := j.sender.SendWorkoutPrompt(u.ID, msg); err != nil {
			j.log.Errorf("workout reminder: send to %d: %v", u.ID, err)
		}
	}
}

// WeeklyFeedbackRequest asks every active user to rate the past week's plan.
func (j *Jobs) WeeklyFeedbackRequest(ctx context.Context) {
	users, err := j.store.GetAllActiveUsers(ctx)
	if err != nil {
		j.log.Errorf("weekly feedback: list users: %v", err)
		return
	}
	for _, u := range users {
		planText, err := j.store.GetFitnessPlan(ctx, u.ID)
		if err != nil || planText == "" {
			continue
		}
		msg := "📋 Тиждень позаду! Як тобі план тренувань? Оціни від 1 до 5 - і я адаптую його під тебе."
		if err := j.sender.SendFeedbackPrompt(u.ID, msg); err != nil {
			j.log.Errorf("weekly feedback: send to %d: %v", u.ID, err)
		}
	}
}

const (
	veteranBadgeID   = "veteran"
	veteranAfterDays = 30
)

// MonthlyReport summarizes each user's month: workouts done and badges earned.
// It is also where the tenure badge gets granted.
func (j *Jobs) MonthlyReport(ctx context.Context) {
	users, err := j.store.GetAllActiveUsers(ctx)
	if err != nil {
		j.log.Errorf("monthly report: list users: %v", err)
		return
	}
	for _, u := range users {
		workouts, err := j.store.CountWorkoutsLastNDays(ctx, u.ID, 30)
		if err != nil {
			j.log.Errorf("monthly report: workouts for %d: %v", u.ID, err)
			continue
		}
		badges, err := j.store.GetUserAchievements(ctx, u.ID)
		if err != nil {
			j.log.Errorf("monthly report: achievements for %d: %v", u.ID, err)
			continue
		}
		msg := fmt.Sprintf(
			"📊 *Твій звіт за місяць*\n\n"+
				"💪 Тренувань виконано: *%d*\n"+
				"🏅 Усього нагород: *%d*\n\n"+
				"Так тримати! Наступний місяць буде ще кращим.",
			workouts, len(badges),
		)
		if granted := j.grantVeteranBadge(ctx, u); granted {
			msg += "\n\n🎖 Нова нагорода: *Ветеран* - 30 днів разом з ботом!"
		}
		if err := j.sender.SendMarkdown(u.ID, msg); err != nil {
			j.log.Errorf("monthly report: send to %d: %v", u.ID, err)
		}
	}
}

func (j *Jobs) grantVeteranBadge(ctx context.Context, u models.User) bool {
	if j.now().Sub(u.RegistrationDate) < veteranAfterDays*24*time.Hour {
		return false
	}
	has, err := j.store.HasAchievement(ctx, u.ID, veteranBadgeID)
	if err != nil || has {
		return false
	}
	if err := j.store.GrantAchievement(ctx, u.ID, veteranBadgeID); err != nil {
		j.log.Errorf("grant veteran badge to %d: %v", u.ID, err)
		return false
	}
	return true
}

// WeeklyLeaderboard posts the top three by workouts this week to the
// community group.
func (j *Jobs) WeeklyLeaderboard(ctx context.Context) {
	if j.groupID == 0 {
		return
	}
	top, err := j.store.GetTopUsersByWorkouts(ctx, 3)
	if err != nil {
		j.log.Errorf("leaderboard: %v", err)
		return
	}
	if len(top) == 0 {
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	msg := "🏆 *Лідери тижня за кількістю тренувань:*\n\n"
	for i, entry := range top {
		name := entry.Username
		if name == "" {
			name = fmt.Sprintf("Учасник %d", entry.UserID)
		}
		msg += fmt.Sprintf("%s @%s - %d тренувань\n", medals[i], name, entry.WorkoutCount)
	}
	msg += "\nВітаємо чемпіонів! 🎉"

	if err := j.sender.SendMarkdown(j.groupID, msg); err != nil {
		j.log.Errorf("leaderboard: send: %v", err)
	}
}

// GroupJoinNudge invites users who have not joined the community group yet.
func (j *Jobs) GroupJoinNudge(ctx context.Context) {
	userIDs, err := j.store.GetUsersNotInGroup(ctx)
	if err != nil {
		j.log.Errorf("group nudge: %v", err)
		return
	}
	for _, id := range userIDs {
		msg := "👋 Ти ще не з нами у спільноті! Приєднуйся - там челенджі, підтримка та мотивація."
		if err := j.sender.SendGroupInvite(id, msg); err != nil {
			j.log.Errorf("group nudge: send to %d: %v", id, err)
		}
	}
}

// Rough population-level figures used until per-user targets are stored.
const (
	defaultTargetCalories = 2200
	defaultBurnedCalories = 300
)

// summaryInput assembles the evening analysis prompt data. The stated daily
// activity wins over the onboarding answer when present.
func summaryInput(answers *models.OnboardingAnswers, activity string, caloriesEaten int) gpt.DailySummaryInput {
	if activity == "" {
		activity = answers.ActivityLevel
	}
	return gpt.DailySummaryInput{
		Goal:           answers.Goal,
		CaloriesEaten:  caloriesEaten,
		TargetCalories: defaultTargetCalories,
		BurnedCalories: defaultBurnedCalories,
		ActivityLevel:  activity,
	}
}

// EveningSummary totals each user's logged meals for the day and attaches an
// AI take on how the day went.
func (j *Jobs) EveningSummary(ctx context.Context) {
	users, err := j.store.GetAllActiveUsers(ctx)
	if err != nil {
		j.log.Errorf("evening summary: list users: %v", err)
		return
	}

	dayStart := dayStartIn(j.now(), j.loc)
	for _, u := range users {
		entries, err := j.store.GetDailyFoodSummary(ctx, u.ID, dayStart)
		if err != nil || len(entries) == 0 {
			continue
		}

		var calories int
		var proteins, fats, carbs float64
		for _, e := range entries {
			calories += e.Calories
			proteins += e.Proteins
			fats += e.Fats
			carbs += e.Carbs
		}

		msg := fmt.Sprintf(
			"🌙 *Підсумок дня*\n\n"+
				"🍽 Прийомів їжі: %d\n"+
				"🔥 Калорій: %d ккал\n"+
				"🥩 Білки: %.1f г | 🧈 Жири: %.1f г | 🍞 Вуглеводи: %.1f г",
			len(entries), calories, proteins, fats, carbs,
		)

		answers, err := j.store.GetOnboardingAnswers(ctx, u.ID)
		if err == nil && answers != nil {
			activity, _ := j.store.GetDailyActivity(ctx, u.ID)
			analysis, err := j.coach.DailyAnalysis(ctx, summaryInput(answers, activity, calories))
			if err != nil {
				j.log.Errorf("evening summary: analysis for %d: %v", u.ID, err)
			} else {
				msg += "\n\n💡 " + analysis
			}
		}

		if err := j.sender.SendMarkdown(u.ID, msg); err != nil {
			j.log.Errorf("evening summary: send to %d: %v", u.ID, err)
		}
	}
}

// MealReminders fires every minute and pings users whose configured meal time
// matches the current HH:MM.
func (j *Jobs) MealReminders(ctx context.Context) {
	reminders, err := j.store.GetAllMealReminders(ctx)
	if err != nil {
		j.log.Errorf("meal reminders: %v", err)
		return
	}
	nowHHMM := j.now().In(j.loc).Format("15:04")

	for _, r := range reminders {
		meal := MatchMealTime(r, nowHHMM)
		if meal == "" {
			continue
		}
		msg := fmt.Sprintf("⏰ Час для прийому їжі: *%s*!\nНе забудь залогувати страву через «Щоденник харчування».", meal)
		if err := j.sender.SendMarkdown(r.UserID, msg); err != nil {
			j.log.Errorf("meal reminders: send to %d: %v", r.UserID, err)
		}
	}
}

// MatchMealTime returns the meal name whose configured time equals nowHHMM,
// or "" if none matches.
func MatchMealTime(r models.MealReminder, nowHHMM string) string {
	switch nowHHMM {
	case r.Breakfast:
		return "сніданок"
	case r.Lunch:
		return "обід"
	case r.Dinner:
		return "вечеря"
	}
	return ""
}

// BedtimeReminder wishes every active user a good night.
func (j *Jobs) BedtimeReminder(ctx context.Context) {
	users, err := j.store.GetAllActiveUsers(ctx)
	if err != nil {
		j.log.Errorf("bedtime reminder: list users: %v", err)
		return
	}
	for _, u := range users {
		j.send(u.ID, "😴 Час готуватися до сну. Якісний сон - половина твого прогресу. Добраніч!")
	}
}

func (j *Jobs) send(chatID int64, text string) {
	if err := j.sender.SendText(chatID, text); err != nil {
		j.log.Errorf("send to %d: %v", chatID, err)
	}
}

func dayStartIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
