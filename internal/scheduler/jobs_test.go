package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Nikkeen22/fitness-bot/internal/gpt"
	"github.com/Nikkeen22/fitness-bot/internal/models"
	"github.com/Nikkeen22/fitness-bot/pkg/logger"
)

type fakeStore struct {
	users     []models.User
	plans     map[int64]string
	reminders []models.MealReminder
	badges    map[int64][]string
}

func (f *fakeStore) GetAllActiveUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeStore) GetFitnessPlan(ctx context.Context, userID int64) (string, error) {
	return f.plans[userID], nil
}

func (f *fakeStore) GetOnboardingAnswers(ctx context.Context, userID int64) (*models.OnboardingAnswers, error) {
	return nil, nil
}

func (f *fakeStore) GetDailyFoodSummary(ctx context.Context, userID int64, dayStart time.Time) ([]models.MealEntry, error) {
	return nil, nil
}

func (f *fakeStore) GetDailyActivity(ctx context.Context, userID int64) (string, error) {
	return "", nil
}

func (f *fakeStore) GetTopUsersByWorkouts(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func (f *fakeStore) CountWorkoutsLastNDays(ctx context.Context, userID int64, days int) (int, error) {
	return 0, nil
}

func (f *fakeStore) GetUserAchievements(ctx context.Context, userID int64) ([]string, error) {
	return nil, nil
}

func (f *fakeStore) GetAllMealReminders(ctx context.Context) ([]models.MealReminder, error) {
	return f.reminders, nil
}

func (f *fakeStore) GetUsersNotInGroup(ctx context.Context) ([]int64, error) {
	return nil, nil
}

func (f *fakeStore) HasAchievement(ctx context.Context, userID int64, achievementID string) (bool, error) {
	for _, id := range f.badges[userID] {
		if id == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GrantAchievement(ctx context.Context, userID int64, achievementID string) error {
	if f.badges == nil {
		f.badges = make(map[int64][]string)
	}
	f.badges[userID] = append(f.badges[userID], achievementID)
	return nil
}

type sentMessage struct {
	chatID int64
	text   string
	kind   string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeSender) record(chatID int64, text, kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, kind: kind})
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	f.record(chatID, text, "text")
	return nil
}

func (f *fakeSender) SendMarkdown(chatID int64, text string) error {
	f.record(chatID, text, "markdown")
	return nil
}

func (f *fakeSender) SendWorkoutPrompt(chatID int64, text string) error {
	f.record(chatID, text, "workout")
	return nil
}

func (f *fakeSender) SendFeedbackPrompt(chatID int64, text string) error {
	f.record(chatID, text, "feedback")
	return nil
}

func (f *fakeSender) SendGroupInvite(chatID int64, text string) error {
	f.record(chatID, text, "invite")
	return nil
}

type fakeCoach struct{}

func (fakeCoach) DailyAnalysis(ctx context.Context, in gpt.DailySummaryInput) (string, error) {
	return "Гарний день!", nil
}

func newTestJobs(store *fakeStore, sender *fakeSender, now time.Time) *Jobs {
	jobs := NewJobs(store, sender, fakeCoach{}, logger.Nop(), 0, time.UTC)
	return jobs.WithClock(func() time.Time { return now })
}

func TestMatchMealTime(t *testing.T) {
	reminder := models.MealReminder{
		UserID:    1,
		Breakfast: "08:00",
		Lunch:     "13:30",
		Dinner:    "19:00",
	}

	tests := []struct {
		name    string
		nowHHMM string
		want    string
	}{
		{"breakfast time", "08:00", "сніданок"},
		{"lunch time", "13:30", "обід"},
		{"dinner time", "19:00", "вечеря"},
		{"between meals", "10:15", ""},
		{"one minute off", "08:01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchMealTime(reminder, tt.nowHHMM); got != tt.want {
				t.Errorf("MatchMealTime(%q) = %q, want %q", tt.nowHHMM, got, tt.want)
			}
		})
	}
}

func TestMealRemindersJob(t *testing.T) {
	store := &fakeStore{
		reminders: []models.MealReminder{
			{UserID: 1, Breakfast: "08:00", Lunch: "13:00", Dinner: "19:00"},
			{UserID: 2, Breakfast: "09:30", Lunch: "13:00", Dinner: "20:00"},
			{UserID: 3, Breakfast: "07:00", Lunch: "12:00", Dinner: "18:00"},
		},
	}
	sender := &fakeSender{}

	now := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	jobs := newTestJobs(store, sender, now)

	jobs.MealReminders(context.Background())

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d reminders, want 2", len(sender.sent))
	}
	for _, msg := range sender.sent {
		if msg.chatID != 1 && msg.chatID != 2 {
			t.Errorf("reminder sent to unexpected user %d", msg.chatID)
		}
		if !strings.Contains(msg.text, "обід") {
			t.Errorf("reminder text %q does not mention обід", msg.text)
		}
	}
}

func TestDailyWorkoutReminderJob(t *testing.T) {
	workoutPlan := "**Понеділок - ноги**\n1. Присідання 4x15\n\n**Вівторок - відпочинок**\nВідновлення."
	store := &fakeStore{
		users: []models.User{{ID: 1}, {ID: 2}, {ID: 3}},
		plans: map[int64]string{
			1: workoutPlan,
			2: workoutPlan,
			// user 3 has no plan and must be skipped
		},
	}
	sender := &fakeSender{}

	// A Monday: users 1 and 2 both train.
	monday := time.Date(2025, 3, 10, 23, 40, 0, 0, time.UTC)
	jobs := newTestJobs(store, sender, monday)

	jobs.DailyWorkoutReminder(context.Background())

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.sent))
	}
	for _, msg := range sender.sent {
		if msg.kind != "workout" {
			t.Errorf("message to %d has kind %q, want workout prompt", msg.chatID, msg.kind)
		}
		if !strings.Contains(msg.text, "Присідання") {
			t.Errorf("workout text %q does not contain the exercise", msg.text)
		}
	}
}

func TestSummaryInput(t *testing.T) {
	answers := &models.OnboardingAnswers{Goal: "Схуднення", ActivityLevel: "Середній"}

	in := summaryInput(answers, "", 1800)
	if in.TargetCalories != defaultTargetCalories || in.BurnedCalories != defaultBurnedCalories {
		t.Errorf("defaults = %d/%d, want %d/%d",
			in.TargetCalories, in.BurnedCalories, defaultTargetCalories, defaultBurnedCalories)
	}
	if in.ActivityLevel != "Середній" {
		t.Errorf("activity fell back to %q, want the onboarding answer", in.ActivityLevel)
	}
	if in.Goal != "Схуднення" || in.CaloriesEaten != 1800 {
		t.Errorf("goal/calories = %q/%d, want Схуднення/1800", in.Goal, in.CaloriesEaten)
	}

	in = summaryInput(answers, "Високий", 1800)
	if in.ActivityLevel != "Високий" {
		t.Errorf("stated daily activity %q did not win over the onboarding answer", in.ActivityLevel)
	}
}

func TestMonthlyReportVeteranBadge(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{
		users: []models.User{
			{ID: 1, RegistrationDate: now.AddDate(0, 0, -40)},
			{ID: 2, RegistrationDate: now.AddDate(0, 0, -5)},
			{ID: 3, RegistrationDate: now.AddDate(0, 0, -90)},
		},
		badges: map[int64][]string{3: {"veteran"}},
	}
	sender := &fakeSender{}
	jobs := newTestJobs(store, sender, now)

	jobs.MonthlyReport(context.Background())

	if got := len(store.badges[1]); got != 1 {
		t.Errorf("user 1 has %d badges, want the veteran grant", got)
	}
	if got := len(store.badges[2]); got != 0 {
		t.Errorf("user 2 has %d badges, want none before 30 days", got)
	}
	// Already granted: the insert must stay a no-op.
	if got := len(store.badges[3]); got != 1 {
		t.Errorf("user 3 has %d badges, want exactly 1", got)
	}

	var mentions int
	for _, msg := range sender.sent {
		if msg.chatID == 1 && strings.Contains(msg.text, "Ветеран") {
			mentions++
		}
		if msg.chatID == 2 && strings.Contains(msg.text, "Ветеран") {
			t.Errorf("user 2 report mentions the veteran badge too early")
		}
	}
	if mentions != 1 {
		t.Errorf("veteran badge announced %d times to user 1, want 1", mentions)
	}
}

func TestDailyWorkoutReminderRestDay(t *testing.T) {
	workoutPlan := "**Понеділок - ноги**\n1. Присідання 4x15\n\n**Вівторок - відпочинок**\nВідновлення."
	store := &fakeStore{
		users: []models.User{{ID: 1}},
		plans: map[int64]string{1: workoutPlan},
	}
	sender := &fakeSender{}

	tuesday := time.Date(2025, 3, 11, 23, 40, 0, 0, time.UTC)
	jobs := newTestJobs(store, sender, tuesday)

	jobs.DailyWorkoutReminder(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if sender.sent[0].kind != "text" {
		t.Errorf("rest day message kind = %q, want plain text", sender.sent[0].kind)
	}
	if !strings.Contains(sender.sent[0].text, "відпочинку") {
		t.Errorf("rest day text %q does not mention rest", sender.sent[0].text)
	}
}
