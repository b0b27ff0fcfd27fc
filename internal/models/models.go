// internal/models/models.go
package models

import (
	"time"
)

// Subscription lifecycle. A user is created as trial and can only move to
// active (payment or grant) or expired (lazy expiry check); never back to none.
const (
	SubscriptionNone    = "none"
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// Duel lifecycle: pending -> active -> completed, or pending -> rejected.
const (
	DuelPending   = "pending"
	DuelActive    = "active"
	DuelCompleted = "completed"
	DuelRejected  = "rejected"
)

type User struct {
	ID                 int64      `json:"user_id"`
	Username           string     `json:"username"`
	FullName           string     `json:"full_name"`
	RegistrationDate   time.Time  `json:"registration_date"`
	FitnessPlan        string     `json:"fitness_plan"`
	PlanStartDate      *time.Time `json:"plan_start_date"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry"`
	IsActive           bool       `json:"is_active"`
	InGroup            bool       `json:"in_group"`
	ReminderBreakfast  string     `json:"reminder_breakfast"`
	ReminderLunch      string     `json:"reminder_lunch"`
	ReminderDinner     string     `json:"reminder_dinner"`
	DailyActivityLevel string     `json:"daily_activity_level"`
}

// OnboardingAnswers is persisted as a single JSON blob per user and
// overwritten wholesale on every onboarding run.
type OnboardingAnswers struct {
	Goal          string `json:"goal"`
	Gender        string `json:"gender"`
	Weight        int    `json:"weight"`
	Height        int    `json:"height"`
	Age           int    `json:"age"`
	BodyType      string `json:"body_type"`
	ActivityLevel string `json:"activity_level"`
	Conditions    string `json:"conditions"`
	Frequency     string `json:"frequency"`
	Duration      string `json:"duration"`
	FoodPrefs     string `json:"food_prefs"`
}

type MealEntry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"meal_description"`
	Calories    int       `json:"calories"`
	Proteins    float64   `json:"proteins"`
	Fats        float64   `json:"fats"`
	Carbs       float64   `json:"carbs"`
	CreatedAt   time.Time `json:"created_at"`
}

type Achievement struct {
	UserID        int64     `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	DateAchieved  time.Time `json:"date_achieved"`
}

type PendingPayment struct {
	UserID      int64     `json:"user_id"`
	PaymentCode string    `json:"payment_code"`
	CreatedAt   time.Time `json:"created_at"`
}

type Challenge struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"author_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DurationDays int       `json:"duration_days"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

type ChallengeParticipant struct {
	ChallengeID    int64      `json:"challenge_id"`
	UserID         int64      `json:"user_id"`
	ProgressDays   int        `json:"progress_days"`
	LastCompletion *time.Time `json:"last_completion_date"`
}

type Duel struct {
	ID                 int64     `json:"id"`
	InitiatorID        int64     `json:"initiator_id"`
	OpponentID         int64     `json:"opponent_id"`
	Description        string    `json:"description"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	InitiatorCompleted bool      `json:"initiator_completed"`
	OpponentCompleted  bool      `json:"opponent_completed"`
	WinnerID           *int64    `json:"winner_id"`
}

type UserResult struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	PhotoFileID string    `json:"photo_file_id"`
	DateAdded   time.Time `json:"date_added"`
}

// LeaderboardEntry is one row of the weekly community leaderboard.
type LeaderboardEntry struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	WorkoutCount int    `json:"workout_count"`
}

// MealReminder carries a user's configured meal times for the per-minute
// reminder job.
type MealReminder struct {
	UserID    int64  `json:"user_id"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}
