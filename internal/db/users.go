package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

// EnsureUser inserts a new user with a 7-day trial, or refreshes the name
// fields of an existing one. Returns true when the user was just created.
func (db *PostgresDB) EnsureUser(ctx context.Context, userID int64, username, fullName string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)", userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	if exists {
		_, err = db.pool.Exec(ctx,
			"UPDATE users SET username = $2, full_name = $3 WHERE user_id = $1",
			userID, username, fullName,
		)
		if err != nil {
			return false, fmt.Errorf("failed to refresh user: %w", err)
		}
		return false, nil
	}

	trialExpiry := time.Now().Add(7 * 24 * time.Hour)
	_, err = db.pool.Exec(ctx, `
        INSERT INTO users (user_id, username, full_name, registration_date, subscription_status, subscription_expiry)
        VALUES ($1, $2, $3, NOW(), $4, $5)`,
		userID, username, fullName, models.SubscriptionTrial, trialExpiry,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert user: %w", err)
	}
	return true, nil
}

func (db *PostgresDB) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	query := `
        SELECT user_id, username, full_name, registration_date, COALESCE(fitness_plan, ''),
               plan_start_date, subscription_status, subscription_expiry, is_active, in_group,
               reminder_breakfast, reminder_lunch, reminder_dinner, COALESCE(daily_activity_level, '')
        FROM users
        WHERE user_id = $1
    `

	var user models.User
	err := db.pool.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.FullName, &user.RegistrationDate, &user.FitnessPlan,
		&user.PlanStartDate, &user.SubscriptionStatus, &user.SubscriptionExpiry,
		&user.IsActive, &user.InGroup,
		&user.ReminderBreakfast, &user.ReminderLunch, &user.ReminderDinner, &user.DailyActivityLevel,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (db *PostgresDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := db.pool.QueryRow(ctx,
		"SELECT user_id, username, full_name FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetSubscriptionStatus returns the user's status, lazily moving trial/active
// to expired when the stored expiry has passed. The write happens before the
// status is returned, so a single check can never report a stale "active".
func (db *PostgresDB) GetSubscriptionStatus(ctx context.Context, userID int64) (string, *time.Time, error) {
	var status string
	var expiry *time.Time
	err := db.pool.QueryRow(ctx,
		"SELECT subscription_status, subscription_expiry FROM users WHERE user_id = $1",
		userID,
	).Scan(&status, &expiry)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SubscriptionNone, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to get subscription status: %w", err)
	}

	if (status == models.SubscriptionTrial || status == models.SubscriptionActive) &&
		expiry != nil && time.Now().After(*expiry) {
		_, err = db.pool.Exec(ctx,
			"UPDATE users SET subscription_status = $2 WHERE user_id = $1",
			userID, models.SubscriptionExpired,
		)
		if err != nil {
			return "", nil, fmt.Errorf("failed to expire subscription: %w", err)
		}
		return models.SubscriptionExpired, expiry, nil
	}

	return status, expiry, nil
}

// ExtendSubscription activates the subscription for the given number of
// months. An unexpired active subscription is extended from its expiry, not
// from now.
func (db *PostgresDB) ExtendSubscription(ctx context.Context, userID int64, months int) error {
	status, expiry, err := db.GetSubscriptionStatus(ctx, userID)
	if err != nil {
		return err
	}

	start := time.Now()
	if status == models.SubscriptionActive && expiry != nil && expiry.After(start) {
		start = *expiry
	}
	newExpiry := start.Add(time.Duration(months) * 30 * 24 * time.Hour)

	_, err = db.pool.Exec(ctx,
		"UPDATE users SET subscription_status = $2, subscription_expiry = $3 WHERE user_id = $1",
		userID, models.SubscriptionActive, newExpiry,
	)
	if err != nil {
		return fmt.Errorf("failed to extend subscription: %w", err)
	}
	return nil
}

// GrantLifetimeAccess marks the user active for the next hundred years.
func (db *PostgresDB) GrantLifetimeAccess(ctx context.Context, userID int64) error {
	farFuture := time.Now().AddDate(100, 0, 0)
	_, err := db.pool.Exec(ctx,
		"INSERT INTO users (user_id, registration_date) VALUES ($1, NOW()) ON CONFLICT (user_id) DO NOTHING",
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure user for grant: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		"UPDATE users SET subscription_status = $2, subscription_expiry = $3 WHERE user_id = $1",
		userID, models.SubscriptionActive, farFuture,
	)
	if err != nil {
		return fmt.Errorf("failed to grant lifetime access: %w", err)
	}
	return nil
}

func (db *PostgresDB) SaveOnboardingAnswers(ctx context.Context, userID int64, answers *models.OnboardingAnswers) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to marshal onboarding answers: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		"UPDATE users SET onboarding_data = $2 WHERE user_id = $1",
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save onboarding answers: %w", err)
	}
	return nil
}

func (db *PostgresDB) GetOnboardingAnswers(ctx context.Context, userID int64) (*models.OnboardingAnswers, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		"SELECT onboarding_data FROM users WHERE user_id = $1", userID,
	).Scan(&raw)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var answers models.OnboardingAnswers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal onboarding answers: %w", err)
	}
	return &answers, nil
}

func (db *PostgresDB) SaveFitnessPlan(ctx context.Context, userID int64, plan string) error {
	_, err := db.pool.Exec(ctx,
		"UPDATE users SET fitness_plan = $2, plan_start_date = NOW() WHERE user_id = $1",
		userID, plan,
	)
	if err != nil {
		return fmt.Errorf("failed to save fitness plan: %w", err)
	}
	return nil
}

func (db *PostgresDB) GetFitnessPlan(ctx context.Context, userID int64) (string, error) {
	var plan string
	err := db.pool.QueryRow(ctx,
		"SELECT COALESCE(fitness_plan, '') FROM users WHERE user_id = $1", userID,
	).Scan(&plan)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get fitness plan: %w", err)
	}
	return plan, nil
}

func (db *PostgresDB) GetAllActiveUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.pool.Query(ctx, `
        SELECT user_id, username, full_name, registration_date, plan_start_date
        FROM users
        WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.RegistrationDate, &u.PlanStartDate); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (db *PostgresDB) SetMealReminders(ctx context.Context, userID int64, breakfast, lunch, dinner string) error {
	_, err := db.pool.Exec(ctx, `
        UPDATE users SET reminder_breakfast = $2, reminder_lunch = $3, reminder_dinner = $4
        WHERE user_id = $1`,
		userID, breakfast, lunch, dinner,
	)
	if err != nil {
		return fmt.Errorf("failed to set meal reminders: %w", err)
	}
	return nil
}

func (db *PostgresDB) GetAllMealReminders(ctx context.Context) ([]models.MealReminder, error) {
	rows, err := db.pool.Query(ctx, `
        SELECT user_id, reminder_breakfast, reminder_lunch, reminder_dinner
        FROM users
        WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.MealReminder
	for rows.Next() {
		var r models.MealReminder
		if err := rows.Scan(&r.UserID, &r.Breakfast, &r.Lunch, &r.Dinner); err != nil {
			return nil, fmt.Errorf("failed to scan meal reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (db *PostgresDB) SetDailyActivity(ctx context.Context, userID int64, level string) error {
	_, err := db.pool.Exec(ctx,
		"UPDATE users SET daily_activity_level = $2 WHERE user_id = $1",
		userID, level,
	)
	return err
}

func (db *PostgresDB) GetDailyActivity(ctx context.Context, userID int64) (string, error) {
	var level string
	err := db.pool.QueryRow(ctx,
		"SELECT COALESCE(daily_activity_level, '') FROM users WHERE user_id = $1", userID,
	).Scan(&level)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return level, err
}

func (db *PostgresDB) SetUserInGroup(ctx context.Context, userID int64) error {
	_, err := db.pool.Exec(ctx,
		"UPDATE users SET in_group = TRUE WHERE user_id = $1", userID,
	)
	return err
}

func (db *PostgresDB) GetUsersNotInGroup(ctx context.Context) ([]int64, error) {
	rows, err := db.pool.Query(ctx,
		"SELECT user_id FROM users WHERE in_group = FALSE AND is_active = TRUE")
	if err != nil {
		return nil, fmt.Errorf("failed to list users not in group: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
