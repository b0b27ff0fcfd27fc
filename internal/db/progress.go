package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

// LogWorkoutCompletion appends a workout record; the log is append-only.
func (db *PostgresDB) LogWorkoutCompletion(ctx context.Context, userID int64) error {
	_, err := db.pool.Exec(ctx,
		"INSERT INTO progress (user_id, date) VALUES ($1, NOW())", userID,
	)
	if err != nil {
		return fmt.Errorf("failed to log workout: %w", err)
	}
	return nil
}

func (db *PostgresDB) CountTotalWorkouts(ctx context.Context, userID int64) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM progress WHERE user_id = $1", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workouts: %w", err)
	}
	return count, nil
}

func (db *PostgresDB) CountWorkoutsLastNDays(ctx context.Context, userID int64, days int) (int, error) {
	since := time.Now().AddDate(0, 0, -days)
	var count int
	err := db.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM progress WHERE user_id = $1 AND date >= $2",
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent workouts: %w", err)
	}
	return count, nil
}

func (db *PostgresDB) GetTopUsersByWorkouts(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	since := time.Now().AddDate(0, 0, -7)
	rows, err := db.pool.Query(ctx, `
        SELECT u.user_id, u.username, COUNT(p.id) AS workout_count
        FROM users u JOIN progress p ON u.user_id = p.user_id
        WHERE p.date >= $1
        GROUP BY u.user_id, u.username
        ORDER BY workout_count DESC
        LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.WorkoutCount); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GrantAchievement is an idempotent insert: granting the same badge twice
// leaves exactly one record.
func (db *PostgresDB) GrantAchievement(ctx context.Context, userID int64, achievementID string) error {
	_, err := db.pool.Exec(ctx, `
        INSERT INTO achievements (user_id, achievement_id, date_achieved)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		userID, achievementID,
	)
	if err != nil {
		return fmt.Errorf("failed to grant achievement: %w", err)
	}
	return nil
}

func (db *PostgresDB) HasAchievement(ctx context.Context, userID int64, achievementID string) (bool, error) {
	var has bool
	err := db.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM achievements WHERE user_id = $1 AND achievement_id = $2)",
		userID, achievementID,
	).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement: %w", err)
	}
	return has, nil
}

func (db *PostgresDB) GetUserAchievements(ctx context.Context, userID int64) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		"SELECT achievement_id FROM achievements WHERE user_id = $1 ORDER BY date_achieved",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
