package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

func (db *PostgresDB) LogMeal(ctx context.Context, entry *models.MealEntry) error {
	err := db.pool.QueryRow(ctx, `
        INSERT INTO food_log (user_id, meal_description, calories, proteins, fats, carbs, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING id`,
		entry.UserID, entry.Description, entry.Calories, entry.Proteins, entry.Fats, entry.Carbs,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to log meal: %w", err)
	}
	return nil
}

// GetDailyFoodSummary returns the user's meals logged since local midnight.
func (db *PostgresDB) GetDailyFoodSummary(ctx context.Context, userID int64, dayStart time.Time) ([]models.MealEntry, error) {
	rows, err := db.pool.Query(ctx, `
        SELECT id, user_id, meal_description, calories, proteins, fats, carbs, created_at
        FROM food_log
        WHERE user_id = $1 AND created_at >= $2
        ORDER BY created_at`,
		userID, dayStart,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query food summary: %w", err)
	}
	defer rows.Close()

	var entries []models.MealEntry
	for rows.Next() {
		var e models.MealEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Calories, &e.Proteins, &e.Fats, &e.Carbs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
