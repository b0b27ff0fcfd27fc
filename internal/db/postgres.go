package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

type PostgresDB struct {
	pool *pgxpool.Pool
}

func NewPostgresDB(cfg struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}) (*PostgresDB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.MaxOpenConns,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnLifetime
	poolConfig.MaxConnIdleTime = 15 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// InitSchema creates all tables if they do not exist yet.
func (db *PostgresDB) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			username TEXT DEFAULT '',
			full_name TEXT DEFAULT '',
			registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			onboarding_data JSONB,
			fitness_plan TEXT DEFAULT '',
			plan_start_date TIMESTAMPTZ,
			subscription_status TEXT NOT NULL DEFAULT 'none',
			subscription_expiry TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			in_group BOOLEAN NOT NULL DEFAULT FALSE,
			reminder_breakfast TEXT NOT NULL DEFAULT '09:00',
			reminder_lunch TEXT NOT NULL DEFAULT '14:00',
			reminder_dinner TEXT NOT NULL DEFAULT '19:00',
			daily_activity_level TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS food_log (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users (user_id),
			meal_description TEXT NOT NULL,
			calories INTEGER NOT NULL,
			proteins DOUBLE PRECISION NOT NULL DEFAULT 0,
			fats DOUBLE PRECISION NOT NULL DEFAULT 0,
			carbs DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS progress (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users (user_id),
			date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users (user_id),
			achievement_id TEXT NOT NULL,
			date_achieved TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, achievement_id)
		)`,
		`CREATE TABLE IF NOT EXISTS pending_payments (
			user_id BIGINT PRIMARY KEY,
			payment_code TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS public_challenges (
			id BIGSERIAL PRIMARY KEY,
			author_id BIGINT REFERENCES users (user_id),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			duration_days INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS challenge_participants (
			id BIGSERIAL PRIMARY KEY,
			challenge_id BIGINT REFERENCES public_challenges (id) ON DELETE CASCADE,
			user_id BIGINT REFERENCES users (user_id),
			progress_days INTEGER NOT NULL DEFAULT 0,
			last_completion_date TIMESTAMPTZ,
			UNIQUE (challenge_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS duels (
			id BIGSERIAL PRIMARY KEY,
			initiator_id BIGINT REFERENCES users (user_id),
			opponent_id BIGINT REFERENCES users (user_id),
			description TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			initiator_completed BOOLEAN NOT NULL DEFAULT FALSE,
			opponent_completed BOOLEAN NOT NULL DEFAULT FALSE,
			winner_id BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS user_results (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users (user_id),
			photo_file_id TEXT NOT NULL,
			date_added TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, query := range queries {
		if _, err := db.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}
