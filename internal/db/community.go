package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

func (db *PostgresDB) CreateChallenge(ctx context.Context, authorID int64, title, description string, durationDays int) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx, `
        INSERT INTO public_challenges (author_id, title, description, duration_days, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id`,
		authorID, title, description, durationDays,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create challenge: %w", err)
	}
	return id, nil
}

func (db *PostgresDB) GetActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	rows, err := db.pool.Query(ctx, `
        SELECT id, author_id, title, description, duration_days, created_at, is_active
        FROM public_challenges
        WHERE is_active = TRUE
        ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	var challenges []models.Challenge
	for rows.Next() {
		var c models.Challenge
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.Title, &c.Description, &c.DurationDays, &c.CreatedAt, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (db *PostgresDB) GetChallenge(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	var c models.Challenge
	err := db.pool.QueryRow(ctx, `
        SELECT id, author_id, title, description, duration_days, created_at, is_active
        FROM public_challenges
        WHERE id = $1`,
		challengeID,
	).Scan(&c.ID, &c.AuthorID, &c.Title, &c.Description, &c.DurationDays, &c.CreatedAt, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return &c, nil
}

// DeleteChallenge removes the challenge and its participants. Shared by the
// scheduled auto-expiry job and the admin manual-delete command.
func (db *PostgresDB) DeleteChallenge(ctx context.Context, challengeID int64) error {
	if _, err := db.pool.Exec(ctx,
		"DELETE FROM challenge_participants WHERE challenge_id = $1", challengeID,
	); err != nil {
		return fmt.Errorf("failed to delete challenge participants: %w", err)
	}
	if _, err := db.pool.Exec(ctx,
		"DELETE FROM public_challenges WHERE id = $1", challengeID,
	); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

func (db *PostgresDB) JoinChallenge(ctx context.Context, userID, challengeID int64) error {
	_, err := db.pool.Exec(ctx, `
        INSERT INTO challenge_participants (challenge_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (challenge_id, user_id) DO NOTHING`,
		challengeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to join challenge: %w", err)
	}
	return nil
}

func (db *PostgresDB) GetChallengeProgress(ctx context.Context, userID, challengeID int64) (*models.ChallengeParticipant, error) {
	var p models.ChallengeParticipant
	err := db.pool.QueryRow(ctx, `
        SELECT challenge_id, user_id, progress_days, last_completion_date
        FROM challenge_participants
        WHERE user_id = $1 AND challenge_id = $2`,
		userID, challengeID,
	).Scan(&p.ChallengeID, &p.UserID, &p.ProgressDays, &p.LastCompletion)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge progress: %w", err)
	}
	return &p, nil
}

// IncrementChallengeProgress adds one day of progress. No per-day cap is
// enforced here; duplicate same-day submissions each count.
func (db *PostgresDB) IncrementChallengeProgress(ctx context.Context, userID, challengeID int64) error {
	_, err := db.pool.Exec(ctx, `
        UPDATE challenge_participants
        SET progress_days = progress_days + 1, last_completion_date = NOW()
        WHERE user_id = $1 AND challenge_id = $2`,
		userID, challengeID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment challenge progress: %w", err)
	}
	return nil
}

func (db *PostgresDB) CreateDuel(ctx context.Context, initiatorID, opponentID int64, description string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx, `
        INSERT INTO duels (initiator_id, opponent_id, description, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id`,
		initiatorID, opponentID, description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create duel: %w", err)
	}
	return id, nil
}

func (db *PostgresDB) GetDuel(ctx context.Context, duelID int64) (*models.Duel, error) {
	var d models.Duel
	err := db.pool.QueryRow(ctx, `
        SELECT id, initiator_id, opponent_id, description, status, created_at,
               initiator_completed, opponent_completed, winner_id
        FROM duels
        WHERE id = $1`,
		duelID,
	).Scan(&d.ID, &d.InitiatorID, &d.OpponentID, &d.Description, &d.Status, &d.CreatedAt,
		&d.InitiatorCompleted, &d.OpponentCompleted, &d.WinnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get duel: %w", err)
	}
	return &d, nil
}

func (db *PostgresDB) UpdateDuelStatus(ctx context.Context, duelID int64, status string) error {
	_, err := db.pool.Exec(ctx,
		"UPDATE duels SET status = $2 WHERE id = $1", duelID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update duel status: %w", err)
	}
	return nil
}

// MarkDuelCompleted flips the completion flag for whichever side the user is.
func (db *PostgresDB) MarkDuelCompleted(ctx context.Context, userID, duelID int64) error {
	_, err := db.pool.Exec(ctx, `
        UPDATE duels
        SET initiator_completed = initiator_completed OR (initiator_id = $2),
            opponent_completed  = opponent_completed  OR (opponent_id = $2)
        WHERE id = $1`,
		duelID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark duel completion: %w", err)
	}
	return nil
}

func (db *PostgresDB) AddUserResult(ctx context.Context, userID int64, photoFileID string) error {
	_, err := db.pool.Exec(ctx, `
        INSERT INTO user_results (user_id, photo_file_id, date_added)
        VALUES ($1, $2, NOW())`,
		userID, photoFileID,
	)
	if err != nil {
		return fmt.Errorf("failed to add user result: %w", err)
	}
	return nil
}

func (db *PostgresDB) GetUserResults(ctx context.Context, userID int64) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		"SELECT photo_file_id FROM user_results WHERE user_id = $1 ORDER BY date_added",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user results: %w", err)
	}
	defer rows.Close()

	var fileIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		fileIDs = append(fileIDs, id)
	}
	return fileIDs, rows.Err()
}
