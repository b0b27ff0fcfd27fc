package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
)

// AddPendingPayment records a one-time payment code for the user. At most one
// pending payment exists per user; re-creation supersedes the previous code.
func (db *PostgresDB) AddPendingPayment(ctx context.Context, userID int64, paymentCode string) error {
	_, err := db.pool.Exec(ctx, `
        INSERT INTO pending_payments (user_id, payment_code, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE
        SET payment_code = EXCLUDED.payment_code, created_at = EXCLUDED.created_at`,
		userID, paymentCode,
	)
	if err != nil {
		return fmt.Errorf("failed to add pending payment: %w", err)
	}
	return nil
}

func (db *PostgresDB) GetPendingPaymentCode(ctx context.Context, userID int64) (string, error) {
	var code string
	err := db.pool.QueryRow(ctx,
		"SELECT payment_code FROM pending_payments WHERE user_id = $1", userID,
	).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get pending payment: %w", err)
	}
	return code, nil
}

// DeletePendingPayment resolves the pending payment (confirm or reject).
func (db *PostgresDB) DeletePendingPayment(ctx context.Context, userID int64) error {
	_, err := db.pool.Exec(ctx,
		"DELETE FROM pending_payments WHERE user_id = $1", userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete pending payment: %w", err)
	}
	return nil
}
