package pg

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/tdlogistics/tdl/internal/domain"
	internal_errors "github.com/tdlogistics/tdl/internal/errors"
)

// SaveSubscriber upserts by email so resubscribing is idempotent.
func (s *Storage) SaveSubscriber(email domain.Email) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO subscribers(email) VALUES($1)
            ON CONFLICT (email) DO NOTHING`,
			email)
		if err != nil {
			return fmt.Errorf("failed to insert subscriber: %w", err)
		}
		return nil
	})
}

func (s *Storage) DeleteSubscriber(email domain.Email) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM subscribers WHERE email = $1", email)
		if err != nil {
			return fmt.Errorf("failed to delete subscriber: %w", err)
		}
		rowsDeleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for subscriber deletion: %w", err)
		}
		if rowsDeleted == 0 {
			return &internal_errors.ErrorWithStatusCode{Message: "Subscriber not found", StatusCode: http.StatusNotFound}
		}
		return nil
	})
}

func (s *Storage) Subscribers() ([]domain.Subscriber, error) {
	rows, err := s.db.Query(`
        SELECT id, email, (created_at at time zone 'utc')
        FROM subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var out []domain.Subscriber
	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(&sub.Id, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
