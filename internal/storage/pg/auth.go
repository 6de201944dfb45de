package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tdlogistics/tdl/internal/domain"
	internal_errors "github.com/tdlogistics/tdl/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.CredentialStorage interface)
// =========================================================================

// AdminUser fetches the credential row for email. It uses the main
// connection pool; login reads do not need a transaction.
func (s *Storage) AdminUser(email domain.Email) (domain.AdminUser, error) {
	return s.adminUser(s.db, email)
}

// UpdatePassword replaces the password hash and clears any lockout state.
// Wrapped in a transaction: the two updates must land together.
func (s *Storage) UpdatePassword(email domain.Email, newPassHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(tx, email, newPassHash)
	})
}

// RecordLoginFailure bumps the failure counter and, once it reaches
// maxFailures, sets the lockout timestamp.
func (s *Storage) RecordLoginFailure(email domain.Email, maxFailures int, lockFor time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.recordLoginFailure(tx, email, maxFailures, lockFor)
	})
}

// ResetLoginFailures clears the counter and lockout after a successful login.
func (s *Storage) ResetLoginFailures(email domain.Email) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.resetLoginFailures(tx, email)
	})
}

// SaveAdminUser inserts a credential row. Used by provisioning and tests.
func (s *Storage) SaveAdminUser(user domain.AdminUser) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveAdminUser(tx, user)
		return err
	})
	return id, err
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) adminUser(q Querier, email domain.Email) (domain.AdminUser, error) {
	var user domain.AdminUser
	var lockedUntil sql.NullTime
	err := q.QueryRow(`
        SELECT id, email, password_hash, role, name, is_active, failed_login_attempts,
               (locked_until at time zone 'utc')
        FROM admin_users WHERE email = $1`,
		email,
	).Scan(&user.Id, &user.Email, &user.PassHash, &user.Role, &user.Name,
		&user.IsActive, &user.FailedLoginAttempts, &lockedUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdminUser{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.AdminUser{}, fmt.Errorf("failed to query admin user: %w", err)
	}
	if lockedUntil.Valid {
		user.LockedUntil = &lockedUntil.Time
	}
	return user, nil
}

func (s *Storage) updatePassword(q Querier, email domain.Email, newPassHash string) error {
	result, err := q.Exec(`
        UPDATE admin_users
        SET password_hash = $1, failed_login_attempts = 0, locked_until = NULL
        WHERE email = $2`,
		newPassHash, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for password update: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found for password update", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) recordLoginFailure(q Querier, email domain.Email, maxFailures int, lockFor time.Duration) error {
	result, err := q.Exec(`
        UPDATE admin_users
        SET failed_login_attempts = failed_login_attempts + 1,
            locked_until = CASE
                WHEN failed_login_attempts + 1 >= $2 THEN now() + $3 * interval '1 second'
                ELSE locked_until
            END
        WHERE email = $1`,
		email, maxFailures, int(lockFor.Seconds()))
	if err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for login failure: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) resetLoginFailures(q Querier, email domain.Email) error {
	_, err := q.Exec(`
        UPDATE admin_users
        SET failed_login_attempts = 0, locked_until = NULL
        WHERE email = $1`,
		email)
	if err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

func (s *Storage) saveAdminUser(q Querier, user domain.AdminUser) (domain.UserId, error) {
	var id int64
	err := q.QueryRow(`
        INSERT INTO admin_users(email, password_hash, role, name, is_active)
        VALUES($1, $2, $3, $4, $5) RETURNING id`,
		user.Email, user.PassHash, user.Role, user.Name, user.IsActive).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert admin user: %w", err)
	}
	return id, nil
}
