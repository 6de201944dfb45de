package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tdlogistics/tdl/internal/domain"
)

// Lead rows are written once by the public forms and read back by the admin
// dashboard, newest first.

func (s *Storage) SaveContactSubmission(c domain.ContactSubmission) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
            INSERT INTO contact_submissions(name, email, phone, subject, message, language)
            VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
			c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Language).Scan(&id)
	})
	if err != nil {
		return -1, fmt.Errorf("failed to insert contact submission: %w", err)
	}
	return id, nil
}

func (s *Storage) SaveQuoteRequest(q domain.QuoteRequest) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
            INSERT INTO quote_requests(company_name, name, email, phone, origin, destination, cargo_type, details, language)
            VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			q.CompanyName, q.Name, q.Email, q.Phone, q.Origin, q.Destination, q.CargoType, q.Details, q.Language).Scan(&id)
	})
	if err != nil {
		return -1, fmt.Errorf("failed to insert quote request: %w", err)
	}
	return id, nil
}

func (s *Storage) SaveJobApplication(j domain.JobApplication) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
            INSERT INTO job_applications(name, email, phone, position, cover_note, cv_url, language)
            VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			j.Name, j.Email, j.Phone, j.Position, j.CoverNote, j.CvUrl, j.Language).Scan(&id)
	})
	if err != nil {
		return -1, fmt.Errorf("failed to insert job application: %w", err)
	}
	return id, nil
}

func (s *Storage) ContactSubmissions(limit, offset int) ([]domain.ContactSubmission, error) {
	rows, err := s.db.Query(`
        SELECT id, name, email, phone, subject, message, language, (created_at at time zone 'utc')
        FROM contact_submissions ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.ContactSubmission
	for rows.Next() {
		var c domain.ContactSubmission
		if err := rows.Scan(&c.Id, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Language, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Storage) QuoteRequests(limit, offset int) ([]domain.QuoteRequest, error) {
	rows, err := s.db.Query(`
        SELECT id, company_name, name, email, phone, origin, destination, cargo_type, details, language, (created_at at time zone 'utc')
        FROM quote_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote requests: %w", err)
	}
	defer rows.Close()

	var out []domain.QuoteRequest
	for rows.Next() {
		var q domain.QuoteRequest
		if err := rows.Scan(&q.Id, &q.CompanyName, &q.Name, &q.Email, &q.Phone, &q.Origin, &q.Destination, &q.CargoType, &q.Details, &q.Language, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote request: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Storage) JobApplications(limit, offset int) ([]domain.JobApplication, error) {
	rows, err := s.db.Query(`
        SELECT id, name, email, phone, position, cover_note, cv_url, language, (created_at at time zone 'utc')
        FROM job_applications ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query job applications: %w", err)
	}
	defer rows.Close()

	var out []domain.JobApplication
	for rows.Next() {
		var j domain.JobApplication
		if err := rows.Scan(&j.Id, &j.Name, &j.Email, &j.Phone, &j.Position, &j.CoverNote, &j.CvUrl, &j.Language, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job application: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
