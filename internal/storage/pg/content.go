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
// Posts
// =========================================================================

func (s *Storage) SavePost(p domain.Post) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
            INSERT INTO posts(slug, title_ar, title_en, body_ar, body_en, body_html_ar, body_html_en, cover_url, published)
            VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			p.Slug, p.TitleAr, p.TitleEn, p.BodyAr, p.BodyEn, p.BodyHtmlAr, p.BodyHtmlEn, p.CoverUrl, p.Published).Scan(&id)
	})
	if err != nil {
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) UpdatePost(p domain.Post) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
            UPDATE posts
            SET slug = $2, title_ar = $3, title_en = $4, body_ar = $5, body_en = $6,
                body_html_ar = $7, body_html_en = $8, cover_url = $9, published = $10, updated_at = now()
            WHERE id = $1`,
			p.Id, p.Slug, p.TitleAr, p.TitleEn, p.BodyAr, p.BodyEn, p.BodyHtmlAr, p.BodyHtmlEn, p.CoverUrl, p.Published)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		return requireRow(result, "Post not found")
	})
}

func (s *Storage) DeletePost(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM posts WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return requireRow(result, "Post not found")
	})
}

// PostBySlug returns a single post. publishedOnly hides drafts from the
// public site while the dashboard still sees them.
func (s *Storage) PostBySlug(slug string, publishedOnly bool) (domain.Post, error) {
	query := postSelect + " WHERE slug = $1"
	if publishedOnly {
		query += " AND published"
	}

	var p domain.Post
	err := s.db.QueryRow(query, slug).Scan(postFields(&p)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return p, nil
}

func (s *Storage) Posts(publishedOnly bool, limit, offset int) ([]domain.Post, error) {
	query := postSelect
	if publishedOnly {
		query += " WHERE published"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(postFields(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const postSelect = `
    SELECT id, slug, title_ar, title_en, body_ar, body_en, body_html_ar, body_html_en,
           cover_url, published, (created_at at time zone 'utc'), (updated_at at time zone 'utc')
    FROM posts`

func postFields(p *domain.Post) []any {
	return []any{&p.Id, &p.Slug, &p.TitleAr, &p.TitleEn, &p.BodyAr, &p.BodyEn,
		&p.BodyHtmlAr, &p.BodyHtmlEn, &p.CoverUrl, &p.Published, &p.CreatedAt, &p.UpdatedAt}
}

// =========================================================================
// Reviews
// =========================================================================

func (s *Storage) SaveReview(r domain.Review) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
            INSERT INTO reviews(author, company, rating, text, approved)
            VALUES($1, $2, $3, $4, $5) RETURNING id`,
			r.Author, r.Company, r.Rating, r.Text, r.Approved).Scan(&id)
	})
	if err != nil {
		return -1, fmt.Errorf("failed to insert review: %w", err)
	}
	return id, nil
}

func (s *Storage) SetReviewApproval(id int64, approved bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE reviews SET approved = $2 WHERE id = $1", id, approved)
		if err != nil {
			return fmt.Errorf("failed to update review approval: %w", err)
		}
		return requireRow(result, "Review not found")
	})
}

func (s *Storage) DeleteReview(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM reviews WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return requireRow(result, "Review not found")
	})
}

func (s *Storage) Reviews(approvedOnly bool) ([]domain.Review, error) {
	query := `
        SELECT id, author, company, rating, text, approved, (created_at at time zone 'utc')
        FROM reviews`
	if approvedOnly {
		query += " WHERE approved"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.Id, &r.Author, &r.Company, &r.Rating, &r.Text, &r.Approved, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// =========================================================================
// Brands
// =========================================================================

func (s *Storage) SaveBrand(b domain.Brand) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
            INSERT INTO brands(name, logo_url) VALUES($1, $2) RETURNING id`,
			b.Name, b.LogoUrl).Scan(&id)
	})
	if err != nil {
		return -1, fmt.Errorf("failed to insert brand: %w", err)
	}
	return id, nil
}

func (s *Storage) DeleteBrand(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM brands WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete brand: %w", err)
		}
		return requireRow(result, "Brand not found")
	})
}

func (s *Storage) Brands() ([]domain.Brand, error) {
	rows, err := s.db.Query("SELECT id, name, logo_url FROM brands ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var out []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.Id, &b.Name, &b.LogoUrl); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// requireRow converts a zero-row update/delete into a 404.
func requireRow(result sql.Result, message string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
	}
	return nil
}
