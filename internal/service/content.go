package service

import (
	"bytes"
	"net/http"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/errors"
	"github.com/tdlogistics/tdl/internal/sanitize"
)

type ContentStorage interface {
	SavePost(p domain.Post) (int64, error)
	UpdatePost(p domain.Post) error
	DeletePost(id int64) error
	PostBySlug(slug string, publishedOnly bool) (domain.Post, error)
	Posts(publishedOnly bool, limit, offset int) ([]domain.Post, error)

	SaveReview(r domain.Review) (int64, error)
	SetReviewApproval(id int64, approved bool) error
	DeleteReview(id int64) error
	Reviews(approvedOnly bool) ([]domain.Review, error)

	SaveBrand(b domain.Brand) (int64, error)
	DeleteBrand(id int64) error
	Brands() ([]domain.Brand, error)
}

var (
	errBadSlug   = errors.New("Slug must be lowercase letters, digits and dashes", http.StatusBadRequest)
	errBadTitle  = errors.New("Both titles are required", http.StatusBadRequest)
	errBadRating = errors.New("Rating must be between 1 and 5", http.StatusBadRequest)
	errBadReview = errors.New("Author and text are required", http.StatusBadRequest)
	errBadBrand  = errors.New("Brand name is required", http.StatusBadRequest)
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Content manages blog posts, client reviews and brand logos. Post bodies
// are markdown; they are rendered once on write and the rendered HTML is
// sanitized before it is stored, so reads serve it as-is.
type Content struct {
	storage ContentStorage
	md      goldmark.Markdown
	ugc     *bluemonday.Policy
}

func NewContent(storage ContentStorage) *Content {
	return &Content{
		storage: storage,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		ugc: bluemonday.UGCPolicy(),
	}
}

// =========================================================================
// Posts
// =========================================================================

func (c *Content) CreatePost(p domain.Post) (int64, error) {
	if err := c.preparePost(&p); err != nil {
		return -1, err
	}
	return c.storage.SavePost(p)
}

func (c *Content) UpdatePost(p domain.Post) error {
	if err := c.preparePost(&p); err != nil {
		return err
	}
	return c.storage.UpdatePost(p)
}

func (c *Content) DeletePost(id int64) error {
	return c.storage.DeletePost(id)
}

func (c *Content) PublishedPost(slug string) (domain.Post, error) {
	return c.storage.PostBySlug(slug, true)
}

func (c *Content) PublishedPosts(limit, offset int) ([]domain.Post, error) {
	return c.storage.Posts(true, clampLimit(limit), offset)
}

func (c *Content) AllPosts(limit, offset int) ([]domain.Post, error) {
	return c.storage.Posts(false, clampLimit(limit), offset)
}

func (c *Content) preparePost(p *domain.Post) error {
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	if !slugRe.MatchString(p.Slug) {
		return errBadSlug
	}
	p.TitleAr = sanitize.Text(p.TitleAr)
	p.TitleEn = sanitize.Text(p.TitleEn)
	if p.TitleAr == "" || p.TitleEn == "" {
		return errBadTitle
	}

	var err error
	if p.BodyHtmlAr, err = c.render(p.BodyAr); err != nil {
		return err
	}
	if p.BodyHtmlEn, err = c.render(p.BodyEn); err != nil {
		return err
	}
	return nil
}

// render converts markdown to HTML and strips anything the UGC policy
// rejects, so stored HTML is safe to echo into public pages.
func (c *Content) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return c.ugc.Sanitize(buf.String()), nil
}

// =========================================================================
// Reviews
// =========================================================================

// SubmitReview stores a visitor review unapproved; it shows on the site
// only after an admin approves it.
func (c *Content) SubmitReview(r domain.Review) (int64, error) {
	r.Author = sanitize.Text(r.Author)
	r.Company = sanitize.Text(r.Company)
	r.Text = sanitize.Text(r.Text)
	if r.Rating < 1 || r.Rating > 5 {
		return -1, errBadRating
	}
	if r.Author == "" || r.Text == "" {
		return -1, errBadReview
	}
	r.Approved = false
	return c.storage.SaveReview(r)
}

func (c *Content) ApproveReview(id int64) error {
	return c.storage.SetReviewApproval(id, true)
}

func (c *Content) RejectReview(id int64) error {
	return c.storage.SetReviewApproval(id, false)
}

func (c *Content) DeleteReview(id int64) error {
	return c.storage.DeleteReview(id)
}

func (c *Content) ApprovedReviews() ([]domain.Review, error) {
	return c.storage.Reviews(true)
}

func (c *Content) AllReviews() ([]domain.Review, error) {
	return c.storage.Reviews(false)
}

// =========================================================================
// Brands
// =========================================================================

func (c *Content) CreateBrand(b domain.Brand) (int64, error) {
	b.Name = sanitize.Text(b.Name)
	if b.Name == "" {
		return -1, errBadBrand
	}
	return c.storage.SaveBrand(b)
}

func (c *Content) DeleteBrand(id int64) error {
	return c.storage.DeleteBrand(id)
}

func (c *Content) Brands() ([]domain.Brand, error) {
	return c.storage.Brands()
}
