package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tdlogistics/tdl/internal/domain"
)

// =========================================================================
// Posts
// =========================================================================

type postRequest struct {
	Slug      string `validate:"required" json:"slug"`
	TitleAr   string `validate:"required" json:"title_ar"`
	TitleEn   string `validate:"required" json:"title_en"`
	BodyAr    string `json:"body_ar"`
	BodyEn    string `json:"body_en"`
	CoverUrl  string `json:"cover_url"`
	Published bool   `json:"published"`
}

func (req postRequest) toDomain() domain.Post {
	return domain.Post{
		Slug:      req.Slug,
		TitleAr:   req.TitleAr,
		TitleEn:   req.TitleEn,
		BodyAr:    req.BodyAr,
		BodyEn:    req.BodyEn,
		CoverUrl:  req.CoverUrl,
		Published: req.Published,
	}
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.content.CreatePost(req.toDomain())
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]int64{"id": id})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var req postRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	post := req.toDomain()
	post.Id = id
	if err := h.content.UpdatePost(post); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if err := h.content.DeletePost(id); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetPost serves a single published post to the public site.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.content.PublishedPost(chi.URLParam(r, "slug"))
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, post)
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	posts, err := h.content.PublishedPosts(limit, offset)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, posts)
}

// GetAllPosts includes drafts; admin only.
func (h *Handler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	posts, err := h.content.AllPosts(limit, offset)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, posts)
}

// =========================================================================
// Reviews
// =========================================================================

type reviewRequest struct {
	Author  string `validate:"required" json:"author"`
	Company string `json:"company"`
	Rating  int    `validate:"required" json:"rating"`
	Text    string `validate:"required" json:"text"`
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.content.SubmitReview(domain.Review{
		Author:  req.Author,
		Company: req.Company,
		Rating:  req.Rating,
		Text:    req.Text,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]int64{"id": id})
}

func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.content.ApprovedReviews()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, reviews)
}

func (h *Handler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.content.AllReviews()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, reviews)
}

func (h *Handler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	h.setReviewApproval(w, r, true)
}

func (h *Handler) RejectReview(w http.ResponseWriter, r *http.Request) {
	h.setReviewApproval(w, r, false)
}

func (h *Handler) setReviewApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	id, err := idParam(r)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if approved {
		err = h.content.ApproveReview(id)
	} else {
		err = h.content.RejectReview(id)
	}
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if err := h.content.DeleteReview(id); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// =========================================================================
// Brands
// =========================================================================

type brandRequest struct {
	Name    string `validate:"required" json:"name"`
	LogoUrl string `json:"logo_url"`
}

func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.content.CreateBrand(domain.Brand{Name: req.Name, LogoUrl: req.LogoUrl})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]int64{"id": id})
}

func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if err := h.content.DeleteBrand(id); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.content.Brands()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, brands)
}
