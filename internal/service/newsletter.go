package service

import (
	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/sanitize"
)

type NewsletterStorage interface {
	SaveSubscriber(email domain.Email) error
	DeleteSubscriber(email domain.Email) error
	Subscribers() ([]domain.Subscriber, error)
}

type Newsletter struct {
	storage NewsletterStorage
}

func NewNewsletter(storage NewsletterStorage) *Newsletter {
	return &Newsletter{storage: storage}
}

// Subscribe is idempotent: resubscribing an existing address succeeds.
func (n *Newsletter) Subscribe(email domain.Email) error {
	normalized, ok := sanitize.Email(email)
	if !ok {
		return errValidationFailed
	}
	return n.storage.SaveSubscriber(normalized)
}

func (n *Newsletter) Unsubscribe(email domain.Email) error {
	normalized, ok := sanitize.Email(email)
	if !ok {
		return errValidationFailed
	}
	return n.storage.DeleteSubscriber(normalized)
}

func (n *Newsletter) List() ([]domain.Subscriber, error) {
	return n.storage.Subscribers()
}
