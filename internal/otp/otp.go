// Package otp implements the admin password-reset flow: request a one-time
// code by email, verify it, then change the password with the verified code.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/errors"
	"github.com/tdlogistics/tdl/internal/logger"
	"github.com/tdlogistics/tdl/internal/sanitize"
)

// Expected failures, mapped by handlers onto the HTTP surface.
var (
	ErrNotRegistered  = errors.New("Email not registered", http.StatusNotFound)
	ErrNotRequested   = errors.New("No reset code was requested", http.StatusBadRequest)
	ErrExpired        = errors.New("Code expired, request a new one", http.StatusBadRequest)
	ErrMismatch       = errors.New("Wrong code", http.StatusBadRequest)
	ErrNotVerified    = errors.New("Code was not verified", http.StatusBadRequest)
	ErrSessionExpired = errors.New("Reset session expired, start over", http.StatusBadRequest)
	ErrWeakPassword   = errors.New("Password must be at least 8 characters", http.StatusBadRequest)
	ErrBadEmail       = errors.New("Invalid email", http.StatusBadRequest)
)

const passwordHashCost = 12

type Email interface {
	Send(recipientEmail, subject, html string) error
}

type CredentialStore interface {
	UpdatePassword(email domain.Email, newPassHash string) error
}

// Service holds reset records in process memory, keyed by email. The map
// supports multiple tracked addresses even though a single admin account
// means at most one live record matters. State is lost on restart and not
// shared between instances; acceptable for a single-instance deployment.
type Service struct {
	mu      sync.Mutex
	records map[domain.Email]*domain.OtpRecord

	store      CredentialStore
	email      Email
	adminEmail domain.Email
	ttl        time.Duration
	codeLen    int

	now func() time.Time
}

func New(store CredentialStore, email Email, adminEmail domain.Email, ttl time.Duration, codeLen int) *Service {
	normalized, ok := sanitize.Email(adminEmail)
	if ok {
		adminEmail = normalized
	}
	return &Service{
		records:    make(map[domain.Email]*domain.OtpRecord),
		store:      store,
		email:      email,
		adminEmail: adminEmail,
		ttl:        ttl,
		codeLen:    codeLen,
		now:        time.Now,
	}
}

// Request generates a fresh code for email, overwriting any previous record,
// and dispatches it. Only the configured admin address is accepted; anything
// else gets the same generic rejection so probing reveals nothing extra.
func (s *Service) Request(email domain.Email) error {
	email, ok := sanitize.Email(email)
	if !ok {
		return ErrBadEmail
	}
	if email != s.adminEmail {
		return ErrNotRegistered
	}

	code, err := generateCode(s.codeLen)
	if err != nil {
		logger.Log.Error("failed to generate reset code", "error", err)
		return err
	}

	s.mu.Lock()
	s.records[email] = &domain.OtpRecord{
		Email:     email,
		Code:      code,
		State:     domain.OtpRequested,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	body := fmt.Sprintf(`<p>Your TDL Logistics password reset code:</p>
<p style="font-size:24px;letter-spacing:4px"><b>%s</b></p>
<p>The code expires in %d minutes. If you did not request this, ignore this email.</p>`,
		code, int(s.ttl.Minutes()))

	if err := s.email.Send(email, "Password reset code", body); err != nil {
		logger.Log.Error("failed to send reset code email", "error", err)
		return err
	}
	return nil
}

// Verify promotes a Requested record to Verified when the submitted code
// matches. Expired records are deleted on sight.
func (s *Service) Verify(email domain.Email, submittedCode string) error {
	email, ok := sanitize.Email(email)
	if !ok {
		return ErrBadEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[email]
	if !ok {
		return ErrNotRequested
	}
	if rec.Expired(s.now()) {
		delete(s.records, email)
		return ErrExpired
	}
	if !codesEqual(rec.Code, submittedCode) {
		return ErrMismatch
	}

	rec.State = domain.OtpVerified
	return nil
}

// ChangePassword consumes a Verified record: it re-checks the code and
// expiry, writes the new bcrypt hash to the credential store and deletes
// the record. Calling it before Verify fails.
func (s *Service) ChangePassword(email domain.Email, submittedCode, newPassword string) error {
	email, ok := sanitize.Email(email)
	if !ok {
		return ErrBadEmail
	}
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	s.mu.Lock()
	rec, ok := s.records[email]
	if !ok {
		s.mu.Unlock()
		return ErrNotRequested
	}
	if rec.State != domain.OtpVerified {
		s.mu.Unlock()
		return ErrNotVerified
	}
	if rec.Expired(s.now()) {
		delete(s.records, email)
		s.mu.Unlock()
		return ErrSessionExpired
	}
	if !codesEqual(rec.Code, submittedCode) {
		s.mu.Unlock()
		return ErrMismatch
	}
	s.mu.Unlock()

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordHashCost)
	if err != nil {
		logger.Log.Error("failed to hash new password", "error", err)
		return err
	}

	if err := s.store.UpdatePassword(email, string(passHash)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.records, email)
	s.mu.Unlock()
	return nil
}

// codesEqual compares in constant time to avoid a timing side-channel on
// the code digits.
func codesEqual(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// generateCode draws codeLen uniform decimal digits from crypto/rand.
func generateCode(codeLen int) (string, error) {
	digits := make([]byte, codeLen)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
