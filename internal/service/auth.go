package service

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/errors"
	"github.com/tdlogistics/tdl/internal/jwt"
	"github.com/tdlogistics/tdl/internal/logger"
	"github.com/tdlogistics/tdl/internal/sanitize"
)

type AuthService interface {
	Login(creds domain.Credentials) (string, domain.AdminUser, error)
}

type CredentialStorage interface {
	AdminUser(email domain.Email) (domain.AdminUser, error)
	UpdatePassword(email domain.Email, newPassHash string) error
	RecordLoginFailure(email domain.Email, maxFailures int, lockFor time.Duration) error
	ResetLoginFailures(email domain.Email) error
}

type Auth struct {
	storage     CredentialStorage
	tokens      jwt.TokenService
	maxFailures int
	lockFor     time.Duration

	now func() time.Time
}

func NewAuth(storage CredentialStorage, tokens jwt.TokenService, maxFailures int, lockFor time.Duration) *Auth {
	return &Auth{
		storage:     storage,
		tokens:      tokens,
		maxFailures: maxFailures,
		lockFor:     lockFor,
		now:         time.Now,
	}
}

// Expected login failures. Both unknown email and wrong password map to the
// same generic message so responses never confirm whether an account exists.
var (
	errInvalidCredentials = errors.New("Invalid credentials", http.StatusUnauthorized)
	errAccountLocked      = errors.New("Account locked, try again later", http.StatusUnauthorized)
)

// Login checks credentials and returns a signed session token.
// Each wrong password bumps the failure counter; at maxFailures the account
// locks for lockFor and even the correct password is refused until the
// lockout passes. A successful login resets the counter.
func (a *Auth) Login(creds domain.Credentials) (string, domain.AdminUser, error) {
	email, ok := sanitize.Email(creds.Email)
	if !ok {
		return "", domain.AdminUser{}, errInvalidCredentials
	}

	user, err := a.storage.AdminUser(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", domain.AdminUser{}, errInvalidCredentials
		}
		return "", domain.AdminUser{}, err
	}

	if !user.IsActive {
		return "", domain.AdminUser{}, errInvalidCredentials
	}

	if user.Locked(a.now()) {
		return "", domain.AdminUser{}, errAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		if err := a.storage.RecordLoginFailure(email, a.maxFailures, a.lockFor); err != nil {
			logger.Log.Error("failed to record login failure", "error", err)
		}
		return "", domain.AdminUser{}, errInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 {
		if err := a.storage.ResetLoginFailures(email); err != nil {
			logger.Log.Error("failed to reset login failures", "error", err)
		}
	}

	token, err := a.tokens.Issue(user)
	if err != nil {
		logger.Log.Error("failed to issue session token", "user_id", user.Id, "error", err)
		return "", domain.AdminUser{}, err
	}

	return token, user, nil
}
