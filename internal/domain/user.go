package domain

import "time"

type (
	UserId = int64
	Email  = string
)

// AdminUser is a back-office credential row.
type AdminUser struct {
	Id                  UserId
	Email               Email
	PassHash            string
	Role                string
	Name                string
	IsActive            bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
}

// Locked reports whether the account is still inside a lockout window.
func (u AdminUser) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

type Credentials struct {
	Email    Email
	Password string
}
