package domain

import "time"

// OtpState is the password-reset state machine.
// A record is created in Requested, promoted to Verified on a matching code
// and removed entirely when consumed, so Consumed needs no stored value.
// Expiry implicitly returns the flow to "no record".
type OtpState int

const (
	OtpRequested OtpState = iota
	OtpVerified
)

type OtpRecord struct {
	Email     Email
	Code      string
	State     OtpState
	ExpiresAt time.Time
}

func (r OtpRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
