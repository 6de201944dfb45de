// Package sanitize normalizes untrusted form input before it reaches
// validation logic, storage or an outbound query string.
//
// Every function is total: invalid input yields a false/empty sentinel,
// never an error, so handlers can map all of them to a uniform 400.
package sanitize

import (
	"net/mail"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	maxEmailLen    = 255
	maxTextRunes   = 10_000
	minPhoneDigits = 9
	maxPhoneDigits = 15
	minTrackingLen = 5
	maxTrackingLen = 30
)

// strict strips every HTML element and escapes what remains.
var strict = bluemonday.StrictPolicy()

// Email returns the trimmed, lowercased address and true when it has a valid
// RFC 5322 shape. Applying it twice gives the same result.
func Email(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > maxEmailLen {
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", false
	}
	return s, true
}

// Phone keeps digits and a single leading '+', requiring 9 to 15 digits.
func Phone(s string) (string, bool) {
	var b strings.Builder
	digits := 0
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", false
	}
	return b.String(), true
}

// Text strips markup, unescapes nothing and caps the result at 10,000 runes.
// Used for names, subjects and free-text messages in both languages.
func Text(s string) string {
	s = strict.Sanitize(strings.TrimSpace(s))
	runes := []rune(s)
	if len(runes) > maxTextRunes {
		s = string(runes[:maxTextRunes])
	}
	return s
}

// TrackingNumber uppercases and keeps only A-Z and 0-9, then checks the
// 5..30 length window. The allow-list keeps user input out of the outbound
// provider query string.
func TrackingNumber(s string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	code := b.String()
	if len(code) < minTrackingLen || len(code) > maxTrackingLen {
		return "", false
	}
	return code, true
}
