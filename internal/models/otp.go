package models

import "time"

// OTPRecord is a pending one-time code for an email address. Single use:
// verification deletes it whether it matched or expired.
type OTPRecord struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its window at the given instant.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
