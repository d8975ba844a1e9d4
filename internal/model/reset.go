package model

import "time"

// PasswordReset is a single-use, expiring password-reset token bound to an
// account email. UsedAt is nil until the token is consumed.
type PasswordReset struct {
	ID        int64
	Email     string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// Used reports whether the token has already been consumed.
func (p *PasswordReset) Used() bool {
	return p.UsedAt != nil
}
