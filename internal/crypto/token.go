package crypto

import "github.com/google/uuid"

// NewResetToken returns an opaque, unguessable password-reset token.
func NewResetToken() string {
	return uuid.NewString()
}
