package model

import "time"

// Account represents a registered household profile in the database.
type Account struct {
	ID            int64
	Email         string
	PasswordHash  string
	Phone         string
	HouseholdSize int
	SquareFootage int
	ZipCode       string
	State         string
	City          string
	CreatedAt     time.Time
}

// Session identifies the authenticated account carried by the session cookie.
type Session struct {
	AccountID int64
	Email     string
	Name      string
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	HouseholdSize   int
	SquareFootage   int
	ZipCode         string
	State           string
	City            string
}

// GetStartedRequest carries the profile-update ("get started") form fields.
type GetStartedRequest struct {
	Email         string
	HouseholdSize int
	SquareFootage int
	ZipCode       string
}

// AuthResult is returned by lifecycle operations that establish a session.
type AuthResult struct {
	Token   string
	Account *Account
}

// DisplayName derives the session display name from an email address
// (the local part, matching what the dashboard greets the user with).
func DisplayName(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
