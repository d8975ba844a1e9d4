package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecowatt/ecowatt-go/internal/crypto"
	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/repository"
	"github.com/ecowatt/ecowatt-go/internal/validate"
)

var (
	ErrMissingFields      = errors.New("please fill in all required fields")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("no account found with that email address")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// AuthService implements the account and session lifecycle: registration,
// login, profile update, password reset.
type AuthService struct {
	users         *repository.UserRepository
	resets        *repository.ResetRepository
	sessionSecret string
	sessionExpiry time.Duration
	resetExpiry   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, resets *repository.ResetRepository, secret string, sessionExpiry, resetExpiry time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		resets:        resets,
		sessionSecret: secret,
		sessionExpiry: sessionExpiry,
		resetExpiry:   resetExpiry,
	}
}

// Register creates a new account and establishes a session for it.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResult, error) {
	if req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return model.AuthResult{}, ErrMissingFields
	}
	if !validate.Email(req.Email) {
		return model.AuthResult{}, ErrInvalidEmail
	}
	if ok, reason := validate.PasswordStrength(req.Password); !ok {
		return model.AuthResult{}, fmt.Errorf("%w: %s", ErrWeakPassword, reason)
	}
	if req.Password != req.ConfirmPassword {
		return model.AuthResult{}, ErrPasswordMismatch
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResult{}, err
	}

	account := &model.Account{
		Email:         req.Email,
		PasswordHash:  hash,
		Phone:         req.Phone,
		HouseholdSize: defaultInt(req.HouseholdSize, 1),
		SquareFootage: defaultInt(req.SquareFootage, 1500),
		ZipCode:       req.ZipCode,
		State:         req.State,
		City:          req.City,
	}

	// The unique key decides the race between two concurrent registrations;
	// there is deliberately no existence pre-check.
	if err := s.users.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResult{}, ErrEmailTaken
		}
		return model.AuthResult{}, err
	}

	return s.newSession(account)
}

// Login authenticates an account. Unknown-email and wrong-password failures
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.AuthResult, error) {
	if email == "" || password == "" {
		return model.AuthResult{}, ErrMissingFields
	}

	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.AuthResult{}, ErrInvalidCredentials
		}
		return model.AuthResult{}, err
	}

	match, err := crypto.VerifyPassword(password, account.PasswordHash)
	if err != nil || !match {
		return model.AuthResult{}, ErrInvalidCredentials
	}

	// Accounts still carrying the pre-migration SHA-256 digest are upgraded
	// to Argon2id now that the plaintext is in hand. Failure to upgrade is
	// not fatal to the login.
	if crypto.IsLegacyHash(account.PasswordHash) {
		if rehash, err := crypto.HashPassword(password); err == nil {
			if err := s.users.UpdatePasswordHash(ctx, account.ID, rehash); err != nil {
				slog.Warn("legacy hash upgrade failed", "account_id", account.ID, "error", err)
			}
		}
	}

	return s.newSession(account)
}

// GetStarted updates household and geography fields for an existing account
// and establishes a session. An unknown email is rejected; the caller should
// send the user to registration.
func (s *AuthService) GetStarted(ctx context.Context, req model.GetStartedRequest) (model.AuthResult, error) {
	if req.Email == "" {
		return model.AuthResult{}, ErrMissingFields
	}

	account, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.AuthResult{}, ErrAccountNotFound
		}
		return model.AuthResult{}, err
	}

	account.HouseholdSize = defaultInt(req.HouseholdSize, 1)
	account.SquareFootage = defaultInt(req.SquareFootage, 1500)
	account.ZipCode = req.ZipCode

	if err := s.users.UpdateProfile(ctx, account.Email, account.HouseholdSize, account.SquareFootage, account.ZipCode); err != nil {
		return model.AuthResult{}, err
	}

	return s.newSession(account)
}

// ForgotPassword mints and persists a reset token for the account, if one
// exists. The returned error does not reveal whether the email is known;
// token delivery is an external concern, so the token is only logged here.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Same outcome as success so responses cannot be used to
			// enumerate accounts.
			return nil
		}
		return err
	}

	reset := &model.PasswordReset{
		Email:     email,
		Token:     crypto.NewResetToken(),
		ExpiresAt: time.Now().Add(s.resetExpiry),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return err
	}

	slog.Info("password reset token issued", "email", email, "token", reset.Token, "expires_at", reset.ExpiresAt)
	return nil
}

// ResetPassword consumes a reset token and replaces the account credential.
// The token must exist, be unexpired, and be unused; consumption and the
// credential update commit together.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if token == "" || password == "" || confirm == "" {
		return ErrMissingFields
	}
	if ok, reason := validate.PasswordStrength(password); !ok {
		return fmt.Errorf("%w: %s", ErrWeakPassword, reason)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	tx, err := s.resets.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	reset, err := s.resets.GetByTokenTx(ctx, tx, token)
	if err != nil {
		if errors.Is(err, repository.ErrResetNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if reset.Used() || reset.Expired(time.Now()) {
		return ErrInvalidResetToken
	}

	if err := s.resets.MarkUsedTx(ctx, tx, reset.ID); err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHashByEmailTx(ctx, tx, reset.Email, hash); err != nil {
		return err
	}

	return tx.Commit()
}

// Profile retrieves the account behind a session.
func (s *AuthService) Profile(ctx context.Context, accountID int64) (*model.Account, error) {
	return s.users.GetByID(ctx, accountID)
}

func (s *AuthService) newSession(account *model.Account) (model.AuthResult, error) {
	token, err := crypto.NewSessionToken(account, s.sessionSecret, s.sessionExpiry)
	if err != nil {
		return model.AuthResult{}, err
	}
	return model.AuthResult{Token: token, Account: account}, nil
}

func defaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
