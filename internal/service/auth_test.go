package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ecowatt/ecowatt-go/internal/crypto"
	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/repository"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewResetRepository(db),
		testSecret,
		time.Hour,
		time.Hour,
	)
	return svc, mock, func() { db.Close() }
}

func accountRows(id int64, email, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password", "phone", "household_size", "square_footage",
		"zip_code", "state", "city", "created_at",
	}).AddRow(id, email, passwordHash, "", 1, 1500, "", "", "", time.Now())
}

func validRegistration() model.RegisterRequest {
	return model.RegisterRequest{
		Email:           "jane@example.com",
		Password:        "Valid1Pass",
		ConfirmPassword: "Valid1Pass",
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, cleanup := newAuthService(t)
	defer cleanup()

	tests := []struct {
		name string
		mod  func(*model.RegisterRequest)
		want error
	}{
		{"missing email", func(r *model.RegisterRequest) { r.Email = "" }, ErrMissingFields},
		{"missing password", func(r *model.RegisterRequest) { r.Password = "" }, ErrMissingFields},
		{"missing confirm", func(r *model.RegisterRequest) { r.ConfirmPassword = "" }, ErrMissingFields},
		{"bad email", func(r *model.RegisterRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"weak password", func(r *model.RegisterRequest) { r.Password, r.ConfirmPassword = "abc123", "abc123" }, ErrWeakPassword},
		{"mismatch", func(r *model.RegisterRequest) { r.ConfirmPassword = "Other1Pass" }, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		req := validRegistration()
		tt.mod(&req)
		if _, err := svc.Register(context.Background(), req); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestRegisterEstablishesSession(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("jane@example.com", sqlmock.AnyArg(), "", 1, 1500, "", "", "").
		WillReturnResult(sqlmock.NewResult(5, 1))

	result, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if result.Account.ID != 5 {
		t.Errorf("account ID = %d, want 5", result.Account.ID)
	}

	session, err := crypto.ParseSessionToken(result.Token, testSecret)
	if err != nil {
		t.Fatalf("session token invalid: %v", err)
	}
	if session.AccountID != 5 || session.Email != "jane@example.com" || session.Name != "jane" {
		t.Errorf("unexpected session %+v", session)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	// The unique key decides the conflict regardless of password.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@example.com' for key 'uq_users_email'"))

	_, err := svc.Register(context.Background(), validRegistration())
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginEmptyFields(t *testing.T) {
	svc, _, cleanup := newAuthService(t)
	defer cleanup()

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "jane@example.com", ""); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}

func emptyAccountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password", "phone", "household_size", "square_footage",
		"zip_code", "state", "city", "created_at",
	})
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("ghost@example.com").
		WillReturnRows(emptyAccountRows())

	_, err := svc.Login(context.Background(), "ghost@example.com", "Valid1Pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	hash, err := crypto.HashPassword("Correct1Pass")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("jane@example.com").
		WillReturnRows(accountRows(5, "jane@example.com", hash))

	_, err = svc.Login(context.Background(), "jane@example.com", "Wrong1Pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	hash, err := crypto.HashPassword("Correct1Pass")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("jane@example.com").
		WillReturnRows(accountRows(5, "jane@example.com", hash))

	result, err := svc.Login(context.Background(), "jane@example.com", "Correct1Pass")
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	session, err := crypto.ParseSessionToken(result.Token, testSecret)
	if err != nil {
		t.Fatalf("session token invalid: %v", err)
	}
	if session.AccountID != 5 {
		t.Errorf("session.AccountID = %d, want 5", session.AccountID)
	}
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	legacy := crypto.LegacyHash("default123")

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("old@example.com").
		WillReturnRows(accountRows(9, "old@example.com", legacy))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = ? WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := svc.Login(context.Background(), "old@example.com", "default123"); err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("legacy hash was not upgraded: %v", err)
	}
}

func TestGetStartedUnknownEmail(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("ghost@example.com").
		WillReturnRows(emptyAccountRows())

	_, err := svc.GetStarted(context.Background(), model.GetStartedRequest{Email: "ghost@example.com"})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestGetStartedUpdatesProfile(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("jane@example.com").
		WillReturnRows(accountRows(5, "jane@example.com", "x"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET household_size = ?, square_footage = ?, zip_code = ? WHERE email = ?")).
		WithArgs(4, 2200, "560001", "jane@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.GetStarted(context.Background(), model.GetStartedRequest{
		Email:         "jane@example.com",
		HouseholdSize: 4,
		SquareFootage: 2200,
		ZipCode:       "560001",
	})
	if err != nil {
		t.Fatalf("GetStarted() unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Error("GetStarted() should establish a session")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("ghost@example.com").
		WillReturnRows(emptyAccountRows())

	// No token insert expected; the outcome hides whether the email exists.
	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Errorf("ForgotPassword() unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestForgotPasswordMintsToken(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("jane@example.com").
		WillReturnRows(accountRows(5, "jane@example.com", "x"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO password_resets (email, token, expires_at) VALUES (?, ?, ?)")).
		WithArgs("jane@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := svc.ForgotPassword(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("ForgotPassword() unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func resetRow(token string, expiresAt time.Time, usedAt any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "token", "created_at", "expires_at", "used_at"}).
		AddRow(1, "jane@example.com", token, time.Now(), expiresAt, usedAt)
}

func TestResetPasswordValidation(t *testing.T) {
	svc, _, cleanup := newAuthService(t)
	defer cleanup()

	if err := svc.ResetPassword(context.Background(), "tok", "abc123", "abc123"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "tok", "Valid1Pass", "Other1Pass"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "", "Valid1Pass", "Valid1Pass"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}

func TestResetPasswordUnknownToken(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM password_resets WHERE token = ? FOR UPDATE")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "token", "created_at", "expires_at", "used_at"}))
	mock.ExpectRollback()

	err := svc.ResetPassword(context.Background(), "nope", "Valid1Pass", "Valid1Pass")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken, got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM password_resets WHERE token = ? FOR UPDATE")).
		WithArgs("tok").
		WillReturnRows(resetRow("tok", time.Now().Add(-time.Minute), nil))
	mock.ExpectRollback()

	err := svc.ResetPassword(context.Background(), "tok", "Valid1Pass", "Valid1Pass")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken for expired token, got %v", err)
	}
}

func TestResetPasswordUsedToken(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM password_resets WHERE token = ? FOR UPDATE")).
		WithArgs("tok").
		WillReturnRows(resetRow("tok", time.Now().Add(time.Hour), time.Now()))
	mock.ExpectRollback()

	err := svc.ResetPassword(context.Background(), "tok", "Valid1Pass", "Valid1Pass")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken for used token, got %v", err)
	}
}

func TestResetPasswordConsumesTokenAndUpdatesCredential(t *testing.T) {
	svc, mock, cleanup := newAuthService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM password_resets WHERE token = ? FOR UPDATE")).
		WithArgs("tok").
		WillReturnRows(resetRow("tok", time.Now().Add(time.Hour), nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE password_resets SET used_at = CURRENT_TIMESTAMP WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = ? WHERE email = ?")).
		WithArgs(sqlmock.AnyArg(), "jane@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.ResetPassword(context.Background(), "tok", "Valid1Pass", "Valid1Pass"); err != nil {
		t.Fatalf("ResetPassword() unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
