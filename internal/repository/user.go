package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecowatt/ecowatt-go/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

const accountColumns = `id, email, password, phone, household_size, square_footage, zip_code, state, city, created_at`

// UserRepository handles account persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account and sets the generated ID on the struct.
// A duplicate email is reported as ErrDuplicateEmail; the unique key, not any
// preceding existence check, is the source of truth on conflict.
func (r *UserRepository) Create(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO users (email, password, phone, household_size, square_footage, zip_code, state, city)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		account.Email, account.PasswordHash, account.Phone,
		account.HouseholdSize, account.SquareFootage,
		account.ZipCode, account.State, account.City,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	account.ID = id
	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves an account by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdateProfile updates the household and geography fields set by the
// get-started flow.
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, householdSize, squareFootage int, zipCode string) error {
	query := `UPDATE users SET household_size = ?, square_footage = ?, zip_code = ? WHERE email = ?`

	_, err := r.db.ExecContext(ctx, query, householdSize, squareFootage, zipCode, email)
	return err
}

// UpdatePasswordHash replaces the stored credential for an account, used both
// by the reset flow and by the transparent legacy-hash upgrade after login.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	query := `UPDATE users SET password = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, hash, id)
	return err
}

// UpdatePasswordHashByEmailTx replaces the stored credential within a
// transaction, paired with consuming a reset token.
func (r *UserRepository) UpdatePasswordHashByEmailTx(ctx context.Context, tx *sql.Tx, email, hash string) error {
	query := `UPDATE users SET password = ? WHERE email = ?`

	result, err := tx.ExecContext(ctx, query, hash, email)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.Account, error) {
	account := &model.Account{}
	err := row.Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.Phone,
		&account.HouseholdSize, &account.SquareFootage,
		&account.ZipCode, &account.State, &account.City, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
