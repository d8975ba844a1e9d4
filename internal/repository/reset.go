package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowatt/ecowatt-go/internal/model"
)

var ErrResetNotFound = errors.New("password reset token not found")

// ResetRepository handles password-reset token persistence.
type ResetRepository struct {
	db *sql.DB
}

// NewResetRepository creates a new ResetRepository.
func NewResetRepository(db *sql.DB) *ResetRepository {
	return &ResetRepository{db: db}
}

// BeginTx starts a new database transaction. The reset-confirmation flow
// consumes the token and updates the credential inside one transaction.
func (r *ResetRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// Create persists a freshly minted token with its expiry.
func (r *ResetRepository) Create(ctx context.Context, reset *model.PasswordReset) error {
	query := `INSERT INTO password_resets (email, token, expires_at) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, reset.Email, reset.Token, reset.ExpiresAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	reset.ID = id
	return nil
}

// GetByTokenTx retrieves a reset record by token within a transaction,
// locking the row so two concurrent confirmations cannot both consume it.
func (r *ResetRepository) GetByTokenTx(ctx context.Context, tx *sql.Tx, token string) (*model.PasswordReset, error) {
	query := `SELECT id, email, token, created_at, expires_at, used_at
		FROM password_resets WHERE token = ? FOR UPDATE`

	reset := &model.PasswordReset{}
	var usedAt sql.NullTime
	err := tx.QueryRowContext(ctx, query, token).Scan(
		&reset.ID, &reset.Email, &reset.Token,
		&reset.CreatedAt, &reset.ExpiresAt, &usedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResetNotFound
		}
		return nil, err
	}

	if usedAt.Valid {
		reset.UsedAt = &usedAt.Time
	}
	return reset, nil
}

// MarkUsedTx stamps a token as consumed within a transaction.
func (r *ResetRepository) MarkUsedTx(ctx context.Context, tx *sql.Tx, id int64) error {
	query := `UPDATE password_resets SET used_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := tx.ExecContext(ctx, query, id)
	return err
}
