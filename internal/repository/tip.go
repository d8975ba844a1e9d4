package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowatt/ecowatt-go/internal/model"
)

const tipColumns = `id, category, title, description, savings_per_year, implementation_cost, payback_months, difficulty`

// TipRepository reads the immutable savings-tip reference catalog.
type TipRepository struct {
	db *sql.DB
}

// NewTipRepository creates a new TipRepository.
func NewTipRepository(db *sql.DB) *TipRepository {
	return &TipRepository{db: db}
}

// List retrieves the full catalog, highest annual savings first. A non-zero
// limit caps the result (the dashboard shows the top six).
func (r *TipRepository) List(ctx context.Context, limit int) ([]model.EnergyTip, error) {
	query := `SELECT ` + tipColumns + ` FROM energy_tips ORDER BY savings_per_year DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []model.EnergyTip
	for rows.Next() {
		var t model.EnergyTip
		if err := rows.Scan(
			&t.ID, &t.Category, &t.Title, &t.Description,
			&t.SavingsPerYear, &t.ImplementationCost, &t.PaybackMonths, &t.Difficulty,
		); err != nil {
			return nil, err
		}
		tips = append(tips, t)
	}

	return tips, rows.Err()
}

// GetByIDs retrieves the tips for the given ids, skipping unknown ids
// silently. Order follows the requested ids.
func (r *TipRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.EnergyTip, error) {
	query := `SELECT ` + tipColumns + ` FROM energy_tips WHERE id = ?`

	var tips []model.EnergyTip
	for _, id := range ids {
		var t model.EnergyTip
		err := r.db.QueryRowContext(ctx, query, id).Scan(
			&t.ID, &t.Category, &t.Title, &t.Description,
			&t.SavingsPerYear, &t.ImplementationCost, &t.PaybackMonths, &t.Difficulty,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		tips = append(tips, t)
	}

	return tips, nil
}
