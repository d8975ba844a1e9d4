package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowatt/ecowatt-go/internal/model"
)

var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository handles device usage entry persistence operations.
type DeviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository creates a new DeviceRepository.
func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Create inserts a usage entry with its precomputed monthly cost and sets the
// generated ID. The stored cost is frozen at insert time; it is never
// recomputed on read.
func (r *DeviceRepository) Create(ctx context.Context, entry *model.DeviceUsage) error {
	query := `INSERT INTO energy_usage (user_id, device_name, power_watts, hours_per_day, cost_per_kwh, monthly_cost)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		entry.AccountID, entry.DeviceName, entry.PowerWatts,
		entry.HoursPerDay, entry.CostPerKwh, entry.MonthlyCost,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// ListByAccount retrieves all usage entries owned by an account.
func (r *DeviceRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.DeviceUsage, error) {
	query := `SELECT id, user_id, device_name, power_watts, hours_per_day, cost_per_kwh, monthly_cost, created_at
		FROM energy_usage WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.DeviceUsage
	for rows.Next() {
		var e model.DeviceUsage
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.DeviceName, &e.PowerWatts,
			&e.HoursPerDay, &e.CostPerKwh, &e.MonthlyCost, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Delete removes a usage entry, scoped to its owning account in the statement
// itself. Deleting an entry owned by a different account affects zero rows
// and reports ErrDeviceNotFound.
func (r *DeviceRepository) Delete(ctx context.Context, accountID, deviceID int64) error {
	query := `DELETE FROM energy_usage WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, deviceID, accountID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}
