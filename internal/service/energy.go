package service

import (
	"context"
	"errors"
	"math"

	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/repository"
)

// DefaultTariff is the fallback cost per kWh applied when a device is added
// without an explicit tariff.
const DefaultTariff = 8.0

var (
	ErrDeviceNameRequired = errors.New("device name is required")
	ErrInvalidWatts       = errors.New("power draw must be a positive number of watts")
	ErrInvalidHours       = errors.New("hours per day must be between 0 and 24")
	ErrDeviceNotFound     = errors.New("device not found")
)

// MonthlyCost converts a power draw and daily usage into a monthly cost at
// the given tariff, rounded to 2 decimal places. Pure function.
func MonthlyCost(watts int, hoursPerDay, costPerKwh float64) float64 {
	kwhPerMonth := float64(watts) * hoursPerDay * 30 / 1000
	return round2(kwhPerMonth * costPerKwh)
}

// EnergyService handles device usage entries and their cost aggregation.
type EnergyService struct {
	devices *repository.DeviceRepository
}

// NewEnergyService creates a new EnergyService.
func NewEnergyService(devices *repository.DeviceRepository) *EnergyService {
	return &EnergyService{devices: devices}
}

// AddDevice validates and stores a usage entry, computing and freezing its
// monthly cost from (watts, hours/day, tariff) at creation time.
func (s *EnergyService) AddDevice(ctx context.Context, accountID int64, req model.AddDeviceRequest) (*model.DeviceUsage, error) {
	if req.DeviceName == "" {
		return nil, ErrDeviceNameRequired
	}
	if req.PowerWatts <= 0 {
		return nil, ErrInvalidWatts
	}
	if req.HoursPerDay < 0 || req.HoursPerDay > 24 {
		return nil, ErrInvalidHours
	}

	tariff := req.CostPerKwh
	if tariff <= 0 {
		tariff = DefaultTariff
	}

	entry := &model.DeviceUsage{
		AccountID:   accountID,
		DeviceName:  req.DeviceName,
		PowerWatts:  req.PowerWatts,
		HoursPerDay: req.HoursPerDay,
		CostPerKwh:  tariff,
		MonthlyCost: MonthlyCost(req.PowerWatts, req.HoursPerDay, tariff),
	}

	if err := s.devices.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListDevices retrieves all usage entries owned by an account.
func (s *EnergyService) ListDevices(ctx context.Context, accountID int64) ([]model.DeviceUsage, error) {
	return s.devices.ListByAccount(ctx, accountID)
}

// DeleteDevice removes a usage entry owned by the account. Entries owned by
// other accounts are unaffected and reported as not found.
func (s *EnergyService) DeleteDevice(ctx context.Context, accountID, deviceID int64) error {
	err := s.devices.Delete(ctx, accountID, deviceID)
	if errors.Is(err, repository.ErrDeviceNotFound) {
		return ErrDeviceNotFound
	}
	return err
}

// Totals sums the stored monthly costs of the given entries. Stored costs are
// authoritative; a later tariff change does not retroactively reprice them.
// The annual estimate is twelve times the monthly total.
func Totals(devices []model.DeviceUsage) (monthly, annual float64) {
	for _, d := range devices {
		monthly += d.MonthlyCost
	}
	monthly = round2(monthly)
	return monthly, round2(monthly * 12)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
