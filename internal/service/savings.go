package service

import (
	"context"

	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/repository"
)

// DashboardTipCount is how many top tips the dashboard shows.
const DashboardTipCount = 6

// SavingsService serves the tip catalog and the projected-savings calculator.
type SavingsService struct {
	tips *repository.TipRepository
}

// NewSavingsService creates a new SavingsService.
func NewSavingsService(tips *repository.TipRepository) *SavingsService {
	return &SavingsService{tips: tips}
}

// AllTips retrieves the full catalog, highest annual savings first.
func (s *SavingsService) AllTips(ctx context.Context) ([]model.EnergyTip, error) {
	return s.tips.List(ctx, 0)
}

// TopTips retrieves the tips shown on the dashboard.
func (s *SavingsService) TopTips(ctx context.Context) ([]model.EnergyTip, error) {
	return s.tips.List(ctx, DashboardTipCount)
}

// Calculate projects the financial impact of adopting the selected tips
// against the user's current monthly bill. Unknown tip ids are skipped.
func (s *SavingsService) Calculate(ctx context.Context, req model.SavingsRequest) (model.SavingsSummary, error) {
	tips, err := s.tips.GetByIDs(ctx, req.Improvements)
	if err != nil {
		return model.SavingsSummary{}, err
	}
	return Summarize(req.CurrentBill, tips), nil
}

// Summarize computes the savings projection for a selected tip set. Pure
// function: monetary outputs round to 2 decimals, the payback period to 1,
// and a zero-savings selection yields a zero payback period rather than a
// division by zero.
func Summarize(currentMonthlyBill float64, tips []model.EnergyTip) model.SavingsSummary {
	var annualSavings, implementationCost float64
	for _, t := range tips {
		annualSavings += t.SavingsPerYear
		implementationCost += t.ImplementationCost
	}

	var paybackMonths float64
	if annualSavings > 0 {
		paybackMonths = implementationCost / (annualSavings / 12)
	}

	return model.SavingsSummary{
		AnnualSavings:      round2(annualSavings),
		ImplementationCost: round2(implementationCost),
		NewAnnualCost:      round2(currentMonthlyBill*12 - annualSavings),
		PaybackMonths:      round1(paybackMonths),
		MonthlySavings:     round2(annualSavings / 12),
	}
}

// CommonDevices returns the static appliance catalog used by the add-device
// form to prefill typical wattages.
func CommonDevices() []model.CommonDevice {
	return []model.CommonDevice{
		{Name: "Refrigerator", Watts: 150, Category: "appliance"},
		{Name: "LED Light Bulb", Watts: 10, Category: "lighting"},
		{Name: "Incandescent Bulb", Watts: 60, Category: "lighting"},
		{Name: "Laptop", Watts: 50, Category: "electronics"},
		{Name: "Gaming PC", Watts: 500, Category: "electronics"},
		{Name: "TV 55\" LED", Watts: 120, Category: "electronics"},
		{Name: "Air Conditioner", Watts: 1500, Category: "hvac"},
		{Name: "Ceiling Fan", Watts: 75, Category: "hvac"},
		{Name: "Washing Machine", Watts: 500, Category: "appliance"},
		{Name: "Water Heater", Watts: 4000, Category: "appliance"},
		{Name: "Microwave", Watts: 1100, Category: "appliance"},
		{Name: "Mixer Grinder", Watts: 500, Category: "appliance"},
		{Name: "Water Purifier", Watts: 50, Category: "appliance"},
		{Name: "Phone Charger", Watts: 5, Category: "electronics"},
		{Name: "Set Top Box", Watts: 30, Category: "electronics"},
		{Name: "WiFi Router", Watts: 10, Category: "electronics"},
	}
}
