package model

// EnergyTip is one immutable catalog entry of the savings-tip reference data,
// seeded once at initialization.
type EnergyTip struct {
	ID                 int64   `json:"id"`
	Category           string  `json:"category"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	SavingsPerYear     float64 `json:"savings_per_year"`
	ImplementationCost float64 `json:"implementation_cost"`
	PaybackMonths      int     `json:"payback_months"`
	Difficulty         string  `json:"difficulty"`
}

// SavingsRequest is the JSON body of POST /api/calculate-savings.
// CurrentBill is the user's current monthly bill.
type SavingsRequest struct {
	CurrentBill  float64 `json:"current_bill"`
	Improvements []int64 `json:"improvements"`
}

// SavingsSummary is the projected financial impact of a selected tip subset.
type SavingsSummary struct {
	AnnualSavings      float64 `json:"annual_savings"`
	ImplementationCost float64 `json:"implementation_cost"`
	NewAnnualCost      float64 `json:"new_annual_cost"`
	PaybackMonths      float64 `json:"payback_months"`
	MonthlySavings     float64 `json:"monthly_savings"`
}
