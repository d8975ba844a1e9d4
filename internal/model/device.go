package model

import "time"

// DeviceUsage represents one logged appliance and its stored monthly cost.
// MonthlyCost is computed once at creation from (watts, hours/day, tariff)
// and is never recomputed on read.
type DeviceUsage struct {
	ID          int64
	AccountID   int64
	DeviceName  string
	PowerWatts  int
	HoursPerDay float64
	CostPerKwh  float64
	MonthlyCost float64
	CreatedAt   time.Time
}

// AddDeviceRequest is the JSON body of POST /add-device.
// CostPerKwh is optional; zero means "use the default tariff".
type AddDeviceRequest struct {
	DeviceName  string  `json:"device_name"`
	PowerWatts  int     `json:"power_watts"`
	HoursPerDay float64 `json:"hours_per_day"`
	CostPerKwh  float64 `json:"cost_per_kwh"`
}

// AddDeviceResponse is the JSON reply of POST /add-device.
type AddDeviceResponse struct {
	Success     bool    `json:"success"`
	MonthlyCost float64 `json:"monthly_cost,omitempty"`
	Message     string  `json:"message,omitempty"`
}

// CommonDevice is one entry of the static appliance catalog served at
// /api/common-devices.
type CommonDevice struct {
	Name     string `json:"name"`
	Watts    int    `json:"watts"`
	Category string `json:"category"`
}
