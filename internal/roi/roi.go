// Package roi estimates the savings and payback period of a residential
// solar installation from a monthly electricity bill.
package roi

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidBill is returned when the monthly bill is missing, not
// positive or not a finite number.
var ErrInvalidBill = errors.New("monthly bill must be a positive number")

// kgCO2PerKWh is the average grid emission factor.
const kgCO2PerKWh = 0.417

// defaultSunHours applies when the ZIP code is empty or unrecognised.
const defaultSunHours = 4.5

// sunHoursByRegion maps the first digit of a US ZIP code to average
// peak sun hours per day for that region.
var sunHoursByRegion = map[byte]float64{
	'0': 4.0, // New England
	'1': 4.0, // NY, PA
	'2': 4.5, // Mid-Atlantic, Carolinas
	'3': 5.0, // Southeast, Florida
	'4': 4.2, // Ohio valley
	'5': 4.5, // Upper Midwest, Plains
	'6': 4.8, // Central Plains
	'7': 5.2, // Texas, Oklahoma
	'8': 5.8, // Mountain West, Arizona
	'9': 5.5, // Pacific
}

// Assumptions are the fixed inputs of the formula.
type Assumptions struct {
	RatePerKWh       float64 // $ per kWh
	CostPerWatt      float64 // installed $ per W
	FederalTaxCredit float64 // fraction of gross cost
	SystemEfficiency float64 // derate from nameplate
	Offset           float64 // fraction of the bill replaced
	Escalation       float64 // yearly utility price increase
	LifetimeYears    int
}

// DefaultAssumptions are used by EstimateSavings.
var DefaultAssumptions = Assumptions{
	RatePerKWh:       0.16,
	CostPerWatt:      3.00,
	FederalTaxCredit: 0.30,
	SystemEfficiency: 0.80,
	Offset:           1.0,
	Escalation:       0.03,
	LifetimeYears:    25,
}

// Estimate is the result shown on the calculator and mailed in the ROI
// report. Money is in dollars rounded to cents.
type Estimate struct {
	MonthlyBill     float64 `json:"monthlyBill"`
	ZipCode         string  `json:"zipCode,omitempty"`
	PeakSunHours    float64 `json:"peakSunHours"`
	AnnualUsageKWh  float64 `json:"annualUsageKwh"`
	SystemSizeKW    float64 `json:"systemSizeKw"`
	GrossCost       float64 `json:"grossCost"`
	NetCost         float64 `json:"netCost"`
	AnnualSavings   float64 `json:"annualSavings"`
	PaybackYears    float64 `json:"paybackYears"`
	LifetimeSavings float64 `json:"lifetimeSavings"`
	CO2TonsPerYear  float64 `json:"co2TonsPerYear"`
}

// EstimateSavings runs the bill → usage → system size → cost → payback
// chain with DefaultAssumptions.
func EstimateSavings(monthlyBill float64, zipCode string) (Estimate, error) {
	return DefaultAssumptions.Estimate(monthlyBill, zipCode)
}

// Estimate runs the formula with a's assumptions.
func (a Assumptions) Estimate(monthlyBill float64, zipCode string) (Estimate, error) {
	if monthlyBill <= 0 || math.IsNaN(monthlyBill) || math.IsInf(monthlyBill, 0) {
		return Estimate{}, ErrInvalidBill
	}

	sunHours := PeakSunHours(zipCode)

	annualKWh := monthlyBill / a.RatePerKWh * 12
	productionPerKW := sunHours * 365 * a.SystemEfficiency
	systemKW := annualKWh / productionPerKW

	grossCost := systemKW * 1000 * a.CostPerWatt
	netCost := grossCost * (1 - a.FederalTaxCredit)

	annualSavings := monthlyBill * 12 * a.Offset

	var payback float64
	if annualSavings > 0 {
		payback = netCost / annualSavings
	}

	var lifetime float64
	yearly := annualSavings
	for y := 0; y < a.LifetimeYears; y++ {
		lifetime += yearly
		yearly *= 1 + a.Escalation
	}
	lifetime -= netCost

	return Estimate{
		MonthlyBill:     round(monthlyBill, 2),
		ZipCode:         strings.TrimSpace(zipCode),
		PeakSunHours:    sunHours,
		AnnualUsageKWh:  round(annualKWh, 0),
		SystemSizeKW:    round(systemKW, 1),
		GrossCost:       round(grossCost, 2),
		NetCost:         round(netCost, 2),
		AnnualSavings:   round(annualSavings, 2),
		PaybackYears:    round(payback, 1),
		LifetimeSavings: round(lifetime, 2),
		CO2TonsPerYear:  round(annualKWh*kgCO2PerKWh/1000, 2),
	}, nil
}

// PeakSunHours returns the regional peak sun hours for a US ZIP code.
func PeakSunHours(zipCode string) float64 {
	zipCode = strings.TrimSpace(zipCode)
	if zipCode == "" {
		return defaultSunHours
	}
	if h, ok := sunHoursByRegion[zipCode[0]]; ok {
		return h
	}
	return defaultSunHours
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
