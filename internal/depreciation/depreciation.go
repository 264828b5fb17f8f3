// Package depreciation computes straight-line book value for assets.
package depreciation

import (
	"math"
	"strings"
	"time"
)

const (
	daysPerYear  = 365.25
	daysPerMonth = 30.44
)

type Info struct {
	PurchaseValue          float64 `json:"purchase_value"`
	CurrentValue           float64 `json:"current_value"`
	DepreciatedAmount      float64 `json:"depreciated_amount"`
	DepreciationPercentage float64 `json:"depreciation_percentage"`
	YearsElapsed           float64 `json:"years_elapsed"`
	MonthsElapsed          int     `json:"months_elapsed"`
}

// Calculate applies straight-line depreciation at an annual percentage rate.
// A rate of zero falls back to the category default. The function is total:
// a future purchase date yields negative elapsed time and flows through
// without clamping.
func Calculate(purchaseValue float64, purchaseDate time.Time, ratePercent float64, category string, now time.Time) Info {
	daysElapsed := now.Sub(purchaseDate).Hours() / 24
	yearsElapsed := daysElapsed / daysPerYear
	monthsElapsed := int(math.Floor(daysElapsed / daysPerMonth))

	if ratePercent == 0 {
		ratePercent = DefaultRate(category)
	}

	annualDepreciation := purchaseValue * (ratePercent / 100)
	totalDepreciation := math.Min(annualDepreciation*yearsElapsed, purchaseValue)

	currentValue := math.Max(purchaseValue-totalDepreciation, 0)

	var depreciationPercentage float64
	if purchaseValue > 0 {
		depreciationPercentage = totalDepreciation / purchaseValue * 100
	}

	return Info{
		PurchaseValue:          purchaseValue,
		CurrentValue:           round2(currentValue),
		DepreciatedAmount:      round2(totalDepreciation),
		DepreciationPercentage: round2(depreciationPercentage),
		YearsElapsed:           round2(yearsElapsed),
		MonthsElapsed:          monthsElapsed,
	}
}

// DefaultRate returns the annual depreciation rate for a category. Matching
// is case-insensitive substring containment, so "Electronics Accessories"
// falls under the electronics rule while "Company Van" does not match
// vehicle and gets the default.
func DefaultRate(category string) float64 {
	categoryLower := strings.ToLower(category)

	switch {
	case strings.Contains(categoryLower, "electronics"), strings.Contains(categoryLower, "computer"):
		return 20 // 5 year lifespan
	case strings.Contains(categoryLower, "furniture"):
		return 10 // 10 year lifespan
	case strings.Contains(categoryLower, "vehicle"), strings.Contains(categoryLower, "car"):
		return 15
	case strings.Contains(categoryLower, "machinery"), strings.Contains(categoryLower, "equipment"):
		return 12.5 // 8 year lifespan
	default:
		return 10
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
