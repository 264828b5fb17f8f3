package reports

import (
	"testing"
	"time"

	"assethub/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildReportSumsBookValues(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assets := []models.Asset{
		{
			ID:               1,
			Tag:              "AST-0001",
			Name:             "Workstation",
			Category:         "Electronics",
			PurchaseDate:     now.AddDate(-1, 0, 0),
			PurchasePrice:    1000,
			DepreciationRate: 20,
			Status:           "assigned",
		},
		{
			ID:               2,
			Tag:              "AST-0002",
			Name:             "Standing Desk",
			Category:         "Furniture",
			PurchaseDate:     now,
			PurchasePrice:    500,
			DepreciationRate: 10,
			Status:           "available",
		},
	}

	report := BuildReport(assets, now)

	assert.Len(t, report.Assets, 2)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Equal(t, float64(1500), report.TotalPurchaseValue)

	// One full year at 20% knocks roughly 200 off the workstation; the desk
	// was bought today and keeps its full value.
	assert.InDelta(t, 200, report.TotalDepreciated, 1)
	assert.InDelta(t, 1300, report.TotalCurrentValue, 1)
	assert.InDelta(t, report.TotalPurchaseValue, report.TotalCurrentValue+report.TotalDepreciated, 0.01)

	first := report.Assets[0]
	assert.Equal(t, 1, first.AssetID)
	assert.Equal(t, "AST-0001", first.Tag)
	assert.Equal(t, "assigned", first.Status)
	assert.InDelta(t, 1.0, first.Depreciation.YearsElapsed, 0.01)
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, time.Now())

	assert.Empty(t, report.Assets)
	assert.Zero(t, report.TotalPurchaseValue)
	assert.Zero(t, report.TotalCurrentValue)
	assert.Zero(t, report.TotalDepreciated)
}
