// Package reports aggregates per-asset depreciation into an organization
// level view.
package reports

import (
	"fmt"
	"math"
	"time"

	"assethub/internal/depreciation"
	"assethub/internal/repository"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AssetDepreciation struct {
	AssetID      int               `json:"asset_id"`
	Tag          string            `json:"tag"`
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Status       string            `json:"status"`
	Depreciation depreciation.Info `json:"depreciation"`
}

type DepreciationReport struct {
	Assets             []AssetDepreciation `json:"assets"`
	TotalPurchaseValue float64             `json:"total_purchase_value"`
	TotalCurrentValue  float64             `json:"total_current_value"`
	TotalDepreciated   float64             `json:"total_depreciated"`
	GeneratedAt        time.Time           `json:"generated_at"`
}

// BuildReport computes depreciation for every asset as of now and sums the
// book values.
func BuildReport(assets []models.Asset, now time.Time) DepreciationReport {
	report := DepreciationReport{
		Assets:      make([]AssetDepreciation, len(assets)),
		GeneratedAt: now,
	}

	for i, asset := range assets {
		info := depreciation.Calculate(
			asset.PurchasePrice,
			asset.PurchaseDate,
			asset.DepreciationRate,
			asset.Category,
			now,
		)

		report.Assets[i] = AssetDepreciation{
			AssetID:      asset.ID,
			Tag:          asset.Tag,
			Name:         asset.Name,
			Category:     asset.Category,
			Status:       asset.Status,
			Depreciation: info,
		}

		report.TotalPurchaseValue += info.PurchaseValue
		report.TotalCurrentValue += info.CurrentValue
		report.TotalDepreciated += info.DepreciatedAmount
	}

	report.TotalPurchaseValue = round2(report.TotalPurchaseValue)
	report.TotalCurrentValue = round2(report.TotalCurrentValue)
	report.TotalDepreciated = round2(report.TotalDepreciated)

	return report
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

type ReportsRepository struct {
	r *repository.Repository
}

func NewReportsRepository(r *repository.Repository) *ReportsRepository {
	return &ReportsRepository{r: r}
}

func (r *ReportsRepository) GetAssets(organizationID int) ([]models.Asset, error) {
	query := r.r.GoquDBWrapper.
		From(goqu.T("assets").As("a")).
		Select(
			goqu.I("a.id"),
			goqu.I("a.tag"),
			goqu.I("a.name"),
			goqu.I("a.category"),
			goqu.I("a.purchase_date"),
			goqu.I("a.purchase_price"),
			goqu.I("a.depreciation_rate"),
			goqu.I("a.status"),
			goqu.I("a.condition"),
			goqu.I("a.organization_id"),
			goqu.I("a.created_at"),
			goqu.I("a.updated_at"),
		).
		Order(goqu.I("a.id").Asc())

	if organizationID != 0 {
		query = query.Where(goqu.Ex{"a.organization_id": organizationID})
	}

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	assets := make([]models.Asset, len(flatAssets))
	for i, flat := range flatAssets {
		assets[i] = flat.TransformToAsset()
	}

	return assets, nil
}
