package maintenance

import (
	"fmt"

	"assethub/internal/repository"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type MaintenanceRepository struct {
	r *repository.Repository
}

func NewMaintenanceRepository(r *repository.Repository) *MaintenanceRepository {
	return &MaintenanceRepository{r: r}
}

func (r *MaintenanceRepository) Create(record *models.MaintenanceRecord) error {
	row := goqu.Record{
		"asset_id":         record.AssetID,
		"maintenance_type": record.MaintenanceType,
		"description":      record.Description,
		"cost":             record.Cost,
		"performed_by":     record.PerformedBy,
		"performed_date":   record.PerformedDate,
	}

	if record.NextMaintenanceDate != nil {
		row["next_maintenance_date"] = record.NextMaintenanceDate
	}
	if record.Notes != nil {
		row["notes"] = record.Notes
	}

	query := r.r.GoquDBWrapper.Insert("maintenance_records").Rows(row).Returning("id")

	if _, err := query.Executor().ScanVal(&record.ID); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

func (r *MaintenanceRepository) GetByAsset(assetID int) ([]models.MaintenanceRecord, error) {
	query := r.r.GoquDBWrapper.
		From("maintenance_records").
		Where(goqu.Ex{"asset_id": assetID}).
		Order(goqu.I("performed_date").Desc())

	var records []models.MaintenanceRecord
	if err := query.Executor().ScanStructs(&records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return records, nil
}
