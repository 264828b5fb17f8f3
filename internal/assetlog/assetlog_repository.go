// Package assetlog persists the append-only lifecycle history of assets.
package assetlog

import (
	"fmt"

	"assethub/internal/repository"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type Repository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{r: r}
}

func logRecord(entry *models.AssetLog) goqu.Record {
	row := goqu.Record{
		"asset_id":       entry.AssetID,
		"action":         entry.Action,
		"performed_by":   entry.PerformedBy,
		"performed_date": entry.PerformedDate,
	}

	if entry.AssignedTo != nil {
		row["assigned_to"] = entry.AssignedTo
	}
	if entry.AssignedFrom != nil {
		row["assigned_from"] = entry.AssignedFrom
	}
	if entry.OldStatus != nil {
		row["old_status"] = entry.OldStatus
	}
	if entry.NewStatus != nil {
		row["new_status"] = entry.NewStatus
	}
	if entry.OldLocation != nil {
		row["old_location"] = entry.OldLocation
	}
	if entry.NewLocation != nil {
		row["new_location"] = entry.NewLocation
	}
	if entry.Notes != nil {
		row["notes"] = entry.Notes
	}

	return row
}

func (r *Repository) Append(entry *models.AssetLog) error {
	query := r.r.GoquDBWrapper.Insert("asset_logs").Rows(logRecord(entry)).Returning("id")

	if _, err := query.Executor().ScanVal(&entry.ID); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

// AppendTx writes the entry inside the caller's transaction so the log line
// commits together with the asset mutation it describes.
func (r *Repository) AppendTx(tx *goqu.TxDatabase, entry *models.AssetLog) error {
	query := tx.Insert("asset_logs").Rows(logRecord(entry)).Returning("id")

	if _, err := query.Executor().ScanVal(&entry.ID); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

// GetByAsset returns the asset's history most-recent-first. Storage order is
// chronological; reverse order is the presentation convention.
func (r *Repository) GetByAsset(assetID int) ([]models.AssetLog, error) {
	query := r.r.GoquDBWrapper.
		From("asset_logs").
		Where(goqu.Ex{"asset_id": assetID}).
		Order(goqu.I("performed_date").Desc(), goqu.I("id").Desc())

	var entries []models.AssetLog
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return entries, nil
}
