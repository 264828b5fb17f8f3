package models

import "time"

const (
	MaintenancePreventive = "preventive"
	MaintenanceCorrective = "corrective"
	MaintenanceInspection = "inspection"
)

type MaintenanceRecord struct {
	ID                  int        `json:"id" db:"id"`
	AssetID             int        `json:"asset_id" db:"asset_id"`
	MaintenanceType     string     `json:"maintenance_type" db:"maintenance_type"`
	Description         string     `json:"description" db:"description"`
	Cost                float64    `json:"cost" db:"cost"`
	PerformedBy         string     `json:"performed_by" db:"performed_by"`
	PerformedDate       time.Time  `json:"performed_date" db:"performed_date"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date,omitempty" db:"next_maintenance_date"`
	Notes               *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}
