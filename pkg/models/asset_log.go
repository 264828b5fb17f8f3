package models

import "time"

// Lifecycle log actions. Entries are append-only facts: never updated,
// never deleted, regardless of what happens to the asset later.
const (
	LogActionCreated        = "created"
	LogActionAssigned       = "assigned"
	LogActionUnassigned     = "unassigned"
	LogActionStatusChange   = "status_change"
	LogActionLocationChange = "location_change"
)

type AssetLog struct {
	ID            int       `json:"id" db:"id"`
	AssetID       int       `json:"asset_id" db:"asset_id"`
	Action        string    `json:"action" db:"action"`
	AssignedTo    *string   `json:"assigned_to,omitempty" db:"assigned_to"`
	AssignedFrom  *string   `json:"assigned_from,omitempty" db:"assigned_from"`
	OldStatus     *string   `json:"old_status,omitempty" db:"old_status"`
	NewStatus     *string   `json:"new_status,omitempty" db:"new_status"`
	OldLocation   *string   `json:"old_location,omitempty" db:"old_location"`
	NewLocation   *string   `json:"new_location,omitempty" db:"new_location"`
	PerformedBy   string    `json:"performed_by" db:"performed_by"`
	PerformedDate time.Time `json:"performed_date" db:"performed_date"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
}
