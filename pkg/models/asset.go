package models

import "time"

type Asset struct {
	ID               int          `json:"id"`
	Tag              string       `json:"tag"`
	Name             string       `json:"name"`
	Category         string       `json:"category"`
	Description      *string      `json:"description,omitempty"`
	SerialNumber     *string      `json:"serial_number,omitempty"`
	Model            *string      `json:"model,omitempty"`
	Manufacturer     *string      `json:"manufacturer,omitempty"`
	PurchaseDate     time.Time    `json:"purchase_date"`
	PurchasePrice    float64      `json:"purchase_price"`
	DepreciationRate float64      `json:"depreciation_rate"`
	Status           string       `json:"status"`
	Condition        string       `json:"condition"`
	Location         *string      `json:"location,omitempty"`
	AssignedTo       *UserSummary `json:"assigned_to,omitempty"`
	OrganizationID   int          `json:"organization_id"`
	WarrantyExpiry   *time.Time   `json:"warranty_expiry,omitempty"`
	Notes            *string      `json:"notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// UserSummary is the joined projection of the assignee used in asset payloads.
type UserSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FlatAssetRecord struct {
	ID               int        `db:"id"`
	Tag              string     `db:"tag"`
	Name             string     `db:"name"`
	Category         string     `db:"category"`
	Description      *string    `db:"description"`
	SerialNumber     *string    `db:"serial_number"`
	Model            *string    `db:"model"`
	Manufacturer     *string    `db:"manufacturer"`
	PurchaseDate     time.Time  `db:"purchase_date"`
	PurchasePrice    float64    `db:"purchase_price"`
	DepreciationRate float64    `db:"depreciation_rate"`
	Status           string     `db:"status"`
	Condition        string     `db:"condition"`
	Location         *string    `db:"location"`
	AssignedToID     *int       `db:"assigned_to"`
	AssignedToName   *string    `db:"assigned_user_name"`
	AssignedToEmail  *string    `db:"assigned_user_email"`
	OrganizationID   int        `db:"organization_id"`
	WarrantyExpiry   *time.Time `db:"warranty_expiry"`
	Notes            *string    `db:"notes"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	asset := Asset{
		ID:               fa.ID,
		Tag:              fa.Tag,
		Name:             fa.Name,
		Category:         fa.Category,
		Description:      fa.Description,
		SerialNumber:     fa.SerialNumber,
		Model:            fa.Model,
		Manufacturer:     fa.Manufacturer,
		PurchaseDate:     fa.PurchaseDate,
		PurchasePrice:    fa.PurchasePrice,
		DepreciationRate: fa.DepreciationRate,
		Status:           fa.Status,
		Condition:        fa.Condition,
		Location:         fa.Location,
		OrganizationID:   fa.OrganizationID,
		WarrantyExpiry:   fa.WarrantyExpiry,
		Notes:            fa.Notes,
		CreatedAt:        fa.CreatedAt,
		UpdatedAt:        fa.UpdatedAt,
	}

	if fa.AssignedToID != nil {
		assignee := UserSummary{ID: *fa.AssignedToID}
		if fa.AssignedToName != nil {
			assignee.Name = *fa.AssignedToName
		}
		if fa.AssignedToEmail != nil {
			assignee.Email = *fa.AssignedToEmail
		}
		asset.AssignedTo = &assignee
	}

	return asset
}
