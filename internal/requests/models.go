package requests

import "time"

const (
	RequestTypeAssignment  = "assignment"
	RequestTypeReturn      = "return"
	RequestTypeMaintenance = "maintenance"
	RequestTypeNew         = "new"
)

// Workflow states: pending -> approved | rejected -> completed.
// Completed is reachable only from approved; approved, rejected and
// completed never transition back.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

func IsValidRequestType(requestType string) bool {
	switch requestType {
	case RequestTypeAssignment, RequestTypeReturn, RequestTypeMaintenance, RequestTypeNew:
		return true
	default:
		return false
	}
}

type Request struct {
	ID             int        `json:"id,omitempty" db:"id"`
	RequestedBy    int        `json:"requested_by" db:"requested_by"`
	AssetID        *int       `json:"asset_id,omitempty" db:"asset_id"`
	AssetCategory  *string    `json:"asset_category,omitempty" db:"asset_category"`
	RequestType    string     `json:"request_type" db:"request_type"`
	Reason         string     `json:"reason" db:"reason"`
	Status         string     `json:"status" db:"status"`
	ApprovedBy     *int       `json:"approved_by,omitempty" db:"approved_by"`
	ApprovalDate   *time.Time `json:"approval_date,omitempty" db:"approval_date"`
	CompletionDate *time.Time `json:"completion_date,omitempty" db:"completion_date"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
	OrganizationID int        `json:"organization_id" db:"organization_id"`
	CreatedAt      time.Time  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at,omitempty" db:"updated_at"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AssetRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

type RequestResponse struct {
	ID              int        `json:"id"`
	RequestType     string     `json:"request_type"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	AssetCategory   *string    `json:"asset_category,omitempty"`
	RequestedByUser *User      `json:"requested_by,omitempty"`
	Asset           *AssetRef  `json:"asset,omitempty"`
	ApprovedByUser  *User      `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	CompletionDate  *time.Time `json:"completion_date,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	OrganizationID  int        `json:"organization_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type FlatRequestResponse struct {
	ID             int        `db:"id"`
	RequestType    string     `db:"request_type"`
	Reason         string     `db:"reason"`
	Status         string     `db:"status"`
	AssetCategory  *string    `db:"asset_category"`
	RequestedByID  *int       `db:"requested_by"`
	RequesterName  *string    `db:"requester_name"`
	RequesterEmail *string    `db:"requester_email"`
	AssetID        *int       `db:"asset_id"`
	AssetName      *string    `db:"request_asset_name"`
	AssetTag       *string    `db:"request_asset_tag"`
	ApprovedByID   *int       `db:"approved_by"`
	ApproverName   *string    `db:"approver_name"`
	ApproverEmail  *string    `db:"approver_email"`
	ApprovalDate   *time.Time `db:"approval_date"`
	CompletionDate *time.Time `db:"completion_date"`
	Notes          *string    `db:"notes"`
	OrganizationID int        `db:"organization_id"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (fr *FlatRequestResponse) TransformToRequestResponse() *RequestResponse {
	res := RequestResponse{
		ID:             fr.ID,
		RequestType:    fr.RequestType,
		Reason:         fr.Reason,
		Status:         fr.Status,
		AssetCategory:  fr.AssetCategory,
		ApprovalDate:   fr.ApprovalDate,
		CompletionDate: fr.CompletionDate,
		Notes:          fr.Notes,
		OrganizationID: fr.OrganizationID,
		CreatedAt:      fr.CreatedAt,
		UpdatedAt:      fr.UpdatedAt,
	}

	if fr.RequestedByID != nil {
		user := User{ID: *fr.RequestedByID}
		if fr.RequesterName != nil {
			user.Name = *fr.RequesterName
		}
		if fr.RequesterEmail != nil {
			user.Email = *fr.RequesterEmail
		}
		res.RequestedByUser = &user
	}

	if fr.AssetID != nil {
		asset := AssetRef{ID: *fr.AssetID}
		if fr.AssetName != nil {
			asset.Name = *fr.AssetName
		}
		if fr.AssetTag != nil {
			asset.Tag = *fr.AssetTag
		}
		res.Asset = &asset
	}

	if fr.ApprovedByID != nil {
		user := User{ID: *fr.ApprovedByID}
		if fr.ApproverName != nil {
			user.Name = *fr.ApproverName
		}
		if fr.ApproverEmail != nil {
			user.Email = *fr.ApproverEmail
		}
		res.ApprovedByUser = &user
	}

	return &res
}
