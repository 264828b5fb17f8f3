package requests

import (
	"errors"
	"fmt"
	"time"

	"assethub/internal/repository"

	"github.com/doug-martin/goqu/v9"
)

var ErrRequestNotFound = errors.New("request not found")

type RequestsRepository struct {
	r *repository.Repository
}

func NewRequestsRepository(r *repository.Repository) *RequestsRepository {
	return &RequestsRepository{r: r}
}

func (r *RequestsRepository) Create(request *Request) error {
	row := goqu.Record{
		"requested_by":    request.RequestedBy,
		"request_type":    request.RequestType,
		"reason":          request.Reason,
		"status":          request.Status,
		"organization_id": request.OrganizationID,
		"created_at":      request.CreatedAt,
		"updated_at":      request.UpdatedAt,
	}

	if request.AssetID != nil {
		row["asset_id"] = request.AssetID
	}
	if request.AssetCategory != nil {
		row["asset_category"] = request.AssetCategory
	}
	if request.Notes != nil {
		row["notes"] = request.Notes
	}

	query := r.r.GoquDBWrapper.Insert("asset_requests").Rows(row).Returning("id")

	if _, err := query.Executor().ScanVal(&request.ID); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

// GetRow fetches the bare request row without joins. The workflow service
// uses it to decide transitions.
func (r *RequestsRepository) GetRow(id int) (*Request, error) {
	query := r.r.GoquDBWrapper.From("asset_requests").Where(goqu.Ex{"id": id})

	var request Request
	found, err := query.Executor().ScanStruct(&request)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, ErrRequestNotFound
	}

	return &request, nil
}

func (r *RequestsRepository) GetRequest(id int) (*RequestResponse, error) {
	query := r.prepareRequestQuery().Where(goqu.Ex{"ar.id": id})

	var flat FlatRequestResponse
	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, ErrRequestNotFound
	}

	return flat.TransformToRequestResponse(), nil
}

type RequestFilter struct {
	Status         string
	OrganizationID int
	RequestedBy    int
}

func (r *RequestsRepository) GetRequests(filter RequestFilter) ([]*RequestResponse, error) {
	query := r.prepareRequestQuery()

	if filter.Status != "" {
		query = query.Where(goqu.Ex{"ar.status": filter.Status})
	}
	if filter.OrganizationID != 0 {
		query = query.Where(goqu.Ex{"ar.organization_id": filter.OrganizationID})
	}
	if filter.RequestedBy != 0 {
		query = query.Where(goqu.Ex{"ar.requested_by": filter.RequestedBy})
	}
	query = query.Order(goqu.I("ar.created_at").Desc(), goqu.I("ar.id").Desc())

	var flatRequests []FlatRequestResponse
	if err := query.Executor().ScanStructs(&flatRequests); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	responses := make([]*RequestResponse, len(flatRequests))
	for i, flat := range flatRequests {
		responses[i] = flat.TransformToRequestResponse()
	}

	return responses, nil
}

// UpdateDecisionTx writes the approve/reject outcome. Runs inside the
// caller's transaction so the request transition and any asset side effect
// commit together.
func (r *RequestsRepository) UpdateDecisionTx(tx *goqu.TxDatabase, id int, status string, approvedBy int, approvalDate time.Time, notes *string) error {
	row := goqu.Record{
		"status":        status,
		"approved_by":   approvedBy,
		"approval_date": approvalDate,
		"updated_at":    approvalDate,
	}
	if notes != nil {
		row["notes"] = notes
	}

	query := tx.Update("asset_requests").Set(row).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

func (r *RequestsRepository) UpdateCompletion(id int, completionDate time.Time) error {
	query := r.r.GoquDBWrapper.Update("asset_requests").
		Set(goqu.Record{
			"status":          StatusCompleted,
			"completion_date": completionDate,
			"updated_at":      completionDate,
		}).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

func (r *RequestsRepository) prepareRequestQuery() *goqu.SelectDataset {
	return r.r.GoquDBWrapper.Select(
		goqu.I("ar.id"),
		goqu.I("ar.request_type"),
		goqu.I("ar.reason"),
		goqu.I("ar.status"),
		goqu.I("ar.asset_category"),
		goqu.I("ar.requested_by"),
		goqu.I("ru.name").As("requester_name"),
		goqu.I("ru.email").As("requester_email"),
		goqu.I("ar.asset_id"),
		goqu.I("a.name").As("request_asset_name"),
		goqu.I("a.tag").As("request_asset_tag"),
		goqu.I("ar.approved_by"),
		goqu.I("au.name").As("approver_name"),
		goqu.I("au.email").As("approver_email"),
		goqu.I("ar.approval_date"),
		goqu.I("ar.completion_date"),
		goqu.I("ar.notes"),
		goqu.I("ar.organization_id"),
		goqu.I("ar.created_at"),
		goqu.I("ar.updated_at"),
	).
		From(goqu.T("asset_requests").As("ar")).
		LeftJoin(goqu.T("users").As("ru"), goqu.On(goqu.Ex{"ar.requested_by": goqu.I("ru.id")})).
		LeftJoin(goqu.T("assets").As("a"), goqu.On(goqu.Ex{"ar.asset_id": goqu.I("a.id")})).
		LeftJoin(goqu.T("users").As("au"), goqu.On(goqu.Ex{"ar.approved_by": goqu.I("au.id")}))
}
