package organizations

import (
	"errors"
	"fmt"
	"time"

	"assethub/internal/repository"
	custom_error "assethub/pkg/errors"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrOrganizationNotFound = errors.New("organization not found")

type OrganizationRepository struct {
	r *repository.Repository
}

func NewOrganizationRepository(r *repository.Repository) *OrganizationRepository {
	return &OrganizationRepository{r: r}
}

func (r *OrganizationRepository) GetOrganization(id int) (*models.Organization, error) {
	query := r.r.GoquDBWrapper.From("organizations").Where(goqu.Ex{"id": id})

	var org models.Organization
	found, err := query.Executor().ScanStruct(&org)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, ErrOrganizationNotFound
	}

	return &org, nil
}

func (r *OrganizationRepository) GetOrganizations() ([]models.Organization, error) {
	query := r.r.GoquDBWrapper.From("organizations").Order(goqu.I("name").Asc())

	var orgs []models.Organization
	if err := query.Executor().ScanStructs(&orgs); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return orgs, nil
}

func organizationRecord(org *models.Organization) goqu.Record {
	return goqu.Record{
		"name":          org.Name,
		"code":          org.Code,
		"address":       org.Address,
		"contact_email": org.ContactEmail,
		"contact_phone": org.ContactPhone,
		"website":       org.Website,
	}
}

func (r *OrganizationRepository) Create(org *models.Organization) error {
	query := r.r.GoquDBWrapper.Insert("organizations").Rows(organizationRecord(org)).Returning("id")

	if _, err := query.Executor().ScanVal(&org.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate name or email for organization", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert organization record: %w", err)
	}

	return nil
}

func (r *OrganizationRepository) Update(id int, org *models.Organization) error {
	row := organizationRecord(org)
	row["updated_at"] = time.Now()

	query := r.r.GoquDBWrapper.Update("organizations").Set(row).Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate name or email for organization", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update organization record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}

// Delete removes the organization row only. Assets, users and requests are
// not cascaded.
func (r *OrganizationRepository) Delete(id int) error {
	query := r.r.GoquDBWrapper.Delete("organizations").Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Organization", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete organization record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}
