package assets

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"assethub/internal/repository"
	custom_error "assethub/pkg/errors"
	"assethub/pkg/metadata"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrAssetNotFound = errors.New("asset not found")

// AssetRequest is the create/update payload.
type AssetRequest struct {
	Tag              string     `json:"tag" binding:"required"`
	Name             string     `json:"name" binding:"required"`
	Category         string     `json:"category" binding:"required"`
	Description      *string    `json:"description"`
	SerialNumber     *string    `json:"serial_number"`
	Model            *string    `json:"model"`
	Manufacturer     *string    `json:"manufacturer"`
	PurchaseDate     time.Time  `json:"purchase_date" binding:"required"`
	PurchasePrice    float64    `json:"purchase_price" binding:"required"`
	DepreciationRate float64    `json:"depreciation_rate"`
	Condition        string     `json:"condition"`
	Location         *string    `json:"location"`
	OrganizationID   int        `json:"organization_id" binding:"required"`
	WarrantyExpiry   *time.Time `json:"warranty_expiry"`
	Notes            *string    `json:"notes"`
}

type ListFilter struct {
	Status         string
	Category       string
	OrganizationID int
	Search         string
	Page           int
	Limit          int
}

type AssetsRepository struct {
	r *repository.Repository
}

func NewAssetsRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{r: r}
}

func (r *AssetsRepository) prepareAssetQuery() *goqu.SelectDataset {
	return r.r.GoquDBWrapper.Select(
		goqu.I("a.id"),
		goqu.I("a.tag"),
		goqu.I("a.name"),
		goqu.I("a.category"),
		goqu.I("a.description"),
		goqu.I("a.serial_number"),
		goqu.I("a.model"),
		goqu.I("a.manufacturer"),
		goqu.I("a.purchase_date"),
		goqu.I("a.purchase_price"),
		goqu.I("a.depreciation_rate"),
		goqu.I("a.status"),
		goqu.I("a.condition"),
		goqu.I("a.location"),
		goqu.I("a.assigned_to"),
		goqu.I("u.name").As("assigned_user_name"),
		goqu.I("u.email").As("assigned_user_email"),
		goqu.I("a.organization_id"),
		goqu.I("a.warranty_expiry"),
		goqu.I("a.notes"),
		goqu.I("a.created_at"),
		goqu.I("a.updated_at"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"a.assigned_to": goqu.I("u.id")}))
}

func (f ListFilter) conditions() []goqu.Expression {
	var conditions []goqu.Expression

	if f.Status != "" {
		conditions = append(conditions, goqu.I("a.status").Eq(f.Status))
	}
	if f.Category != "" {
		conditions = append(conditions, goqu.I("a.category").Eq(f.Category))
	}
	if f.OrganizationID != 0 {
		conditions = append(conditions, goqu.I("a.organization_id").Eq(f.OrganizationID))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("a.name").ILike(pattern),
			goqu.I("a.tag").ILike(pattern),
			goqu.I("a.description").ILike(pattern),
		))
	}

	return conditions
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	query := r.prepareAssetQuery().Where(goqu.Ex{"a.id": id})

	var flat models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, ErrAssetNotFound
	}

	asset := flat.TransformToAsset()
	return &asset, nil
}

// List returns one page of assets plus the unpaginated total for the
// pagination envelope.
func (r *AssetsRepository) List(filter ListFilter) ([]models.Asset, int, error) {
	conditions := filter.conditions()

	countQuery := r.r.GoquDBWrapper.
		From(goqu.T("assets").As("a")).
		Select(goqu.COUNT("*")).
		Where(conditions...)

	var total int
	if _, err := countQuery.Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to execute SQL: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := r.prepareAssetQuery().
		Where(conditions...).
		Order(goqu.I("a.created_at").Desc(), goqu.I("a.id").Desc()).
		Limit(uint(filter.Limit)).
		Offset(uint(offset))

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, 0, fmt.Errorf("unable to execute SQL: %w", err)
	}

	assets := make([]models.Asset, len(flatAssets))
	for i, flat := range flatAssets {
		assets[i] = flat.TransformToAsset()
	}

	return assets, total, nil
}

// Tags are stored uppercased so the unique constraint catches case variants.
func assetRecord(req AssetRequest) goqu.Record {
	row := goqu.Record{
		"tag":               strings.ToUpper(req.Tag),
		"name":              req.Name,
		"category":          req.Category,
		"purchase_date":     req.PurchaseDate,
		"purchase_price":    req.PurchasePrice,
		"depreciation_rate": req.DepreciationRate,
		"condition":         req.Condition,
		"organization_id":   req.OrganizationID,
		"description":       req.Description,
		"serial_number":     req.SerialNumber,
		"model":             req.Model,
		"manufacturer":      req.Manufacturer,
		"location":          req.Location,
		"warranty_expiry":   req.WarrantyExpiry,
		"notes":             req.Notes,
	}

	return row
}

func (r *AssetsRepository) PersistTx(tx *goqu.TxDatabase, req AssetRequest, status metadata.Status) (int, error) {
	row := assetRecord(req)
	row["status"] = status.String()

	query := tx.Insert("assets").Rows(row).Returning("id")

	var assetID int
	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("Duplicate tag for asset", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return assetID, nil
}

func (r *AssetsRepository) Update(id int, req AssetRequest) error {
	row := assetRecord(req)
	row["updated_at"] = time.Now()

	query := r.r.GoquDBWrapper.Update("assets").Set(row).Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate tag for asset", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update asset record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAssetNotFound
	}

	return nil
}

// Delete removes the asset row. Lifecycle log entries are kept: history
// outlives the asset on purpose. Open asset_requests rows still reference
// the asset and surface as a foreign key violation.
func (r *AssetsRepository) Delete(id int) error {
	query := r.r.GoquDBWrapper.Delete("assets").Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Asset", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete asset record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAssetNotFound
	}

	return nil
}

func (r *AssetsRepository) UpdateAssignmentTx(tx *goqu.TxDatabase, id int, userID *int, status metadata.Status) error {
	query := tx.Update("assets").
		Set(goqu.Record{
			"assigned_to": userID,
			"status":      status.String(),
			"updated_at":  time.Now(),
		}).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

func (r *AssetsRepository) UpdateStatusTx(tx *goqu.TxDatabase, id int, status metadata.Status) error {
	query := tx.Update("assets").
		Set(goqu.Record{
			"status":     status.String(),
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

func (r *AssetsRepository) UpdateLocationTx(tx *goqu.TxDatabase, id int, location string) error {
	query := tx.Update("assets").
		Set(goqu.Record{
			"location":   location,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}
