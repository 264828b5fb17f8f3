package assets

import (
	"errors"
	"time"

	"assethub/internal/depreciation"
	"assethub/internal/repository"
	"assethub/pkg/metadata"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var (
	ErrAlreadyAssigned = errors.New("asset is already assigned")
	ErrNotAssigned     = errors.New("asset has no assignee")
	ErrUserNotFound    = errors.New("user not found")
)

type AssetStore interface {
	GetAsset(id int) (*models.Asset, error)
	PersistTx(tx *goqu.TxDatabase, req AssetRequest, status metadata.Status) (int, error)
	UpdateAssignmentTx(tx *goqu.TxDatabase, id int, userID *int, status metadata.Status) error
	UpdateStatusTx(tx *goqu.TxDatabase, id int, status metadata.Status) error
	UpdateLocationTx(tx *goqu.TxDatabase, id int, location string) error
}

type LogStore interface {
	AppendTx(tx *goqu.TxDatabase, entry *models.AssetLog) error
	GetByAsset(assetID int) ([]models.AssetLog, error)
}

type UserStore interface {
	GetUser(id int) (*models.User, error)
}

type AssetService struct {
	store AssetStore
	logs  LogStore
	users UserStore
	db    *goqu.Database
	runTx func(*goqu.Database, func(tx *goqu.TxDatabase) error) error
}

func NewAssetService(r *repository.Repository, store AssetStore, logs LogStore, users UserStore) *AssetService {
	return &AssetService{
		store: store,
		logs:  logs,
		users: users,
		db:    r.GoquDBWrapper,
		runTx: repository.WithTransaction,
	}
}

// Create registers an asset and its initial "created" log entry in one
// transaction. A zero depreciation rate falls back to the category default.
func (s *AssetService) Create(req AssetRequest, performedBy string) (*models.Asset, error) {
	if req.DepreciationRate == 0 {
		req.DepreciationRate = depreciation.DefaultRate(req.Category)
	}

	if req.Condition == "" {
		req.Condition = string(metadata.ConditionGood)
	} else if _, err := metadata.NewCondition(req.Condition); err != nil {
		return nil, err
	}

	var assetID int
	err := s.runTx(s.db, func(tx *goqu.TxDatabase) error {
		var err error
		if assetID, err = s.store.PersistTx(tx, req, metadata.StatusAvailable); err != nil {
			return err
		}

		return s.logs.AppendTx(tx, &models.AssetLog{
			AssetID:       assetID,
			Action:        models.LogActionCreated,
			PerformedBy:   performedBy,
			PerformedDate: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetAsset(assetID)
}

func (s *AssetService) Assign(assetID, userID int, performedBy string, notes *string) (*models.Asset, error) {
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}
	if asset.AssignedTo != nil {
		return nil, ErrAlreadyAssigned
	}

	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	err = s.runTx(s.db, func(tx *goqu.TxDatabase) error {
		if err := s.store.UpdateAssignmentTx(tx, assetID, &userID, metadata.StatusAssigned); err != nil {
			return err
		}

		return s.logs.AppendTx(tx, &models.AssetLog{
			AssetID:       assetID,
			Action:        models.LogActionAssigned,
			AssignedTo:    &user.Name,
			PerformedBy:   performedBy,
			PerformedDate: time.Now(),
			Notes:         notes,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetAsset(assetID)
}

func (s *AssetService) Unassign(assetID int, performedBy string, notes *string) (*models.Asset, error) {
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}
	if asset.AssignedTo == nil {
		return nil, ErrNotAssigned
	}

	previousAssignee := asset.AssignedTo.Name

	err = s.runTx(s.db, func(tx *goqu.TxDatabase) error {
		if err := s.store.UpdateAssignmentTx(tx, assetID, nil, metadata.StatusAvailable); err != nil {
			return err
		}

		return s.logs.AppendTx(tx, &models.AssetLog{
			AssetID:       assetID,
			Action:        models.LogActionUnassigned,
			AssignedFrom:  &previousAssignee,
			PerformedBy:   performedBy,
			PerformedDate: time.Now(),
			Notes:         notes,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetAsset(assetID)
}

// ChangeStatus moves the asset to a new status and records the transition.
// History is never pruned: a retired or lost asset keeps every entry.
func (s *AssetService) ChangeStatus(assetID int, newStatus string, performedBy string, notes *string) (*models.Asset, error) {
	status, err := metadata.NewStatus(newStatus)
	if err != nil {
		return nil, err
	}

	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status == newStatus {
		return asset, nil
	}

	oldStatus := asset.Status
	err = s.runTx(s.db, func(tx *goqu.TxDatabase) error {
		if err := s.store.UpdateStatusTx(tx, assetID, status); err != nil {
			return err
		}

		return s.logs.AppendTx(tx, &models.AssetLog{
			AssetID:       assetID,
			Action:        models.LogActionStatusChange,
			OldStatus:     &oldStatus,
			NewStatus:     &newStatus,
			PerformedBy:   performedBy,
			PerformedDate: time.Now(),
			Notes:         notes,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetAsset(assetID)
}

func (s *AssetService) ChangeLocation(assetID int, newLocation string, performedBy string, notes *string) (*models.Asset, error) {
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	oldLocation := asset.Location
	err = s.runTx(s.db, func(tx *goqu.TxDatabase) error {
		if err := s.store.UpdateLocationTx(tx, assetID, newLocation); err != nil {
			return err
		}

		return s.logs.AppendTx(tx, &models.AssetLog{
			AssetID:       assetID,
			Action:        models.LogActionLocationChange,
			OldLocation:   oldLocation,
			NewLocation:   &newLocation,
			PerformedBy:   performedBy,
			PerformedDate: time.Now(),
			Notes:         notes,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetAsset(assetID)
}

func (s *AssetService) Depreciation(assetID int) (*depreciation.Info, error) {
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	info := depreciation.Calculate(
		asset.PurchasePrice,
		asset.PurchaseDate,
		asset.DepreciationRate,
		asset.Category,
		time.Now(),
	)

	return &info, nil
}

func (s *AssetService) Logs(assetID int) ([]models.AssetLog, error) {
	if _, err := s.store.GetAsset(assetID); err != nil {
		return nil, err
	}

	return s.logs.GetByAsset(assetID)
}
