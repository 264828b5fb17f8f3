package requests

import (
	"errors"
	"time"

	"assethub/internal/repository"
	"assethub/pkg/metadata"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var (
	ErrInvalidType  = errors.New("invalid request type")
	ErrNotPending   = errors.New("request is not pending")
	ErrNotApproved  = errors.New("request is not approved")
	ErrUserNotFound = errors.New("user not found")
)

type RequestStore interface {
	Create(request *Request) error
	GetRow(id int) (*Request, error)
	UpdateDecisionTx(tx *goqu.TxDatabase, id int, status string, approvedBy int, approvalDate time.Time, notes *string) error
	UpdateCompletion(id int, completionDate time.Time) error
}

type AssetWriter interface {
	GetAsset(id int) (*models.Asset, error)
	UpdateAssignmentTx(tx *goqu.TxDatabase, id int, userID *int, status metadata.Status) error
}

type LogAppender interface {
	AppendTx(tx *goqu.TxDatabase, entry *models.AssetLog) error
}

type UserStore interface {
	GetUser(id int) (*models.User, error)
}

type Service struct {
	store  RequestStore
	assets AssetWriter
	logs   LogAppender
	users  UserStore
	db     *goqu.Database
	runTx  func(*goqu.Database, func(tx *goqu.TxDatabase) error) error
}

func NewService(r *repository.Repository, store RequestStore, assets AssetWriter, logs LogAppender, users UserStore) *Service {
	return &Service{
		store:  store,
		assets: assets,
		logs:   logs,
		users:  users,
		db:     r.GoquDBWrapper,
		runTx:  repository.WithTransaction,
	}
}

func (s *Service) CreateRequest(request *Request) error {
	if !IsValidRequestType(request.RequestType) {
		return ErrInvalidType
	}

	request.Status = StatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	return s.store.Create(request)
}

// Approve moves a pending request to approved. For assignment and return
// requests that name an asset, the asset mutation, its log entry and the
// request transition commit in one transaction: either both halves apply
// or neither does.
func (s *Service) Approve(id int, approverID int, approverName string, notes *string) error {
	request, err := s.store.GetRow(id)
	if err != nil {
		return err
	}
	if request.Status != StatusPending {
		return ErrNotPending
	}

	sideEffect, err := s.prepareSideEffect(request, approverName, notes)
	if err != nil {
		return err
	}

	return s.runTx(s.db, func(tx *goqu.TxDatabase) error {
		if sideEffect != nil {
			if err := sideEffect(tx); err != nil {
				return err
			}
		}

		return s.store.UpdateDecisionTx(tx, id, StatusApproved, approverID, time.Now(), notes)
	})
}

// Reject moves a pending request to rejected. No asset is ever touched.
func (s *Service) Reject(id int, approverID int, notes *string) error {
	request, err := s.store.GetRow(id)
	if err != nil {
		return err
	}
	if request.Status != StatusPending {
		return ErrNotPending
	}

	return s.runTx(s.db, func(tx *goqu.TxDatabase) error {
		return s.store.UpdateDecisionTx(tx, id, StatusRejected, approverID, time.Now(), notes)
	})
}

// Complete closes out an approved request. Pending and rejected requests
// cannot be completed; completed is terminal.
func (s *Service) Complete(id int) error {
	request, err := s.store.GetRow(id)
	if err != nil {
		return err
	}
	if request.Status != StatusApproved {
		return ErrNotApproved
	}

	return s.store.UpdateCompletion(id, time.Now())
}

// prepareSideEffect resolves everything the approval side effect needs
// before the transaction starts, and returns the mutation to run inside it.
// Requests without a target asset (e.g. "new" acquisitions) have none.
func (s *Service) prepareSideEffect(request *Request, approverName string, notes *string) (func(tx *goqu.TxDatabase) error, error) {
	if request.AssetID == nil {
		return nil, nil
	}

	switch request.RequestType {
	case RequestTypeAssignment:
		requester, err := s.users.GetUser(request.RequestedBy)
		if err != nil {
			return nil, err
		}
		if requester == nil {
			return nil, ErrUserNotFound
		}

		assetID := *request.AssetID
		requesterID := request.RequestedBy
		return func(tx *goqu.TxDatabase) error {
			if err := s.assets.UpdateAssignmentTx(tx, assetID, &requesterID, metadata.StatusAssigned); err != nil {
				return err
			}

			return s.logs.AppendTx(tx, &models.AssetLog{
				AssetID:       assetID,
				Action:        models.LogActionAssigned,
				AssignedTo:    &requester.Name,
				PerformedBy:   approverName,
				PerformedDate: time.Now(),
				Notes:         notes,
			})
		}, nil

	case RequestTypeReturn:
		asset, err := s.assets.GetAsset(*request.AssetID)
		if err != nil {
			return nil, err
		}
		if asset.AssignedTo == nil {
			// Nothing to return; approve the request without a mutation.
			return nil, nil
		}

		assetID := *request.AssetID
		previousAssignee := asset.AssignedTo.Name
		return func(tx *goqu.TxDatabase) error {
			if err := s.assets.UpdateAssignmentTx(tx, assetID, nil, metadata.StatusAvailable); err != nil {
				return err
			}

			return s.logs.AppendTx(tx, &models.AssetLog{
				AssetID:       assetID,
				Action:        models.LogActionUnassigned,
				AssignedFrom:  &previousAssignee,
				PerformedBy:   approverName,
				PerformedDate: time.Now(),
				Notes:         notes,
			})
		}, nil

	default:
		return nil, nil
	}
}
