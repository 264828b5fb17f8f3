package assets

import (
	"testing"
	"time"

	"assethub/pkg/metadata"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetStore) PersistTx(tx *goqu.TxDatabase, req AssetRequest, status metadata.Status) (int, error) {
	args := m.Called(tx, req, status)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetStore) UpdateAssignmentTx(tx *goqu.TxDatabase, id int, userID *int, status metadata.Status) error {
	args := m.Called(tx, id, userID, status)
	return args.Error(0)
}

func (m *MockAssetStore) UpdateStatusTx(tx *goqu.TxDatabase, id int, status metadata.Status) error {
	args := m.Called(tx, id, status)
	return args.Error(0)
}

func (m *MockAssetStore) UpdateLocationTx(tx *goqu.TxDatabase, id int, location string) error {
	args := m.Called(tx, id, location)
	return args.Error(0)
}

type MockLogStore struct {
	mock.Mock
}

func (m *MockLogStore) AppendTx(tx *goqu.TxDatabase, entry *models.AssetLog) error {
	args := m.Called(tx, entry)
	return args.Error(0)
}

func (m *MockLogStore) GetByAsset(assetID int) ([]models.AssetLog, error) {
	args := m.Called(assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssetLog), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestService(store *MockAssetStore, logs *MockLogStore, users *MockUserStore) *AssetService {
	return &AssetService{
		store: store,
		logs:  logs,
		users: users,
		runTx: func(_ *goqu.Database, fn func(tx *goqu.TxDatabase) error) error {
			return fn(nil)
		},
	}
}

func intPtr(v int) *int { return &v }

func TestCreateDefaultsDepreciationRateAndLogsCreation(t *testing.T) {
	store := new(MockAssetStore)
	logs := new(MockLogStore)
	service := newTestService(store, logs, new(MockUserStore))

	req := AssetRequest{
		Tag:            "AST-0001",
		Name:           "Workstation",
		Category:       "Electronics",
		PurchaseDate:   time.Now().AddDate(0, -6, 0),
		PurchasePrice:  1200,
		OrganizationID: 1,
	}

	created := &models.Asset{ID: 42, Tag: "AST-0001", Status: "available"}

	store.On("PersistTx", mock.Anything, mock.MatchedBy(func(persisted AssetRequest) bool {
		return persisted.DepreciationRate == 20 && persisted.Condition == "good"
	}), metadata.StatusAvailable).Return(42, nil).Once()
	logs.On("AppendTx", mock.Anything, mock.MatchedBy(func(entry *models.AssetLog) bool {
		return entry.AssetID == 42 && entry.Action == models.LogActionCreated && entry.PerformedBy == "Admin One"
	})).Return(nil).Once()
	store.On("GetAsset", 42).Return(created, nil).Once()

	asset, err := service.Create(req, "Admin One")

	assert.NoError(t, err)
	assert.Equal(t, created, asset)
	store.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestCreateRejectsUnknownCondition(t *testing.T) {
	service := newTestService(new(MockAssetStore), new(MockLogStore), new(MockUserStore))

	_, err := service.Create(AssetRequest{Category: "Furniture", Condition: "mint"}, "Admin One")

	assert.Error(t, err)
}

func TestAssignRefusesAlreadyAssignedAsset(t *testing.T) {
	store := new(MockAssetStore)
	service := newTestService(store, new(MockLogStore), new(MockUserStore))

	store.On("GetAsset", 10).Return(&models.Asset{
		ID:         10,
		Status:     "assigned",
		AssignedTo: &models.UserSummary{ID: 3, Name: "Jamie Rivera"},
	}, nil).Once()

	_, err := service.Assign(10, 5, "Admin One", nil)

	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	store.AssertExpectations(t)
}

func TestAssignRefusesUnknownUser(t *testing.T) {
	store := new(MockAssetStore)
	users := new(MockUserStore)
	service := newTestService(store, new(MockLogStore), users)

	store.On("GetAsset", 10).Return(&models.Asset{ID: 10, Status: "available"}, nil).Once()
	users.On("GetUser", 99).Return(nil, nil).Once()

	_, err := service.Assign(10, 99, "Admin One", nil)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAssignWritesAssignmentAndLogEntry(t *testing.T) {
	store := new(MockAssetStore)
	logs := new(MockLogStore)
	users := new(MockUserStore)
	service := newTestService(store, logs, users)

	available := &models.Asset{ID: 10, Status: "available"}
	assigned := &models.Asset{ID: 10, Status: "assigned", AssignedTo: &models.UserSummary{ID: 5, Name: "Jamie Rivera"}}

	store.On("GetAsset", 10).Return(available, nil).Once()
	users.On("GetUser", 5).Return(&models.User{ID: 5, Name: "Jamie Rivera"}, nil).Once()
	store.On("UpdateAssignmentTx", mock.Anything, 10, intPtr(5), metadata.StatusAssigned).Return(nil).Once()
	logs.On("AppendTx", mock.Anything, mock.MatchedBy(func(entry *models.AssetLog) bool {
		return entry.Action == models.LogActionAssigned &&
			entry.AssignedTo != nil && *entry.AssignedTo == "Jamie Rivera"
	})).Return(nil).Once()
	store.On("GetAsset", 10).Return(assigned, nil).Once()

	asset, err := service.Assign(10, 5, "Admin One", nil)

	assert.NoError(t, err)
	assert.Equal(t, assigned, asset)
	store.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestUnassignRecordsPreviousAssignee(t *testing.T) {
	store := new(MockAssetStore)
	logs := new(MockLogStore)
	service := newTestService(store, logs, new(MockUserStore))

	assigned := &models.Asset{ID: 10, Status: "assigned", AssignedTo: &models.UserSummary{ID: 5, Name: "Jamie Rivera"}}
	released := &models.Asset{ID: 10, Status: "available"}

	store.On("GetAsset", 10).Return(assigned, nil).Once()
	store.On("UpdateAssignmentTx", mock.Anything, 10, (*int)(nil), metadata.StatusAvailable).Return(nil).Once()
	logs.On("AppendTx", mock.Anything, mock.MatchedBy(func(entry *models.AssetLog) bool {
		return entry.Action == models.LogActionUnassigned &&
			entry.AssignedFrom != nil && *entry.AssignedFrom == "Jamie Rivera"
	})).Return(nil).Once()
	store.On("GetAsset", 10).Return(released, nil).Once()

	asset, err := service.Unassign(10, "Admin One", nil)

	assert.NoError(t, err)
	assert.Equal(t, released, asset)
	store.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestUnassignRefusesUnassignedAsset(t *testing.T) {
	store := new(MockAssetStore)
	service := newTestService(store, new(MockLogStore), new(MockUserStore))

	store.On("GetAsset", 10).Return(&models.Asset{ID: 10, Status: "available"}, nil).Once()

	_, err := service.Unassign(10, "Admin One", nil)

	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	service := newTestService(new(MockAssetStore), new(MockLogStore), new(MockUserStore))

	_, err := service.ChangeStatus(10, "broken", "Admin One", nil)

	assert.Error(t, err)
}

func TestChangeStatusSameStatusIsNoOp(t *testing.T) {
	store := new(MockAssetStore)
	logs := new(MockLogStore)
	service := newTestService(store, logs, new(MockUserStore))

	current := &models.Asset{ID: 10, Status: "maintenance"}
	store.On("GetAsset", 10).Return(current, nil).Once()

	asset, err := service.ChangeStatus(10, "maintenance", "Admin One", nil)

	assert.NoError(t, err)
	assert.Equal(t, current, asset)
	store.AssertNotCalled(t, "UpdateStatusTx", mock.Anything, mock.Anything, mock.Anything)
	logs.AssertNotCalled(t, "AppendTx", mock.Anything, mock.Anything)
}

func TestChangeStatusLogsTransition(t *testing.T) {
	store := new(MockAssetStore)
	logs := new(MockLogStore)
	service := newTestService(store, logs, new(MockUserStore))

	current := &models.Asset{ID: 10, Status: "available"}
	retired := &models.Asset{ID: 10, Status: "retired"}

	store.On("GetAsset", 10).Return(current, nil).Once()
	store.On("UpdateStatusTx", mock.Anything, 10, metadata.StatusRetired).Return(nil).Once()
	logs.On("AppendTx", mock.Anything, mock.MatchedBy(func(entry *models.AssetLog) bool {
		return entry.Action == models.LogActionStatusChange &&
			entry.OldStatus != nil && *entry.OldStatus == "available" &&
			entry.NewStatus != nil && *entry.NewStatus == "retired"
	})).Return(nil).Once()
	store.On("GetAsset", 10).Return(retired, nil).Once()

	asset, err := service.ChangeStatus(10, "retired", "Admin One", nil)

	assert.NoError(t, err)
	assert.Equal(t, retired, asset)
	store.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestChangeLocationLogsOldAndNewLocation(t *testing.T) {
	store := new(MockAssetStore)
	logs := new(MockLogStore)
	service := newTestService(store, logs, new(MockUserStore))

	office := "HQ / Floor 2"
	current := &models.Asset{ID: 10, Status: "available", Location: &office}
	moved := &models.Asset{ID: 10, Status: "available"}

	store.On("GetAsset", 10).Return(current, nil).Once()
	store.On("UpdateLocationTx", mock.Anything, 10, "Warehouse B").Return(nil).Once()
	logs.On("AppendTx", mock.Anything, mock.MatchedBy(func(entry *models.AssetLog) bool {
		return entry.Action == models.LogActionLocationChange &&
			entry.OldLocation != nil && *entry.OldLocation == office &&
			entry.NewLocation != nil && *entry.NewLocation == "Warehouse B"
	})).Return(nil).Once()
	store.On("GetAsset", 10).Return(moved, nil).Once()

	_, err := service.ChangeLocation(10, "Warehouse B", "Admin One", nil)

	assert.NoError(t, err)
	store.AssertExpectations(t)
	logs.AssertExpectations(t)
}
