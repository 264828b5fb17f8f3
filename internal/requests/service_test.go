package requests

import (
	"errors"
	"testing"
	"time"

	"assethub/pkg/metadata"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRequestStore struct {
	mock.Mock
}

func (m *MockRequestStore) Create(request *Request) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockRequestStore) GetRow(id int) (*Request, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRequestStore) UpdateDecisionTx(tx *goqu.TxDatabase, id int, status string, approvedBy int, approvalDate time.Time, notes *string) error {
	args := m.Called(tx, id, status, approvedBy, approvalDate, notes)
	return args.Error(0)
}

func (m *MockRequestStore) UpdateCompletion(id int, completionDate time.Time) error {
	args := m.Called(id, completionDate)
	return args.Error(0)
}

type MockAssetWriter struct {
	mock.Mock
}

func (m *MockAssetWriter) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetWriter) UpdateAssignmentTx(tx *goqu.TxDatabase, id int, userID *int, status metadata.Status) error {
	args := m.Called(tx, id, userID, status)
	return args.Error(0)
}

type MockLogAppender struct {
	mock.Mock
}

func (m *MockLogAppender) AppendTx(tx *goqu.TxDatabase, entry *models.AssetLog) error {
	args := m.Called(tx, entry)
	return args.Error(0)
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

func newTestService(store *MockRequestStore, assets *MockAssetWriter, logs *MockLogAppender, users *MockUserStore) *Service {
	return &Service{
		store:  store,
		assets: assets,
		logs:   logs,
		users:  users,
		runTx: func(_ *goqu.Database, fn func(tx *goqu.TxDatabase) error) error {
			return fn(nil)
		},
	}
}

func intPtr(v int) *int { return &v }

func TestCreateRequestRejectsUnknownType(t *testing.T) {
	service := newTestService(new(MockRequestStore), new(MockAssetWriter), new(MockLogAppender), new(MockUserStore))

	err := service.CreateRequest(&Request{RequestType: "upgrade"})

	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCreateRequestStartsPending(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store, new(MockAssetWriter), new(MockLogAppender), new(MockUserStore))

	request := &Request{
		RequestedBy: 5,
		RequestType: RequestTypeNew,
		Reason:      "New hire needs a laptop",
		// A forged status must not survive creation.
		Status: StatusApproved,
	}

	store.On("Create", request).Return(nil).Once()

	err := service.CreateRequest(request)

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, request.Status)
	assert.False(t, request.CreatedAt.IsZero())
	store.AssertExpectations(t)
}

func TestApproveAssignmentAppliesAssetAndDecisionTogether(t *testing.T) {
	store := new(MockRequestStore)
	assets := new(MockAssetWriter)
	logs := new(MockLogAppender)
	users := new(MockUserStore)
	service := newTestService(store, assets, logs, users)

	request := &Request{
		ID:          1,
		RequestedBy: 5,
		AssetID:     intPtr(10),
		RequestType: RequestTypeAssignment,
		Status:      StatusPending,
	}

	store.On("GetRow", 1).Return(request, nil).Once()
	users.On("GetUser", 5).Return(&models.User{ID: 5, Name: "Jamie Rivera"}, nil).Once()
	assets.On("UpdateAssignmentTx", mock.Anything, 10, intPtr(5), metadata.StatusAssigned).Return(nil).Once()
	logs.On("AppendTx", mock.Anything, mock.MatchedBy(func(entry *models.AssetLog) bool {
		return entry.AssetID == 10 &&
			entry.Action == models.LogActionAssigned &&
			entry.AssignedTo != nil && *entry.AssignedTo == "Jamie Rivera"
	})).Return(nil).Once()
	store.On("UpdateDecisionTx", mock.Anything, 1, StatusApproved, 7, mock.Anything, mock.Anything).Return(nil).Once()

	err := service.Approve(1, 7, "Admin One", nil)

	assert.NoError(t, err)
	store.AssertExpectations(t)
	assets.AssertExpectations(t)
	logs.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestApproveAssignmentFailsWhenSideEffectFails(t *testing.T) {
	store := new(MockRequestStore)
	assets := new(MockAssetWriter)
	logs := new(MockLogAppender)
	users := new(MockUserStore)
	service := newTestService(store, assets, logs, users)

	request := &Request{
		ID:          1,
		RequestedBy: 5,
		AssetID:     intPtr(10),
		RequestType: RequestTypeAssignment,
		Status:      StatusPending,
	}

	store.On("GetRow", 1).Return(request, nil).Once()
	users.On("GetUser", 5).Return(&models.User{ID: 5, Name: "Jamie Rivera"}, nil).Once()
	assets.On("UpdateAssignmentTx", mock.Anything, 10, intPtr(5), metadata.StatusAssigned).
		Return(errors.New("asset row locked")).Once()

	err := service.Approve(1, 7, "Admin One", nil)

	assert.Error(t, err)
	// The decision update never runs when the asset mutation fails.
	store.AssertNotCalled(t, "UpdateDecisionTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
	assets.AssertExpectations(t)
}

func TestApproveReturnWithoutAssigneeSkipsAssetMutation(t *testing.T) {
	store := new(MockRequestStore)
	assets := new(MockAssetWriter)
	logs := new(MockLogAppender)
	service := newTestService(store, assets, logs, new(MockUserStore))

	request := &Request{
		ID:          2,
		RequestedBy: 5,
		AssetID:     intPtr(10),
		RequestType: RequestTypeReturn,
		Status:      StatusPending,
	}

	store.On("GetRow", 2).Return(request, nil).Once()
	assets.On("GetAsset", 10).Return(&models.Asset{ID: 10, Status: "available"}, nil).Once()
	store.On("UpdateDecisionTx", mock.Anything, 2, StatusApproved, 7, mock.Anything, mock.Anything).Return(nil).Once()

	err := service.Approve(2, 7, "Admin One", nil)

	assert.NoError(t, err)
	assets.AssertNotCalled(t, "UpdateAssignmentTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	logs.AssertNotCalled(t, "AppendTx", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestApproveRefusesNonPendingRequest(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store, new(MockAssetWriter), new(MockLogAppender), new(MockUserStore))

	for _, status := range []string{StatusApproved, StatusRejected, StatusCompleted} {
		store.On("GetRow", 1).Return(&Request{ID: 1, Status: status}, nil).Once()

		err := service.Approve(1, 7, "Admin One", nil)

		assert.ErrorIs(t, err, ErrNotPending, "status %s", status)
	}
	store.AssertExpectations(t)
}

func TestRejectNeverTouchesAssets(t *testing.T) {
	store := new(MockRequestStore)
	assets := new(MockAssetWriter)
	logs := new(MockLogAppender)
	service := newTestService(store, assets, logs, new(MockUserStore))

	notes := "No budget this quarter"
	request := &Request{
		ID:          3,
		RequestedBy: 5,
		AssetID:     intPtr(10),
		RequestType: RequestTypeAssignment,
		Status:      StatusPending,
	}

	store.On("GetRow", 3).Return(request, nil).Once()
	store.On("UpdateDecisionTx", mock.Anything, 3, StatusRejected, 7, mock.Anything, &notes).Return(nil).Once()

	err := service.Reject(3, 7, &notes)

	assert.NoError(t, err)
	assets.AssertNotCalled(t, "GetAsset", mock.Anything)
	assets.AssertNotCalled(t, "UpdateAssignmentTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	logs.AssertNotCalled(t, "AppendTx", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestCompleteOnlyFromApproved(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store, new(MockAssetWriter), new(MockLogAppender), new(MockUserStore))

	store.On("GetRow", 4).Return(&Request{ID: 4, Status: StatusPending}, nil).Once()
	assert.ErrorIs(t, service.Complete(4), ErrNotApproved)

	store.On("GetRow", 4).Return(&Request{ID: 4, Status: StatusRejected}, nil).Once()
	assert.ErrorIs(t, service.Complete(4), ErrNotApproved)

	store.On("GetRow", 4).Return(&Request{ID: 4, Status: StatusApproved}, nil).Once()
	store.On("UpdateCompletion", 4, mock.Anything).Return(nil).Once()
	assert.NoError(t, service.Complete(4))

	store.On("GetRow", 4).Return(&Request{ID: 4, Status: StatusCompleted}, nil).Once()
	assert.ErrorIs(t, service.Complete(4), ErrNotApproved)

	store.AssertExpectations(t)
}
