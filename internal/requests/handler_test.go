package requests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", 7)
	c.Set("name", "Admin One")
	c.Set("role", "organization_admin")
	c.Set("organizationID", 1)
	return c, w
}

func TestApproveRequestConflictsWhenNotPending(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockRequestStore)
	handler := NewRequestHandler(nil, newTestService(store, new(MockAssetWriter), new(MockLogAppender), new(MockUserStore)))

	store.On("GetRow", 3).Return(&Request{ID: 3, Status: StatusRejected}, nil).Once()

	c, w := setupTestContext()
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("POST", "/requests/3/approve", bytes.NewBufferString("{}"))

	handler.ApproveRequest(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	store.AssertExpectations(t)
}

func TestApproveRequestNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockRequestStore)
	handler := NewRequestHandler(nil, newTestService(store, new(MockAssetWriter), new(MockLogAppender), new(MockUserStore)))

	store.On("GetRow", 99).Return(nil, ErrRequestNotFound).Once()

	c, w := setupTestContext()
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("POST", "/requests/99/approve", bytes.NewBufferString("{}"))

	handler.ApproveRequest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	store.AssertExpectations(t)
}

func TestApproveRequestRequesterMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockRequestStore)
	users := new(MockUserStore)
	handler := NewRequestHandler(nil, newTestService(store, new(MockAssetWriter), new(MockLogAppender), users))

	store.On("GetRow", 5).Return(&Request{
		ID:          5,
		RequestedBy: 8,
		AssetID:     intPtr(10),
		RequestType: RequestTypeAssignment,
		Status:      StatusPending,
	}, nil).Once()
	users.On("GetUser", 8).Return(nil, nil).Once()

	c, w := setupTestContext()
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("POST", "/requests/5/approve", bytes.NewBufferString("{}"))

	handler.ApproveRequest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	store.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestCompleteRequestConflictsWhenNotApproved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockRequestStore)
	handler := NewRequestHandler(nil, newTestService(store, new(MockAssetWriter), new(MockLogAppender), new(MockUserStore)))

	store.On("GetRow", 4).Return(&Request{ID: 4, Status: StatusPending}, nil).Once()

	c, w := setupTestContext()
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request = httptest.NewRequest("POST", "/requests/4/complete", nil)

	handler.CompleteRequest(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	store.AssertExpectations(t)
}

func TestCreateRequestRejectsInvalidType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockRequestStore)
	handler := NewRequestHandler(nil, newTestService(store, new(MockAssetWriter), new(MockLogAppender), new(MockUserStore)))

	c, w := setupTestContext()
	body := bytes.NewBufferString(`{"request_type":"upgrade","reason":"Need a faster laptop"}`)
	c.Request = httptest.NewRequest("POST", "/requests", body)

	handler.CreateRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "Create", mock.Anything)
}
