package requests

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"assethub/internal/assets"
	"assethub/pkg/api"
	"assethub/pkg/roles"
	"assethub/pkg/security"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	r       *RequestsRepository
	service *Service
}

func NewRequestHandler(r *RequestsRepository, service *Service) *RequestHandler {
	return &RequestHandler{
		r:       r,
		service: service,
	}
}

func (h *RequestHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/requests", h.ListRequests)
		protectedRoutes.POST("/requests", h.CreateRequest)
		protectedRoutes.GET("/requests/:id", h.GetRequest)
		protectedRoutes.POST("/requests/:id/approve", security.Authorize(roles.OrganizationAdmin), h.ApproveRequest)
		protectedRoutes.POST("/requests/:id/reject", security.Authorize(roles.OrganizationAdmin), h.RejectRequest)
		protectedRoutes.POST("/requests/:id/complete", security.Authorize(roles.OrganizationAdmin), h.CompleteRequest)
	}
}

func (h *RequestHandler) ListRequests(c *gin.Context) {
	filter := RequestFilter{Status: c.Query("status")}

	var err error
	if orgID := c.Query("organization_id"); orgID != "" {
		if filter.OrganizationID, err = strconv.Atoi(orgID); err != nil {
			api.Error(c, http.StatusBadRequest, "organization_id must be an integer")
			return
		}
	}
	if requestedBy := c.Query("requested_by"); requestedBy != "" {
		if filter.RequestedBy, err = strconv.Atoi(requestedBy); err != nil {
			api.Error(c, http.StatusBadRequest, "requested_by must be an integer")
			return
		}
	}

	requests, err := h.r.GetRequests(filter)
	if err != nil {
		log.Printf("Unable to list requests: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}

	api.OK(c, http.StatusOK, requests)
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Request id must be an integer")
		return
	}

	request, err := h.r.GetRequest(id)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			api.Error(c, http.StatusNotFound, "Request not found")
			return
		}
		log.Printf("Unable to get request %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch request")
		return
	}

	api.OK(c, http.StatusOK, request)
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var payload struct {
		AssetID       *int    `json:"asset_id"`
		AssetCategory *string `json:"asset_category"`
		RequestType   string  `json:"request_type" binding:"required"`
		Reason        string  `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, err := security.GetUserIDFromContext(c)
	if err != nil {
		api.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	orgID := c.GetInt("organizationID")

	request := Request{
		RequestedBy:    userID,
		AssetID:        payload.AssetID,
		AssetCategory:  payload.AssetCategory,
		RequestType:    payload.RequestType,
		Reason:         payload.Reason,
		OrganizationID: orgID,
	}

	if err := h.service.CreateRequest(&request); err != nil {
		if errors.Is(err, ErrInvalidType) {
			api.Error(c, http.StatusBadRequest, "Invalid request type")
			return
		}
		log.Printf("Unable to create request: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to create request")
		return
	}

	c.JSON(http.StatusCreated, api.Response{Success: true, Data: request, Message: "Request submitted"})
}

func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Request id must be an integer")
		return
	}

	var payload struct {
		Notes *string `json:"notes"`
	}
	// Notes are optional on approval.
	_ = c.ShouldBindJSON(&payload)

	approverID, err := security.GetUserIDFromContext(c)
	if err != nil {
		api.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	err = h.service.Approve(id, approverID, security.GetUserNameFromContext(c), payload.Notes)
	if err != nil {
		h.respondTransitionError(c, id, err, "approve")
		return
	}

	request, err := h.r.GetRequest(id)
	if err != nil {
		log.Printf("Unable to reload request %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch request")
		return
	}

	api.OKWithMessage(c, http.StatusOK, request, "Request approved")
}

func (h *RequestHandler) RejectRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Request id must be an integer")
		return
	}

	var payload struct {
		Notes *string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&payload)

	approverID, err := security.GetUserIDFromContext(c)
	if err != nil {
		api.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.service.Reject(id, approverID, payload.Notes); err != nil {
		h.respondTransitionError(c, id, err, "reject")
		return
	}

	request, err := h.r.GetRequest(id)
	if err != nil {
		log.Printf("Unable to reload request %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch request")
		return
	}

	api.OKWithMessage(c, http.StatusOK, request, "Request rejected")
}

func (h *RequestHandler) CompleteRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Request id must be an integer")
		return
	}

	if err := h.service.Complete(id); err != nil {
		h.respondTransitionError(c, id, err, "complete")
		return
	}

	request, err := h.r.GetRequest(id)
	if err != nil {
		log.Printf("Unable to reload request %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch request")
		return
	}

	api.OKWithMessage(c, http.StatusOK, request, "Request completed")
}

func (h *RequestHandler) respondTransitionError(c *gin.Context, id int, err error, action string) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		api.Error(c, http.StatusNotFound, "Request not found")
	case errors.Is(err, assets.ErrAssetNotFound):
		api.Error(c, http.StatusNotFound, "Asset not found")
	case errors.Is(err, ErrUserNotFound):
		api.Error(c, http.StatusNotFound, "Requester not found")
	case errors.Is(err, ErrNotPending), errors.Is(err, ErrNotApproved):
		api.Error(c, http.StatusConflict, "Request state does not allow this transition")
	default:
		log.Printf("Unable to %s request %d: %v", action, id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to "+action+" request")
	}
}
