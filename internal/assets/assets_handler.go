package assets

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"assethub/pkg/api"
	custom_error "assethub/pkg/errors"
	"assethub/pkg/models"
	"assethub/pkg/roles"
	"assethub/pkg/security"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type AssetRepository interface {
	GetAsset(id int) (*models.Asset, error)
	List(filter ListFilter) ([]models.Asset, int, error)
	Update(id int, req AssetRequest) error
	Delete(id int) error
}

type AssetHandler struct {
	r       AssetRepository
	service *AssetService
}

func NewAssetHandler(r AssetRepository, service *AssetService) *AssetHandler {
	return &AssetHandler{
		r:       r,
		service: service,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/assets", h.ListAssets)
		protectedRoutes.POST("/assets", security.Authorize(roles.OrganizationAdmin), h.CreateAsset)
		protectedRoutes.GET("/assets/:id", h.GetAsset)
		protectedRoutes.PUT("/assets/:id", security.Authorize(roles.OrganizationAdmin), h.UpdateAsset)
		protectedRoutes.DELETE("/assets/:id", security.Authorize(roles.Admin), h.DeleteAsset)
		protectedRoutes.POST("/assets/:id/assign", security.Authorize(roles.OrganizationAdmin), h.AssignAsset)
		protectedRoutes.POST("/assets/:id/unassign", security.Authorize(roles.OrganizationAdmin), h.UnassignAsset)
		protectedRoutes.PUT("/assets/:id/status", security.Authorize(roles.OrganizationAdmin), h.UpdateStatus)
		protectedRoutes.PUT("/assets/:id/location", security.Authorize(roles.OrganizationAdmin), h.UpdateLocation)
		protectedRoutes.GET("/assets/:id/logs", h.GetLogs)
		protectedRoutes.GET("/assets/:id/depreciation", h.GetDepreciation)
	}
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

type PaginatedAssets struct {
	Assets     []models.Asset `json:"assets"`
	Pagination Pagination     `json:"pagination"`
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}

	filter := ListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if orgID := c.Query("organization_id"); orgID != "" {
		filter.OrganizationID, err = strconv.Atoi(orgID)
		if err != nil {
			api.Error(c, http.StatusBadRequest, "organization_id must be an integer")
			return
		}
	}

	assets, total, err := h.r.List(filter)
	if err != nil {
		log.Printf("Unable to list assets: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}

	api.OK(c, http.StatusOK, PaginatedAssets{
		Assets: assets,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	})
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	asset, err := h.r.GetAsset(id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			api.Error(c, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("Unable to get asset %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch asset")
		return
	}

	api.OK(c, http.StatusOK, asset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	asset, err := h.service.Create(req, security.GetUserNameFromContext(c))
	if err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			api.Error(c, http.StatusConflict, "Asset tag already exists")
			return
		}
		log.Printf("Unable to create asset: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, api.Response{Success: true, Data: asset, Message: "Asset created successfully"})
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.r.Update(id, req); err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		switch {
		case errors.Is(err, ErrAssetNotFound):
			api.Error(c, http.StatusNotFound, "Asset not found")
		case errors.As(err, &uniqueErr):
			api.Error(c, http.StatusConflict, "Asset tag already exists")
		default:
			log.Printf("Unable to update asset %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to update asset")
		}
		return
	}

	asset, err := h.r.GetAsset(id)
	if err != nil {
		log.Printf("Unable to reload asset %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch asset")
		return
	}

	api.OKWithMessage(c, http.StatusOK, asset, "Asset updated successfully")
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	if err := h.r.Delete(id); err != nil {
		var fkErr *custom_error.ForeignKeyViolationError
		switch {
		case errors.Is(err, ErrAssetNotFound):
			api.Error(c, http.StatusNotFound, "Asset not found")
		case errors.As(err, &fkErr):
			api.Error(c, http.StatusConflict, "Asset is referenced by open requests")
		default:
			log.Printf("Unable to delete asset %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to delete asset")
		}
		return
	}

	api.OKWithMessage(c, http.StatusOK, nil, "Asset deleted successfully")
}

func (h *AssetHandler) AssignAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	var req struct {
		UserID int     `json:"user_id" binding:"required"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	asset, err := h.service.Assign(id, req.UserID, security.GetUserNameFromContext(c), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrAssetNotFound):
			api.Error(c, http.StatusNotFound, "Asset not found")
		case errors.Is(err, ErrUserNotFound):
			api.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrAlreadyAssigned):
			api.Error(c, http.StatusConflict, "Asset is already assigned")
		default:
			log.Printf("Unable to assign asset %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to assign asset")
		}
		return
	}

	api.OKWithMessage(c, http.StatusOK, asset, "Asset assigned successfully")
}

func (h *AssetHandler) UnassignAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	var req struct {
		Notes *string `json:"notes"`
	}
	// Body is optional on unassign.
	_ = c.ShouldBindJSON(&req)

	asset, err := h.service.Unassign(id, security.GetUserNameFromContext(c), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrAssetNotFound):
			api.Error(c, http.StatusNotFound, "Asset not found")
		case errors.Is(err, ErrNotAssigned):
			api.Error(c, http.StatusConflict, "Asset has no assignee")
		default:
			log.Printf("Unable to unassign asset %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to unassign asset")
		}
		return
	}

	api.OKWithMessage(c, http.StatusOK, asset, "Asset unassigned successfully")
}

func (h *AssetHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	var req struct {
		Status string  `json:"status" binding:"required"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	asset, err := h.service.ChangeStatus(id, req.Status, security.GetUserNameFromContext(c), req.Notes)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			api.Error(c, http.StatusNotFound, "Asset not found")
			return
		}
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	api.OKWithMessage(c, http.StatusOK, asset, "Asset status updated")
}

func (h *AssetHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	var req struct {
		Location string  `json:"location" binding:"required"`
		Notes    *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	asset, err := h.service.ChangeLocation(id, req.Location, security.GetUserNameFromContext(c), req.Notes)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			api.Error(c, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("Unable to update location for asset %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to update asset location")
		return
	}

	api.OKWithMessage(c, http.StatusOK, asset, "Asset location updated")
}

func (h *AssetHandler) GetLogs(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	entries, err := h.service.Logs(id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			api.Error(c, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("Unable to fetch logs for asset %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch asset logs")
		return
	}

	api.OK(c, http.StatusOK, entries)
}

func (h *AssetHandler) GetDepreciation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	info, err := h.service.Depreciation(id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			api.Error(c, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("Unable to compute depreciation for asset %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to compute depreciation")
		return
	}

	api.OK(c, http.StatusOK, info)
}
