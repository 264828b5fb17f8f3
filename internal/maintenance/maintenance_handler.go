package maintenance

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"assethub/internal/assets"
	"assethub/pkg/api"
	"assethub/pkg/models"
	"assethub/pkg/roles"
	"assethub/pkg/security"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	r      *MaintenanceRepository
	assets *assets.AssetsRepository
}

func NewMaintenanceHandler(r *MaintenanceRepository, assetsRepo *assets.AssetsRepository) *MaintenanceHandler {
	return &MaintenanceHandler{
		r:      r,
		assets: assetsRepo,
	}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/assets/:id/maintenance", h.ListMaintenance)
		protectedRoutes.POST("/assets/:id/maintenance", security.Authorize(roles.OrganizationAdmin), h.CreateMaintenance)
	}
}

func (h *MaintenanceHandler) ListMaintenance(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	if _, err := h.assets.GetAsset(assetID); err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			api.Error(c, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("Unable to verify asset %d: %v", assetID, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch maintenance records")
		return
	}

	records, err := h.r.GetByAsset(assetID)
	if err != nil {
		log.Printf("Unable to fetch maintenance for asset %d: %v", assetID, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch maintenance records")
		return
	}

	api.OK(c, http.StatusOK, records)
}

func (h *MaintenanceHandler) CreateMaintenance(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Asset id must be an integer")
		return
	}

	var req struct {
		MaintenanceType     string     `json:"maintenance_type" binding:"required"`
		Description         string     `json:"description" binding:"required"`
		Cost                float64    `json:"cost"`
		PerformedDate       *time.Time `json:"performed_date"`
		NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
		Notes               *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	switch req.MaintenanceType {
	case models.MaintenancePreventive, models.MaintenanceCorrective, models.MaintenanceInspection:
	default:
		api.Error(c, http.StatusBadRequest, "Invalid maintenance type")
		return
	}

	if _, err := h.assets.GetAsset(assetID); err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			api.Error(c, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("Unable to verify asset %d: %v", assetID, err)
		api.Error(c, http.StatusInternalServerError, "Failed to create maintenance record")
		return
	}

	performedDate := time.Now()
	if req.PerformedDate != nil {
		performedDate = *req.PerformedDate
	}

	record := models.MaintenanceRecord{
		AssetID:             assetID,
		MaintenanceType:     req.MaintenanceType,
		Description:         req.Description,
		Cost:                req.Cost,
		PerformedBy:         security.GetUserNameFromContext(c),
		PerformedDate:       performedDate,
		NextMaintenanceDate: req.NextMaintenanceDate,
		Notes:               req.Notes,
	}

	if err := h.r.Create(&record); err != nil {
		log.Printf("Unable to create maintenance record for asset %d: %v", assetID, err)
		api.Error(c, http.StatusInternalServerError, "Failed to create maintenance record")
		return
	}

	c.JSON(http.StatusCreated, api.Response{Success: true, Data: record, Message: "Maintenance record created"})
}
