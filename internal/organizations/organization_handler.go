package organizations

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"assethub/pkg/api"
	custom_error "assethub/pkg/errors"
	"assethub/pkg/models"
	"assethub/pkg/roles"
	"assethub/pkg/security"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	r *OrganizationRepository
}

func NewOrganizationHandler(r *OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{r: r}
}

func (h *OrganizationHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/organizations", h.ListOrganizations)
		protectedRoutes.POST("/organizations", security.Authorize(roles.Admin), h.CreateOrganization)
		protectedRoutes.GET("/organizations/:id", h.GetOrganization)
		protectedRoutes.PUT("/organizations/:id", security.Authorize(roles.Admin), h.UpdateOrganization)
		protectedRoutes.DELETE("/organizations/:id", security.Authorize(roles.Admin), h.DeleteOrganization)
	}
}

type organizationRequest struct {
	Name         string  `json:"name" binding:"required"`
	Code         string  `json:"code" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	ContactEmail string  `json:"contact_email" binding:"required,email"`
	ContactPhone string  `json:"contact_phone" binding:"required"`
	Website      *string `json:"website"`
}

func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.r.GetOrganizations()
	if err != nil {
		log.Printf("Unable to list organizations: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch organizations")
		return
	}

	api.OK(c, http.StatusOK, orgs)
}

func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Organization id must be an integer")
		return
	}

	org, err := h.r.GetOrganization(id)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			api.Error(c, http.StatusNotFound, "Organization not found")
			return
		}
		log.Printf("Unable to get organization %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch organization")
		return
	}

	api.OK(c, http.StatusOK, org)
}

func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	org := models.Organization{
		Name:         req.Name,
		Code:         req.Code,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Website:      req.Website,
	}

	if err := h.r.Create(&org); err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			api.Error(c, http.StatusConflict, "Organization name or email already exists")
			return
		}
		log.Printf("Unable to create organization: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, api.Response{Success: true, Data: org, Message: "Organization created successfully"})
}

func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Organization id must be an integer")
		return
	}

	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	org := models.Organization{
		Name:         req.Name,
		Code:         req.Code,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Website:      req.Website,
	}

	if err := h.r.Update(id, &org); err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		switch {
		case errors.Is(err, ErrOrganizationNotFound):
			api.Error(c, http.StatusNotFound, "Organization not found")
		case errors.As(err, &uniqueErr):
			api.Error(c, http.StatusConflict, "Organization name or email already exists")
		default:
			log.Printf("Unable to update organization %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to update organization")
		}
		return
	}

	api.OKWithMessage(c, http.StatusOK, nil, "Organization updated successfully")
}

func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "Organization id must be an integer")
		return
	}

	if err := h.r.Delete(id); err != nil {
		var fkErr *custom_error.ForeignKeyViolationError
		switch {
		case errors.Is(err, ErrOrganizationNotFound):
			api.Error(c, http.StatusNotFound, "Organization not found")
		case errors.As(err, &fkErr):
			api.Error(c, http.StatusConflict, "Organization still owns assets, users or requests")
		default:
			log.Printf("Unable to delete organization %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to delete organization")
		}
		return
	}

	api.OKWithMessage(c, http.StatusOK, nil, "Organization deleted successfully")
}
