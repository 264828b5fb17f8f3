package reports

import (
	"log"
	"net/http"
	"time"

	"assethub/pkg/api"
	"assethub/pkg/security"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	r *ReportsRepository
}

func NewReportsHandler(r *ReportsRepository) *ReportsHandler {
	return &ReportsHandler{r: r}
}

func (h *ReportsHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/reports/depreciation", h.DepreciationReport)
	}
}

// DepreciationReport returns current book values for every asset in the
// caller's organization.
func (h *ReportsHandler) DepreciationReport(c *gin.Context) {
	organizationID := c.GetInt("organizationID")

	assets, err := h.r.GetAssets(organizationID)
	if err != nil {
		log.Printf("Unable to fetch assets for depreciation report: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to generate depreciation report")
		return
	}

	api.OK(c, http.StatusOK, BuildReport(assets, time.Now()))
}
