package controller

import (
	"context"
	"net/http"

	"dataflow-backend/internal/database"
	"dataflow-backend/internal/middleware"
	"dataflow-backend/internal/utils"
	"dataflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// ConnectivityProber checks connection values for a catalog item before any
// data source exists
type ConnectivityProber interface {
	Probe(ctx context.Context, catalogItemID string, values map[string]string) (*database.TestResult, error)
	Validate(catalogItemID string, values map[string]string) error
	SupportedCatalogItems() []string
}

// ProbeRequest names a catalog item and the values to check against it
type ProbeRequest struct {
	CatalogItemID        string            `json:"catalog_item_id" binding:"required"`
	ConnectionParameters map[string]string `json:"connection_parameters" binding:"required"`
}

type ConnectivityController struct {
	prober ConnectivityProber
}

func NewConnectivityController(prober ConnectivityProber) *ConnectivityController {
	return &ConnectivityController{prober: prober}
}

// GetDrivers godoc
// @Summary List catalog items with a connectivity driver
// @Tags connectivity
// @Produce json
// @Success 200 {object} response.StandardResponse{data=[]string}
// @Router /api/v1/connectivity/drivers [get]
func (cc *ConnectivityController) GetDrivers(c *gin.Context) {
	c.JSON(http.StatusOK, response.SuccessResponse(cc.prober.SupportedCatalogItems(), middleware.GetCorrelationID(c)))
}

// TestConnection godoc
// @Summary Test connection values for a catalog item
// @Description Probes the external system without creating or updating a data source
// @Tags connectivity
// @Accept json
// @Produce json
// @Param request body ProbeRequest true "Catalog item and connection values"
// @Success 200 {object} response.StandardResponse{data=database.TestResult}
// @Failure 400 {object} response.StandardResponse
// @Failure 422 {object} response.StandardResponse
// @Router /api/v1/connectivity/test [post]
func (cc *ConnectivityController) TestConnection(c *gin.Context) {
	var req ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := cc.prober.Probe(c.Request.Context(), req.CatalogItemID, req.ConnectionParameters)
	if err != nil {
		sendError(c, err, utils.ErrCodeConnectivityFailed)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(result, middleware.GetCorrelationID(c)))
}

// ValidateConnection godoc
// @Summary Validate connection values for a catalog item
// @Description Checks that every value the driver needs is present and well formed, without connecting
// @Tags connectivity
// @Accept json
// @Produce json
// @Param request body ProbeRequest true "Catalog item and connection values"
// @Success 200 {object} response.StandardResponse
// @Failure 422 {object} response.StandardResponse
// @Router /api/v1/connectivity/validate [post]
func (cc *ConnectivityController) ValidateConnection(c *gin.Context) {
	var req ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Invalid request body", err.Error()))
		return
	}

	if err := cc.prober.Validate(req.CatalogItemID, req.ConnectionParameters); err != nil {
		sendError(c, err, utils.ErrCodeInvalidConnection)
		return
	}

	c.JSON(http.StatusOK, response.SuccessMessageResponse("Connection parameters are valid", middleware.GetCorrelationID(c)))
}

// RegisterRoutes mounts the connectivity endpoints on group
func (cc *ConnectivityController) RegisterRoutes(group *gin.RouterGroup) {
	connectivity := group.Group("/connectivity")
	{
		connectivity.GET("/drivers", cc.GetDrivers)
		connectivity.POST("/test", cc.TestConnection)
		connectivity.POST("/validate", cc.ValidateConnection)
	}
}
