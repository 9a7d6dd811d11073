package controller

import (
	"net/http"

	"dataflow-backend/internal/middleware"
	"dataflow-backend/internal/service"
	"dataflow-backend/internal/utils"
	"dataflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CatalogController struct {
	service   service.CatalogService
	validator *validator.Validate
}

func NewCatalogController(service service.CatalogService) *CatalogController {
	return &CatalogController{
		service:   service,
		validator: validator.New(),
	}
}

// ListCatalogItems godoc
// @Summary List data catalog items
// @Tags catalog
// @Produce json
// @Success 200 {object} response.StandardResponse{data=[]model.DataCatalogItem}
// @Router /api/v1/catalog [get]
func (cc *CatalogController) ListCatalogItems(c *gin.Context) {
	items, err := cc.service.ListCatalogItems(c.Request.Context())
	if err != nil {
		sendError(c, err, utils.ErrCodeDatabaseError)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(items, middleware.GetCorrelationID(c)))
}

// GetCatalogItem godoc
// @Summary Get a data catalog item
// @Tags catalog
// @Produce json
// @Param id path string true "Catalog item id"
// @Success 200 {object} response.StandardResponse{data=model.DataCatalogItem}
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/catalog/{id} [get]
func (cc *CatalogController) GetCatalogItem(c *gin.Context) {
	item, err := cc.service.GetCatalogItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err, utils.ErrCodeDatabaseError)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(item, middleware.GetCorrelationID(c)))
}

// SelectCatalogItems godoc
// @Summary Create data sources from catalog items
// @Description Creates one disconnected data source per selected catalog item
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body service.SelectCatalogItemsRequest true "Selected catalog items"
// @Success 201 {object} response.StandardResponse{data=[]model.DataSource}
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/catalog/select [post]
func (cc *CatalogController) SelectCatalogItems(c *gin.Context) {
	var req service.SelectCatalogItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Invalid request body", err.Error()))
		return
	}

	if err := cc.validator.Struct(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Validation failed", err.Error()))
		return
	}

	dataSources, err := cc.service.SelectCatalogItems(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err, utils.ErrCodeDatabaseError)
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse(dataSources, middleware.GetCorrelationID(c)))
}

// RegisterRoutes mounts the catalog endpoints on group
func (cc *CatalogController) RegisterRoutes(group *gin.RouterGroup) {
	catalog := group.Group("/catalog")
	{
		catalog.GET("", cc.ListCatalogItems)
		catalog.POST("/select", cc.SelectCatalogItems)
		catalog.GET("/:id", cc.GetCatalogItem)
	}
}
