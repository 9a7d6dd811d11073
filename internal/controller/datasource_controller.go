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

type DataSourceController struct {
	service   service.DataSourceService
	validator *validator.Validate
}

// UpdateConnectionBody is the body of an update-connection call
type UpdateConnectionBody struct {
	ConnectionParameters map[string]string `json:"connection_parameters"`
}

// TestConnectionBody carries the values to probe; omitted ids fall back to the stored ones
type TestConnectionBody struct {
	ConnectionParameters map[string]string `json:"connection_parameters"`
}

func NewDataSourceController(service service.DataSourceService) *DataSourceController {
	return &DataSourceController{
		service:   service,
		validator: validator.New(),
	}
}

// CreateDataSource godoc
// @Summary Create a new data source
// @Tags datasources
// @Accept json
// @Produce json
// @Param request body service.CreateDataSourceRequest true "Create data source request"
// @Success 201 {object} response.StandardResponse{data=model.DataSource}
// @Failure 422 {object} response.StandardResponse
// @Router /api/v1/datasources [post]
func (dc *DataSourceController) CreateDataSource(c *gin.Context) {
	var req service.CreateDataSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Invalid request body", err.Error()))
		return
	}

	if err := dc.validator.Struct(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Validation failed", err.Error()))
		return
	}

	dataSource, err := dc.service.CreateDataSource(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err, utils.ErrCodeDatabaseError)
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse(dataSource, middleware.GetCorrelationID(c)))
}

// GetDataSource godoc
// @Summary Get a data source by ID
// @Tags datasources
// @Produce json
// @Param id path string true "Data source UUID"
// @Success 200 {object} response.StandardResponse{data=model.DataSource}
// @Failure 400 {object} response.StandardResponse
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/datasources/{id} [get]
func (dc *DataSourceController) GetDataSource(c *gin.Context) {
	dataSource, err := dc.service.GetDataSource(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err, utils.ErrCodeDatabaseError)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(dataSource, middleware.GetCorrelationID(c)))
}

// ListDataSources godoc
// @Summary List data sources
// @Tags datasources
// @Produce json
// @Param data_catalog_item_id query string false "Filter by catalog item"
// @Param limit query int false "Maximum number of items to return (default: 20, max: 100)"
// @Param offset query int false "Number of items to skip (default: 0)"
// @Success 200 {object} response.StandardResponse{data=[]model.DataSource}
// @Router /api/v1/datasources [get]
func (dc *DataSourceController) ListDataSources(c *gin.Context) {
	var req service.ListDataSourcesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Invalid query parameters", err.Error()))
		return
	}

	if err := dc.validator.Struct(&req); err != nil {
		sendAppError(c, utils.NewValidationError("Validation failed", err.Error()))
		return
	}

	result, err := dc.service.ListDataSources(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err, utils.ErrCodeDatabaseError)
		return
	}

	c.JSON(http.StatusOK, response.PagedResponse(result.DataSources, response.PageMeta{
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	}, middleware.GetCorrelationID(c)))
}

// UpdateConnection godoc
// @Summary Update the connection parameters of a data source
// @Description Replaces every parameter value, re-runs the connectivity test and stores the outcome
// @Tags datasources
// @Accept json
// @Produce json
// @Param id path string true "Data source UUID"
// @Param request body UpdateConnectionBody true "Parameter values keyed by parameter id"
// @Success 200 {object} response.StandardResponse{data=model.DataSource}
// @Failure 404 {object} response.StandardResponse
// @Failure 422 {object} response.StandardResponse
// @Failure 502 {object} response.StandardResponse
// @Router /api/v1/datasources/{id}/connection [put]
func (dc *DataSourceController) UpdateConnection(c *gin.Context) {
	var body UpdateConnectionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		sendAppError(c, utils.NewValidationError("Invalid request body", err.Error()))
		return
	}

	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		sendAppError(c, utils.NewErrorBuilder(utils.ErrCodeInvalidUUID).WithDetails(id).Build())
		return
	}

	updated, err := dc.service.UpdateConnectionParameters(c.Request.Context(), &service.UpdateConnectionRequest{
		ID:                   id,
		ConnectionParameters: body.ConnectionParameters,
	})
	if err != nil {
		sendError(c, err, utils.ErrCodeConnectivityFailed)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(updated, middleware.GetCorrelationID(c)))
}

// TestConnection godoc
// @Summary Test connection values without storing them
// @Tags datasources
// @Accept json
// @Produce json
// @Param id path string true "Data source UUID"
// @Param request body TestConnectionBody false "Values to probe"
// @Success 200 {object} response.StandardResponse{data=database.TestResult}
// @Router /api/v1/datasources/{id}/test-connection [post]
func (dc *DataSourceController) TestConnection(c *gin.Context) {
	var body TestConnectionBody
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			sendAppError(c, utils.NewValidationError("Invalid request body", err.Error()))
			return
		}
	}

	result, err := dc.service.TestConnection(c.Request.Context(), c.Param("id"), body.ConnectionParameters)
	if err != nil {
		sendError(c, err, utils.ErrCodeConnectivityFailed)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(result, middleware.GetCorrelationID(c)))
}

// DeleteDataSource godoc
// @Summary Delete a data source
// @Tags datasources
// @Param id path string true "Data source UUID"
// @Success 200 {object} response.StandardResponse
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/datasources/{id} [delete]
func (dc *DataSourceController) DeleteDataSource(c *gin.Context) {
	if err := dc.service.DeleteDataSource(c.Request.Context(), c.Param("id")); err != nil {
		sendError(c, err, utils.ErrCodeDatabaseError)
		return
	}

	c.JSON(http.StatusOK, response.SuccessMessageResponse("Data source deleted successfully", middleware.GetCorrelationID(c)))
}

// RegisterRoutes mounts the data source endpoints on group
func (dc *DataSourceController) RegisterRoutes(group *gin.RouterGroup) {
	datasources := group.Group("/datasources")
	{
		datasources.POST("", dc.CreateDataSource)
		datasources.GET("", dc.ListDataSources)
		datasources.GET("/:id", dc.GetDataSource)
		datasources.PUT("/:id/connection", dc.UpdateConnection)
		datasources.POST("/:id/test-connection", dc.TestConnection)
		datasources.DELETE("/:id", dc.DeleteDataSource)
	}
}
