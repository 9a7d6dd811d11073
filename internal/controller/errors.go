package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dataflow-backend/internal/database"
	"dataflow-backend/internal/database/drivers"
	"dataflow-backend/internal/middleware"
	"dataflow-backend/internal/model"
	"dataflow-backend/internal/repository"
	"dataflow-backend/internal/service"
	"dataflow-backend/internal/utils"
	"dataflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// toAppError maps service and repository errors onto API error codes
func toAppError(err error, fallback string) *utils.AppError {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	code := fallback
	switch {
	case errors.Is(err, service.ErrInvalidUUID):
		code = utils.ErrCodeInvalidUUID
	case errors.Is(err, repository.ErrDataSourceNotFound):
		code = utils.ErrCodeDataSourceNotFound
	case errors.Is(err, repository.ErrCatalogItemNotFound):
		code = utils.ErrCodeCatalogItemNotFound
	case errors.Is(err, model.ErrMissingConnectionParameter):
		code = utils.ErrCodeMissingParameter
	case errors.Is(err, service.ErrInvalidConnectionValues),
		errors.Is(err, drivers.ErrInvalidSettings):
		code = utils.ErrCodeInvalidConnection
	case errors.Is(err, service.ErrNoCatalogItemsSelected):
		code = utils.ErrCodeValidationFailed
	case errors.Is(err, database.ErrUnsupportedCatalogItem):
		code = utils.ErrCodeUnsupportedCatalogItem
	case errors.Is(err, context.DeadlineExceeded):
		code = utils.ErrCodeServiceUnavailable
	}

	return utils.NewErrorBuilder(code).
		WithDetails(err.Error()).
		WithCause(err).
		Build()
}

func sendAppError(c *gin.Context, appErr *utils.AppError) {
	_ = c.Error(appErr)
	c.JSON(utils.GetErrorStatus(appErr), response.ErrorResponseFromAppError(appErr, middleware.GetCorrelationID(c)))
}

func sendError(c *gin.Context, err error, fallback string) {
	sendAppError(c, toAppError(err, fallback))
}

// RouteNotFound answers requests that match no registered route
func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, response.NotFoundResponse(
		"No route for "+c.Request.Method+" "+c.Request.URL.Path,
		middleware.GetCorrelationID(c),
	))
}

// RecoverPanic is the gin.CustomRecovery handler. The panic value is logged
// and never returned to the client.
func RecoverPanic(c *gin.Context, recovered any) {
	slog.ErrorContext(c.Request.Context(), "panic recovered",
		slog.String("path", c.Request.URL.Path),
		slog.Any("panic", recovered),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalServerErrorResponse(middleware.GetCorrelationID(c)))
}
