package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
	Service     string         `json:"service"`
	Version     string         `json:"version"`
	Database    DatabaseStatus `json:"database"`
	Connections map[string]int `json:"connections,omitempty"`
	Drivers     []string       `json:"drivers"`
}

type DatabaseStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DriverLister reports the catalog items the connectivity tester can probe
type DriverLister interface {
	SupportedCatalogItems() []string
}

type HealthController struct {
	db      *gorm.DB
	drivers DriverLister
	version string
}

func NewHealthController(db *gorm.DB, drivers DriverLister, version string) *HealthController {
	return &HealthController{
		db:      db,
		drivers: drivers,
		version: version,
	}
}

func (hc *HealthController) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "dataflow-backend",
		Version:   hc.version,
		Drivers:   hc.drivers.SupportedCatalogItems(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	sqlDB, err := hc.db.DB()
	if err != nil {
		response.Status = "unhealthy"
		response.Database = DatabaseStatus{
			Status:  "disconnected",
			Message: "Failed to get database instance",
		}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		response.Status = "unhealthy"
		response.Database = DatabaseStatus{
			Status:  "disconnected",
			Message: "Database ping failed: " + err.Error(),
		}
	} else {
		stats := sqlDB.Stats()
		response.Database = DatabaseStatus{
			Status:  "connected",
			Message: "Database connection healthy",
		}
		response.Connections = map[string]int{
			"open":   stats.OpenConnections,
			"in_use": stats.InUse,
			"idle":   stats.Idle,
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
