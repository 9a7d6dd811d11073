package database

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"dataflow-backend/internal/database/drivers"
)

// DriverRegistry maps catalog item ids to the driver able to probe them
type DriverRegistry struct {
	drivers map[string]drivers.Driver
	mutex   sync.RWMutex
}

// NewDriverRegistry creates an empty registry
func NewDriverRegistry() *DriverRegistry {
	return &DriverRegistry{
		drivers: make(map[string]drivers.Driver),
	}
}

// NewDefaultDriverRegistry creates a registry with every built-in driver.
// dialTimeout bounds the login/dial phase of drivers that expose one.
func NewDefaultDriverRegistry(dialTimeout time.Duration) *DriverRegistry {
	registry := NewDriverRegistry()
	registry.Register(&drivers.PostgresDriver{})
	registry.Register(&drivers.MySQLDriver{})
	registry.Register(&drivers.OracleDriver{})
	registry.Register(&drivers.SnowflakeDriver{LoginTimeout: dialTimeout})
	registry.Register(&drivers.BigQueryDriver{})
	registry.Register(&drivers.ClickHouseDriver{DialTimeout: dialTimeout})
	registry.Register(&drivers.RDSIAMDriver{Engine: drivers.RDSEnginePostgres})
	registry.Register(&drivers.RDSIAMDriver{Engine: drivers.RDSEngineMySQL})
	return registry
}

// Register adds or replaces the driver for its catalog item
func (dr *DriverRegistry) Register(driver drivers.Driver) {
	dr.mutex.Lock()
	defer dr.mutex.Unlock()
	dr.drivers[driver.CatalogItemID()] = driver
}

// GetDriver returns the driver for a catalog item
func (dr *DriverRegistry) GetDriver(catalogItemID string) (drivers.Driver, error) {
	dr.mutex.RLock()
	driver, exists := dr.drivers[catalogItemID]
	dr.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCatalogItem, catalogItemID)
	}
	return driver, nil
}

// IsSupported checks if a catalog item has a driver
func (dr *DriverRegistry) IsSupported(catalogItemID string) bool {
	dr.mutex.RLock()
	_, exists := dr.drivers[catalogItemID]
	dr.mutex.RUnlock()
	return exists
}

// SupportedCatalogItems returns the sorted ids of all registered catalog items
func (dr *DriverRegistry) SupportedCatalogItems() []string {
	dr.mutex.RLock()
	defer dr.mutex.RUnlock()

	ids := make([]string, 0, len(dr.drivers))
	for id := range dr.drivers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
