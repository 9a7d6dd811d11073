package repository

import "errors"

// Common repository errors
var (
	ErrDataSourceNotFound  = errors.New("data source not found")
	ErrCatalogItemNotFound = errors.New("data catalog item not found")
)
