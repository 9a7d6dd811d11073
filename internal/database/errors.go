package database

import "errors"

var (
	ErrUnsupportedCatalogItem = errors.New("no connectivity driver for catalog item")
)
