package service

import "errors"

var (
	ErrInvalidUUID             = errors.New("invalid UUID format")
	ErrInvalidConnectionValues = errors.New("invalid connection values")
	ErrNoCatalogItemsSelected  = errors.New("no catalog items selected")
)
