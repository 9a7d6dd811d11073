package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DataSource represents a configured connection to an external system
type DataSource struct {
	ID                   string               `gorm:"type:char(36);primaryKey" json:"id"`
	DataCatalogItemID    string               `gorm:"size:64;not null;index" json:"data_catalog_item_id"`
	ConnectionParameters ConnectionParameters `gorm:"type:json;not null" json:"connection_parameters"`
	Connected            bool                 `gorm:"not null;default:false" json:"connected"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// TableName returns the table name for the DataSource model
func (DataSource) TableName() string {
	return "data_sources"
}

// BeforeCreate generates a new UUID if ID is empty
func (ds *DataSource) BeforeCreate(tx *gorm.DB) error {
	if ds.ID == "" {
		ds.ID = uuid.New().String()
	}
	return nil
}
