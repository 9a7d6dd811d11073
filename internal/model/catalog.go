package model

import (
	"time"

	"gorm.io/datatypes"
)

// Catalog item identifiers understood by the connectivity tester
const (
	CatalogItemPostgres   = "postgres"
	CatalogItemMySQL      = "mysql"
	CatalogItemOracle     = "oracle"
	CatalogItemSnowflake  = "snowflake"
	CatalogItemBigQuery   = "bigquery"
	CatalogItemClickHouse = "clickhouse"

	CatalogItemRDSPostgres = "rds-postgres"
	CatalogItemRDSMySQL    = "rds-mysql"
)

// DataCatalogItem describes a kind of external system a data source can point to.
// Its ConnectionParameters act as the template for new data sources.
type DataCatalogItem struct {
	ID                   string                              `gorm:"size:64;primaryKey" json:"id"`
	Name                 string                              `gorm:"size:255;not null" json:"name"`
	Logo                 string                              `gorm:"size:255" json:"logo"`
	Category             string                              `gorm:"size:64;index" json:"category"`
	ConnectionParameters ConnectionParameters                `gorm:"type:json;not null" json:"connection_parameters"`
	Metadata             datatypes.JSONType[CatalogMetadata] `json:"metadata"`
	CreatedAt            time.Time                           `json:"created_at"`
	UpdatedAt            time.Time                           `json:"updated_at"`
}

// Authentication modes of catalog items
const (
	AuthModePassword       = "password"
	AuthModeServiceAccount = "service_account"
	AuthModeIAM            = "iam"
)

// CatalogMetadata is descriptive data shown next to a catalog item
type CatalogMetadata struct {
	DocsURL        string `json:"docs_url"`
	AuthMode       string `json:"auth_mode"`
	Driver         string `json:"driver"`
	DefaultSSLMode string `json:"default_sslmode,omitempty"`
}

func catalogMetadata(docsURL, authMode, driver, sslMode string) datatypes.JSONType[CatalogMetadata] {
	return datatypes.NewJSONType(CatalogMetadata{
		DocsURL:        docsURL,
		AuthMode:       authMode,
		Driver:         driver,
		DefaultSSLMode: sslMode,
	})
}

// TableName returns the table name for the DataCatalogItem model
func (DataCatalogItem) TableName() string {
	return "data_catalog_items"
}

func hostParameters(defaultPort string) ConnectionParameters {
	return ConnectionParameters{
		{ID: "host", Name: "Host", Type: ParameterTypeText, Required: true},
		{ID: "port", Name: "Port", Type: ParameterTypeNumber, Required: true, Value: defaultPort},
		{ID: "user", Name: "User", Type: ParameterTypeText, Required: true},
		{ID: "password", Name: "Password", Type: ParameterTypePassword, Required: true},
		{ID: "database", Name: "Database", Type: ParameterTypeText, Required: true},
	}
}

func rdsIAMParameters(defaultPort string) ConnectionParameters {
	return ConnectionParameters{
		{ID: "host", Name: "Endpoint", Type: ParameterTypeText, Required: true},
		{ID: "port", Name: "Port", Type: ParameterTypeNumber, Required: true, Value: defaultPort},
		{ID: "user", Name: "Database user", Type: ParameterTypeText, Required: true},
		{ID: "database", Name: "Database", Type: ParameterTypeText, Required: true},
		{ID: "aws_region", Name: "AWS region", Type: ParameterTypeText, Required: true},
		{ID: "aws_access_key_id", Name: "Access key ID", Type: ParameterTypeText},
		{ID: "aws_secret_access_key", Name: "Secret access key", Type: ParameterTypePassword},
	}
}

// DefaultCatalog returns the built-in catalog seeded on first start
func DefaultCatalog() []DataCatalogItem {
	return []DataCatalogItem{
		{
			ID:                   CatalogItemPostgres,
			Name:                 "PostgreSQL",
			Logo:                 "postgres.svg",
			Category:             "relational",
			ConnectionParameters: hostParameters("5432"),
			Metadata:             catalogMetadata("https://www.postgresql.org/docs/current/libpq-connect.html", AuthModePassword, "github.com/lib/pq", "disable"),
		},
		{
			ID:                   CatalogItemMySQL,
			Name:                 "MySQL",
			Logo:                 "mysql.svg",
			Category:             "relational",
			ConnectionParameters: hostParameters("3306"),
			Metadata:             catalogMetadata("https://dev.mysql.com/doc/refman/8.0/en/connecting.html", AuthModePassword, "github.com/go-sql-driver/mysql", ""),
		},
		{
			ID:       CatalogItemOracle,
			Name:     "Oracle",
			Logo:     "oracle.svg",
			Category: "relational",
			ConnectionParameters: ConnectionParameters{
				{ID: "host", Name: "Host", Type: ParameterTypeText, Required: true},
				{ID: "port", Name: "Port", Type: ParameterTypeNumber, Required: true, Value: "1521"},
				{ID: "user", Name: "User", Type: ParameterTypeText, Required: true},
				{ID: "password", Name: "Password", Type: ParameterTypePassword, Required: true},
				{ID: "service_name", Name: "Service name", Type: ParameterTypeText, Required: true},
			},
			Metadata: catalogMetadata("https://docs.oracle.com/en/database/oracle/oracle-database/19/netag/", AuthModePassword, "github.com/sijms/go-ora/v2", ""),
		},
		{
			ID:                   CatalogItemClickHouse,
			Name:                 "ClickHouse",
			Logo:                 "clickhouse.svg",
			Category:             "olap",
			ConnectionParameters: hostParameters("9000"),
			Metadata:             catalogMetadata("https://clickhouse.com/docs/en/interfaces/tcp", AuthModePassword, "github.com/ClickHouse/clickhouse-go/v2", ""),
		},
		{
			ID:       CatalogItemSnowflake,
			Name:     "Snowflake",
			Logo:     "snowflake.svg",
			Category: "warehouse",
			ConnectionParameters: ConnectionParameters{
				{ID: "user", Name: "User", Type: ParameterTypeText, Required: true},
				{ID: "password", Name: "Password", Type: ParameterTypePassword, Required: true},
				{ID: "organization", Name: "Organization", Type: ParameterTypeText, Required: true},
				{ID: "account", Name: "Account", Type: ParameterTypeText, Required: true},
				{ID: "database", Name: "Database", Type: ParameterTypeText},
				{ID: "warehouse", Name: "Warehouse", Type: ParameterTypeText},
			},
			Metadata: catalogMetadata("https://docs.snowflake.com/en/user-guide/admin-account-identifier", AuthModePassword, "github.com/snowflakedb/gosnowflake", ""),
		},
		{
			ID:       CatalogItemBigQuery,
			Name:     "BigQuery",
			Logo:     "bigquery.svg",
			Category: "warehouse",
			ConnectionParameters: ConnectionParameters{
				{ID: "credentials_json", Name: "Service account JSON", Type: ParameterTypeJSON, Required: true},
			},
			Metadata: catalogMetadata("https://cloud.google.com/bigquery/docs/authentication/service-account-file", AuthModeServiceAccount, "cloud.google.com/go/bigquery", ""),
		},
		{
			ID:                   CatalogItemRDSPostgres,
			Name:                 "Amazon RDS for PostgreSQL (IAM)",
			Logo:                 "rds.svg",
			Category:             "relational",
			ConnectionParameters: rdsIAMParameters("5432"),
			Metadata:             catalogMetadata("https://docs.aws.amazon.com/AmazonRDS/latest/UserGuide/UsingWithRDS.IAMDBAuth.html", AuthModeIAM, "github.com/lib/pq", "require"),
		},
		{
			ID:                   CatalogItemRDSMySQL,
			Name:                 "Amazon RDS for MySQL (IAM)",
			Logo:                 "rds.svg",
			Category:             "relational",
			ConnectionParameters: rdsIAMParameters("3306"),
			Metadata:             catalogMetadata("https://docs.aws.amazon.com/AmazonRDS/latest/UserGuide/UsingWithRDS.IAMDBAuth.html", AuthModeIAM, "github.com/go-sql-driver/mysql", ""),
		},
	}
}
