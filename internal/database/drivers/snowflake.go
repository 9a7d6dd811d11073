package drivers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dataflow-backend/internal/model"

	"github.com/snowflakedb/gosnowflake"
)

// SnowflakeDriver probes Snowflake accounts
type SnowflakeDriver struct {
	LoginTimeout time.Duration
}

func (d *SnowflakeDriver) CatalogItemID() string {
	return model.CatalogItemSnowflake
}

func (d *SnowflakeDriver) Validate(settings *ConnectionSettings) error {
	return validateFields(settings, "User", "Password", "Organization", "Account")
}

func (d *SnowflakeDriver) Ping(ctx context.Context, settings *ConnectionSettings) error {
	dsn, err := d.BuildDSN(settings)
	if err != nil {
		return err
	}
	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return err
	}
	return pingDB(ctx, db)
}

// AccountIdentifier returns the <organization>-<account> identifier
func (d *SnowflakeDriver) AccountIdentifier(settings *ConnectionSettings) string {
	return fmt.Sprintf("%s-%s", settings.Organization, settings.Account)
}

// BuildDSN builds a gosnowflake DSN
func (d *SnowflakeDriver) BuildDSN(settings *ConnectionSettings) (string, error) {
	loginTimeout := d.LoginTimeout
	if loginTimeout <= 0 {
		loginTimeout = 30 * time.Second
	}
	return gosnowflake.DSN(&gosnowflake.Config{
		Account:      d.AccountIdentifier(settings),
		User:         settings.User,
		Password:     settings.Password,
		Database:     settings.Database,
		Warehouse:    settings.Warehouse,
		LoginTimeout: loginTimeout,
	})
}
