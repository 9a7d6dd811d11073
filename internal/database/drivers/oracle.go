package drivers

import (
	"context"
	"database/sql"

	"dataflow-backend/internal/model"

	go_ora "github.com/sijms/go-ora/v2"
)

// OracleDriver probes Oracle databases through the pure Go go-ora client
type OracleDriver struct{}

func (d *OracleDriver) CatalogItemID() string {
	return model.CatalogItemOracle
}

func (d *OracleDriver) Validate(settings *ConnectionSettings) error {
	return validateFields(settings, "Host", "Port", "User", "Password", "ServiceName")
}

func (d *OracleDriver) Ping(ctx context.Context, settings *ConnectionSettings) error {
	db, err := sql.Open("oracle", d.BuildDSN(settings))
	if err != nil {
		return err
	}
	return pingDB(ctx, db)
}

// BuildDSN builds an oracle:// connection URL
func (d *OracleDriver) BuildDSN(settings *ConnectionSettings) string {
	return go_ora.BuildUrl(settings.Host, settings.Port, settings.ServiceName, settings.User, settings.Password, nil)
}
