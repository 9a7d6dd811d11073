package drivers

import (
	"context"
	"database/sql"
	"net"
	"strconv"

	"dataflow-backend/internal/model"

	"github.com/go-sql-driver/mysql"
)

// MySQLDriver probes MySQL/MariaDB servers
type MySQLDriver struct{}

func (d *MySQLDriver) CatalogItemID() string {
	return model.CatalogItemMySQL
}

func (d *MySQLDriver) Validate(settings *ConnectionSettings) error {
	return validateFields(settings, "Host", "Port", "User", "Password", "Database")
}

func (d *MySQLDriver) Ping(ctx context.Context, settings *ConnectionSettings) error {
	connector, err := mysql.NewConnector(d.Config(settings))
	if err != nil {
		return err
	}
	return pingDB(ctx, sql.OpenDB(connector))
}

// Config builds the go-sql-driver configuration for settings
func (d *MySQLDriver) Config(settings *ConnectionSettings) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = settings.User
	cfg.Passwd = settings.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port))
	cfg.DBName = settings.Database
	return cfg
}
