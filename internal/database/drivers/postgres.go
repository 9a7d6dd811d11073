package drivers

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"strconv"

	"dataflow-backend/internal/model"

	_ "github.com/lib/pq"
)

// PostgresDriver probes PostgreSQL servers through lib/pq
type PostgresDriver struct{}

func (d *PostgresDriver) CatalogItemID() string {
	return model.CatalogItemPostgres
}

func (d *PostgresDriver) Validate(settings *ConnectionSettings) error {
	return validateFields(settings, "Host", "Port", "User", "Password", "Database", "SSLMode")
}

func (d *PostgresDriver) Ping(ctx context.Context, settings *ConnectionSettings) error {
	db, err := sql.Open("postgres", d.BuildDSN(settings))
	if err != nil {
		return err
	}
	return pingDB(ctx, db)
}

// BuildDSN builds a postgres:// connection URL
func (d *PostgresDriver) BuildDSN(settings *ConnectionSettings) string {
	sslMode := settings.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	params := url.Values{}
	params.Set("sslmode", sslMode)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(settings.User, settings.Password),
		Host:     net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port)),
		Path:     "/" + settings.Database,
		RawQuery: params.Encode(),
	}
	return dsn.String()
}
