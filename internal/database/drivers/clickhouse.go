package drivers

import (
	"context"
	"net"
	"strconv"
	"time"

	"dataflow-backend/internal/model"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouseDriver probes ClickHouse servers over the native protocol
type ClickHouseDriver struct {
	DialTimeout time.Duration
}

func (d *ClickHouseDriver) CatalogItemID() string {
	return model.CatalogItemClickHouse
}

func (d *ClickHouseDriver) Validate(settings *ConnectionSettings) error {
	return validateFields(settings, "Host", "Port", "User", "Database")
}

func (d *ClickHouseDriver) Ping(ctx context.Context, settings *ConnectionSettings) error {
	return pingDB(ctx, clickhouse.OpenDB(d.Options(settings)))
}

// Options builds the clickhouse-go options for settings
func (d *ClickHouseDriver) Options(settings *ConnectionSettings) *clickhouse.Options {
	dialTimeout := d.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	return &clickhouse.Options{
		Addr: []string{net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port))},
		Auth: clickhouse.Auth{
			Database: settings.Database,
			Username: settings.User,
			Password: settings.Password,
		},
		DialTimeout: dialTimeout,
	}
}
