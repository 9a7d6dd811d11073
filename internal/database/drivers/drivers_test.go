package drivers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings(t *testing.T) {
	settings, err := DecodeSettings(map[string]string{
		"host":     "db.internal",
		"port":     "5432",
		"user":     "etl",
		"password": "s3cret",
		"database": "warehouse",
		"unknown":  "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", settings.Host)
	assert.Equal(t, 5432, settings.Port)
	assert.Equal(t, "etl", settings.User)
	assert.Equal(t, "warehouse", settings.Database)
}

func TestDecodeSettingsBadPort(t *testing.T) {
	_, err := DecodeSettings(map[string]string{"port": "not-a-port"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSettings))
}

func TestDriverValidate(t *testing.T) {
	full := map[string]string{
		"host":             "localhost",
		"port":             "5432",
		"user":             "u",
		"password":         "p",
		"database":         "d",
		"service_name":     "ORCLPDB1",
		"organization":     "acme",
		"account":          "prod",
		"credentials_json": `{"type":"service_account"}`,
	}

	tests := []struct {
		name    string
		driver  Driver
		drop    string
		wantErr bool
	}{
		{"postgres complete", &PostgresDriver{}, "", false},
		{"postgres without host", &PostgresDriver{}, "host", true},
		{"mysql without database", &MySQLDriver{}, "database", true},
		{"oracle ignores database", &OracleDriver{}, "database", false},
		{"oracle without service", &OracleDriver{}, "service_name", true},
		{"snowflake ignores host", &SnowflakeDriver{}, "host", false},
		{"snowflake without account", &SnowflakeDriver{}, "account", true},
		{"clickhouse without password", &ClickHouseDriver{}, "password", false},
		{"bigquery without key", &BigQueryDriver{}, "credentials_json", true},
		{"bigquery ignores host", &BigQueryDriver{}, "host", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make(map[string]string, len(full))
			for k, v := range full {
				if k != tt.drop {
					values[k] = v
				}
			}
			settings, err := DecodeSettings(values)
			require.NoError(t, err)

			err = tt.driver.Validate(settings)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresBuildDSN(t *testing.T) {
	d := &PostgresDriver{}
	dsn := d.BuildDSN(&ConnectionSettings{
		Host:     "db",
		Port:     5432,
		User:     "etl",
		Password: "p@ss/word",
		Database: "analytics",
	})

	assert.True(t, strings.HasPrefix(dsn, "postgres://etl:"))
	assert.Contains(t, dsn, "@db:5432/analytics")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestMySQLConfig(t *testing.T) {
	cfg := (&MySQLDriver{}).Config(&ConnectionSettings{
		Host: "10.0.0.4", Port: 3307, User: "root", Password: "pw", Database: "shop",
	})

	assert.Equal(t, "10.0.0.4:3307", cfg.Addr)
	assert.Equal(t, "tcp", cfg.Net)
	assert.True(t, strings.HasPrefix(cfg.FormatDSN(), "root:pw@tcp(10.0.0.4:3307)/shop"))
}

func TestSnowflakeAccountIdentifier(t *testing.T) {
	d := &SnowflakeDriver{}
	settings := &ConnectionSettings{Organization: "acme", Account: "prod", User: "u", Password: "p"}

	assert.Equal(t, "acme-prod", d.AccountIdentifier(settings))

	dsn, err := d.BuildDSN(settings)
	require.NoError(t, err)
	assert.Contains(t, dsn, "acme-prod")
}

func TestClickHouseOptions(t *testing.T) {
	opts := (&ClickHouseDriver{}).Options(&ConnectionSettings{Host: "ch", Port: 9000, User: "default", Database: "events"})

	assert.Equal(t, []string{"ch:9000"}, opts.Addr)
	assert.Equal(t, "events", opts.Auth.Database)
	assert.NotZero(t, opts.DialTimeout)
}

func TestBigQueryPingRejectsMalformedKey(t *testing.T) {
	err := (&BigQueryDriver{}).Ping(context.Background(), &ConnectionSettings{CredentialsJSON: "not-json"})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestRDSIAMValidate(t *testing.T) {
	d := &RDSIAMDriver{Engine: RDSEnginePostgres}
	base := ConnectionSettings{Host: "db.abc.eu-west-1.rds.amazonaws.com", Port: 5432, User: "etl", Database: "dw", AWSRegion: "eu-west-1"}

	settings := base
	assert.NoError(t, d.Validate(&settings))

	settings.AWSAccessKeyID = "AKIDEXAMPLE"
	assert.ErrorIs(t, d.Validate(&settings), ErrInvalidSettings)

	settings = base
	settings.AWSRegion = ""
	assert.ErrorIs(t, d.Validate(&settings), ErrInvalidSettings)

	assert.Equal(t, "rds-mysql", (&RDSIAMDriver{Engine: RDSEngineMySQL}).CatalogItemID())
	assert.Equal(t, "rds-postgres", d.CatalogItemID())
}

func TestRDSIAMAuthToken(t *testing.T) {
	d := &RDSIAMDriver{Engine: RDSEngineMySQL}
	token, err := d.AuthToken(context.Background(), &ConnectionSettings{
		Host:               "db.abc.eu-west-1.rds.amazonaws.com",
		Port:               3306,
		User:               "etl",
		AWSRegion:          "eu-west-1",
		AWSAccessKeyID:     "AKIDEXAMPLE",
		AWSSecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token, "db.abc.eu-west-1.rds.amazonaws.com:3306/?"))
	assert.Contains(t, token, "Action=connect")
	assert.Contains(t, token, "DBUser=etl")
	assert.Contains(t, token, "X-Amz-Signature=")
}
