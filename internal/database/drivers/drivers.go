package drivers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalidSettings is returned when connection values cannot be decoded or
// do not satisfy the driver's requirements
var ErrInvalidSettings = errors.New("invalid connection settings")

// Driver probes an external system described by a catalog item
type Driver interface {
	// CatalogItemID returns the catalog item this driver serves
	CatalogItemID() string

	// Validate checks that settings carry everything Ping needs
	Validate(settings *ConnectionSettings) error

	// Ping opens a connection, checks it is usable and closes it again.
	// A nil error means the connection works.
	Ping(ctx context.Context, settings *ConnectionSettings) error
}

// ConnectionSettings is the structured form of a data source's id→value map
type ConnectionSettings struct {
	Host            string `mapstructure:"host" validate:"required,hostname_rfc1123|ip"`
	Port            int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	User            string `mapstructure:"user" validate:"required"`
	Password        string `mapstructure:"password" validate:"required"`
	Database        string `mapstructure:"database" validate:"required"`
	SSLMode         string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	ServiceName     string `mapstructure:"service_name" validate:"required"`
	Organization    string `mapstructure:"organization" validate:"required"`
	Account         string `mapstructure:"account" validate:"required"`
	Warehouse       string `mapstructure:"warehouse"`
	CredentialsJSON string `mapstructure:"credentials_json" validate:"required,json"`

	AWSRegion          string `mapstructure:"aws_region" validate:"required"`
	AWSAccessKeyID     string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey string `mapstructure:"aws_secret_access_key"`
}

var validate = validator.New()

// DecodeSettings converts the flat value map of a data source into
// ConnectionSettings. Numeric fields accept their string form; unknown keys
// are ignored.
func DecodeSettings(values map[string]string) (*ConnectionSettings, error) {
	settings := &ConnectionSettings{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           settings,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return settings, nil
}

// validateFields runs the struct tags of the named fields only
func validateFields(settings *ConnectionSettings, fields ...string) error {
	if err := validate.StructPartial(settings, fields...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// pingDB pings db and closes it
func pingDB(ctx context.Context, db *sql.DB) error {
	defer db.Close()
	db.SetMaxOpenConns(1)
	return db.PingContext(ctx)
}
