package drivers

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"dataflow-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
	"github.com/go-sql-driver/mysql"
)

// RDS engines reachable with IAM database authentication
const (
	RDSEnginePostgres = "postgres"
	RDSEngineMySQL    = "mysql"
)

// RDSIAMDriver probes Amazon RDS instances that authenticate with short lived
// IAM tokens instead of a stored password. Static keys are used when both
// aws_access_key_id and aws_secret_access_key are set, otherwise the default
// AWS credential chain.
type RDSIAMDriver struct {
	Engine string
}

func (d *RDSIAMDriver) CatalogItemID() string {
	if d.Engine == RDSEngineMySQL {
		return model.CatalogItemRDSMySQL
	}
	return model.CatalogItemRDSPostgres
}

func (d *RDSIAMDriver) Validate(settings *ConnectionSettings) error {
	if err := validateFields(settings, "Host", "Port", "User", "Database", "AWSRegion"); err != nil {
		return err
	}
	if (settings.AWSAccessKeyID == "") != (settings.AWSSecretAccessKey == "") {
		return fmt.Errorf("%w: aws_access_key_id and aws_secret_access_key must be set together", ErrInvalidSettings)
	}
	return nil
}

func (d *RDSIAMDriver) Ping(ctx context.Context, settings *ConnectionSettings) error {
	token, err := d.AuthToken(ctx, settings)
	if err != nil {
		return err
	}

	withToken := *settings
	withToken.Password = token

	if d.Engine == RDSEngineMySQL {
		cfg := (&MySQLDriver{}).Config(&withToken)
		cfg.AllowCleartextPasswords = true
		cfg.TLSConfig = "true"
		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return err
		}
		return pingDB(ctx, sql.OpenDB(connector))
	}

	if withToken.SSLMode == "" {
		withToken.SSLMode = "require"
	}
	return (&PostgresDriver{}).Ping(ctx, &withToken)
}

// AuthToken signs an RDS connect token for the settings' user and endpoint.
// Signing happens locally; no AWS API is called.
func (d *RDSIAMDriver) AuthToken(ctx context.Context, settings *ConnectionSettings) (string, error) {
	provider, err := d.credentials(ctx, settings)
	if err != nil {
		return "", err
	}

	endpoint := net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port))
	return auth.BuildAuthToken(ctx, endpoint, settings.AWSRegion, settings.User, provider)
}

func (d *RDSIAMDriver) credentials(ctx context.Context, settings *ConnectionSettings) (aws.CredentialsProvider, error) {
	if settings.AWSAccessKeyID != "" {
		return credentials.NewStaticCredentialsProvider(settings.AWSAccessKeyID, settings.AWSSecretAccessKey, ""), nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg.Credentials, nil
}
