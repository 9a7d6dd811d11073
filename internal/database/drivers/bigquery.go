package drivers

import (
	"context"
	"errors"
	"fmt"

	"dataflow-backend/internal/model"

	"cloud.google.com/go/bigquery"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BigQueryDriver probes BigQuery with a service account key
type BigQueryDriver struct{}

func (d *BigQueryDriver) CatalogItemID() string {
	return model.CatalogItemBigQuery
}

func (d *BigQueryDriver) Validate(settings *ConnectionSettings) error {
	return validateFields(settings, "CredentialsJSON")
}

// Ping lists at most one dataset of the key's project
func (d *BigQueryDriver) Ping(ctx context.Context, settings *ConnectionSettings) error {
	creds, err := google.CredentialsFromJSON(ctx, []byte(settings.CredentialsJSON), bigquery.Scope)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if creds.ProjectID == "" {
		return fmt.Errorf("%w: credentials carry no project_id", ErrInvalidSettings)
	}

	client, err := bigquery.NewClient(ctx, creds.ProjectID, option.WithCredentials(creds))
	if err != nil {
		return err
	}
	defer client.Close()

	it := client.Datasets(ctx)
	it.PageInfo().MaxSize = 1
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}
