package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "dataflow-backend",
		Short:         "Data source management API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (default ./configs/config.yaml)")

	root.AddCommand(
		newServeCmd(&configFile),
		newMigrateCmd(&configFile),
		newSeedCatalogCmd(&configFile),
	)
	return root
}

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := bootstrap(*configFile)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Serve(cmd.Context())
		},
	}
}

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := bootstrap(*configFile)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Migrate()
		},
	}
}

func newSeedCatalogCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-catalog",
		Short: "Insert or refresh the built-in data catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := bootstrap(*configFile)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Migrate(); err != nil {
				return err
			}
			n, err := app.catalogService.SeedCatalog(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d catalog items\n", n)
			return nil
		},
	}
}
