// AngelaMos | 2026
// seed.go

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/heritage-museum/internal/bootstrap"
	"github.com/carterperez-dev/heritage-museum/internal/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load catalog seed files into empty tables",
	Long: `seed reads the temples, weapons and fossils files from the data
directory and inserts them into any catalog table that has no rows.
Tables that already hold data are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // process exits next

		collections := catalog.NewCollections(db.DB, cfg.Storage, slog.Default())
		results := bootstrap.NewLoader(
			cfg.Storage.DataDir,
			slog.Default(),
			bootstrap.CatalogSources(collections, cfg.Storage)...,
		).Run(cmd.Context())

		for _, r := range results {
			cmd.Printf("%-8s %-8s %d\n", r.Kind, r.Outcome, r.Inserted)
		}
		return bootstrap.Failed(results)
	},
}
