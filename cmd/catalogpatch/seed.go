package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/catalogpatch/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and insert the sample products",
	Long: `Creates the products table when missing and inserts the sample
catalog. An already populated database is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		c.Database.Seed = false
		a, err := newApp(cmd.Context(), &c, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		seeded, err := a.seed(cmd.Context())
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "database already populated; nothing to do")
			return nil
		}
		logger.Info("database seeded", zap.Int("products", len(store.SeedProducts())))
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", len(store.SeedProducts()))
		return nil
	},
}
