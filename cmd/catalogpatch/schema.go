package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/catalogpatch/catalog"
	"github.com/reoring/catalogpatch/server"
)

var openAPIVersion string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the product patch document",
	Long: `Prints the JSON Schema of the merge patch body accepted by
PATCH /api/v{n}/products/{sku}. With --openapi, prints the whole
OpenAPI document of that API version instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc any = catalog.PatchSchema.JSONSchema()
		if openAPIVersion != "" {
			versions, err := server.NewVersions(cfg.API.DefaultVersion, cfg.API.Versions...)
			if err != nil {
				return err
			}
			v, err := versions.Resolve(openAPIVersion)
			if err != nil {
				return err
			}
			doc = server.BuildDocument(v)
		}
		out, err := j.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	schemaCmd.Flags().StringVar(&openAPIVersion, "openapi", "", "Print the OpenAPI document of this API version (e.g. v2)")
}
