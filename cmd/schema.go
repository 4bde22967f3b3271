package cmd

import (
	"invoice-reconciler/core/documents"

	"github.com/spf13/cobra"
)

var schemaFormat string

// schemaCmd prints the JSON Schema of a parsed document type.
var schemaCmd = &cobra.Command{
	Use:       "schema [invoice|po|contract]",
	Short:     "Print the JSON Schema of a parsed document",
	Long:      `Prints the schema the extraction pipeline must produce for a document type.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"invoice", "po", "contract"},
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := documents.ParseDocType(args[0])
		if err != nil {
			return err
		}

		schema, err := documents.Schema(doc)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), schemaFormat, schema)
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaFormat, "format", formatJSON, "Output format (json, yaml)")
	RootCmd.AddCommand(schemaCmd)
}
