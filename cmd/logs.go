package cmd

import (
	"fmt"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/feature/mismatch"

	"github.com/spf13/cobra"
)

var (
	logsStatus  string
	logsType    string
	logsInvoice string
	logsLimit   int
	logsID      uint
	logsFormat  string
)

// logsCmd browses the mismatch log.
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List recorded reconciliation events",
	Long: `Lists mismatch log entries, newest first, or prints one entry with its fields.

Examples:
  logs --status Error --limit 10
  logs --type contract --format yaml
  logs --id 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		repo, err := s.repository()
		if err != nil {
			return err
		}

		if logsID > 0 {
			log, err := repo.GetLog(cmd.Context(), logsID)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), logsFormat, log)
		}

		filter := mismatch.ListFilter{Status: logsStatus, InvoiceNumber: logsInvoice, Limit: logsLimit}
		if logsType != "" {
			doc, err := documents.ParseDocType(logsType)
			if err != nil {
				return err
			}
			filter.DocType = string(doc)
		}

		logs, err := repo.ListLogs(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}
		return writeOutput(cmd.OutOrStdout(), logsFormat, logs)
	},
}

func init() {
	logsCmd.Flags().StringVar(&logsStatus, "status", "", "Filter by status (Success, Error)")
	logsCmd.Flags().StringVar(&logsType, "type", "", "Filter by compared document type (po, contract)")
	logsCmd.Flags().StringVar(&logsInvoice, "invoice", "", "Filter by invoice number")
	logsCmd.Flags().IntVar(&logsLimit, "limit", mismatch.DefaultListLimit, "Maximum number of entries")
	logsCmd.Flags().UintVar(&logsID, "id", 0, "Print a single entry with its items and fields")
	logsCmd.Flags().StringVar(&logsFormat, "format", formatJSON, "Output format (json, yaml)")

	RootCmd.AddCommand(logsCmd)
}
