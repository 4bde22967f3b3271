package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixLayout bool

// storageCmd is the parent command for bucket maintenance.
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect the document bucket",
}

// storageCheckCmd checks that every document folder exists in the bucket.
var storageCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check and fix the bucket folder layout",
	Long:  `Checks that the bucket holds a folder per document type and a report folder. Use --fix to create missing folders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := loadSession()
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		store, err := s.store(ctx)
		if err != nil {
			return err
		}

		report, err := store.CheckLayout(ctx)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd.OutOrStdout(), formatJSON, report); err != nil {
			return err
		}

		if len(report.Missing) == 0 {
			s.logger.Info("Bucket layout is complete", zap.String("bucket", report.Bucket))
			return nil
		}
		if !fixLayout {
			s.logger.Warn("Bucket layout is incomplete", zap.Strings("missing", report.Missing))
			return nil
		}
		return store.FixLayout(ctx, report.Missing, s.logger)
	},
}

func init() {
	storageCheckCmd.Flags().BoolVar(&fixLayout, "fix", false, "Create missing folders")

	storageCmd.AddCommand(storageCheckCmd)
	RootCmd.AddCommand(storageCmd)
}
