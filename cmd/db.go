package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dbCmd is the parent command for mismatch store maintenance.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the mismatch log tables",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the mismatch log tables",
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
		if err := repo.Migrate(cmd.Context()); err != nil {
			return err
		}

		s.logger.Info("Mismatch tables migrated", zap.String("driver", s.cfg.Database.Driver))
		return nil
	},
}

var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded reconciliation event",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), "deleting all mismatch records") {
			s.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		repo, err := s.repository()
		if err != nil {
			return err
		}
		if err := repo.ClearRecords(cmd.Context()); err != nil {
			return err
		}

		s.logger.Info("Mismatch records cleared")
		return nil
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the mismatch log tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), "dropping the mismatch tables") {
			s.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		repo, err := s.repository()
		if err != nil {
			return err
		}
		if err := repo.DropTables(cmd.Context()); err != nil {
			return err
		}

		s.logger.Info("Mismatch tables dropped")
		return nil
	},
}

var dbCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the live tables with the expected columns",
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

		report, err := repo.CheckSchema()
		if err != nil {
			return err
		}
		if err := writeOutput(cmd.OutOrStdout(), formatJSON, report); err != nil {
			return err
		}
		if !report.Matched {
			return fmt.Errorf("mismatch tables do not match the expected schema")
		}
		return nil
	},
}

func init() {
	dbClearCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	dbDropCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	dbCmd.AddCommand(dbMigrateCmd, dbClearCmd, dbDropCmd, dbCheckCmd)
	RootCmd.AddCommand(dbCmd)
}
