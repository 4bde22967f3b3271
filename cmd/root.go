package cmd

import (
	"fmt"
	"os"

	"invoice-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "invoice-reconciler",
	Short: "Invoice Reconciliation Service",
	Long: `Invoice Reconciler validates parsed vendor invoices against their purchase
orders or contracts and records every discrepancy in a mismatch log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable timestamps on a terminal.
		cfg := &logger.Config{
			Level:   "debug",
			Format:  "console",
			Service: "invoice-reconciler",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
