package cmd

import (
	"fmt"
	"io"
	"os"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/reconcile"
	feature "invoice-reconciler/feature/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateInvoice  string
	validatePO       string
	validateContract string
	validateStored   bool
	validateFormat   string
	validateUser     string
)

// validateCmd reconciles one invoice from local files or from storage.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Reconcile an invoice against its purchase order or contract",
	Long: `Reconciles an invoice and records the result in the mismatch log.

Examples:
  # Local parsed records
  validate --invoice inv.json --po po.json

  # Documents stored in the bucket; companions default to the invoice references
  validate --stored --invoice INV-1

  # YAML output
  validate --invoice inv.json --contract contract.json --format yaml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateInvoice, "invoice", "", "Invoice file, or stored invoice name with --stored")
	validateCmd.Flags().StringVar(&validatePO, "po", "", "Purchase order file, or stored PO name with --stored")
	validateCmd.Flags().StringVar(&validateContract, "contract", "", "Contract file, or stored contract name with --stored")
	validateCmd.Flags().BoolVar(&validateStored, "stored", false, "Load documents from object storage")
	validateCmd.Flags().StringVar(&validateFormat, "format", formatJSON, "Output format (json, yaml)")
	validateCmd.Flags().StringVar(&validateUser, "user", "", "Acting user recorded in the mismatch log")
	_ = validateCmd.MarkFlagRequired("invoice")

	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := loadSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	repo, err := s.repository()
	if err != nil {
		return err
	}

	var outcome *reconcile.Outcome
	if validateStored {
		store, serr := s.store(ctx)
		if serr != nil {
			return serr
		}
		svc := feature.NewService(s.validator(repo), store, s.logger)
		outcome, err = svc.ReconcileStored(ctx, validateUser, feature.StoredRequest{
			Invoice:  validateInvoice,
			PO:       validatePO,
			Contract: validateContract,
		})
	} else {
		outcome, err = validateFiles(cmd, feature.NewService(s.validator(repo), nil, s.logger))
	}

	if outcome != nil {
		if werr := writeOutput(cmd.OutOrStdout(), validateFormat, outcome); werr != nil {
			return werr
		}
	}
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	s.logger.Info("Invoice reconciled",
		zap.String("invoice", validateInvoice),
		zap.Bool("is_mismatch", outcome.IsMismatch),
		zap.Int("issues", len(outcome.Issues)),
	)
	return nil
}

func validateFiles(cmd *cobra.Command, svc *feature.Service) (*reconcile.Outcome, error) {
	inv, err := decodeFile(validateInvoice, documents.DecodeInvoice)
	if err != nil {
		return nil, err
	}

	var po *documents.PO
	if validatePO != "" {
		if po, err = decodeFile(validatePO, documents.DecodePO); err != nil {
			return nil, err
		}
	}

	var contract *documents.Contract
	if validateContract != "" {
		if contract, err = decodeFile(validateContract, documents.DecodeContract); err != nil {
			return nil, err
		}
	}

	return svc.Reconcile(cmd.Context(), validateUser, inv, po, contract)
}

func decodeFile[T any](path string, decode func(io.Reader) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
