package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"invoice-reconciler/core/documents"

	"go.uber.org/zap"
)

// DefaultUser is recorded as the acting user when none is configured.
const DefaultUser = "system"

// ErrMalformedRecord is returned when a required record is missing.
var ErrMalformedRecord = errors.New("malformed record")

// Validator reconciles invoices against their companion documents.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	recorder Recorder
	logger   *zap.Logger
	user     string
	now      func() time.Time
}

// NewValidator creates a validator that persists results through recorder.
func NewValidator(recorder Recorder, logger *zap.Logger, user string) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if user == "" {
		user = DefaultUser
	}
	return &Validator{
		recorder: recorder,
		logger:   logger,
		user:     user,
		now:      time.Now,
	}
}

// WithUser returns a copy of the validator that records user as the acting user.
func (v *Validator) WithUser(user string) *Validator {
	if user == "" {
		return v
	}
	c := *v
	c.user = user
	return &c
}

// ValidateInvoice selects the reconciliation path for an invoice.
// A populated contract_number always takes precedence over po_number.
// A missing companion document or a missing reference is reported in the
// outcome, not returned as an error.
func (v *Validator) ValidateInvoice(ctx context.Context, inv *documents.Invoice, po *documents.PO, contract *documents.Contract) (*Outcome, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice is nil", ErrMalformedRecord)
	}

	vendor := vendorName(inv)
	contractID := strings.TrimSpace(inv.ContractNumber)
	poNumber := strings.TrimSpace(inv.PONumber)

	if IsReference(contractID) {
		if contract == nil {
			return v.reportFailure(ctx, LogEntry{
				InvoiceFilename:      inv.InvoiceNumber,
				ComparedDocumentType: string(documents.TypeContract),
				ComparedDocumentName: contractID,
				Comments:             fmt.Sprintf("Contract file not provided for contract_id: %s", contractID),
			}, vendor)
		}
		return v.ValidateContract(ctx, contract, inv)
	}

	if IsReference(poNumber) {
		if po == nil {
			return v.reportFailure(ctx, LogEntry{
				InvoiceFilename:      inv.InvoiceNumber,
				ComparedDocumentType: string(documents.TypePO),
				ComparedDocumentName: poNumber,
				Comments:             fmt.Sprintf("PO file not provided for po_number: %s", poNumber),
			}, vendor)
		}
		return v.ValidatePO(ctx, po, inv)
	}

	return v.reportFailure(ctx, LogEntry{
		InvoiceFilename: inv.InvoiceNumber,
		Comments:        "Neither valid contract_number nor po_number provided in invoice.",
	}, vendor)
}

// reportFailure logs an error event and turns its comment into the single reported issue.
func (v *Validator) reportFailure(ctx context.Context, entry LogEntry, vendor string) (*Outcome, error) {
	entry.UserID = v.user
	entry.Status = StatusError
	entry.EventDTS = v.now()

	v.logger.Warn("Invoice cannot be reconciled",
		zap.String("invoice", entry.InvoiceFilename),
		zap.String("compared_document_type", entry.ComparedDocumentType),
		zap.String("reason", entry.Comments),
	)

	outcome := &Outcome{
		IsMismatch: true,
		VendorName: vendor,
		Issues:     []Issue{{Issue: entry.Comments}},
	}

	if _, err := v.recorder.InsertLog(ctx, entry); err != nil {
		v.logger.Error("Failed to record mismatch log", zap.Error(err))
		return outcome, fmt.Errorf("failed to record mismatch log: %w", err)
	}
	return outcome, nil
}

// persist writes the log entry and then the report fields under it.
func (v *Validator) persist(ctx context.Context, doc documents.DocType, entry LogEntry, report *Report) error {
	logID, err := v.recorder.InsertLog(ctx, entry)
	if err != nil {
		v.logger.Error("Failed to record mismatch log", zap.Error(err))
		return fmt.Errorf("failed to record mismatch log: %w", err)
	}

	if err := v.recorder.InsertFields(ctx, doc, logID, report); err != nil {
		v.logger.Error("Failed to record mismatch fields", zap.Uint("log_id", logID), zap.Error(err))
		return fmt.Errorf("failed to record mismatch fields for log %d: %w", logID, err)
	}
	return nil
}

// IsReference reports whether a trimmed invoice reference field names a document.
func IsReference(ref string) bool {
	return ref != "" && !strings.EqualFold(ref, "NULL")
}

func vendorName(inv *documents.Invoice) string {
	if inv.ShopAddress.Name == "" {
		return UnknownVendor
	}
	return inv.ShopAddress.Name
}
