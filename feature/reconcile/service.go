package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/reconcile"
	docstore "invoice-reconciler/feature/documents"

	"go.uber.org/zap"
)

// ErrNoStore is returned when a stored reconciliation is requested without object storage.
var ErrNoStore = errors.New("document storage is not configured")

// StoredRequest names the stored documents of one reconciliation.
// Empty companion names default to the references on the invoice.
type StoredRequest struct {
	Invoice  string `json:"invoice"`
	PO       string `json:"po,omitempty"`
	Contract string `json:"contract,omitempty"`
}

// Service runs reconciliations for the HTTP and CLI surfaces.
type Service struct {
	validator *reconcile.Validator
	store     *docstore.Store
	logger    *zap.Logger
}

// NewService creates a new reconciliation service. store may be nil.
func NewService(validator *reconcile.Validator, store *docstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{validator: validator, store: store, logger: logger}
}

// Reconcile validates an invoice against the given companion documents.
func (s *Service) Reconcile(ctx context.Context, user string, inv *documents.Invoice, po *documents.PO, contract *documents.Contract) (*reconcile.Outcome, error) {
	return s.validator.WithUser(user).ValidateInvoice(ctx, inv, po, contract)
}

// ReconcileStored loads the named documents from storage, reconciles them and
// writes the outcome as a report artifact. A missing companion document is
// reported in the outcome; a missing invoice is an error.
func (s *Service) ReconcileStored(ctx context.Context, user string, req StoredRequest) (*reconcile.Outcome, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	inv, err := s.store.Invoice(ctx, strings.TrimSpace(req.Invoice))
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}

	var contract *documents.Contract
	if name := companion(req.Contract, inv.ContractNumber); name != "" {
		contract, err = s.store.Contract(ctx, name)
		if err = absentAsNil(err); err != nil {
			return nil, fmt.Errorf("failed to load contract %s: %w", name, err)
		}
	}

	var po *documents.PO
	if name := companion(req.PO, inv.PONumber); name != "" {
		po, err = s.store.PO(ctx, name)
		if err = absentAsNil(err); err != nil {
			return nil, fmt.Errorf("failed to load PO %s: %w", name, err)
		}
	}

	outcome, err := s.Reconcile(ctx, user, inv, po, contract)
	if outcome != nil {
		s.writeReport(ctx, inv.InvoiceNumber, outcome)
	}
	return outcome, err
}

func (s *Service) writeReport(ctx context.Context, name string, outcome *reconcile.Outcome) {
	key, err := s.store.PutReport(ctx, name, outcome)
	if err != nil {
		s.logger.Warn("Failed to write reconciliation report", zap.String("invoice", name), zap.Error(err))
		return
	}
	s.logger.Debug("Reconciliation report written", zap.String("key", key))
}

// companion picks the requested name or falls back to the invoice's reference.
func companion(requested, reference string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	if ref := strings.TrimSpace(reference); reconcile.IsReference(ref) {
		return ref
	}
	return ""
}

// absentAsNil clears errors that mean the companion document does not exist.
func absentAsNil(err error) error {
	if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrInvalidName) {
		return nil
	}
	return err
}
