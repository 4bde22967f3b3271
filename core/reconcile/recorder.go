package reconcile

import (
	"context"
	"time"

	"invoice-reconciler/core/documents"
)

// Log statuses and outcomes written to the mismatch log.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"

	OutcomeMismatch   = "Mismatch"
	OutcomeNoMismatch = "No Mismatch"
)

// LogEntry is the flat event record written once per reconciliation.
type LogEntry struct {
	UserID               string
	InvoiceFilename      string
	InvoiceNumber        string
	ComparedDocumentType string
	ComparedDocumentName string
	MismatchCount        int
	EventDTS             time.Time
	Status               string
	Outcome              string
	Comments             string
	VendorName           string
}

// Recorder persists reconciliation results.
type Recorder interface {
	// InsertLog stores an event record and returns its identifier.
	InsertLog(ctx context.Context, entry LogEntry) (uint, error)

	// InsertFields stores one item per mismatch entry and one field row per compared
	// field under the given log. The document type selects the storage shape
	// (contract_value vs po_value).
	InsertFields(ctx context.Context, doc documents.DocType, logID uint, report *Report) error
}
