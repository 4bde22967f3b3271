// Package documents defines the typed business records that the reconciler consumes.
//
// Every record (Invoice, PO, Contract) is produced by the extraction pipeline as JSON.
// The JSON keys are kept exactly as the extractor emits them (e.g. PRODUCT_DESCRIPTION,
// UNIT_ITEM_PRICE) so stored documents decode without a mapping layer.
//
// # Validated Input
//
// The reconcile engine assumes well-formed records. Decoding goes through DecodeInvoice,
// DecodePO and DecodeContract, which reject unknown keys and run Validate before the
// record is handed to the engine. Failures are *ValidationError values that match
// ErrInvalidDocument with errors.Is.
//
// # Schemas
//
// Schema returns the JSON Schema for a document type. It is the contract offered to the
// extraction collaborator for structured output.
//
// # Usage
//
//	inv, err := documents.DecodeInvoice(r)
//	if errors.Is(err, documents.ErrInvalidDocument) {
//	    // reject the upload
//	}
package documents
