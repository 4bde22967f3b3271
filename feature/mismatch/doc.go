// Package mismatch stores reconciliation results in SQL tables.
//
// Repository implements reconcile.Recorder: each run writes one row to
// invoice_mismatch_log, one invoice_mismatch_items row per report entry and one
// field row per compared field, in invoice_mismatch_po_fields or
// invoice_mismatch_contract_fields depending on the companion document.
// Values are stored as text; an absent side is NULL.
//
// The repository also owns the table lifecycle (Migrate, ClearRecords,
// DropTables), a schema check against the live database, and read access for
// the /mismatches routes.
package mismatch
