// Package reconcile serves invoice reconciliation over HTTP.
//
// POST /reconcile accepts the parsed documents inline. POST /reconcile/stored
// names documents held by the documents feature; companions left unnamed
// default to the invoice's own po_number and contract_number, and the outcome
// is also written to the report prefix of the bucket. GET /schemas/:type
// returns the JSON Schema the extraction pipeline must produce.
//
// The X-User-ID header overrides the acting user recorded in the mismatch log.
package reconcile
