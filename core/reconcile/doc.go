// Package reconcile compares vendor invoices against their purchase order or
// contract and produces a mismatch report.
//
// A Validator dispatches each invoice to one of two workflows:
//
//   - PO: line items are matched by description and their fields, quantities and
//     unit prices are compared. Seller and buyer addresses are compared field by
//     field.
//   - Contract: the contract number must match, then the invoiced milestone is
//     looked up in the payment schedule and the billed amount is checked against
//     the milestone share of the contract value.
//
// Results are handed to a Recorder, which stores one log entry per run and the
// individual field differences under it.
//
// The document type that labels the source side of every difference travels
// with each call, so one Validator can serve concurrent reconciliations.
package reconcile
