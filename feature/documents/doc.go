// Package documents stores parsed business documents in object storage.
//
// The extraction pipeline writes each record as JSON to
// <prefix>/<Invoice|PO|Contract>/<name>.json. Store loads, validates and
// caches these records so that a reconciliation can be requested by document
// name. Reports of stored reconciliations are written under the report prefix.
//
// The package also exposes the stored documents over HTTP under /documents.
package documents
