// Package models defines the GORM models of the mismatch store.
//
// A Log row records one reconciliation. Each mismatch entry of its report is an
// Item, and each compared field of an entry is a ContractField or POField row
// depending on the companion document type.
package models
