package reconcile

import (
	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/utils"
)

// CompareFields diffs two flat records over the union of their keys.
// A key present on only one side is a mismatch, with the absent side reported as nil.
// The source side is labelled according to doc. It returns nil when nothing differs.
func CompareFields(doc documents.DocType, category string, source, invoice map[string]any) *Mismatch {
	fields := make(map[string]FieldDiff)

	for key := range unionKeys(source, invoice) {
		sv, inSource := source[key]
		iv, inInvoice := invoice[key]
		if inSource != inInvoice || !utils.Equal(sv, iv) {
			fields[key] = FieldDiff{DocType: doc, Source: sv, Invoice: iv}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &Mismatch{Category: category, Fields: fields}
}

func unionKeys(a, b map[string]any) map[string]struct{} {
	union := make(map[string]struct{}, len(a)+len(b))
	for key := range a {
		union[key] = struct{}{}
	}
	for key := range b {
		union[key] = struct{}{}
	}
	return union
}
