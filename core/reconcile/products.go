package reconcile

import (
	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/utils"
)

// ReconcileProducts diffs the line items that appear on both sides, matched by
// exact description. When a description repeats within one document the last
// occurrence wins. Only fields of the invoice-side record are compared, and a
// field the PO record lacks is skipped rather than reported. Entries follow the
// order in which descriptions first appear on the invoice.
func ReconcileProducts(invoice, po []documents.Product) *Report {
	report := NewReport()

	invoiceIndex := indexProducts(invoice, nil)
	poIndex := indexProducts(po, nil)

	seen := make(map[string]struct{}, len(invoiceIndex))
	for _, p := range invoice {
		desc := p.Description
		if _, ok := seen[desc]; ok {
			continue
		}
		seen[desc] = struct{}{}

		poProduct, ok := poIndex[desc]
		if !ok {
			continue
		}

		invoiceFields := invoiceIndex[desc].Fields()
		poFields := poProduct.Fields()

		diffs := make(map[string]FieldDiff)
		for key, iv := range invoiceFields {
			pv, ok := poFields[key]
			if !ok {
				continue
			}
			if !utils.Equal(iv, pv) {
				diffs[key] = FieldDiff{DocType: documents.TypePO, Source: pv, Invoice: iv}
			}
		}

		if len(diffs) > 0 {
			report.Add(&Mismatch{Category: desc, Fields: diffs})
		}
	}

	return report
}

// indexProducts maps description to product, later duplicates overwriting
// earlier ones. normalize, when set, is applied to the description first.
func indexProducts(products []documents.Product, normalize func(string) string) map[string]documents.Product {
	index := make(map[string]documents.Product, len(products))
	for _, p := range products {
		key := p.Description
		if normalize != nil {
			key = normalize(key)
		}
		index[key] = p
	}
	return index
}
