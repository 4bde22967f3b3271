package reconcile

import (
	"testing"

	"invoice-reconciler/core/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReconcileProducts_IntersectionOnly tests that only descriptions on both sides are diffed.
func TestReconcileProducts_IntersectionOnly(t *testing.T) {
	invoice := []documents.Product{testProduct("Widget", 2, 10), testProduct("Gadget", 1, 4)}
	po := []documents.Product{testProduct("Widget", 3, 10), testProduct("Sprocket", 1, 4)}

	report := ReconcileProducts(invoice, po)

	require.Len(t, report.Mismatches, 1)
	m := report.Mismatches[0]
	assert.Equal(t, "Widget", m.Category)
	assert.Equal(t, 2, m.Fields["COUNT"].Invoice)
	assert.Equal(t, 3, m.Fields["COUNT"].Source)
	assert.Equal(t, documents.TypePO, m.Fields["COUNT"].DocType)
	assert.NotContains(t, report.Categories(), "Gadget")
	assert.NotContains(t, report.Categories(), "Sprocket")
	assert.Zero(t, report.MismatchLen)
}

// TestReconcileProducts_LastDuplicateWins tests that a repeated description resolves to its last record.
func TestReconcileProducts_LastDuplicateWins(t *testing.T) {
	first := testProduct("Widget", 1, 10)
	last := testProduct("Widget", 5, 10)

	t.Run("invoice side", func(t *testing.T) {
		report := ReconcileProducts([]documents.Product{first, last}, []documents.Product{last})
		assert.Empty(t, report.Mismatches)
	})

	t.Run("po side", func(t *testing.T) {
		report := ReconcileProducts([]documents.Product{last}, []documents.Product{first, last})
		assert.Empty(t, report.Mismatches)
	})

	t.Run("earlier record ignored", func(t *testing.T) {
		report := ReconcileProducts([]documents.Product{last, first}, []documents.Product{last})
		require.Len(t, report.Mismatches, 1)
		assert.Equal(t, 1, report.Mismatches[0].Fields["COUNT"].Invoice)
	})
}

// TestReconcileProducts_InvoiceOrder tests that entries follow the invoice's line order.
func TestReconcileProducts_InvoiceOrder(t *testing.T) {
	invoice := []documents.Product{testProduct("Gadget", 1, 1), testProduct("Widget", 1, 1)}
	po := []documents.Product{testProduct("Widget", 2, 1), testProduct("Gadget", 2, 1)}

	report := ReconcileProducts(invoice, po)

	assert.Equal(t, []string{"Gadget", "Widget"}, report.Categories())
}

// TestReconcileProducts_ExactDescription tests that product-field matching is case-sensitive.
func TestReconcileProducts_ExactDescription(t *testing.T) {
	report := ReconcileProducts(
		[]documents.Product{testProduct("widget", 1, 1)},
		[]documents.Product{testProduct("WIDGET", 9, 1)},
	)

	assert.Empty(t, report.Mismatches)
}
