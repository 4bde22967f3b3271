package reconcile

import (
	"encoding/json"
	"sort"

	"invoice-reconciler/core/documents"
)

// Issue categories used as the top-level key of a mismatch entry.
// Product entries use the product description instead.
const (
	CategorySellerAddress  = "seller_address"
	CategoryBuyerAddress   = "buyer_address"
	CategoryContractNumber = "Contract Number"
	CategoryMilestone      = "Milestone"
	CategoryBilling        = "Billing"
)

// Line issue labels reported by the PO quantity/rate check.
const (
	IssueItemNotFound   = "Item not found in PO"
	IssueQuantityOrRate = "Mismatch in quantity or rate"
)

// InvoiceLabel is the key under which the invoice-side value of a diff is reported.
const InvoiceLabel = "Invoice"

// UnknownVendor is reported when the invoice carries no seller name.
const UnknownVendor = "Unknown Vendor"

// SourceLabel returns the key under which the companion document's value is
// reported: "Contract" for contracts, "PO_value" for purchase orders.
func SourceLabel(doc documents.DocType) string {
	switch doc {
	case documents.TypeContract:
		return "Contract"
	case documents.TypePO:
		return "PO_value"
	default:
		return string(doc)
	}
}

// FieldDiff holds both sides of one compared value.
// DocType selects the label of the source side when serialized.
type FieldDiff struct {
	DocType documents.DocType
	Source  any
	Invoice any
}

// MarshalJSON renders the diff as {<source label>: source, "Invoice": invoice}.
func (d FieldDiff) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		SourceLabel(d.DocType): d.Source,
		InvoiceLabel:           d.Invoice,
	})
}

// Mismatch is one reported discrepancy.
// Most entries carry a field map. The contract-number entry carries a list and
// the milestone entry a single diff instead.
type Mismatch struct {
	Category string
	Fields   map[string]FieldDiff
	Values   []FieldDiff
	Value    *FieldDiff
}

// MarshalJSON renders {"Issue_category": category, category: body}.
func (m Mismatch) MarshalJSON() ([]byte, error) {
	var body any = m.Fields
	switch {
	case m.Value != nil:
		body = m.Value
	case m.Values != nil:
		body = m.Values
	}
	return json.Marshal(map[string]any{
		"Issue_category": m.Category,
		m.Category:       body,
	})
}

// FieldRow is one persisted field of a mismatch entry.
type FieldRow struct {
	Field string
	Diff  FieldDiff
}

// Rows flattens the entry into field rows ordered by field name.
// List-shaped and single-diff entries yield rows named after the category.
func (m Mismatch) Rows() []FieldRow {
	if m.Value != nil {
		return []FieldRow{{Field: m.Category, Diff: *m.Value}}
	}
	if m.Values != nil {
		rows := make([]FieldRow, 0, len(m.Values))
		for _, v := range m.Values {
			rows = append(rows, FieldRow{Field: m.Category, Diff: v})
		}
		return rows
	}

	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]FieldRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, FieldRow{Field: name, Diff: m.Fields[name]})
	}
	return rows
}

// Report is the structured mismatch report handed to the Recorder.
// MismatchLen is not maintained by the engine and stays zero.
type Report struct {
	MismatchLen int        `json:"mismatch_len"`
	Mismatches  []Mismatch `json:"mismatches"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Mismatches: []Mismatch{}}
}

// Add appends m unless it is nil.
func (r *Report) Add(m *Mismatch) {
	if m == nil {
		return
	}
	r.Mismatches = append(r.Mismatches, *m)
}

// Categories lists the issue categories in report order.
func (r *Report) Categories() []string {
	out := make([]string, 0, len(r.Mismatches))
	for _, m := range r.Mismatches {
		out = append(out, m.Category)
	}
	return out
}

// LineDetail carries the quantity/rate figures of a mismatched line.
type LineDetail struct {
	QuantityPO      float64 `json:"Quantity PO"`
	QuantityInvoice float64 `json:"Quantity Invoice"`
	RatePO          float64 `json:"Rate PO"`
	RateInvoice     float64 `json:"Rate Invoice"`
	TotalPO         float64 `json:"Total Amount PO"`
	TotalInvoice    float64 `json:"Total Amount Invoice"`
}

// Issue is a line-level finding returned to the caller.
// Dispatcher failures only set Issue.
type Issue struct {
	Issue string `json:"Issue"`
	Item  string `json:"Item,omitempty"`
	*LineDetail
}

// Outcome is the terminal result of a reconciliation.
// PO reconciliations and dispatcher failures fill Issues; contract
// reconciliations fill Report.
type Outcome struct {
	IsMismatch bool
	VendorName string
	Issues     []Issue
	Report     *Report
}

// MismatchData returns the payload the caller sees as mismatch_data.
func (o *Outcome) MismatchData() any {
	if o.Report != nil {
		return o.Report
	}
	if o.Issues == nil {
		return []Issue{}
	}
	return o.Issues
}

// MarshalJSON renders {"is_mismatch", "mismatch_data", "vendor_name"}.
func (o *Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		IsMismatch   bool   `json:"is_mismatch"`
		MismatchData any    `json:"mismatch_data"`
		VendorName   string `json:"vendor_name"`
	}{o.IsMismatch, o.MismatchData(), o.VendorName})
}
