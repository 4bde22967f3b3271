package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"invoice-reconciler/core/documents"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ValidatePO reconciles an invoice against a purchase order.
//
// Address and product-field differences are persisted as the mismatch report.
// The returned verdict and issues come only from the quantity/rate check.
func (v *Validator) ValidatePO(ctx context.Context, po *documents.PO, inv *documents.Invoice) (*Outcome, error) {
	if po == nil || inv == nil {
		return nil, fmt.Errorf("%w: purchase order and invoice are required", ErrMalformedRecord)
	}
	const doc = documents.TypePO

	report := ReconcileProducts(inv.Products, po.Products)
	report.Add(CompareFields(doc, CategorySellerAddress, po.ShopAddress.Fields(), inv.ShopAddress.Fields()))
	report.Add(CompareFields(doc, CategoryBuyerAddress, po.BillingAddress.Fields(), inv.BillingAddress.Fields()))

	issues := checkQuantities(po.Products, inv.Products)
	vendor := vendorName(inv)

	entry := LogEntry{
		UserID:               v.user,
		InvoiceFilename:      inv.InvoiceNumber,
		InvoiceNumber:        inv.InvoiceNumber,
		ComparedDocumentType: string(doc),
		ComparedDocumentName: po.PONumber,
		MismatchCount:        len(issues),
		EventDTS:             v.now(),
		Status:               StatusSuccess,
		VendorName:           vendor,
	}

	isMismatch := len(issues) > 0
	if isMismatch {
		entry.Outcome = OutcomeMismatch
		entry.Comments = fmt.Sprintf("%d mismatches found for %s. Details: %s", len(issues), inv.InvoiceNumber, issueDetails(issues))
	} else {
		entry.Outcome = OutcomeNoMismatch
		entry.Comments = fmt.Sprintf("No mismatches found for %s.", inv.InvoiceNumber)
	}

	v.logger.Info("Reconciled invoice against PO",
		zap.String("invoice", inv.InvoiceNumber),
		zap.String("po", po.PONumber),
		zap.Int("line_issues", len(issues)),
		zap.Int("report_entries", len(report.Mismatches)),
	)

	outcome := &Outcome{
		IsMismatch: isMismatch,
		VendorName: vendor,
		Issues:     issues,
	}
	if err := v.persist(ctx, doc, entry, report); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// checkQuantities matches invoice lines to PO lines by upper-cased description
// and reports missing lines and differing quantity or unit price.
func checkQuantities(po, invoice []documents.Product) []Issue {
	issues := []Issue{}
	poIndex := indexProducts(po, strings.ToUpper)

	for _, item := range invoice {
		poItem, ok := poIndex[strings.ToUpper(item.Description)]
		if !ok {
			issues = append(issues, Issue{Issue: IssueItemNotFound, Item: item.Description})
			continue
		}

		qtyPO := decimal.NewFromInt(int64(poItem.Count))
		qtyInvoice := decimal.NewFromInt(int64(item.Count))
		ratePO := decimal.NewFromFloat(poItem.UnitItemPrice)
		rateInvoice := decimal.NewFromFloat(item.UnitItemPrice)

		if qtyPO.Equal(qtyInvoice) && ratePO.Equal(rateInvoice) {
			continue
		}

		issues = append(issues, Issue{
			Issue: IssueQuantityOrRate,
			Item:  item.Description,
			LineDetail: &LineDetail{
				QuantityPO:      qtyPO.InexactFloat64(),
				QuantityInvoice: qtyInvoice.InexactFloat64(),
				RatePO:          ratePO.InexactFloat64(),
				RateInvoice:     rateInvoice.InexactFloat64(),
				TotalPO:         qtyPO.Mul(ratePO).InexactFloat64(),
				TotalInvoice:    qtyInvoice.Mul(rateInvoice).InexactFloat64(),
			},
		})
	}

	return issues
}

// issueDetails renders issues as JSON for the log comment. Values JSON
// cannot carry (NaN, Inf) fall back to the issue names.
func issueDetails(issues []Issue) string {
	data, err := json.Marshal(issues)
	if err != nil {
		names := make([]string, len(issues))
		for i, is := range issues {
			names[i] = is.Issue
		}
		return fmt.Sprintf("%v", names)
	}
	return string(data)
}
