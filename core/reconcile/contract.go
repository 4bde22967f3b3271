package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"invoice-reconciler/core/documents"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// ValidateContract reconciles an invoice against a contract.
//
// A contract-number mismatch stops the run with a single entry. Otherwise the
// milestone, its billed amount and both addresses are checked and every finding
// is collected into the report.
func (v *Validator) ValidateContract(ctx context.Context, contract *documents.Contract, inv *documents.Invoice) (*Outcome, error) {
	if contract == nil || inv == nil {
		return nil, fmt.Errorf("%w: contract and invoice are required", ErrMalformedRecord)
	}
	const doc = documents.TypeContract

	vendor := vendorName(inv)
	report := NewReport()
	entry := LogEntry{
		UserID:               v.user,
		InvoiceFilename:      inv.InvoiceNumber,
		InvoiceNumber:        inv.InvoiceNumber,
		ComparedDocumentType: string(doc),
		ComparedDocumentName: contract.ContractNumber,
		Outcome:              OutcomeNoMismatch,
		VendorName:           vendor,
	}

	contractID := strings.TrimSpace(contract.ContractNumber)
	invoiceContractID := strings.TrimSpace(inv.ContractNumber)

	if contractID != invoiceContractID {
		report.Add(&Mismatch{
			Category: CategoryContractNumber,
			Values:   []FieldDiff{{DocType: doc, Source: contractID, Invoice: invoiceContractID}},
		})

		entry.MismatchCount = 1
		entry.EventDTS = v.now()
		entry.Status = StatusSuccess
		entry.Outcome = OutcomeMismatch
		entry.Comments = fmt.Sprintf("The contract number, %s, in 'contract_doc' does not match the contract number, %s, in the invoice.",
			contractID, invoiceContractID)

		v.logger.Info("Contract number mismatch",
			zap.String("invoice", inv.InvoiceNumber),
			zap.String("contract", contractID),
			zap.String("invoice_contract", invoiceContractID),
		)

		outcome := &Outcome{IsMismatch: true, VendorName: vendor, Report: report}
		if err := v.persist(ctx, doc, entry, report); err != nil {
			return outcome, err
		}
		return outcome, nil
	}

	milestone := cases.Fold().String(strings.TrimSpace(inv.Milestone))
	match := findMilestone(contract.PaymentTerms.Schedule, milestone)

	if match == nil {
		entry.MismatchCount++
		report.Add(&Mismatch{
			Category: CategoryMilestone,
			Value:    &FieldDiff{DocType: doc, Source: nil, Invoice: milestone},
		})
	} else {
		expected := expectedAmount(match.Percentage, contract.TotalContractValue)
		billed := roundCents(inv.TotalBill.FinalTotal)

		if !decimal.NewFromFloat(billed).Equal(decimal.NewFromFloat(expected)) {
			entry.MismatchCount++
			report.Add(&Mismatch{
				Category: CategoryBilling,
				Fields: map[string]FieldDiff{
					milestone: {DocType: doc, Source: expected, Invoice: billed},
				},
			})
		}
	}

	for _, m := range []*Mismatch{
		CompareFields(doc, CategorySellerAddress, contract.SellerAddress.Fields(), inv.ShopAddress.Fields()),
		CompareFields(doc, CategoryBuyerAddress, contract.BuyerAddress.Fields(), inv.BillingAddress.Fields()),
	} {
		if m != nil {
			entry.MismatchCount++
			report.Add(m)
		}
	}

	categories := report.Categories()
	entry.EventDTS = v.now()
	entry.Status = StatusSuccess
	entry.Outcome = OutcomeMismatch
	entry.Comments = "Mismatch category: " + formatCategories(categories)

	v.logger.Info("Reconciled invoice against contract",
		zap.String("invoice", inv.InvoiceNumber),
		zap.String("contract", contractID),
		zap.Strings("categories", categories),
	)

	// The verdict does not look at the collected entries: once the contract
	// numbers agree, the run is reported as a mismatch even with an empty report.
	outcome := &Outcome{IsMismatch: true, VendorName: vendor, Report: report}
	if err := v.persist(ctx, doc, entry, report); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// findMilestone returns the schedule entry whose folded name equals name.
func findMilestone(schedule []documents.Milestone, name string) *documents.Milestone {
	fold := cases.Fold()
	for i := range schedule {
		if fold.String(strings.TrimSpace(schedule[i].Name)) == name {
			return &schedule[i]
		}
	}
	return nil
}

// expectedAmount is percentage/100 of the contract value, rounded to cents.
func expectedAmount(percentage int, totalContractValue float64) float64 {
	return roundCents(float64(percentage) / 100 * totalContractValue)
}

// roundCents rounds x to two decimals from its exact binary value, so
// 2.675 (stored as 2.67499...) becomes 2.67 and exact ties go to even.
func roundCents(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// formatCategories renders names as ['a', 'b'].
func formatCategories(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
