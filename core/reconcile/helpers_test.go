package reconcile

import (
	"context"

	"invoice-reconciler/core/documents"

	"github.com/stretchr/testify/mock"
)

// mockRecorder is a testify mock of Recorder.
type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) InsertLog(ctx context.Context, entry LogEntry) (uint, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockRecorder) InsertFields(ctx context.Context, doc documents.DocType, logID uint, report *Report) error {
	args := m.Called(ctx, doc, logID, report)
	return args.Error(0)
}

// loggedEntry returns the LogEntry passed to the first InsertLog call.
func (m *mockRecorder) loggedEntry() LogEntry {
	for _, c := range m.Calls {
		if c.Method == "InsertLog" {
			return c.Arguments.Get(1).(LogEntry)
		}
	}
	return LogEntry{}
}

// persistedReport returns the report passed to the first InsertFields call.
func (m *mockRecorder) persistedReport() *Report {
	for _, c := range m.Calls {
		if c.Method == "InsertFields" {
			return c.Arguments.Get(3).(*Report)
		}
	}
	return nil
}

func newRecorder() *mockRecorder {
	rec := new(mockRecorder)
	rec.On("InsertLog", mock.Anything, mock.Anything).Return(uint(1), nil)
	rec.On("InsertFields", mock.Anything, mock.Anything, uint(1), mock.Anything).Return(nil)
	return rec
}

func testAddress(name string) documents.Address {
	return documents.Address{
		Name:              name,
		AddressLine:       "12 Market Road",
		City:              "Pune",
		StateProvinceCode: "MH",
		PostalCode:        411001,
	}
}

func testProduct(desc string, count int, price float64) documents.Product {
	return documents.Product{
		Description:       desc,
		HSN:               "8471",
		Count:             count,
		UnitItemPrice:     price,
		ProductTotalPrice: float64(count) * price,
	}
}

func testPO(products ...documents.Product) *documents.PO {
	return &documents.PO{
		PONumber:       "P-1",
		ShopAddress:    testAddress("Acme Supplies"),
		BillingAddress: testAddress("Globex"),
		Products:       products,
	}
}

func testContract() *documents.Contract {
	return &documents.Contract{
		ContractNumber:     "C-1",
		SellerAddress:      testAddress("Acme Supplies"),
		BuyerAddress:       testAddress("Globex"),
		StartDate:          "2024-01-01",
		EndDate:            "2024-12-31",
		TotalContractValue: 100000,
		PaymentTerms: documents.PaymentTerms{
			TotalContractValue: 100000,
			Schedule: []documents.Milestone{
				{Name: "advance", Percentage: 25},
				{Name: "final", Percentage: 75},
			},
		},
	}
}

func testInvoice(products ...documents.Product) *documents.Invoice {
	return &documents.Invoice{
		InvoiceNumber:  "INV-1",
		PONumber:       "P-1",
		ContractNumber: "NULL",
		ShopAddress:    testAddress("Acme Supplies"),
		BillingAddress: testAddress("Globex"),
		Products:       products,
		Milestone:      "advance",
		TotalBill:      documents.TotalBill{FinalTotal: 25000},
	}
}
