package reconcile

import (
	"context"
	"testing"

	"invoice-reconciler/core/database"
	"invoice-reconciler/core/reconcile"
	"invoice-reconciler/core/storage/mocks"
	docstore "invoice-reconciler/feature/documents"
	"invoice-reconciler/feature/mismatch"
	"invoice-reconciler/feature/mismatch/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testBucket = "invoices"

	addressJSON = `{"name": "Acme Supplies", "address_line": "12 Market Road", "city": "Pune", "state_province_code": "MH", "postal_code": 411001}`
	buyerJSON   = `{"name": "Globex", "address_line": "9 Elm Rd", "city": "Pune", "state_province_code": "MH", "postal_code": 411002}`

	productHead = `{"PRODUCT_DESCRIPTION": "Widget", "HSN": "8471", "MRP": 5, "GROSS_AMOUNT": 0, "DISCOUNT_RATE": 0, "CGST_RATE": 0,
		"CGST_AMOUNT": 0, "SGST_RATE": 0, "SGST_AMOUNT": 0, `
	productTail = `, "GST_RATE": 0, "GST_AMOUNT": 0, "UNIT_ITEM_PRICE": 5, "PRODUCT_TOTAL_PRICE": 0, "TAXABLE_AMOUNT": 0, "NET_AMOUNT": 0}`

	invoiceJSON = `{
		"invoice_number": "INV-1",
		"po_number": "P-1",
		"contract_number": "NULL",
		"shop_address": ` + addressJSON + `,
		"billing_address": ` + buyerJSON + `,
		"product": [` + productHead + `"COUNT": 12` + productTail + `],
		"milestone": "",
		"total_bill": {"total": 60, "discount_amount": 0, "tax_amount": 0, "delivery_charges": 0, "final_total": 60}
	}`

	poJSON = `{
		"po_number": "P-1",
		"shop_address": ` + addressJSON + `,
		"billing_address": ` + buyerJSON + `,
		"product": [` + productHead + `"COUNT": 10` + productTail + `],
		"total_bill": {"total": 50, "discount_amount": 0, "tax_amount": 0, "delivery_charges": 0, "final_total": 50}
	}`
)

func setupRepo(t *testing.T) *mismatch.Repository {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	repo := mismatch.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func setupService(t *testing.T, client *mocks.Client) (*Service, *mismatch.Repository) {
	repo := setupRepo(t)
	validator := reconcile.NewValidator(repo, zap.NewNop(), "")

	var store *docstore.Store
	if client != nil {
		store = docstore.NewStore(client, testBucket, "parsed", "reports", 0)
	}
	return NewService(validator, store, zap.NewNop()), repo
}

func expectObject(client *mocks.Client, key, data string) {
	client.ExpectDocument(testBucket, key, data)
}

func expectMissing(client *mocks.Client, key string) {
	client.ExpectMissing(testBucket, key)
}

func expectReport(client *mocks.Client, key string) {
	client.On("PutObject", mock.Anything, testBucket, key, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
}

func onlyLog(t *testing.T, repo *mismatch.Repository) models.Log {
	logs, err := repo.ListLogs(context.Background(), mismatch.ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	return logs[0]
}
