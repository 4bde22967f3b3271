package mismatch

import (
	"context"
	"testing"
	"time"

	"invoice-reconciler/core/database"
	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/reconcile"
	"invoice-reconciler/feature/mismatch/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *Repository {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func sampleEntry(invoice, docType, status string, at time.Time) reconcile.LogEntry {
	return reconcile.LogEntry{
		UserID:               "system",
		InvoiceFilename:      invoice,
		InvoiceNumber:        invoice,
		ComparedDocumentType: docType,
		ComparedDocumentName: "REF-1",
		MismatchCount:        1,
		EventDTS:             at,
		Status:               status,
		Outcome:              reconcile.OutcomeMismatch,
		Comments:             "Mismatch category: ['seller_address']",
		VendorName:           "Acme Supplies",
	}
}

func TestRepository_InsertLog(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	first, err := repo.InsertLog(ctx, sampleEntry("INV-1", "PO", reconcile.StatusSuccess, time.Now()))
	require.NoError(t, err)
	second, err := repo.InsertLog(ctx, sampleEntry("INV-2", "PO", reconcile.StatusSuccess, time.Now()))
	require.NoError(t, err)

	assert.NotZero(t, first)
	assert.Greater(t, second, first)

	log, err := repo.GetLog(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", log.InvoiceNumber)
	assert.Equal(t, "Acme Supplies", log.VendorName)
	assert.Empty(t, log.Items)
}

func TestRepository_InsertFields_PO(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	id, err := repo.InsertLog(ctx, sampleEntry("INV-1", "PO", reconcile.StatusSuccess, time.Now()))
	require.NoError(t, err)

	report := reconcile.NewReport()
	report.Add(&reconcile.Mismatch{Category: "Widget", Fields: map[string]reconcile.FieldDiff{
		"COUNT":           {DocType: documents.TypePO, Source: 3, Invoice: 2},
		"UNIT_ITEM_PRICE": {DocType: documents.TypePO, Source: 9.5, Invoice: 9.75},
	}})
	report.Add(reconcile.CompareFields(documents.TypePO, reconcile.CategorySellerAddress,
		map[string]any{"city": "Pune"}, map[string]any{}))

	require.NoError(t, repo.InsertFields(ctx, documents.TypePO, id, report))

	log, err := repo.GetLog(ctx, id)
	require.NoError(t, err)
	require.Len(t, log.Items, 2)

	byName := map[string]models.Item{}
	for _, item := range log.Items {
		byName[item.ItemName] = item
		assert.Empty(t, item.ContractFields)
	}

	widget := byName["Widget"]
	require.Len(t, widget.POFields, 2)
	values := map[string][2]string{}
	for _, f := range widget.POFields {
		values[f.FieldName] = [2]string{*f.POValue, *f.InvoiceValue}
	}
	assert.Equal(t, [2]string{"3", "2"}, values["COUNT"])
	assert.Equal(t, [2]string{"9.5", "9.75"}, values["UNIT_ITEM_PRICE"])

	seller := byName[reconcile.CategorySellerAddress]
	require.Len(t, seller.POFields, 1)
	assert.Equal(t, "Pune", *seller.POFields[0].POValue)
	assert.Nil(t, seller.POFields[0].InvoiceValue)
}

func TestRepository_InsertFields_Contract(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	id, err := repo.InsertLog(ctx, sampleEntry("INV-9", "Contract", reconcile.StatusSuccess, time.Now()))
	require.NoError(t, err)

	report := reconcile.NewReport()
	report.Add(&reconcile.Mismatch{
		Category: reconcile.CategoryMilestone,
		Value:    &reconcile.FieldDiff{DocType: documents.TypeContract, Source: nil, Invoice: "retainer"},
	})
	report.Add(&reconcile.Mismatch{
		Category: reconcile.CategoryBilling,
		Fields: map[string]reconcile.FieldDiff{
			"advance": {DocType: documents.TypeContract, Source: 25000.0, Invoice: 25000.01},
		},
	})

	require.NoError(t, repo.InsertFields(ctx, documents.TypeContract, id, report))

	log, err := repo.GetLog(ctx, id)
	require.NoError(t, err)
	require.Len(t, log.Items, 2)

	for _, item := range log.Items {
		require.Len(t, item.ContractFields, 1, item.ItemName)
		f := item.ContractFields[0]
		switch item.ItemName {
		case reconcile.CategoryMilestone:
			assert.Equal(t, reconcile.CategoryMilestone, f.FieldName)
			assert.Nil(t, f.ContractValue)
			assert.Equal(t, "retainer", *f.InvoiceValue)
		case reconcile.CategoryBilling:
			assert.Equal(t, "advance", f.FieldName)
			assert.Equal(t, "25000", *f.ContractValue)
			assert.Equal(t, "25000.01", *f.InvoiceValue)
		default:
			t.Fatalf("unexpected item %s", item.ItemName)
		}
	}
}

func TestRepository_InsertFields_Guards(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	err := repo.InsertFields(ctx, documents.TypeInvoice, 1, reconcile.NewReport())
	assert.ErrorIs(t, err, ErrUnsupportedDocType)

	assert.NoError(t, repo.InsertFields(ctx, documents.TypePO, 1, nil))
	assert.NoError(t, repo.InsertFields(ctx, documents.TypePO, 1, reconcile.NewReport()))

	var count int64
	require.NoError(t, repo.DB().Model(&models.Item{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepository_InsertFields_Rollback(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	report := reconcile.NewReport()
	report.Add(&reconcile.Mismatch{Category: "Widget", Fields: map[string]reconcile.FieldDiff{
		"COUNT": {DocType: documents.TypePO, Source: 1, Invoice: 2},
	}})

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `invoice_mismatch_items`").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO `invoice_mismatch_po_fields`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.InsertFields(context.Background(), documents.TypePO, 7, report)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertLog_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `invoice_mismatch_log`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	id, err := repo.InsertLog(context.Background(), sampleEntry("INV-1", "PO", reconcile.StatusSuccess, time.Now()))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_NilDB(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	_, err := repo.InsertLog(ctx, reconcile.LogEntry{})
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.ErrorIs(t, repo.InsertFields(ctx, documents.TypePO, 1, nil), ErrNoDatabase)
	_, err = repo.ListLogs(ctx, ListFilter{})
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = repo.CheckSchema()
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.ErrorIs(t, repo.Migrate(ctx), ErrNoDatabase)
}

func TestRepository_ListLogs(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := repo.InsertLog(ctx, sampleEntry("INV-1", "PO", reconcile.StatusSuccess, base))
	require.NoError(t, err)
	_, err = repo.InsertLog(ctx, sampleEntry("INV-2", "Contract", reconcile.StatusSuccess, base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.InsertLog(ctx, sampleEntry("INV-3", "PO", reconcile.StatusError, base.Add(2*time.Hour)))
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"all newest first", ListFilter{}, []string{"INV-3", "INV-2", "INV-1"}},
		{"by type", ListFilter{DocType: "PO"}, []string{"INV-3", "INV-1"}},
		{"by status", ListFilter{Status: reconcile.StatusSuccess}, []string{"INV-2", "INV-1"}},
		{"by invoice", ListFilter{InvoiceNumber: "INV-2"}, []string{"INV-2"}},
		{"limited", ListFilter{Limit: 1}, []string{"INV-3"}},
		{"no match", ListFilter{Status: "Pending"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := repo.ListLogs(ctx, tt.filter)
			require.NoError(t, err)

			got := make([]string, 0, len(logs))
			for _, l := range logs {
				got = append(got, l.InvoiceNumber)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_GetLog_NotFound(t *testing.T) {
	repo := setupSQLite(t)

	_, err := repo.GetLog(context.Background(), 404)
	assert.ErrorIs(t, err, ErrLogNotFound)
}
