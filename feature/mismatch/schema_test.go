package mismatch

import (
	"context"
	"testing"
	"time"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/reconcile"
	"invoice-reconciler/feature/mismatch/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema_AfterMigrate(t *testing.T) {
	repo := setupSQLite(t)

	report, err := repo.CheckSchema()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", report.Driver)
	assert.True(t, report.Matched, "%+v", report.Tables)
	assert.Len(t, report.Tables, 4)
	for name, tbl := range report.Tables {
		assert.Equal(t, "ok", tbl.Status, name)
	}
}

func TestCheckSchema_MissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	logCols := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("comments", "varchar(255)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `invoice_mismatch_log`").WillReturnRows(logCols)
	mock.ExpectQuery("SHOW COLUMNS FROM `invoice_mismatch_items`").WillReturnError(assert.AnError)
	mock.ExpectQuery("SHOW COLUMNS FROM `invoice_mismatch_contract_fields`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}))
	mock.ExpectQuery("SHOW COLUMNS FROM `invoice_mismatch_po_fields`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}))

	report, err := repo.CheckSchema()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)

	logTable := report.Tables["invoice_mismatch_log"]
	assert.Equal(t, "error", logTable.Status)
	assert.Contains(t, logTable.MissingColumns, "vendor_name")
	assert.Contains(t, logTable.TypeMismatches, "comments: expected text, got varchar(255)")

	assert.Contains(t, report.Tables["invoice_mismatch_po_fields"].MissingColumns, "po_value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearRecords(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	id, err := repo.InsertLog(ctx, sampleEntry("INV-1", "PO", reconcile.StatusSuccess, time.Now()))
	require.NoError(t, err)
	report := reconcile.NewReport()
	report.Add(reconcile.CompareFields(documents.TypePO, "buyer_address", map[string]any{"a": 1}, map[string]any{"a": 2}))
	require.NoError(t, repo.InsertFields(ctx, documents.TypePO, id, report))

	require.NoError(t, repo.ClearRecords(ctx))

	for _, m := range models.All() {
		var count int64
		require.NoError(t, repo.DB().Model(m).Count(&count).Error)
		assert.Zero(t, count, tableName(m))
	}
	assert.True(t, repo.DB().Migrator().HasTable(&models.Log{}))
}

func TestDropTables(t *testing.T) {
	repo := setupSQLite(t)

	require.NoError(t, repo.DropTables(context.Background()))

	for _, m := range models.All() {
		assert.False(t, repo.DB().Migrator().HasTable(m), tableName(m))
	}

	report, err := repo.CheckSchema()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Contains(t, report.Tables["invoice_mismatch_log"].MissingColumns, "id")
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("column:id;primaryKey"))
	assert.Equal(t, "Vendor_Name", parseGormColumn("column:Vendor_Name;size:255"))
	assert.Equal(t, "text", parseGormType("column:comments;type:text"))
	assert.Equal(t, "", parseGormType("column:id"))
}
