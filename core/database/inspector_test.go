package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGetTableColumns_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE invoice_items (id INTEGER PRIMARY KEY, log_id INTEGER NOT NULL, item_name TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "invoice_items")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}

	assert.Equal(t, "integer", byName["id"].Type)
	assert.Equal(t, "NO", byName["log_id"].Null)
	assert.Equal(t, "text", byName["item_name"].Type)
	assert.Equal(t, "YES", byName["item_name"].Null)

	// PRAGMA table_info returns no rows for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("Vendor_Name", "VARCHAR(255)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `invoice_mismatch_log`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "invoice_mismatch_log")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "bigint unsigned", columns[0].Type)
	assert.Equal(t, "vendor_name", columns[1].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_Postgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"}).
		AddRow("id", "bigint", "NO", "nextval('invoice_items_id_seq'::regclass)").
		AddRow("item_name", "character varying", "YES", nil)
	mock.ExpectQuery("information_schema.columns").WithArgs("invoice_items").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "invoice_items")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "character varying", columns[1].Type)
	assert.Equal(t, "YES", columns[1].Null)
	require.NotNil(t, columns[0].Default)
	assert.NoError(t, mock.ExpectationsWereMet())
}
