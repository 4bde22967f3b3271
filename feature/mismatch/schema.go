package mismatch

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"invoice-reconciler/core/database"
	"invoice-reconciler/feature/mismatch/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the mismatch tables.
func (r *Repository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	if err := r.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate mismatch tables: %w", err)
	}
	return nil
}

// ClearRecords deletes every row but keeps the tables. Children go first.
func (r *Repository) ClearRecords(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}

	all := models.All()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(all) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(all[i]).Error; err != nil {
				return fmt.Errorf("clear %s: %w", tableName(all[i]), err)
			}
		}
		return nil
	})
}

// DropTables drops the mismatch tables. Children go first.
func (r *Repository) DropTables(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}

	all := models.All()
	migrator := r.db.WithContext(ctx).Migrator()
	for i := len(all) - 1; i >= 0; i-- {
		if err := migrator.DropTable(all[i]); err != nil {
			return fmt.Errorf("drop %s: %w", tableName(all[i]), err)
		}
	}
	return nil
}

// SchemaReport is the result of comparing the live tables with the models.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport lists the problems found in one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that every model column exists in the database and,
// where the model pins a type, that the live type contains it.
func (r *Repository) CheckSchema() (*SchemaReport, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	report := &SchemaReport{
		Driver:  r.db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models.All() {
		table := tableName(model)

		actual, err := database.GetTableColumns(r.db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := checkTable(reflect.TypeOf(model).Elem(), actual)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}

func checkTable(t reflect.Type, actual []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		byName[col.Field] = col
	}

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")

		name := strings.ToLower(parseGormColumn(tag))
		if name == "" {
			continue
		}

		col, ok := byName[name]
		if !ok {
			tbl.MissingColumns = append(tbl.MissingColumns, name)
			tbl.Status = "error"
			continue
		}

		expected := strings.ToLower(parseGormType(tag))
		if expected != "" && !strings.Contains(col.Type, expected) {
			tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", name, expected, col.Type))
			tbl.Status = "error"
		}
	}

	return tbl
}

func tableName(model any) string {
	if tabler, ok := model.(interface{ TableName() string }); ok {
		return tabler.TableName()
	}
	return reflect.TypeOf(model).Elem().Name()
}

func parseGormColumn(tag string) string {
	return gormSetting(tag, "column:")
}

func parseGormType(tag string) string {
	return gormSetting(tag, "type:")
}

func gormSetting(tag, prefix string) string {
	for _, part := range strings.Split(tag, ";") {
		if strings.HasPrefix(part, prefix) {
			return strings.TrimPrefix(part, prefix)
		}
	}
	return ""
}
