package mismatch

import (
	"context"
	"errors"
	"fmt"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/reconcile"
	"invoice-reconciler/core/utils"
	"invoice-reconciler/feature/mismatch/models"

	"gorm.io/gorm"
)

var (
	// ErrLogNotFound is returned by GetLog for an unknown id.
	ErrLogNotFound = errors.New("mismatch log not found")
	// ErrUnsupportedDocType is returned when fields are stored for a type without a field table.
	ErrUnsupportedDocType = errors.New("unsupported document type")
	// ErrNoDatabase is returned when the repository has no connection.
	ErrNoDatabase = errors.New("database connection is nil")
)

// DefaultListLimit caps ListLogs when the filter sets no limit.
const DefaultListLimit = 50

// Repository stores reconciliation results and implements reconcile.Recorder.
type Repository struct {
	db *gorm.DB
}

var _ reconcile.Recorder = (*Repository)(nil)

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying connection.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// InsertLog stores an event record and returns its id.
func (r *Repository) InsertLog(ctx context.Context, entry reconcile.LogEntry) (uint, error) {
	if r.db == nil {
		return 0, ErrNoDatabase
	}

	row := models.Log{
		UserID:               entry.UserID,
		InvoiceFilename:      entry.InvoiceFilename,
		InvoiceNumber:        entry.InvoiceNumber,
		ComparedDocumentType: entry.ComparedDocumentType,
		ComparedDocumentName: entry.ComparedDocumentName,
		MismatchCount:        entry.MismatchCount,
		EventDTS:             entry.EventDTS,
		Status:               entry.Status,
		Outcome:              entry.Outcome,
		Comments:             entry.Comments,
		VendorName:           entry.VendorName,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert mismatch log: %w", err)
	}
	return row.ID, nil
}

// InsertFields stores one item per mismatch entry and its field rows in a
// single transaction. The document type picks the field table.
func (r *Repository) InsertFields(ctx context.Context, doc documents.DocType, logID uint, report *reconcile.Report) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	if doc != documents.TypeContract && doc != documents.TypePO {
		return fmt.Errorf("%w: %s", ErrUnsupportedDocType, doc)
	}
	if report == nil || len(report.Mismatches) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range report.Mismatches {
			item := models.Item{LogID: logID, ItemName: m.Category}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("insert mismatch item %q: %w", m.Category, err)
			}

			rows := m.Rows()
			if len(rows) == 0 {
				continue
			}

			var err error
			if doc == documents.TypeContract {
				err = tx.Create(contractFields(item.ID, rows)).Error
			} else {
				err = tx.Create(poFields(item.ID, rows)).Error
			}
			if err != nil {
				return fmt.Errorf("insert fields of item %q: %w", m.Category, err)
			}
		}
		return nil
	})
}

func contractFields(itemID uint, rows []reconcile.FieldRow) *[]models.ContractField {
	out := make([]models.ContractField, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ContractField{
			ItemID:        itemID,
			FieldName:     row.Field,
			ContractValue: utils.ToNullableString(row.Diff.Source),
			InvoiceValue:  utils.ToNullableString(row.Diff.Invoice),
		})
	}
	return &out
}

func poFields(itemID uint, rows []reconcile.FieldRow) *[]models.POField {
	out := make([]models.POField, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.POField{
			ItemID:       itemID,
			FieldName:    row.Field,
			POValue:      utils.ToNullableString(row.Diff.Source),
			InvoiceValue: utils.ToNullableString(row.Diff.Invoice),
		})
	}
	return &out
}

// ListFilter narrows ListLogs. Zero values match everything.
type ListFilter struct {
	Status        string
	DocType       string
	InvoiceNumber string
	Limit         int
}

// ListLogs returns log rows, newest first, without their items.
func (r *Repository) ListLogs(ctx context.Context, filter ListFilter) ([]models.Log, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := r.db.WithContext(ctx).Model(&models.Log{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DocType != "" {
		q = q.Where("compared_document_type = ?", filter.DocType)
	}
	if filter.InvoiceNumber != "" {
		q = q.Where("invoice_number = ?", filter.InvoiceNumber)
	}

	logs := []models.Log{}
	if err := q.Order("event_dts DESC").Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list mismatch logs: %w", err)
	}
	return logs, nil
}

// GetLog returns one log with its items and field rows.
func (r *Repository) GetLog(ctx context.Context, id uint) (*models.Log, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	var log models.Log
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ContractFields").
		Preload("Items.POFields").
		First(&log, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrLogNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get mismatch log %d: %w", id, err)
	}
	return &log, nil
}
