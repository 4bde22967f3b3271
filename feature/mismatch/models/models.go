package models

import "time"

// Log is one reconciliation event.
type Log struct {
	ID                   uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID               string    `gorm:"column:user_id;size:100" json:"user_id"`
	InvoiceFilename      string    `gorm:"column:invoice_filename;size:255" json:"invoice_filename"`
	InvoiceNumber        string    `gorm:"column:invoice_number;size:100;index" json:"invoice_number"`
	ComparedDocumentType string    `gorm:"column:compared_document_type;size:20" json:"compared_document_type"`
	ComparedDocumentName string    `gorm:"column:compared_document_name;size:255" json:"compared_document_name"`
	MismatchCount        int       `gorm:"column:mismatch_count" json:"mismatch_count"`
	EventDTS             time.Time `gorm:"column:event_dts" json:"event_dts"`
	Status               string    `gorm:"column:status;size:20" json:"status"`
	Outcome              string    `gorm:"column:outcome;size:20" json:"outcome"`
	Comments             string    `gorm:"column:comments;type:text" json:"comments"`
	VendorName           string    `gorm:"column:Vendor_Name;size:255" json:"vendor_name"`
	Items                []Item    `gorm:"foreignKey:LogID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Log) TableName() string {
	return "invoice_mismatch_log"
}

// Item is one mismatch entry of a log, named by its issue category.
type Item struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LogID          uint            `gorm:"column:log_id;not null;index" json:"log_id"`
	ItemName       string          `gorm:"column:item_name;size:255;not null" json:"item_name"`
	ContractFields []ContractField `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"contract_fields,omitempty"`
	POFields       []POField       `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"po_fields,omitempty"`
}

func (Item) TableName() string {
	return "invoice_mismatch_items"
}

// ContractField is one compared field of a contract mismatch entry.
type ContractField struct {
	ID            uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID        uint    `gorm:"column:item_id;not null;index" json:"item_id"`
	FieldName     string  `gorm:"column:field_name;size:100;not null" json:"field_name"`
	ContractValue *string `gorm:"column:contract_value;type:text" json:"contract_value"`
	InvoiceValue  *string `gorm:"column:invoice_value;type:text" json:"invoice_value"`
}

func (ContractField) TableName() string {
	return "invoice_mismatch_contract_fields"
}

// POField is one compared field of a purchase order mismatch entry.
type POField struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID       uint    `gorm:"column:item_id;not null;index" json:"item_id"`
	FieldName    string  `gorm:"column:field_name;size:100;not null" json:"field_name"`
	POValue      *string `gorm:"column:po_value;type:text" json:"po_value"`
	InvoiceValue *string `gorm:"column:invoice_value;type:text" json:"invoice_value"`
}

func (POField) TableName() string {
	return "invoice_mismatch_po_fields"
}

// All returns the models in dependency order, parents first.
func All() []any {
	return []any{&Log{}, &Item{}, &ContractField{}, &POField{}}
}
