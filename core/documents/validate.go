package documents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// Validate checks the invoice before reconciliation.
// An empty po_number or contract_number is allowed; the dispatcher treats it like "NULL".
func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return invalid(TypeInvoice, "invoice_number", "is required")
	}
	return validateProducts(TypeInvoice, inv.Products)
}

// Validate checks the purchase order before reconciliation.
func (po *PO) Validate() error {
	if strings.TrimSpace(po.PONumber) == "" {
		return invalid(TypePO, "po_number", "is required")
	}
	return validateProducts(TypePO, po.Products)
}

// Validate checks the contract before reconciliation.
func (c *Contract) Validate() error {
	if strings.TrimSpace(c.ContractNumber) == "" {
		return invalid(TypeContract, "contract_number", "is required")
	}
	for _, d := range []struct{ field, value string }{
		{"start_date", c.StartDate},
		{"end_date", c.EndDate},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d.value); err != nil {
			return invalid(TypeContract, d.field, "expected YYYY-MM-DD, got %q", d.value)
		}
	}
	for i, m := range c.PaymentTerms.Schedule {
		field := fmt.Sprintf("payment_terms.payment_schedule[%d]", i)
		if strings.TrimSpace(m.Name) == "" {
			return invalid(TypeContract, field+".milestone", "is required")
		}
		if m.Percentage < 0 || m.Percentage > 100 {
			return invalid(TypeContract, field+".percentage", "must be within 0..100, got %d", m.Percentage)
		}
	}
	return nil
}

func validateProducts(doc DocType, products []Product) error {
	for i, p := range products {
		if strings.TrimSpace(p.Description) == "" {
			return invalid(doc, fmt.Sprintf("product[%d].PRODUCT_DESCRIPTION", i), "is required")
		}
	}
	return nil
}

// DecodeInvoice decodes and validates an invoice record.
func DecodeInvoice(r io.Reader) (*Invoice, error) {
	var inv Invoice
	if err := decode(r, TypeInvoice, &inv); err != nil {
		return nil, err
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// DecodePO decodes and validates a purchase order record.
func DecodePO(r io.Reader) (*PO, error) {
	var po PO
	if err := decode(r, TypePO, &po); err != nil {
		return nil, err
	}
	if err := po.Validate(); err != nil {
		return nil, err
	}
	return &po, nil
}

// DecodeContract decodes and validates a contract record.
func DecodeContract(r io.Reader) (*Contract, error) {
	var c Contract
	if err := decode(r, TypeContract, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func decode(r io.Reader, doc DocType, v any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return &ValidationError{Doc: doc, Message: err.Error()}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ValidationError{Doc: doc, Message: err.Error()}
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return &ValidationError{Doc: doc, Message: err.Error()}
	}
	return requireKeys(doc, reflect.TypeOf(v).Elem(), tree, "")
}

// requireKeys walks the decoded tree alongside t and reports the first
// tagged field whose key is absent or null.
func requireKeys(doc DocType, t reflect.Type, node any, path string) error {
	switch t.Kind() {
	case reflect.Struct:
		obj, ok := node.(map[string]any)
		if !ok {
			return invalid(doc, path, "must be an object")
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				continue
			}
			field := name
			if path != "" {
				field = path + "." + name
			}
			val, ok := obj[name]
			if !ok {
				return invalid(doc, field, "is required")
			}
			if val == nil {
				return invalid(doc, field, "must not be null")
			}
			if err := requireKeys(doc, f.Type, val, field); err != nil {
				return err
			}
		}
	case reflect.Slice:
		items, ok := node.([]any)
		if !ok {
			return invalid(doc, path, "must be a list")
		}
		for i, item := range items {
			if err := requireKeys(doc, t.Elem(), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Decode decodes and validates a record of the given type.
func Decode(doc DocType, r io.Reader) (any, error) {
	switch doc {
	case TypeInvoice:
		return DecodeInvoice(r)
	case TypePO:
		return DecodePO(r)
	case TypeContract:
		return DecodeContract(r)
	default:
		return nil, fmt.Errorf("%w: unknown document type %q", ErrInvalidDocument, doc)
	}
}
