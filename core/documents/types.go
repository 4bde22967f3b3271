package documents

import (
	"fmt"
	"strings"
)

// DocType identifies the kind of business document.
type DocType string

const (
	// TypeInvoice is a vendor invoice.
	TypeInvoice DocType = "Invoice"
	// TypePO is a purchase order.
	TypePO DocType = "PO"
	// TypeContract is a contract with a milestone payment schedule.
	TypeContract DocType = "Contract"
)

// ParseDocType resolves a document type name case-insensitively.
func ParseDocType(s string) (DocType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invoice":
		return TypeInvoice, nil
	case "po", "purchase_order":
		return TypePO, nil
	case "contract":
		return TypeContract, nil
	default:
		return "", fmt.Errorf("unknown document type %q", s)
	}
}

// Address is a postal address. Seller-side (shop) and buyer-side (billing)
// addresses share this shape and are compared field for field.
type Address struct {
	Name              string `json:"name" jsonschema:"description=name of the person or organization"`
	AddressLine       string `json:"address_line" jsonschema:"description=street and building information"`
	City              string `json:"city"`
	StateProvinceCode string `json:"state_province_code"`
	PostalCode        int    `json:"postal_code"`
}

// Fields returns the address as a flat key/value map keyed by JSON name.
func (a Address) Fields() map[string]any {
	return map[string]any{
		"name":                a.Name,
		"address_line":        a.AddressLine,
		"city":                a.City,
		"state_province_code": a.StateProvinceCode,
		"postal_code":         a.PostalCode,
	}
}

// Product is one billed line item.
type Product struct {
	Description       string  `json:"PRODUCT_DESCRIPTION" jsonschema:"description=complete description of the product or service"`
	HSN               string  `json:"HSN"`
	MRP               float64 `json:"MRP"`
	GrossAmount       float64 `json:"GROSS_AMOUNT"`
	DiscountRate      float64 `json:"DISCOUNT_RATE"`
	CGSTRate          float64 `json:"CGST_RATE"`
	CGSTAmount        float64 `json:"CGST_AMOUNT"`
	SGSTRate          float64 `json:"SGST_RATE"`
	SGSTAmount        float64 `json:"SGST_AMOUNT"`
	Count             int     `json:"COUNT" jsonschema:"description=number of units bought"`
	GSTRate           float64 `json:"GST_RATE"`
	GSTAmount         float64 `json:"GST_AMOUNT"`
	UnitItemPrice     float64 `json:"UNIT_ITEM_PRICE" jsonschema:"description=price per unit"`
	ProductTotalPrice float64 `json:"PRODUCT_TOTAL_PRICE"`
	TaxableAmount     float64 `json:"TAXABLE_AMOUNT"`
	NetAmount         float64 `json:"NET_AMOUNT"`
}

// Fields returns the product as a flat key/value map keyed by JSON name.
func (p Product) Fields() map[string]any {
	return map[string]any{
		"PRODUCT_DESCRIPTION": p.Description,
		"HSN":                 p.HSN,
		"MRP":                 p.MRP,
		"GROSS_AMOUNT":        p.GrossAmount,
		"DISCOUNT_RATE":       p.DiscountRate,
		"CGST_RATE":           p.CGSTRate,
		"CGST_AMOUNT":         p.CGSTAmount,
		"SGST_RATE":           p.SGSTRate,
		"SGST_AMOUNT":         p.SGSTAmount,
		"COUNT":               p.Count,
		"GST_RATE":            p.GSTRate,
		"GST_AMOUNT":          p.GSTAmount,
		"UNIT_ITEM_PRICE":     p.UnitItemPrice,
		"PRODUCT_TOTAL_PRICE": p.ProductTotalPrice,
		"TAXABLE_AMOUNT":      p.TaxableAmount,
		"NET_AMOUNT":          p.NetAmount,
	}
}

// TotalBill summarizes the document totals.
type TotalBill struct {
	Total           float64 `json:"total"`
	DiscountAmount  float64 `json:"discount_amount"`
	TaxAmount       float64 `json:"tax_amount"`
	DeliveryCharges float64 `json:"delivery_charges"`
	FinalTotal      float64 `json:"final_total" jsonschema:"description=total after tax, delivery charges and discounts"`
}

// Milestone is a named payment stage.
type Milestone struct {
	Name       string `json:"milestone" jsonschema:"description=single lower-case word such as advance or final"`
	Percentage int    `json:"percentage" jsonschema:"minimum=0,maximum=100"`
}

// PaymentTerms is the contract payment schedule.
type PaymentTerms struct {
	TotalContractValue float64     `json:"total_contract_value"`
	Schedule           []Milestone `json:"payment_schedule"`
}

// Invoice is a vendor invoice. PONumber and ContractNumber hold "NULL"
// when the invoice does not reference that companion document.
type Invoice struct {
	InvoiceNumber  string    `json:"invoice_number"`
	PONumber       string    `json:"po_number" jsonschema:"description=referenced purchase order or NULL"`
	ContractNumber string    `json:"contract_number" jsonschema:"description=referenced contract or NULL"`
	ShopAddress    Address   `json:"shop_address"`
	BillingAddress Address   `json:"billing_address"`
	Products       []Product `json:"product"`
	Milestone      string    `json:"milestone"`
	TotalBill      TotalBill `json:"total_bill"`
}

// PO is a purchase order.
type PO struct {
	PONumber       string    `json:"po_number"`
	ShopAddress    Address   `json:"shop_address"`
	BillingAddress Address   `json:"billing_address"`
	Products       []Product `json:"product"`
	TotalBill      TotalBill `json:"total_bill"`
}

// Contract is a signed agreement with a milestone payment schedule.
type Contract struct {
	ContractNumber     string       `json:"contract_number"`
	SellerAddress      Address      `json:"seller_address"`
	BuyerAddress       Address      `json:"buyer_address"`
	StartDate          string       `json:"start_date" jsonschema:"format=date"`
	EndDate            string       `json:"end_date" jsonschema:"format=date"`
	Terms              string       `json:"terms"`
	TotalContractValue float64      `json:"total_contract_value"`
	PaymentTerms       PaymentTerms `json:"payment_terms"`
}
