package core

import (
	"crypto/rand"
	"math/big"
)

// DocType identifies a sales document kind. The value doubles as the
// document number prefix ("QT-2025-0001").
type DocType string

const (
	DocTypeQuotation     DocType = "QT"
	DocTypeProForma      DocType = "PI"
	DocTypeDeliveryOrder DocType = "DO"
	DocTypeInvoice       DocType = "INV"
)

// Valid reports whether t is one of the four known document types.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeQuotation, DocTypeProForma, DocTypeDeliveryOrder, DocTypeInvoice:
		return true
	}
	return false
}

// Prefix returns the document number prefix for this type.
func (t DocType) Prefix() string { return string(t) }

// Label returns the human-readable name for this type.
func (t DocType) Label() string {
	switch t {
	case DocTypeQuotation:
		return "Quotation"
	case DocTypeProForma:
		return "Pro Forma Invoice"
	case DocTypeDeliveryOrder:
		return "Delivery Order"
	case DocTypeInvoice:
		return "Invoice"
	}
	return string(t)
}

type DocStatus string

const (
	StatusDraft     DocStatus = "Draft"
	StatusSent      DocStatus = "Sent"
	StatusPaid      DocStatus = "Paid"
	StatusConverted DocStatus = "Converted"
	StatusCancelled DocStatus = "Cancelled"
)

// Valid reports whether s is a known document status.
func (s DocStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusConverted, StatusCancelled:
		return true
	}
	return false
}

// LineItem is one billable row of a document.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate"` // fraction in [0,1], e.g. 0.08 for 8% SST
}

// Document is a sales-cycle record: quotation, pro-forma, delivery order
// or invoice. The JSON field names match the snapshot format of legacy
// backups so old export files import cleanly.
type Document struct {
	ID         string     `json:"id"`
	Type       DocType    `json:"type"`
	Number     string     `json:"number"`
	Date       string     `json:"date"` // YYYY-MM-DD
	CustomerID string     `json:"customerId"`
	Items      []LineItem `json:"items"`
	Status     DocStatus  `json:"status"`
	Discount   float64    `json:"discount"`
	Notes      string     `json:"notes,omitempty"`
	IsDeleted  bool       `json:"isDeleted,omitempty"`

	// ConvertedFromID is the structured backlink to the document this one
	// was converted from. The human-readable "Ref: {number}" note prefix is
	// kept alongside it for display compatibility with legacy documents.
	ConvertedFromID string `json:"convertedFromId,omitempty"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}

type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AttentionTo string `json:"attentionTo,omitempty"`
	TIN         string `json:"tin,omitempty"`
	BRN         string `json:"brn,omitempty"`
}

// Product is a catalog entry used to prefill line item fields on selection.
// There is no live link after prefill: editing a product never changes
// existing line items.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	TaxRate     float64 `json:"taxRate,omitempty"`
}

// CompanySettings is the singleton company identity record. Logo and
// Signature hold embedded image data (data URI or base64).
type CompanySettings struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	SSMNumber   string  `json:"ssmNumber"`
	SSTRegNo    string  `json:"sstRegNo"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	BankName    string  `json:"bankName"`
	BankAccount string  `json:"bankAccount"`
	SSTRate     float64 `json:"sstRate"`
	Logo        string  `json:"logo,omitempty"`
	Signature   string  `json:"signature,omitempty"`
}

// AppState is the aggregate root. It is the whole unit of persistence:
// every mutation replaces the entire snapshot, there is no per-entity
// storage. All cross-references are by string id, resolved at read time,
// with dangling references tolerated.
type AppState struct {
	Documents      []Document      `json:"documents"`
	Customers      []Customer      `json:"customers"`
	Products       []Product       `json:"products"`
	Settings       CompanySettings `json:"settings"`
	LastBackupDate string          `json:"lastBackupDate,omitempty"`
}

// Clone returns a deep copy of the state. Lifecycle transforms operate on
// clones so that callers holding a prior snapshot keep a consistent view.
func (s AppState) Clone() AppState {
	out := s
	out.Documents = make([]Document, len(s.Documents))
	for i, d := range s.Documents {
		out.Documents[i] = d.Clone()
	}
	out.Customers = make([]Customer, len(s.Customers))
	copy(out.Customers, s.Customers)
	out.Products = make([]Product, len(s.Products))
	copy(out.Products, s.Products)
	return out
}

// DocumentByID returns the document with the given id, if present.
func (s AppState) DocumentByID(id string) (Document, bool) {
	for _, d := range s.Documents {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return Document{}, false
}

// CustomerByID returns the customer with the given id, if present.
func (s AppState) CustomerByID(id string) (Customer, bool) {
	for _, c := range s.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// CustomerName resolves a customer id to its display name. Dangling
// references resolve to "Unknown" rather than failing: customer deletion
// is hard and does not cascade to documents.
func (s AppState) CustomerName(id string) string {
	if c, ok := s.CustomerByID(id); ok {
		return c.Name
	}
	return "Unknown"
}

// ProductByID returns the product with the given id, if present.
func (s AppState) ProductByID(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a 9-character base36 identifier, the same shape the
// legacy snapshots use for documents, items, customers and products.
func NewID() string {
	buf := make([]byte, 9)
	limit := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// The platform entropy source is broken; there is nothing
			// sensible to return.
			panic(err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return string(buf)
}
