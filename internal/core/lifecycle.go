package core

import (
	"strings"
	"time"
)

// allowedConversions is the workflow funnel: a quotation reaches an invoice
// only through a pro-forma or delivery order, never directly.
var allowedConversions = map[DocType][]DocType{
	DocTypeQuotation:     {DocTypeProForma, DocTypeDeliveryOrder},
	DocTypeProForma:      {DocTypeDeliveryOrder, DocTypeInvoice},
	DocTypeDeliveryOrder: {DocTypeInvoice},
}

// CanConvert reports whether the lifecycle offers a conversion from one
// document type to another.
func CanConvert(from, to DocType) bool {
	for _, t := range allowedConversions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ConversionTargets returns the types a document of the given type can be
// converted to.
func ConversionTargets(from DocType) []DocType {
	targets := allowedConversions[from]
	out := make([]DocType, len(targets))
	copy(out, targets)
	return out
}

// All lifecycle operations are pure transforms (AppState, args) -> AppState.
// The input state is never mutated; callers replace their aggregate with the
// returned snapshot and request persistence of it.

// CreateDocument validates and materializes a new document. The number is
// assigned here, at the moment the document joins the collection; status
// starts at Draft. Missing id, date and status fields are filled in.
func CreateDocument(state AppState, doc Document, now time.Time) (AppState, Document, error) {
	if err := ValidateDocument(doc); err != nil {
		return state, Document{}, err
	}

	doc = doc.Clone()
	if doc.ID == "" {
		doc.ID = NewID()
	}
	for i := range doc.Items {
		if doc.Items[i].ID == "" {
			doc.Items[i].ID = NewID()
		}
	}
	if doc.Number == "" {
		doc.Number = NextDocumentNumber(state.Documents, doc.Type, now)
	}
	if doc.Date == "" {
		doc.Date = now.Format("2006-01-02")
	}
	doc.Status = StatusDraft
	doc.IsDeleted = false

	out := state.Clone()
	out.Documents = append(out.Documents, doc)
	return out, doc.Clone(), nil
}

// UpdateDocument validates and replaces a document by id. A document whose
// id is not on record is appended, matching the save-or-create behavior of
// the original form flow. Number and type are user-editable here and are
// not revalidated for uniqueness.
func UpdateDocument(state AppState, doc Document) (AppState, error) {
	if err := ValidateDocument(doc); err != nil {
		return state, err
	}

	out := state.Clone()
	for i := range out.Documents {
		if out.Documents[i].ID == doc.ID {
			out.Documents[i] = doc.Clone()
			return out, nil
		}
	}
	out.Documents = append(out.Documents, doc.Clone())
	return out, nil
}

// ConvertDocument creates a brand-new document of the target type from an
// existing one and flags the source as Converted. The new document copies
// customer, items, discount and notes, gets a fresh id and a freshly
// assigned number for the target type, today's date and Draft status. Its
// notes open with a "Ref: {source number}" backlink line and it carries the
// structured ConvertedFromID link. The source keeps its id, items and
// number; only its status changes.
func ConvertDocument(state AppState, id string, target DocType, now time.Time) (AppState, Document, error) {
	src, ok := state.DocumentByID(id)
	if !ok {
		return state, Document{}, ErrNotFound
	}
	if !target.Valid() {
		return state, Document{}, &ValidationError{Field: "type", Message: "unknown document type " + string(target)}
	}
	if !CanConvert(src.Type, target) {
		return state, Document{}, &ValidationError{
			Field:   "type",
			Message: "cannot convert " + src.Type.Label() + " to " + target.Label(),
		}
	}

	notes := "Ref: " + src.Number
	if strings.TrimSpace(src.Notes) != "" {
		notes += "\n" + src.Notes
	}

	newDoc := src.Clone()
	newDoc.ID = NewID()
	newDoc.Type = target
	newDoc.Number = NextDocumentNumber(state.Documents, target, now)
	newDoc.Date = now.Format("2006-01-02")
	newDoc.Status = StatusDraft
	newDoc.IsDeleted = false
	newDoc.Notes = notes
	newDoc.ConvertedFromID = src.ID

	out := state.Clone()
	for i := range out.Documents {
		if out.Documents[i].ID == src.ID {
			out.Documents[i].Status = StatusConverted
		}
	}
	out.Documents = append(out.Documents, newDoc)
	return out, newDoc.Clone(), nil
}

// UpdateStatus sets a document's status directly. Any status is reachable
// from any other here; the conversion flow is the only place that also
// touches another document. Unknown ids are silent no-ops.
func UpdateStatus(state AppState, id string, status DocStatus) AppState {
	out := state.Clone()
	for i := range out.Documents {
		if out.Documents[i].ID == id {
			out.Documents[i].Status = status
		}
	}
	return out
}

// SoftDelete moves a document to the recycle bin. It stays in storage and
// keeps every field; default listings and the numbering scan skip it.
func SoftDelete(state AppState, id string) AppState {
	out := state.Clone()
	for i := range out.Documents {
		if out.Documents[i].ID == id {
			out.Documents[i].IsDeleted = true
		}
	}
	return out
}

// Restore clears the soft-delete flag, returning the document byte-for-byte
// to its pre-delete form.
func Restore(state AppState, id string) AppState {
	out := state.Clone()
	for i := range out.Documents {
		if out.Documents[i].ID == id {
			out.Documents[i].IsDeleted = false
		}
	}
	return out
}

// Purge removes a document from the collection irrecoverably. Callers must
// have passed the out-of-band authorization gate first. Unknown ids filter
// to no change.
func Purge(state AppState, id string) AppState {
	out := state.Clone()
	docs := out.Documents[:0]
	for _, d := range out.Documents {
		if d.ID != id {
			docs = append(docs, d)
		}
	}
	out.Documents = docs
	return out
}

// SaveCustomer adds or replaces a customer by id.
func SaveCustomer(state AppState, c Customer) (AppState, error) {
	if strings.TrimSpace(c.Name) == "" {
		return state, &ValidationError{Field: "name", Message: "customer name is required"}
	}
	if c.ID == "" {
		c.ID = NewID()
	}

	out := state.Clone()
	for i := range out.Customers {
		if out.Customers[i].ID == c.ID {
			out.Customers[i] = c
			return out, nil
		}
	}
	out.Customers = append(out.Customers, c)
	return out, nil
}

// DeleteCustomer removes a customer. The delete is hard and does not
// cascade: documents keep their stale customerId and render "Unknown".
func DeleteCustomer(state AppState, id string) AppState {
	out := state.Clone()
	customers := out.Customers[:0]
	for _, c := range out.Customers {
		if c.ID != id {
			customers = append(customers, c)
		}
	}
	out.Customers = customers
	return out
}

// SaveProduct adds or replaces a catalog product by id.
func SaveProduct(state AppState, p Product) (AppState, error) {
	if strings.TrimSpace(p.Name) == "" {
		return state, &ValidationError{Field: "name", Message: "product name is required"}
	}
	if p.Price < 0 {
		return state, &ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	if p.ID == "" {
		p.ID = NewID()
	}

	out := state.Clone()
	for i := range out.Products {
		if out.Products[i].ID == p.ID {
			out.Products[i] = p
			return out, nil
		}
	}
	out.Products = append(out.Products, p)
	return out, nil
}

// DeleteProduct removes a catalog product. Existing line items prefilled
// from it are untouched.
func DeleteProduct(state AppState, id string) AppState {
	out := state.Clone()
	products := out.Products[:0]
	for _, p := range out.Products {
		if p.ID != id {
			products = append(products, p)
		}
	}
	out.Products = products
	return out
}

// SaveSettings replaces the singleton company settings record.
func SaveSettings(state AppState, settings CompanySettings) AppState {
	out := state.Clone()
	out.Settings = settings
	return out
}
