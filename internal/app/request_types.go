package app

import "techfab-billing/internal/core"

// DocumentFilter narrows ListDocuments. Zero values mean "all"; Deleted
// switches between the live listing and the recycle bin view.
type DocumentFilter struct {
	Type    core.DocType
	Status  core.DocStatus
	Deleted bool
}

// CreateDocumentRequest is the input for creating a new document. Number,
// id and status are assigned by the lifecycle, not the caller.
type CreateDocumentRequest struct {
	Type       core.DocType    `json:"type"`
	CustomerID string          `json:"customerId"`
	Date       string          `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Items      []LineItemInput `json:"items"`
	Discount   float64         `json:"discount,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// LineItemInput is a single row within a CreateDocumentRequest. When
// ProductID is set, blank fields prefill from the catalog entry; the link
// ends there, later product edits never touch the saved line.
type LineItemInput struct {
	ProductID   string  `json:"productId,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate,omitempty"`
}
