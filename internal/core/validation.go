package core

import "strings"

// ValidateDocument checks a document before it is created or updated.
// The first failure rejects the whole operation; there is no partial save.
// Item failures carry the offending 1-indexed row.
func ValidateDocument(doc Document) error {
	if !doc.Type.Valid() {
		return &ValidationError{Field: "type", Message: "unknown document type " + string(doc.Type)}
	}
	if strings.TrimSpace(doc.CustomerID) == "" {
		return &ValidationError{Field: "customerId", Message: "customer is required"}
	}
	if len(doc.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}

	for i, it := range doc.Items {
		row := i + 1
		if strings.TrimSpace(it.Description) == "" {
			return &ValidationError{Row: row, Field: "description", Message: "description is required"}
		}
		if it.Quantity < 1 {
			return &ValidationError{Row: row, Field: "quantity", Message: "quantity must be at least 1"}
		}
		if it.UnitPrice < 0.01 {
			return &ValidationError{Row: row, Field: "unitPrice", Message: "unit price must be at least 0.01"}
		}
		if it.TaxRate < 0 || it.TaxRate > 1 {
			return &ValidationError{Row: row, Field: "taxRate", Message: "tax rate must be between 0 and 1"}
		}
	}

	if doc.Discount < 0 {
		return &ValidationError{Field: "discount", Message: "discount cannot be negative"}
	}
	return nil
}
