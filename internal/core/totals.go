package core

import "techfab-billing/internal/money"

// Totals is the derived financial summary of a document. All fields are
// already rounded to cents; consumers (list views, dashboard, print
// artifact, tax report) must hand these values on as-is and never re-derive
// them from the raw items.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxTotal   float64 `json:"taxTotal"`
	Discount   float64 `json:"discount"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals derives subtotal, tax and grand total for a document.
//
// Every line amount is rounded individually before summation so the bulk
// totals always equal the sum of the per-line amounts a reader sees
// printed. Rounding only the final total drifts from that sum. The grand
// total is clamped at zero: a discount larger than the document can never
// produce a negative amount payable. Item order does not affect the result.
func ComputeTotals(doc Document) Totals {
	var subtotal, taxTotal float64
	for _, it := range doc.Items {
		subtotal += money.Round(it.Quantity * it.UnitPrice)
		taxTotal += money.Round(it.Quantity * it.UnitPrice * it.TaxRate)
	}

	grand := money.Round(subtotal + taxTotal - doc.Discount)
	if grand < 0 {
		grand = 0
	}

	return Totals{
		Subtotal:   money.Round(subtotal),
		TaxTotal:   money.Round(taxTotal),
		Discount:   doc.Discount,
		GrandTotal: grand,
	}
}

// TotalQuantity sums the item quantities, shown under the quantity column
// of the print artifact.
func TotalQuantity(doc Document) float64 {
	var total float64
	for _, it := range doc.Items {
		total += it.Quantity
	}
	return total
}
