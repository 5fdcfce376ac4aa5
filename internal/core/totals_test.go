package core_test

import (
	"testing"

	"techfab-billing/internal/core"
)

func docWithItems(discount float64, items ...core.LineItem) core.Document {
	return core.Document{
		ID:         "doc-1",
		Type:       core.DocTypeInvoice,
		CustomerID: "cust-1",
		Items:      items,
		Discount:   discount,
		Status:     core.StatusDraft,
	}
}

func TestComputeTotals_ExampleScenario(t *testing.T) {
	doc := docWithItems(0, core.LineItem{Description: "Fabrication", Quantity: 2, UnitPrice: 100, TaxRate: 0.08})
	got := core.ComputeTotals(doc)

	if got.Subtotal != 200.00 {
		t.Errorf("subtotal = %v, want 200.00", got.Subtotal)
	}
	if got.TaxTotal != 16.00 {
		t.Errorf("taxTotal = %v, want 16.00", got.TaxTotal)
	}
	if got.GrandTotal != 216.00 {
		t.Errorf("grandTotal = %v, want 216.00", got.GrandTotal)
	}
}

func TestComputeTotals_PerLineRounding(t *testing.T) {
	// Three lines of 0.335 each: rounding per line gives 0.34 × 3 = 1.02.
	// Rounding only the bulk sum would give 1.01, drifting from the sum of
	// the printed line amounts.
	doc := docWithItems(0,
		core.LineItem{Description: "a", Quantity: 1, UnitPrice: 0.335},
		core.LineItem{Description: "b", Quantity: 1, UnitPrice: 0.335},
		core.LineItem{Description: "c", Quantity: 1, UnitPrice: 0.335},
	)
	got := core.ComputeTotals(doc)
	if got.Subtotal != 1.02 {
		t.Errorf("subtotal = %v, want 1.02 (sum of individually rounded lines)", got.Subtotal)
	}
}

func TestComputeTotals_OrderInvariance(t *testing.T) {
	items := []core.LineItem{
		{Description: "a", Quantity: 3, UnitPrice: 19.99, TaxRate: 0.08},
		{Description: "b", Quantity: 1, UnitPrice: 0.335},
		{Description: "c", Quantity: 7, UnitPrice: 123.45, TaxRate: 0.06},
	}
	forward := core.ComputeTotals(docWithItems(5, items...))
	reversed := core.ComputeTotals(docWithItems(5, items[2], items[1], items[0]))
	if forward != reversed {
		t.Errorf("totals depend on item order: %+v vs %+v", forward, reversed)
	}
}

func TestComputeTotals_GrandTotalNeverNegative(t *testing.T) {
	doc := docWithItems(1000, core.LineItem{Description: "a", Quantity: 1, UnitPrice: 50, TaxRate: 0.08})
	got := core.ComputeTotals(doc)
	if got.GrandTotal != 0 {
		t.Errorf("grandTotal = %v, want 0 when discount exceeds the document", got.GrandTotal)
	}
}

func TestComputeTotals_DiscountApplied(t *testing.T) {
	doc := docWithItems(16, core.LineItem{Description: "a", Quantity: 2, UnitPrice: 100, TaxRate: 0.08})
	got := core.ComputeTotals(doc)
	if got.GrandTotal != 200.00 {
		t.Errorf("grandTotal = %v, want 200.00", got.GrandTotal)
	}
	if got.Discount != 16 {
		t.Errorf("discount = %v, want 16", got.Discount)
	}
}

func TestComputeTotals_DefaultTaxRateIsZero(t *testing.T) {
	doc := docWithItems(0, core.LineItem{Description: "a", Quantity: 4, UnitPrice: 25})
	got := core.ComputeTotals(doc)
	if got.TaxTotal != 0 {
		t.Errorf("taxTotal = %v, want 0 for untaxed items", got.TaxTotal)
	}
	if got.GrandTotal != 100 {
		t.Errorf("grandTotal = %v, want 100", got.GrandTotal)
	}
}

func TestTotalQuantity(t *testing.T) {
	doc := docWithItems(0,
		core.LineItem{Description: "a", Quantity: 2, UnitPrice: 1},
		core.LineItem{Description: "b", Quantity: 3.5, UnitPrice: 1},
	)
	if got := core.TotalQuantity(doc); got != 5.5 {
		t.Errorf("TotalQuantity = %v, want 5.5", got)
	}
}
