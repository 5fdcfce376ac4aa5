package core_test

import (
	"testing"
	"time"

	"techfab-billing/internal/core"
)

func reportDoc(docType core.DocType, number, date string, status core.DocStatus, unitPrice float64) core.Document {
	return core.Document{
		ID:         core.NewID(),
		Type:       docType,
		Number:     number,
		CustomerID: "cust-1",
		Date:       date,
		Status:     status,
		Items: []core.LineItem{
			{Description: "works", Quantity: 1, UnitPrice: unitPrice, TaxRate: 0.08},
		},
	}
}

func TestMonthlySummary_FiltersAndSorts(t *testing.T) {
	state := baseState()
	state.Documents = []core.Document{
		reportDoc(core.DocTypeInvoice, "INV-2025-0003", "2025-06-20", core.StatusSent, 100),
		reportDoc(core.DocTypeInvoice, "INV-2025-0001", "2025-06-05", core.StatusPaid, 200),
		// Same date as 0003, lower number sorts first.
		reportDoc(core.DocTypeInvoice, "INV-2025-0002", "2025-06-20", core.StatusDraft, 300),
		// Out of month, other type, cancelled, trashed: all excluded.
		reportDoc(core.DocTypeInvoice, "INV-2025-0004", "2025-07-01", core.StatusPaid, 50),
		reportDoc(core.DocTypeQuotation, "QT-2025-0001", "2025-06-10", core.StatusDraft, 50),
		reportDoc(core.DocTypeInvoice, "INV-2025-0005", "2025-06-11", core.StatusCancelled, 50),
	}
	trashed := reportDoc(core.DocTypeInvoice, "INV-2025-0006", "2025-06-12", core.StatusPaid, 50)
	trashed.IsDeleted = true
	state.Documents = append(state.Documents, trashed)

	rows := core.MonthlySummary(state, 2025, time.June)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %+v", len(rows), rows)
	}

	order := []string{"INV-2025-0001", "INV-2025-0002", "INV-2025-0003"}
	for i, want := range order {
		if rows[i].Number != want {
			t.Errorf("row %d = %s, want %s", i, rows[i].Number, want)
		}
	}

	if rows[0].Subtotal != 200 || rows[0].Tax != 16 || rows[0].Total != 216 {
		t.Errorf("row amounts must come from the totals calculator: %+v", rows[0])
	}
	if rows[0].CustomerName != "Syarikat Maju Jaya" {
		t.Errorf("customerName = %q", rows[0].CustomerName)
	}
}

func TestMonthlySummary_EmptyMonth(t *testing.T) {
	rows := core.MonthlySummary(baseState(), 2025, time.January)
	if rows == nil || len(rows) != 0 {
		t.Errorf("empty month must yield an empty, non-nil slice: %#v", rows)
	}
}

func TestDashboard(t *testing.T) {
	state := baseState()
	state.Documents = []core.Document{
		reportDoc(core.DocTypeInvoice, "INV-2025-0001", "2025-06-01", core.StatusPaid, 100),
		reportDoc(core.DocTypeInvoice, "INV-2025-0002", "2025-06-02", core.StatusPaid, 200),
		reportDoc(core.DocTypeInvoice, "INV-2025-0003", "2025-06-03", core.StatusSent, 50),
		reportDoc(core.DocTypeQuotation, "QT-2025-0001", "2025-06-04", core.StatusDraft, 999),
		// Converted invoices stay in the counts but carry no money.
		reportDoc(core.DocTypeInvoice, "INV-2025-0004", "2025-06-05", core.StatusConverted, 500),
	}
	trashed := reportDoc(core.DocTypeInvoice, "INV-2025-0005", "2025-06-06", core.StatusPaid, 50)
	trashed.IsDeleted = true
	state.Documents = append(state.Documents, trashed)

	stats := core.Dashboard(state)

	if got := stats.StatusCounts[core.StatusPaid]; got != 2 {
		t.Errorf("paid count = %d, want 2 (trashed excluded)", got)
	}
	if got := stats.TypeCounts[core.DocTypeInvoice]; got != 4 {
		t.Errorf("invoice count = %d, want 4", got)
	}
	if stats.Revenue != 324 { // 108 + 216
		t.Errorf("revenue = %v, want 324", stats.Revenue)
	}
	if stats.Outstanding != 54 {
		t.Errorf("outstanding = %v, want 54", stats.Outstanding)
	}
}
