package render_test

import (
	"errors"
	"strings"
	"testing"

	"techfab-billing/internal/core"
	"techfab-billing/internal/render"
)

func printState() core.AppState {
	state := core.NewAppState()
	state.Customers = []core.Customer{{
		ID:          "cust-1",
		Name:        "Syarikat Maju Jaya",
		Address:     "12 Jalan Industri, 81200 Johor Bahru",
		Phone:       "07-1234567",
		AttentionTo: "Encik Farid",
	}}
	state.Documents = []core.Document{{
		ID:         "doc-1",
		Type:       core.DocTypeInvoice,
		Number:     "INV-2025-0001",
		CustomerID: "cust-1",
		Date:       "2025-06-15",
		Status:     core.StatusSent,
		Items: []core.LineItem{
			{Description: "Fabrication works", Quantity: 2, UnitPrice: 100, TaxRate: 0.08},
		},
	}}
	return state
}

func TestBuild(t *testing.T) {
	data, err := render.Build(printState(), "doc-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if data.Customer.Name != "Syarikat Maju Jaya" {
		t.Errorf("customer = %q", data.Customer.Name)
	}
	if data.Totals.GrandTotal != 216 {
		t.Errorf("grandTotal = %v, want 216", data.Totals.GrandTotal)
	}
	if data.AmountInWords != "RINGGIT MALAYSIA: TWO HUNDRED AND SIXTEEN ONLY" {
		t.Errorf("amountInWords = %q", data.AmountInWords)
	}
}

func TestBuild_UnknownDocument(t *testing.T) {
	if _, err := render.Build(printState(), "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestBuild_DanglingCustomer(t *testing.T) {
	state := printState()
	state.Customers = nil

	data, err := render.Build(state, "doc-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if data.Customer.Name != "Unknown" {
		t.Errorf("dangling customer resolves to %q, want Unknown", data.Customer.Name)
	}
}

func TestRender_Invoice(t *testing.T) {
	data, err := render.Build(printState(), "doc-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := data.Render()

	for _, want := range []string{
		"INVOICE",
		"INV-2025-0001",
		"15-06-2025",
		"BILL TO:",
		"Syarikat Maju Jaya",
		"Attn: Encik Farid",
		"Fabrication works",
		"Subtotal :",
		"RM 216.00",
		"RINGGIT MALAYSIA: TWO HUNDRED AND SIXTEEN ONLY",
		"PAYMENT INFO:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("invoice artifact missing %q", want)
		}
	}
}

func TestRender_DeliveryOrderOmitsPrices(t *testing.T) {
	state := printState()
	state.Documents[0].Type = core.DocTypeDeliveryOrder
	state.Documents[0].Number = "DO-2025-0001"

	data, err := render.Build(state, "doc-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := data.Render()

	for _, want := range []string{"DELIVER TO:", "Total Qty: 2", "RECEIVED BY:"} {
		if !strings.Contains(out, want) {
			t.Errorf("delivery order artifact missing %q", want)
		}
	}
	for _, forbidden := range []string{"Subtotal", "RM ", "RINGGIT MALAYSIA", "PAYMENT INFO"} {
		if strings.Contains(out, forbidden) {
			t.Errorf("delivery order artifact must not contain %q", forbidden)
		}
	}
}

func TestRender_QuotationFooter(t *testing.T) {
	state := printState()
	state.Documents[0].Type = core.DocTypeQuotation
	state.Documents[0].Number = "QT-2025-0001"

	data, _ := render.Build(state, "doc-1")
	out := data.Render()
	if !strings.Contains(out, "ACCEPTED BY:") {
		t.Error("quotation artifact missing acceptance footer")
	}
	if strings.Contains(out, "PAYMENT INFO:") {
		t.Error("quotation artifact must not carry payment details")
	}
}

func TestDocumentFileName(t *testing.T) {
	doc := core.Document{Type: core.DocTypeQuotation, Number: "QT-2025-0001"}
	if got := render.DocumentFileName(doc); got != "QT_QT_2025_0001.pdf" {
		t.Errorf("DocumentFileName = %q", got)
	}
}
