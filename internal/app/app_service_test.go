package app_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"techfab-billing/internal/app"
	"techfab-billing/internal/auth"
	"techfab-billing/internal/core"
	"techfab-billing/internal/store"
)

type memPersister struct {
	snapshot *core.AppState
}

func (m *memPersister) Load(ctx context.Context) (*core.AppState, error) {
	if m.snapshot == nil {
		return nil, nil
	}
	clone := m.snapshot.Clone()
	return &clone, nil
}

func (m *memPersister) Save(ctx context.Context, state core.AppState) error {
	clone := state.Clone()
	m.snapshot = &clone
	return nil
}

func newService(t *testing.T) (app.ApplicationService, *memPersister) {
	t.Helper()
	p := &memPersister{}
	st, err := store.Open(context.Background(), p)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	gate := auth.NewGate("secret", "test-host")
	return app.NewAppService(st, gate, nil), p
}

func createQuotation(t *testing.T, svc app.ApplicationService) *app.DocumentResult {
	t.Helper()
	customers, err := svc.ListCustomers(context.Background())
	if err != nil || len(customers.Customers) == 0 {
		t.Fatalf("seed customers unavailable: %v", err)
	}
	result, err := svc.CreateDocument(context.Background(), app.CreateDocumentRequest{
		Type:       core.DocTypeQuotation,
		CustomerID: customers.Customers[0].ID,
		Items: []app.LineItemInput{
			{Description: "Fabrication works", Quantity: 2, UnitPrice: 100, TaxRate: 0.08},
		},
	})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	return result
}

func TestCreateDocument_EndToEnd(t *testing.T) {
	svc, p := newService(t)
	result := createQuotation(t, svc)

	wantNumber := fmt.Sprintf("QT-%d-0001", time.Now().Year())
	if result.Document.Number != wantNumber {
		t.Errorf("number = %s, want %s", result.Document.Number, wantNumber)
	}
	if result.Totals.GrandTotal != 216 {
		t.Errorf("grandTotal = %v, want 216", result.Totals.GrandTotal)
	}
	if result.CustomerName == "" || result.CustomerName == "Unknown" {
		t.Errorf("customerName = %q", result.CustomerName)
	}

	// The new document is already on disk.
	if len(p.snapshot.Documents) != 1 {
		t.Error("created document not persisted")
	}
}

func TestCreateDocument_ProductPrefill(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	customers, _ := svc.ListCustomers(ctx)
	products, _ := svc.ListProducts(ctx)
	if len(products.Products) == 0 {
		t.Fatal("seed products unavailable")
	}
	catalog := products.Products[0]

	result, err := svc.CreateDocument(ctx, app.CreateDocumentRequest{
		Type:       core.DocTypeQuotation,
		CustomerID: customers.Customers[0].ID,
		Items:      []app.LineItemInput{{ProductID: catalog.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	item := result.Document.Items[0]
	if item.Description != catalog.Name {
		t.Errorf("description = %q, want catalog name %q", item.Description, catalog.Name)
	}
	if item.UnitPrice != catalog.Price {
		t.Errorf("unitPrice = %v, want catalog price %v", item.UnitPrice, catalog.Price)
	}
}

func TestGetDocument_ResolvesByNumber(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	byID, err := svc.GetDocument(ctx, created.Document.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	byNumber, err := svc.GetDocument(ctx, strings.ToLower(created.Document.Number))
	if err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if !reflect.DeepEqual(byID.Document, byNumber.Document) {
		t.Error("id and case-insensitive number lookups must agree")
	}

	if _, err := svc.GetDocument(ctx, "QT-1999-0001"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown ref: got %v, want ErrNotFound", err)
	}
}

func TestConvertDocument_EndToEnd(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	converted, err := svc.ConvertDocument(ctx, created.Document.Number, core.DocTypeProForma)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if converted.Document.Type != core.DocTypeProForma {
		t.Errorf("type = %s, want PI", converted.Document.Type)
	}
	if !strings.HasPrefix(converted.Document.Notes, "Ref: "+created.Document.Number) {
		t.Errorf("notes = %q, want Ref backlink", converted.Document.Notes)
	}

	source, err := svc.GetDocument(ctx, created.Document.ID)
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if source.Document.Status != core.StatusConverted {
		t.Errorf("source status = %s, want Converted", source.Document.Status)
	}

	if _, err := svc.ConvertDocument(ctx, created.Document.ID, core.DocTypeInvoice); !core.IsValidation(err) {
		t.Errorf("QT->INV: got %v, want ValidationError", err)
	}
}

func TestTrashRestoreFlow(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	if err := svc.TrashDocument(ctx, created.Document.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	live, _ := svc.ListDocuments(ctx, app.DocumentFilter{})
	if len(live.Documents) != 0 {
		t.Error("trashed document still listed as live")
	}
	bin, _ := svc.ListDocuments(ctx, app.DocumentFilter{Deleted: true})
	if len(bin.Documents) != 1 {
		t.Fatal("trashed document missing from the recycle bin")
	}

	if err := svc.RestoreDocument(ctx, created.Document.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	live, _ = svc.ListDocuments(ctx, app.DocumentFilter{})
	if len(live.Documents) != 1 {
		t.Error("restored document not back in the live list")
	}

	// Unknown refs are silent no-ops on flag mutations.
	if err := svc.TrashDocument(ctx, "nope"); err != nil {
		t.Errorf("trash unknown ref: %v", err)
	}
}

func TestPurgeDocument_Gate(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	if err := svc.PurgeDocument(ctx, created.Document.ID, "wrong"); !errors.Is(err, app.ErrUnauthorized) {
		t.Fatalf("wrong password: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.GetDocument(ctx, created.Document.ID); err != nil {
		t.Fatal("document must survive an unauthorized purge")
	}

	if err := svc.PurgeDocument(ctx, created.Document.ID, "secret"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, err := svc.GetDocument(ctx, created.Document.ID); !errors.Is(err, core.ErrNotFound) {
		t.Error("purged document still resolvable")
	}
}

func TestFactoryReset(t *testing.T) {
	svc, _ := newService(t)
	createQuotation(t, svc)
	ctx := context.Background()

	if err := svc.FactoryReset(ctx, "wrong"); !errors.Is(err, app.ErrUnauthorized) {
		t.Fatalf("wrong password: got %v, want ErrUnauthorized", err)
	}
	if err := svc.FactoryReset(ctx, "secret"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	live, _ := svc.ListDocuments(ctx, app.DocumentFilter{})
	if len(live.Documents) != 0 {
		t.Error("reset must drop all documents")
	}
	customers, _ := svc.ListCustomers(ctx)
	if len(customers.Customers) == 0 {
		t.Error("reset must restore seed customers")
	}
}

func TestExportImportBackup(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	exported, err := svc.ExportBackup(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(exported.FileName, "techfab_backup_") {
		t.Errorf("fileName = %q", exported.FileName)
	}

	if err := svc.FactoryReset(ctx, "secret"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := svc.ImportBackup(ctx, exported.Data); err != nil {
		t.Fatalf("import: %v", err)
	}

	restored, err := svc.GetDocument(ctx, created.Document.ID)
	if err != nil {
		t.Fatalf("document lost across export/import: %v", err)
	}
	if !reflect.DeepEqual(restored.Document, created.Document) {
		t.Error("document drifted across export/import")
	}

	if err := svc.ImportBackup(ctx, []byte("garbage")); err == nil {
		t.Error("garbage payload must be rejected")
	}
}

func TestUpdateStatus_Validation(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	if err := svc.UpdateStatus(ctx, created.Document.ID, "Shipped"); !core.IsValidation(err) {
		t.Errorf("unknown status: got %v, want ValidationError", err)
	}
	if err := svc.UpdateStatus(ctx, created.Document.ID, core.StatusSent); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, _ := svc.GetDocument(ctx, created.Document.ID)
	if got.Document.Status != core.StatusSent {
		t.Errorf("status = %s, want Sent", got.Document.Status)
	}
}

func TestListDocuments_Filters(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	byType, _ := svc.ListDocuments(ctx, app.DocumentFilter{Type: core.DocTypeInvoice})
	if len(byType.Documents) != 0 {
		t.Error("type filter leaked a quotation")
	}

	byStatus, _ := svc.ListDocuments(ctx, app.DocumentFilter{Status: core.StatusDraft})
	if len(byStatus.Documents) != 1 {
		t.Error("status filter missed the draft")
	}
	if byStatus.Documents[0].Document.ID != created.Document.ID {
		t.Error("filter returned the wrong document")
	}
}

func TestMonthlyReport_SumsColumns(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	customers, _ := svc.ListCustomers(ctx)

	for i := 0; i < 2; i++ {
		if _, err := svc.CreateDocument(ctx, app.CreateDocumentRequest{
			Type:       core.DocTypeInvoice,
			CustomerID: customers.Customers[0].ID,
			Items: []app.LineItemInput{
				{Description: "works", Quantity: 1, UnitPrice: 100, TaxRate: 0.08},
			},
		}); err != nil {
			t.Fatalf("create invoice %d: %v", i, err)
		}
	}

	now := time.Now()
	report, err := svc.MonthlyReport(ctx, now.Year(), now.Month())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Rows))
	}
	if report.Subtotal != 200 || report.Tax != 16 || report.Total != 216 {
		t.Errorf("column sums = %v/%v/%v, want 200/16/216", report.Subtotal, report.Tax, report.Total)
	}
}

func TestAssistantDisabled(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.SuggestDescription(context.Background(), "weld frame"); !errors.Is(err, app.ErrAssistantDisabled) {
		t.Errorf("got %v, want ErrAssistantDisabled", err)
	}
	if _, err := svc.ClassifySST(context.Background(), "welding service"); !errors.Is(err, app.ErrAssistantDisabled) {
		t.Errorf("got %v, want ErrAssistantDisabled", err)
	}
}

func TestActivationKey(t *testing.T) {
	svc, _ := newService(t)
	if got := svc.ActivationKey("a1b2c3"); got != "5328" {
		t.Errorf("ActivationKey = %s, want 5328", got)
	}
}

func TestPrintDocument(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)

	result, err := svc.PrintDocument(context.Background(), created.Document.Number)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.HasSuffix(result.FileName, ".pdf") {
		t.Errorf("fileName = %q", result.FileName)
	}
	if !strings.Contains(result.Artifact, created.Document.Number) {
		t.Error("artifact missing the document number")
	}
	if !strings.Contains(result.Artifact, "RINGGIT MALAYSIA") {
		t.Error("artifact missing the amount in words")
	}
}

func TestUpdateDocument(t *testing.T) {
	svc, _ := newService(t)
	created := createQuotation(t, svc)
	ctx := context.Background()

	doc := created.Document
	doc.Discount = 16
	doc.Notes = "Negotiated discount"

	result, err := svc.UpdateDocument(ctx, doc)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Totals.GrandTotal != 200 {
		t.Errorf("grandTotal = %v, want 200 after discount", result.Totals.GrandTotal)
	}

	saved, _ := svc.GetDocument(ctx, doc.ID)
	if saved.Document.Notes != "Negotiated discount" {
		t.Errorf("notes = %q", saved.Document.Notes)
	}
	if saved.Document.Number != created.Document.Number {
		t.Error("update must not renumber the document")
	}

	// Validation still applies on the edit path.
	doc.Items = nil
	if _, err := svc.UpdateDocument(ctx, doc); !core.IsValidation(err) {
		t.Errorf("itemless update: got %v, want ValidationError", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	settings.Name = "Techfab Engineering (M) Sdn Bhd"

	if err := svc.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	got, _ := svc.GetSettings(ctx)
	if got.Name != "Techfab Engineering (M) Sdn Bhd" {
		t.Errorf("name = %q", got.Name)
	}
}
