package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"techfab-billing/internal/ai"
	"techfab-billing/internal/auth"
	"techfab-billing/internal/backup"
	"techfab-billing/internal/core"
	"techfab-billing/internal/logger"
	"techfab-billing/internal/render"
	"techfab-billing/internal/store"
)

type appService struct {
	store     *store.Store
	gate      *auth.Gate
	assistant *ai.Assistant // nil when no API key is configured
	now       func() time.Time
	log       zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
// assistant may be nil; AI operations then return ErrAssistantDisabled.
func NewAppService(st *store.Store, gate *auth.Gate, assistant *ai.Assistant) ApplicationService {
	return &appService{
		store:     st,
		gate:      gate,
		assistant: assistant,
		now:       time.Now,
		log:       logger.WithComponent("app"),
	}
}

// resolveDocID maps a user-supplied reference (document id or document
// number) to the document id. Number lookup prefers live documents over
// trashed ones.
func resolveDocID(state core.AppState, ref string) (string, bool) {
	for _, d := range state.Documents {
		if d.ID == ref {
			return d.ID, true
		}
	}
	var trashed string
	for _, d := range state.Documents {
		if !strings.EqualFold(d.Number, ref) {
			continue
		}
		if !d.IsDeleted {
			return d.ID, true
		}
		trashed = d.ID
	}
	if trashed != "" {
		return trashed, true
	}
	return "", false
}

func (s *appService) summarize(state core.AppState, doc core.Document) DocumentResult {
	return DocumentResult{
		Document:     doc,
		CustomerName: state.CustomerName(doc.CustomerID),
		Totals:       core.ComputeTotals(doc),
	}
}

func (s *appService) ListDocuments(ctx context.Context, filter DocumentFilter) (*DocumentListResult, error) {
	state := s.store.Snapshot()
	result := &DocumentListResult{Documents: []DocumentSummary{}}
	for _, d := range state.Documents {
		if d.IsDeleted != filter.Deleted {
			continue
		}
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		result.Documents = append(result.Documents, DocumentSummary{
			Document:     d,
			CustomerName: state.CustomerName(d.CustomerID),
			Totals:       core.ComputeTotals(d),
		})
	}
	return result, nil
}

func (s *appService) GetDocument(ctx context.Context, ref string) (*DocumentResult, error) {
	state := s.store.Snapshot()
	id, ok := resolveDocID(state, ref)
	if !ok {
		return nil, core.ErrNotFound
	}
	doc, _ := state.DocumentByID(id)
	result := s.summarize(state, doc)
	return &result, nil
}

func (s *appService) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*DocumentResult, error) {
	state := s.store.Snapshot()

	items := make([]core.LineItem, len(req.Items))
	for i, in := range req.Items {
		item := core.LineItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TaxRate:     in.TaxRate,
		}
		if in.ProductID != "" {
			if p, ok := state.ProductByID(in.ProductID); ok {
				if item.Description == "" {
					item.Description = p.Name
				}
				if item.UnitPrice == 0 {
					item.UnitPrice = p.Price
				}
				if item.TaxRate == 0 {
					item.TaxRate = p.TaxRate
				}
			}
		}
		items[i] = item
	}

	doc := core.Document{
		Type:       req.Type,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Items:      items,
		Discount:   req.Discount,
		Notes:      req.Notes,
	}

	var created core.Document
	err := s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		next, saved, err := core.CreateDocument(st, doc, s.now())
		if err != nil {
			return st, err
		}
		created = saved
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("type", string(created.Type)).
		Str("number", created.Number).
		Msg("document created")
	result := s.summarize(s.store.Snapshot(), created)
	return &result, nil
}

func (s *appService) UpdateDocument(ctx context.Context, doc core.Document) (*DocumentResult, error) {
	err := s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		return core.UpdateDocument(st, doc)
	})
	if err != nil {
		return nil, err
	}
	result := s.summarize(s.store.Snapshot(), doc)
	return &result, nil
}

func (s *appService) ConvertDocument(ctx context.Context, ref string, target core.DocType) (*DocumentResult, error) {
	var converted core.Document
	err := s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		id, ok := resolveDocID(st, ref)
		if !ok {
			return st, core.ErrNotFound
		}
		next, created, err := core.ConvertDocument(st, id, target, s.now())
		if err != nil {
			return st, err
		}
		converted = created
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("target", string(target)).
		Str("number", converted.Number).
		Msg("document converted")
	result := s.summarize(s.store.Snapshot(), converted)
	return &result, nil
}

func (s *appService) UpdateStatus(ctx context.Context, ref string, status core.DocStatus) error {
	if !status.Valid() {
		return &core.ValidationError{Field: "status", Message: "unknown status " + string(status)}
	}
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		id, _ := resolveDocID(st, ref)
		return core.UpdateStatus(st, id, status), nil
	})
}

func (s *appService) TrashDocument(ctx context.Context, ref string) error {
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		id, _ := resolveDocID(st, ref)
		return core.SoftDelete(st, id), nil
	})
}

func (s *appService) RestoreDocument(ctx context.Context, ref string) error {
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		id, _ := resolveDocID(st, ref)
		return core.Restore(st, id), nil
	})
}

func (s *appService) PurgeDocument(ctx context.Context, ref, password string) error {
	if !s.gate.Authorize(password) {
		return ErrUnauthorized
	}
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		id, _ := resolveDocID(st, ref)
		return core.Purge(st, id), nil
	})
}

func (s *appService) FactoryReset(ctx context.Context, password string) error {
	if !s.gate.Authorize(password) {
		return ErrUnauthorized
	}
	s.log.Warn().Msg("factory reset requested")
	return s.store.Replace(ctx, core.NewAppState())
}

func (s *appService) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	state := s.store.Snapshot()
	return &CustomerListResult{Customers: state.Customers}, nil
}

func (s *appService) SaveCustomer(ctx context.Context, c core.Customer) error {
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		return core.SaveCustomer(st, c)
	})
}

func (s *appService) DeleteCustomer(ctx context.Context, id string) error {
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		return core.DeleteCustomer(st, id), nil
	})
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	state := s.store.Snapshot()
	return &ProductListResult{Products: state.Products}, nil
}

func (s *appService) SaveProduct(ctx context.Context, p core.Product) error {
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		return core.SaveProduct(st, p)
	})
}

func (s *appService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		return core.DeleteProduct(st, id), nil
	})
}

func (s *appService) GetSettings(ctx context.Context) (core.CompanySettings, error) {
	return s.store.Snapshot().Settings, nil
}

func (s *appService) SaveSettings(ctx context.Context, settings core.CompanySettings) error {
	return s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		return core.SaveSettings(st, settings), nil
	})
}

func (s *appService) MonthlyReport(ctx context.Context, year int, month time.Month) (*ReportResult, error) {
	state := s.store.Snapshot()
	rows := core.MonthlySummary(state, year, month)

	result := &ReportResult{Year: year, Month: int(month), Rows: rows}
	for _, r := range rows {
		result.Subtotal += r.Subtotal
		result.Discount += r.Discount
		result.Tax += r.Tax
		result.Total += r.Total
	}
	return result, nil
}

func (s *appService) DashboardStats(ctx context.Context) (*core.DashboardStats, error) {
	stats := core.Dashboard(s.store.Snapshot())
	return &stats, nil
}

func (s *appService) ExportBackup(ctx context.Context) (*BackupResult, error) {
	now := s.now()
	err := s.store.Apply(ctx, func(st core.AppState) (core.AppState, error) {
		st.LastBackupDate = now.Format("2006-01-02")
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	data, err := backup.Export(s.store.Snapshot())
	if err != nil {
		return nil, err
	}
	return &BackupResult{FileName: backup.FileName(now), Data: data}, nil
}

func (s *appService) ImportBackup(ctx context.Context, data []byte) error {
	state, err := backup.Import(data)
	if err != nil {
		return err
	}
	s.log.Info().Int("documents", len(state.Documents)).Msg("backup imported")
	return s.store.Replace(ctx, state)
}

func (s *appService) BackupSchema() ([]byte, error) {
	return backup.Schema()
}

func (s *appService) PrintDocument(ctx context.Context, ref string) (*PrintResult, error) {
	state := s.store.Snapshot()
	id, ok := resolveDocID(state, ref)
	if !ok {
		return nil, core.ErrNotFound
	}
	data, err := render.Build(state, id)
	if err != nil {
		return nil, err
	}
	return &PrintResult{
		FileName: render.DocumentFileName(data.Doc),
		Artifact: data.Render(),
	}, nil
}

func (s *appService) SuggestDescription(ctx context.Context, text string) (string, error) {
	if s.assistant == nil {
		return "", ErrAssistantDisabled
	}
	return s.assistant.SuggestDescription(ctx, text)
}

func (s *appService) ClassifySST(ctx context.Context, text string) (*ai.SSTClassification, error) {
	if s.assistant == nil {
		return nil, ErrAssistantDisabled
	}
	return s.assistant.ClassifySST(ctx, text)
}

func (s *appService) ActivationKey(systemID string) string {
	return auth.GenerateKey(systemID)
}
