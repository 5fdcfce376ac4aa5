package app

import (
	"context"
	"errors"
	"time"

	"techfab-billing/internal/ai"
	"techfab-billing/internal/core"
)

// ErrUnauthorized is returned when the gate rejects the password supplied
// for an irreversible operation.
var ErrUnauthorized = errors.New("access denied")

// ErrAssistantDisabled is returned by AI operations when no API key is
// configured.
var ErrAssistantDisabled = errors.New("AI assistant is not configured")

// ApplicationService is the single interface all UI adapters (REPL, CLI)
// call. It decouples presentation from the lifecycle engine;
// implementations contain no display logic of any kind.
type ApplicationService interface {
	// ListDocuments returns documents matching the filter, each paired
	// with its resolved customer name and computed totals.
	ListDocuments(ctx context.Context, filter DocumentFilter) (*DocumentListResult, error)

	// GetDocument returns one document by id or by document number.
	GetDocument(ctx context.Context, ref string) (*DocumentResult, error)

	// CreateDocument validates and creates a new Draft document, assigning
	// the next sequential number for its type and year.
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*DocumentResult, error)

	// UpdateDocument validates and saves a full document by id.
	UpdateDocument(ctx context.Context, doc core.Document) (*DocumentResult, error)

	// ConvertDocument creates a new document of the target type from an
	// existing one and marks the source Converted.
	ConvertDocument(ctx context.Context, ref string, target core.DocType) (*DocumentResult, error)

	// UpdateStatus sets a document's status directly.
	UpdateStatus(ctx context.Context, ref string, status core.DocStatus) error

	// TrashDocument moves a document to the recycle bin.
	TrashDocument(ctx context.Context, ref string) error

	// RestoreDocument brings a document back from the recycle bin.
	RestoreDocument(ctx context.Context, ref string) error

	// PurgeDocument removes a document irrecoverably. The gate password
	// must authorize the operation.
	PurgeDocument(ctx context.Context, ref, password string) error

	// FactoryReset wipes the aggregate back to the seeded default state.
	// The gate password must authorize the operation.
	FactoryReset(ctx context.Context, password string) error

	ListCustomers(ctx context.Context) (*CustomerListResult, error)
	SaveCustomer(ctx context.Context, c core.Customer) error
	DeleteCustomer(ctx context.Context, id string) error

	ListProducts(ctx context.Context) (*ProductListResult, error)
	SaveProduct(ctx context.Context, p core.Product) error
	DeleteProduct(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (core.CompanySettings, error)
	SaveSettings(ctx context.Context, settings core.CompanySettings) error

	// MonthlyReport returns the SST summary rows for one calendar month.
	MonthlyReport(ctx context.Context, year int, month time.Month) (*ReportResult, error)

	// DashboardStats aggregates the live collection for the dashboard.
	DashboardStats(ctx context.Context) (*core.DashboardStats, error)

	// ExportBackup stamps LastBackupDate and returns the serialized
	// aggregate with its conventional file name.
	ExportBackup(ctx context.Context) (*BackupResult, error)

	// ImportBackup validates a backup payload and replaces the aggregate.
	ImportBackup(ctx context.Context, data []byte) error

	// BackupSchema returns the JSON Schema of the backup payload.
	BackupSchema() ([]byte, error)

	// PrintDocument renders the printable artifact for a document.
	PrintDocument(ctx context.Context, ref string) (*PrintResult, error)

	// SuggestDescription rewrites a short line item description into
	// professional invoice wording.
	SuggestDescription(ctx context.Context, text string) (string, error)

	// ClassifySST reports whether an item is likely SST-taxable.
	ClassifySST(ctx context.Context, text string) (*ai.SSTClassification, error)

	// ActivationKey derives the device activation key for a system id.
	ActivationKey(systemID string) string
}
