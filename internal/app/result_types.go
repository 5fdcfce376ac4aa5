package app

import "techfab-billing/internal/core"

// DocumentSummary pairs a document with its resolved display data.
type DocumentSummary struct {
	Document     core.Document
	CustomerName string
	Totals       core.Totals
}

// DocumentListResult is returned by ListDocuments.
type DocumentListResult struct {
	Documents []DocumentSummary
}

// DocumentResult is returned by single-document operations.
type DocumentResult struct {
	Document     core.Document
	CustomerName string
	Totals       core.Totals
}

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product
}

// ReportResult is returned by MonthlyReport.
type ReportResult struct {
	Year  int
	Month int
	Rows  []core.SummaryRow
	// Totals across all rows, each column summed over already-rounded
	// row values.
	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64
}

// BackupResult is returned by ExportBackup.
type BackupResult struct {
	FileName string
	Data     []byte
}

// PrintResult is returned by PrintDocument.
type PrintResult struct {
	FileName string
	Artifact string
}
