package core

import (
	"sort"
	"time"
)

// SummaryRow is one line of the monthly tax report handed to the render
// collaborator. Amounts are already rounded by ComputeTotals.
type SummaryRow struct {
	Date         string  `json:"date"`
	Number       string  `json:"number"`
	CustomerName string  `json:"customerName"`
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

// MonthlySummary builds the manual SST summary for one calendar month:
// one row per live, non-cancelled invoice dated in that month, ordered by
// date then number. Totals come from the central calculator, never from an
// ad-hoc re-sum.
func MonthlySummary(state AppState, year int, month time.Month) []SummaryRow {
	rows := []SummaryRow{}
	for _, d := range state.Documents {
		if d.IsDeleted || d.Type != DocTypeInvoice || d.Status == StatusCancelled {
			continue
		}
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil || date.Year() != year || date.Month() != month {
			continue
		}
		t := ComputeTotals(d)
		rows = append(rows, SummaryRow{
			Date:         d.Date,
			Number:       d.Number,
			CustomerName: state.CustomerName(d.CustomerID),
			Subtotal:     t.Subtotal,
			Discount:     t.Discount,
			Tax:          t.TaxTotal,
			Total:        t.GrandTotal,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Number < rows[j].Number
	})
	return rows
}

// DashboardStats aggregates the active document collection for the
// dashboard view.
type DashboardStats struct {
	StatusCounts map[DocStatus]int `json:"statusCounts"`
	TypeCounts   map[DocType]int   `json:"typeCounts"`
	// Revenue is the grand total of paid invoices.
	Revenue float64 `json:"revenue"`
	// Outstanding is the grand total of sent, unpaid invoices.
	Outstanding float64 `json:"outstanding"`
}

// Dashboard summarizes the live collection. Soft-deleted documents are
// excluded throughout; Converted documents stay visible in the counts but
// contribute to neither revenue nor outstanding.
func Dashboard(state AppState) DashboardStats {
	stats := DashboardStats{
		StatusCounts: map[DocStatus]int{},
		TypeCounts:   map[DocType]int{},
	}
	for _, d := range state.Documents {
		if d.IsDeleted {
			continue
		}
		stats.StatusCounts[d.Status]++
		stats.TypeCounts[d.Type]++
		if d.Type != DocTypeInvoice {
			continue
		}
		switch d.Status {
		case StatusPaid:
			stats.Revenue += ComputeTotals(d).GrandTotal
		case StatusSent:
			stats.Outstanding += ComputeTotals(d).GrandTotal
		}
	}
	return stats
}
