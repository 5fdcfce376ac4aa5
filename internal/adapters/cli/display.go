package cli

import (
	"fmt"
	"io"
	"strings"

	"techfab-billing/internal/app"
	"techfab-billing/internal/core"
	"techfab-billing/internal/money"
)

// PrintDocumentList renders the document table shared by the CLI and REPL.
func PrintDocumentList(w io.Writer, result *app.DocumentListResult, deleted bool) {
	title := "DOCUMENTS"
	if deleted {
		title = "RECYCLE BIN"
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 86))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", 86))
	if len(result.Documents) == 0 {
		fmt.Fprintln(w, "  No documents found.")
		fmt.Fprintln(w, strings.Repeat("=", 86))
		return
	}
	fmt.Fprintf(w, "  %-14s %-4s %-10s %-24s %-9s %14s\n", "NUMBER", "TYPE", "DATE", "CUSTOMER", "STATUS", "TOTAL")
	fmt.Fprintln(w, strings.Repeat("-", 86))
	for _, d := range result.Documents {
		name := d.CustomerName
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Fprintf(w, "  %-14s %-4s %-10s %-24s %-9s %14s\n",
			d.Document.Number, d.Document.Type, d.Document.Date, name,
			d.Document.Status, money.Format(d.Totals.GrandTotal))
	}
	fmt.Fprintln(w, strings.Repeat("=", 86))
}

// PrintDocument renders one document with its items and totals.
func PrintDocument(w io.Writer, result *app.DocumentResult) {
	d := result.Document
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 78))
	fmt.Fprintf(w, "  %s %s\n", strings.ToUpper(d.Type.Label()), d.Number)
	fmt.Fprintf(w, "  Date     : %s\n", d.Date)
	fmt.Fprintf(w, "  Customer : %s\n", result.CustomerName)
	fmt.Fprintf(w, "  Status   : %s\n", d.Status)
	if d.ConvertedFromID != "" {
		fmt.Fprintf(w, "  Converted from : %s\n", d.ConvertedFromID)
	}
	fmt.Fprintln(w, strings.Repeat("-", 78))
	fmt.Fprintf(w, "  %-3s %-38s %6s %12s %12s\n", "#", "DESCRIPTION", "QTY", "PRICE", "TOTAL")
	for i, it := range d.Items {
		desc := it.Description
		if len(desc) > 38 {
			desc = desc[:35] + "..."
		}
		fmt.Fprintf(w, "  %-3d %-38s %6.0f %12s %12s\n",
			i+1, desc, it.Quantity, money.Format(it.UnitPrice),
			money.Format(money.Round(it.Quantity*it.UnitPrice)))
	}
	fmt.Fprintln(w, strings.Repeat("-", 78))
	fmt.Fprintf(w, "  %62s %12s\n", "Subtotal :", money.Format(result.Totals.Subtotal))
	fmt.Fprintf(w, "  %62s %12s\n", "Tax :", money.Format(result.Totals.TaxTotal))
	if result.Totals.Discount > 0 {
		fmt.Fprintf(w, "  %62s %12s\n", "Discount :", money.Format(result.Totals.Discount))
	}
	fmt.Fprintf(w, "  %62s %12s\n", "TOTAL :", money.Format(result.Totals.GrandTotal))
	if d.Notes != "" {
		fmt.Fprintf(w, "  Notes: %s\n", strings.ReplaceAll(d.Notes, "\n", "\n         "))
	}
	fmt.Fprintln(w, strings.Repeat("=", 78))
}

// PrintReport renders the monthly SST summary table.
func PrintReport(w io.Writer, result *app.ReportResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 96))
	fmt.Fprintf(w, "  SST SUMMARY %04d-%02d\n", result.Year, result.Month)
	fmt.Fprintln(w, strings.Repeat("=", 96))
	if len(result.Rows) == 0 {
		fmt.Fprintln(w, "  No invoices in this month.")
		fmt.Fprintln(w, strings.Repeat("=", 96))
		return
	}
	fmt.Fprintf(w, "  %-10s %-14s %-22s %12s %10s %10s %12s\n",
		"DATE", "NUMBER", "CUSTOMER", "SUBTOTAL", "DISCOUNT", "TAX", "TOTAL")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, r := range result.Rows {
		name := r.CustomerName
		if len(name) > 22 {
			name = name[:19] + "..."
		}
		fmt.Fprintf(w, "  %-10s %-14s %-22s %12.2f %10.2f %10.2f %12.2f\n",
			r.Date, r.Number, name, r.Subtotal, r.Discount, r.Tax, r.Total)
	}
	fmt.Fprintln(w, strings.Repeat("-", 96))
	fmt.Fprintf(w, "  %-48s %12.2f %10.2f %10.2f %12.2f\n",
		"TOTAL", result.Subtotal, result.Discount, result.Tax, result.Total)
	fmt.Fprintln(w, strings.Repeat("=", 96))
}

// PrintDashboard renders the dashboard aggregates.
func PrintDashboard(w io.Writer, stats *core.DashboardStats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 52))
	fmt.Fprintln(w, "  DASHBOARD")
	fmt.Fprintln(w, strings.Repeat("=", 52))
	for _, status := range []core.DocStatus{
		core.StatusDraft, core.StatusSent, core.StatusPaid, core.StatusConverted, core.StatusCancelled,
	} {
		if n := stats.StatusCounts[status]; n > 0 {
			fmt.Fprintf(w, "  %-12s %4d\n", status, n)
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 52))
	fmt.Fprintf(w, "  %-20s %s\n", "Revenue (paid)", money.Format(stats.Revenue))
	fmt.Fprintf(w, "  %-20s %s\n", "Outstanding (sent)", money.Format(stats.Outstanding))
	fmt.Fprintln(w, strings.Repeat("=", 52))
}
