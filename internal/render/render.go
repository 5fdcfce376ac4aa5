// Package render is the print collaborator seam. It assembles one fully
// resolved (document, customer, settings) triple with pre-rounded totals
// and lays it out as a plain-text printable artifact. Totals always come
// from the central calculator; nothing here re-derives an amount.
package render

import (
	"fmt"
	"strings"

	"techfab-billing/internal/core"
	"techfab-billing/internal/money"
)

// PrintData is everything the renderer needs for one document.
type PrintData struct {
	Doc           core.Document
	Customer      core.Customer
	Settings      core.CompanySettings
	Totals        core.Totals
	TotalQty      float64
	AmountInWords string
}

// Build resolves the print data for a document id. A dangling customer
// reference resolves to an "Unknown" placeholder rather than failing.
func Build(state core.AppState, docID string) (PrintData, error) {
	doc, ok := state.DocumentByID(docID)
	if !ok {
		return PrintData{}, core.ErrNotFound
	}

	customer, ok := state.CustomerByID(doc.CustomerID)
	if !ok {
		customer = core.Customer{Name: "Unknown"}
	}

	totals := core.ComputeTotals(doc)
	return PrintData{
		Doc:           doc,
		Customer:      customer,
		Settings:      state.Settings,
		Totals:        totals,
		TotalQty:      core.TotalQuantity(doc),
		AmountInWords: core.AmountToWords(totals.GrandTotal),
	}, nil
}

// Render lays out the printable artifact. Delivery orders list quantities
// only; every other type carries prices, tax and the totals block.
func (p PrintData) Render() string {
	isDO := p.Doc.Type == core.DocTypeDeliveryOrder
	var b strings.Builder
	rule := strings.Repeat("=", 72)
	thin := strings.Repeat("-", 72)

	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("%-46s%26s\n", p.Settings.Name, strings.ToUpper(p.Doc.Type.Label())))
	b.WriteString(fmt.Sprintf("(SSM: %s)\n", p.Settings.SSMNumber))
	if p.Settings.SSTRegNo != "" {
		b.WriteString(fmt.Sprintf("SST ID: %s\n", p.Settings.SSTRegNo))
	}
	for _, line := range strings.Split(p.Settings.Address, "\n") {
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("Tel: %s | Email: %s\n", p.Settings.Phone, p.Settings.Email))
	b.WriteString(thin + "\n")
	b.WriteString(fmt.Sprintf("No:   %s\n", p.Doc.Number))
	b.WriteString(fmt.Sprintf("Date: %s\n", displayDate(p.Doc.Date)))
	b.WriteString(thin + "\n")

	if isDO {
		b.WriteString("DELIVER TO:\n")
	} else {
		b.WriteString("BILL TO:\n")
	}
	b.WriteString(p.Customer.Name + "\n")
	if p.Customer.Address != "" {
		b.WriteString(p.Customer.Address + "\n")
	}
	var contact []string
	if p.Customer.AttentionTo != "" {
		contact = append(contact, "Attn: "+p.Customer.AttentionTo)
	}
	if p.Customer.Phone != "" {
		contact = append(contact, "Tel: "+p.Customer.Phone)
	}
	if len(contact) > 0 {
		b.WriteString(strings.Join(contact, "  ") + "\n")
	}
	b.WriteString(thin + "\n")

	if isDO {
		b.WriteString(fmt.Sprintf("%-3s %-56s %10s\n", "#", "DESCRIPTION", "QTY"))
		b.WriteString(thin + "\n")
		for i, it := range p.Doc.Items {
			b.WriteString(fmt.Sprintf("%-3d %-56s %10s\n", i+1, clip(it.Description, 56), trimQty(it.Quantity)))
		}
	} else {
		b.WriteString(fmt.Sprintf("%-3s %-31s %6s %12s %4s %12s\n", "#", "DESCRIPTION", "QTY", "PRICE", "TAX", "TOTAL"))
		b.WriteString(thin + "\n")
		for i, it := range p.Doc.Items {
			b.WriteString(fmt.Sprintf("%-3d %-31s %6s %12s %3.0f%% %12s\n",
				i+1,
				clip(it.Description, 31),
				trimQty(it.Quantity),
				money.Format(it.UnitPrice),
				it.TaxRate*100,
				money.Format(money.Round(it.Quantity*it.UnitPrice)),
			))
		}
	}
	b.WriteString(thin + "\n")
	b.WriteString(fmt.Sprintf("Total Qty: %s\n", trimQty(p.TotalQty)))

	if !isDO {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%50s %20s\n", "Subtotal :", money.Format(p.Totals.Subtotal)))
		b.WriteString(fmt.Sprintf("%50s %20s\n", "Tax Total :", money.Format(p.Totals.TaxTotal)))
		if p.Totals.Discount > 0 {
			b.WriteString(fmt.Sprintf("%50s %20s\n", "Discount :", "- "+money.Format(p.Totals.Discount)))
		}
		b.WriteString(fmt.Sprintf("%50s %20s\n", "TOTAL :", money.Format(p.Totals.GrandTotal)))
		b.WriteString(p.AmountInWords + "\n")
	}

	if p.Doc.Notes != "" {
		b.WriteString("\nNotes: " + p.Doc.Notes + "\n")
	}

	b.WriteString("\n")
	switch {
	case isDO:
		b.WriteString("RECEIVED BY: _________________________\n")
		b.WriteString("Authorized Signature & Stamp\n")
		b.WriteString("Name / Date:\n")
	case p.Doc.Type == core.DocTypeQuotation:
		b.WriteString("ACCEPTED BY: _________________________\n")
		b.WriteString("Authorized Signature & Chop\n")
		b.WriteString("Name / Date:\n")
	default:
		b.WriteString("PAYMENT INFO:\n")
		b.WriteString(fmt.Sprintf("Bank:   %s\n", p.Settings.BankName))
		b.WriteString(fmt.Sprintf("Acc No: %s\n", p.Settings.BankAccount))
	}
	b.WriteString(fmt.Sprintf("\nISSUED BY: %s\n", p.Settings.Name))
	b.WriteString(rule + "\n")
	return b.String()
}

// DocumentFileName is the export naming convention for a single document:
// "{type}_{number with non-alphanumerics replaced by underscore}.pdf".
func DocumentFileName(doc core.Document) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, doc.Number)
	return fmt.Sprintf("%s_%s.pdf", doc.Type, sanitized)
}

// displayDate flips YYYY-MM-DD into the DD-MM-YYYY print form; anything
// malformed passes through unchanged.
func displayDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func trimQty(q float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", q), "0"), ".")
}
