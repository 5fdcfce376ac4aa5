package repl

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"techfab-billing/internal/adapters/cli"
	"techfab-billing/internal/app"
	"techfab-billing/internal/core"
)

// newDocumentWizard walks through creating a document: type, customer,
// items (free-form or catalog prefill), discount and notes. Validation
// happens in the lifecycle; a rejected document reports the offending row
// and nothing is saved.
func newDocumentWizard(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) error {
	fmt.Println("New document (leave blank to cancel).")

	docType := core.DocType(strings.ToUpper(prompt(reader, "Type (QT/PI/DO/INV): ")))
	if docType == "" {
		fmt.Println("Cancelled.")
		return nil
	}
	if !docType.Valid() {
		fmt.Printf("Unknown type %q.\n", docType)
		return nil
	}

	customers, err := svc.ListCustomers(ctx)
	if err != nil {
		return err
	}
	printCustomers(customers)
	customerID := prompt(reader, "Customer id: ")
	if customerID == "" {
		fmt.Println("Cancelled.")
		return nil
	}

	products, err := svc.ListProducts(ctx)
	if err != nil {
		return err
	}

	var items []app.LineItemInput
	for {
		fmt.Printf("Item %d (blank description to finish)\n", len(items)+1)
		desc := prompt(reader, "  Description (or product id): ")
		if desc == "" {
			break
		}

		// A catalog id prefills name, price and tax rate.
		item := app.LineItemInput{Description: desc}
		for _, p := range products.Products {
			if p.ID == desc {
				item = app.LineItemInput{ProductID: p.ID}
				fmt.Printf("  Prefilled from catalog: %s\n", p.Name)
				break
			}
		}

		qty := promptFloat(reader, "  Quantity: ", 1)
		item.Quantity = qty
		if item.ProductID == "" {
			item.UnitPrice = promptFloat(reader, "  Unit price: ", 0)
			item.TaxRate = promptFloat(reader, "  Tax rate (e.g. 0.08, blank for 0): ", 0)
		}
		items = append(items, item)
	}

	discount := promptFloat(reader, "Discount amount (blank for 0): ", 0)
	notes := prompt(reader, "Notes (optional): ")

	result, err := svc.CreateDocument(ctx, app.CreateDocumentRequest{
		Type:       docType,
		CustomerID: customerID,
		Items:      items,
		Discount:   discount,
		Notes:      notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created %s %s\n", result.Document.Type.Label(), result.Document.Number)
	cli.PrintDocument(stdout, result)
	return nil
}

// editDocumentWizard edits the user-adjustable fields of an existing
// document: discount and notes. Items and numbering stay as created;
// the full document goes back through lifecycle validation on save.
func editDocumentWizard(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, ref string) error {
	current, err := svc.GetDocument(ctx, ref)
	if err != nil {
		return err
	}
	doc := current.Document
	cli.PrintDocument(stdout, current)

	if raw := prompt(reader, fmt.Sprintf("Discount [%v]: ", doc.Discount)); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Println("Not a number, keeping current discount.")
		} else {
			doc.Discount = v
		}
	}
	if notes := prompt(reader, "Notes (blank keeps current): "); notes != "" {
		doc.Notes = notes
	}

	result, err := svc.UpdateDocument(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", result.Document.Number)
	return nil
}

func customersCommand(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, args []string) error {
	if len(args) == 0 {
		result, err := svc.ListCustomers(ctx)
		if err != nil {
			return err
		}
		printCustomers(result)
		return nil
	}
	switch args[0] {
	case "add":
		c := core.Customer{
			Name:    prompt(reader, "Name: "),
			Address: prompt(reader, "Address: "),
			Phone:   prompt(reader, "Phone: "),
			Email:   prompt(reader, "Email: "),
		}
		if err := svc.SaveCustomer(ctx, c); err != nil {
			return err
		}
		fmt.Println("Customer saved.")
	case "rm":
		if len(args) < 2 {
			fmt.Println("Usage: /customers rm <id>")
			return nil
		}
		if !confirm(reader, "Delete this customer? Documents keep the reference and show Unknown.") {
			fmt.Println("Cancelled.")
			return nil
		}
		if err := svc.DeleteCustomer(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Customer deleted.")
	default:
		fmt.Println("Usage: /customers [add|rm <id>]")
	}
	return nil
}

func productsCommand(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, args []string) error {
	if len(args) == 0 {
		result, err := svc.ListProducts(ctx)
		if err != nil {
			return err
		}
		printProducts(result)
		return nil
	}
	switch args[0] {
	case "add":
		p := core.Product{
			Name:    prompt(reader, "Name: "),
			Price:   promptFloat(reader, "Price: ", 0),
			TaxRate: promptFloat(reader, "Tax rate (e.g. 0.08, blank for 0): ", 0),
		}
		if err := svc.SaveProduct(ctx, p); err != nil {
			return err
		}
		fmt.Println("Product saved.")
	case "rm":
		if len(args) < 2 {
			fmt.Println("Usage: /products rm <id>")
			return nil
		}
		if err := svc.DeleteProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Product deleted.")
	default:
		fmt.Println("Usage: /products [add|rm <id>]")
	}
	return nil
}

func settingsCommand(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, args []string) error {
	settings, err := svc.GetSettings(ctx)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Printf("Company : %s\nSSM     : %s\nSST ID  : %s\nAddress : %s\nPhone   : %s\nEmail   : %s\nBank    : %s %s\n",
			settings.Name, settings.SSMNumber, settings.SSTRegNo,
			strings.ReplaceAll(settings.Address, "\n", ", "),
			settings.Phone, settings.Email, settings.BankName, settings.BankAccount)
		return nil
	}
	if args[0] != "edit" {
		fmt.Println("Usage: /settings [edit]")
		return nil
	}

	// Blank keeps the current value.
	set := func(label string, target *string) {
		if v := prompt(reader, fmt.Sprintf("%s [%s]: ", label, *target)); v != "" {
			*target = v
		}
	}
	set("Company name", &settings.Name)
	set("SSM number", &settings.SSMNumber)
	set("SST reg no", &settings.SSTRegNo)
	set("Phone", &settings.Phone)
	set("Email", &settings.Email)
	set("Bank name", &settings.BankName)
	set("Bank account", &settings.BankAccount)

	if err := svc.SaveSettings(ctx, settings); err != nil {
		return err
	}
	fmt.Println("Settings saved.")
	return nil
}

func promptFloat(reader *bufio.Reader, label string, fallback float64) float64 {
	raw := prompt(reader, label)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Printf("  Not a number, using %v.\n", fallback)
		return fallback
	}
	return v
}
