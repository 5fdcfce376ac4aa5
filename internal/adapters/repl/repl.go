// Package repl is the interactive session: slash commands over the
// ApplicationService facade plus a guided wizard for new documents.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"techfab-billing/internal/adapters/cli"
	"techfab-billing/internal/app"
	"techfab-billing/internal/core"
)

// Run starts the interactive loop, reading commands until exit or EOF.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) error {
	settings, err := svc.GetSettings(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Techfab Billing")
	fmt.Printf("Company: %s\n", settings.Name)
	fmt.Println("Type /help for commands, /new to create a document, exit to quit.")
	fmt.Println(strings.Repeat("-", 70))

	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return nil // EOF ends the session
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}

		if err := dispatch(ctx, svc, reader, input); err != nil {
			if errors.Is(err, app.ErrUnauthorized) {
				fmt.Println("Access denied.")
				continue
			}
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func dispatch(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "help":
		printHelp()

	case "docs", "list":
		filter := app.DocumentFilter{}
		if len(args) > 0 {
			filter.Type = core.DocType(strings.ToUpper(args[0]))
		}
		result, err := svc.ListDocuments(ctx, filter)
		if err != nil {
			return err
		}
		cli.PrintDocumentList(stdout, result, false)

	case "bin", "trashed":
		result, err := svc.ListDocuments(ctx, app.DocumentFilter{Deleted: true})
		if err != nil {
			return err
		}
		cli.PrintDocumentList(stdout, result, true)

	case "show":
		if len(args) < 1 {
			fmt.Println("Usage: /show <id-or-number>")
			return nil
		}
		result, err := svc.GetDocument(ctx, args[0])
		if err != nil {
			return err
		}
		cli.PrintDocument(stdout, result)

	case "new":
		return newDocumentWizard(ctx, svc, reader)

	case "convert":
		if len(args) < 2 {
			fmt.Println("Usage: /convert <id-or-number> <QT|PI|DO|INV>")
			return nil
		}
		result, err := svc.ConvertDocument(ctx, args[0], core.DocType(strings.ToUpper(args[1])))
		if err != nil {
			return err
		}
		fmt.Printf("Converted to %s %s\n", result.Document.Type.Label(), result.Document.Number)

	case "status":
		if len(args) < 2 {
			fmt.Println("Usage: /status <id-or-number> <Draft|Sent|Paid|Cancelled>")
			return nil
		}
		if err := svc.UpdateStatus(ctx, args[0], core.DocStatus(args[1])); err != nil {
			return err
		}
		fmt.Println("Status updated.")

	case "trash":
		if len(args) < 1 {
			fmt.Println("Usage: /trash <id-or-number>")
			return nil
		}
		if !confirm(reader, "Move this document to the recycle bin?") {
			fmt.Println("Cancelled.")
			return nil
		}
		if err := svc.TrashDocument(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Moved to recycle bin.")

	case "restore":
		if len(args) < 1 {
			fmt.Println("Usage: /restore <id-or-number>")
			return nil
		}
		if err := svc.RestoreDocument(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Document restored.")

	case "purge":
		if len(args) < 1 {
			fmt.Println("Usage: /purge <id-or-number>")
			return nil
		}
		if !confirm(reader, "This action cannot be undone. Permanently delete?") {
			fmt.Println("Cancelled.")
			return nil
		}
		password := prompt(reader, "Admin password: ")
		if err := svc.PurgeDocument(ctx, args[0], password); err != nil {
			return err
		}
		fmt.Println("Permanently deleted.")

	case "print":
		if len(args) < 1 {
			fmt.Println("Usage: /print <id-or-number>")
			return nil
		}
		result, err := svc.PrintDocument(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Print(result.Artifact)
		fmt.Printf("Export file name: %s\n", result.FileName)

	case "customers":
		return customersCommand(ctx, svc, reader, args)

	case "products":
		return productsCommand(ctx, svc, reader, args)

	case "settings":
		return settingsCommand(ctx, svc, reader, args)

	case "edit":
		if len(args) < 1 {
			fmt.Println("Usage: /edit <id-or-number>")
			return nil
		}
		return editDocumentWizard(ctx, svc, reader, args[0])

	case "report":
		if len(args) < 2 {
			fmt.Println("Usage: /report <year> <month>")
			return nil
		}
		year, err1 := strconv.Atoi(args[0])
		month, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			fmt.Println("Usage: /report <year> <month>")
			return nil
		}
		result, err := svc.MonthlyReport(ctx, year, time.Month(month))
		if err != nil {
			return err
		}
		cli.PrintReport(stdout, result)

	case "dashboard", "dash":
		stats, err := svc.DashboardStats(ctx)
		if err != nil {
			return err
		}
		cli.PrintDashboard(stdout, stats)

	case "export":
		result, err := svc.ExportBackup(ctx)
		if err != nil {
			return err
		}
		if err := writeFile(result.FileName, result.Data); err != nil {
			return err
		}
		fmt.Printf("Backup written to %s\n", result.FileName)

	case "import":
		if len(args) < 1 {
			fmt.Println("Usage: /import <file>")
			return nil
		}
		if !confirm(reader, "Importing replaces ALL current data. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}
		if err := svc.ImportBackup(ctx, data); err != nil {
			return err
		}
		fmt.Println("Data restored successfully.")

	case "schema":
		data, err := svc.BackupSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "suggest":
		if len(args) < 1 {
			fmt.Println("Usage: /suggest <short description>")
			return nil
		}
		text, err := svc.SuggestDescription(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(text)

	case "classify":
		if len(args) < 1 {
			fmt.Println("Usage: /classify <item description>")
			return nil
		}
		result, err := svc.ClassifySST(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		verdict := "EXEMPT"
		if result.Taxable {
			verdict = "TAXABLE"
		}
		fmt.Printf("%s: %s\n", verdict, result.Reason)

	case "key":
		if len(args) < 1 {
			fmt.Println("Usage: /key <system-id>")
			return nil
		}
		fmt.Println(svc.ActivationKey(args[0]))

	case "reset":
		if !confirm(reader, "Factory reset wipes ALL data. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}
		password := prompt(reader, "Admin password: ")
		if err := svc.FactoryReset(ctx, password); err != nil {
			return err
		}
		fmt.Println("Factory reset complete.")

	default:
		fmt.Printf("Unknown command: %s (try /help)\n", cmd)
	}
	return nil
}

func printHelp() {
	fmt.Println(`Commands:
  /docs [type]          list documents (optionally filtered by QT/PI/DO/INV)
  /bin                  list the recycle bin
  /show <ref>           show one document
  /new                  guided document creation
  /convert <ref> <type> convert to another document type
  /status <ref> <s>     set status (Draft, Sent, Paid, Cancelled)
  /trash | /restore | /purge <ref>
  /edit <ref>           edit discount and notes
  /print <ref>          render the printable artifact
  /customers [add|rm]   list or manage customers
  /products [add|rm]    list or manage the catalog
  /settings [edit]      show or edit company settings
  /report <y> <m>       monthly SST summary
  /dashboard            status counts, revenue, outstanding
  /export               write a backup file
  /import <file>        replace all data from a backup file
  /schema               print the JSON Schema of the backup payload
  /suggest <text>       AI: enhance an item description
  /classify <text>      AI: classify SST taxability of an item
  /key <system-id>      derive the activation key for a system id
  /reset                factory reset (password gated)
  exit`)
}
