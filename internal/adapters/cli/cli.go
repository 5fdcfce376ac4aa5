// Package cli wires the one-shot subcommands. Every command talks to the
// ApplicationService facade only; no lifecycle logic lives here.
package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"techfab-billing/internal/app"
	"techfab-billing/internal/core"
)

// NewRootCommand builds the root cobra command. runREPL starts the
// interactive session and is invoked when no subcommand is given.
func NewRootCommand(svc app.ApplicationService, runREPL func() error) *cobra.Command {
	root := &cobra.Command{
		Use:           "techfab",
		Short:         "Techfab Billing: quotations, invoices, delivery orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL()
		},
	}

	root.AddCommand(
		newListCmd(svc),
		newShowCmd(svc),
		newCreateCmd(svc),
		newConvertCmd(svc),
		newStatusCmd(svc),
		newTrashCmd(svc),
		newRestoreCmd(svc),
		newPurgeCmd(svc),
		newReportCmd(svc),
		newDashboardCmd(svc),
		newExportCmd(svc),
		newImportCmd(svc),
		newSchemaCmd(svc),
		newPrintCmd(svc),
		newSuggestCmd(svc),
		newClassifyCmd(svc),
		newKeyCmd(svc),
	)
	return root
}

func newListCmd(svc app.ApplicationService) *cobra.Command {
	var docType, status string
	var deleted bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.ListDocuments(cmd.Context(), app.DocumentFilter{
				Type:    core.DocType(docType),
				Status:  core.DocStatus(status),
				Deleted: deleted,
			})
			if err != nil {
				return err
			}
			PrintDocumentList(cmd.OutOrStdout(), result, deleted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&docType, "type", "t", "", "filter by type (QT, PI, DO, INV)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status")
	cmd.Flags().BoolVar(&deleted, "deleted", false, "show the recycle bin instead of live documents")
	return cmd
}

func newShowCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-or-number>",
		Short: "Show one document with its totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			PrintDocument(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newCreateCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a document from a JSON request on stdin",
		Long: `Create a document from a JSON request read on stdin, e.g.:

  {"type":"QT","customerId":"cust-0001",
   "items":[{"description":"Fabrication works","quantity":2,"unitPrice":100,"taxRate":0.08}]}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req app.CreateDocumentRequest
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&req); err != nil {
				return fmt.Errorf("invalid JSON request: %w", err)
			}
			result, err := svc.CreateDocument(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", result.Document.Type.Label(), result.Document.Number)
			PrintDocument(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newConvertCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <id-or-number> <target-type>",
		Short: "Convert a document to another type (QT->PI/DO, PI->DO/INV, DO->INV)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.ConvertDocument(cmd.Context(), args[0], core.DocType(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted to %s %s\n", result.Document.Type.Label(), result.Document.Number)
			return nil
		},
	}
}

func newStatusCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id-or-number> <status>",
		Short: "Set a document's status (Draft, Sent, Paid, Cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.UpdateStatus(cmd.Context(), args[0], core.DocStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Status updated.")
			return nil
		},
	}
}

func newTrashCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "trash <id-or-number>",
		Short: "Move a document to the recycle bin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.TrashDocument(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Moved to recycle bin.")
			return nil
		},
	}
}

func newRestoreCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id-or-number>",
		Short: "Restore a document from the recycle bin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.RestoreDocument(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Document restored.")
			return nil
		},
	}
}

func newPurgeCmd(svc app.ApplicationService) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "purge <id-or-number>",
		Short: "Permanently delete a document (requires the admin password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = promptPassword(cmd)
			}
			if err := svc.PurgeDocument(cmd.Context(), args[0], password); err != nil {
				if errors.Is(err, app.ErrUnauthorized) {
					return fmt.Errorf("access denied: wrong admin password")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Permanently deleted.")
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "admin password authorizing the permanent delete")
	return cmd
}

func newReportCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "report <year> <month>",
		Short: "Monthly SST summary of invoices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("invalid month %q", args[1])
			}
			result, err := svc.MonthlyReport(cmd.Context(), year, time.Month(month))
			if err != nil {
				return err
			}
			PrintReport(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newDashboardCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Status counts, revenue and outstanding amounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := svc.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			PrintDashboard(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func newExportCmd(svc app.ApplicationService) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full application state as a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.ExportBackup(cmd.Context())
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = result.FileName
			}
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (default: conventional backup name)")
	return cmd
}

func newImportCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the application state from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}
			if err := svc.ImportBackup(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Data restored successfully.")
			return nil
		},
	}
}

func newSchemaCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the backup payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := svc.BackupSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newPrintCmd(svc app.ApplicationService) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print <id-or-number>",
		Short: "Render the printable artifact for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.PrintDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, []byte(result.Artifact), 0o644); err != nil {
					return fmt.Errorf("failed to write artifact: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Artifact written to %s (export name %s)\n", out, result.FileName)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Artifact)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the artifact to a file instead of stdout")
	return cmd
}

func newSuggestCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <description>",
		Short: "AI: enhance a line item description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := svc.SuggestDescription(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newClassifyCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <description>",
		Short: "AI: classify SST taxability of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.ClassifySST(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			verdict := "EXEMPT"
			if result.Taxable {
				verdict = "TAXABLE"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verdict, result.Reason)
			return nil
		},
	}
}

func newKeyCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "key <system-id>",
		Short: "Derive the activation key for a system identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), svc.ActivationKey(args[0]))
			return nil
		},
	}
}

func promptPassword(cmd *cobra.Command) string {
	fmt.Fprint(cmd.OutOrStdout(), "Admin password: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, _ := reader.ReadString('\n')
	return trimNewline(line)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
