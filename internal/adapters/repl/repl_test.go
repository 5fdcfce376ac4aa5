package repl

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

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

func newService(t *testing.T) app.ApplicationService {
	t.Helper()
	st, err := store.Open(context.Background(), &memPersister{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return app.NewAppService(st, auth.NewGate("secret", "test-host"), nil)
}

func lineReader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything fn printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	return string(out)
}

func TestDispatch_ImportReplacesState(t *testing.T) {
	ctx := context.Background()

	source := newService(t)
	customers, err := source.ListCustomers(ctx)
	if err != nil || len(customers.Customers) == 0 {
		t.Fatalf("seed customers unavailable: %v", err)
	}
	created, err := source.CreateDocument(ctx, app.CreateDocumentRequest{
		Type:       core.DocTypeQuotation,
		CustomerID: customers.Customers[0].ID,
		Items: []app.LineItemInput{
			{Description: "Fabrication works", Quantity: 2, UnitPrice: 100, TaxRate: 0.08},
		},
	})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	backup, err := source.ExportBackup(ctx)
	if err != nil {
		t.Fatalf("export backup: %v", err)
	}
	path := filepath.Join(t.TempDir(), backup.FileName)
	if err := os.WriteFile(path, backup.Data, 0o644); err != nil {
		t.Fatalf("write backup file: %v", err)
	}

	target := newService(t)
	if _, err := target.GetDocument(ctx, created.Document.Number); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("fresh state already has the document: %v", err)
	}

	captureStdout(t, func() {
		if err := dispatch(ctx, target, lineReader("y\n"), "/import "+path); err != nil {
			t.Errorf("import dispatch: %v", err)
		}
	})

	got, err := target.GetDocument(ctx, created.Document.Number)
	if err != nil {
		t.Fatalf("document not found after import: %v", err)
	}
	if got.Document.ID != created.Document.ID {
		t.Errorf("imported document id = %s, want %s", got.Document.ID, created.Document.ID)
	}
}

func TestDispatch_ImportDeclinedLeavesStateAlone(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"bad":"shape"}`), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	captureStdout(t, func() {
		// Declining the confirmation must short-circuit before the file
		// is even read, so the malformed payload never surfaces.
		if err := dispatch(ctx, svc, lineReader("n\n"), "/import "+path); err != nil {
			t.Errorf("declined import returned error: %v", err)
		}
	})
}

func TestDispatch_ImportMissingFile(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	var err error
	captureStdout(t, func() {
		err = dispatch(ctx, svc, lineReader("y\n"), "/import "+filepath.Join(t.TempDir(), "nope.json"))
	})
	if err == nil || !strings.Contains(err.Error(), "failed to read backup") {
		t.Errorf("err = %v, want read failure", err)
	}
}

func TestDispatch_SchemaPrintsBackupSchema(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	out := captureStdout(t, func() {
		if err := dispatch(ctx, svc, lineReader(""), "/schema"); err != nil {
			t.Errorf("schema dispatch: %v", err)
		}
	})
	for _, want := range []string{"documents", "customers", "settings"} {
		if !strings.Contains(out, want) {
			t.Errorf("schema output missing %q", want)
		}
	}
}

func TestDispatch_KeyPrintsActivationKey(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	out := captureStdout(t, func() {
		if err := dispatch(ctx, svc, lineReader(""), "/key host-12"); err != nil {
			t.Errorf("key dispatch: %v", err)
		}
	})
	// Digit sum 1+2=3, times 888.
	if strings.TrimSpace(out) != "2664" {
		t.Errorf("key output = %q, want 2664", strings.TrimSpace(out))
	}
}

func TestDispatch_ClassifyWithoutAssistant(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	var err error
	captureStdout(t, func() {
		err = dispatch(ctx, svc, lineReader(""), "/classify steel fabrication")
	})
	if !errors.Is(err, app.ErrAssistantDisabled) {
		t.Errorf("err = %v, want ErrAssistantDisabled", err)
	}
}
