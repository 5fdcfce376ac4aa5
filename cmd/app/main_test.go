package main

import (
	"context"
	"strings"
	"testing"

	"techfab-billing/internal/config"
)

// Startup failures must surface as returned errors, not process exits, so
// that deferred resource cleanup in run still executes.
func TestRun_BadDatabaseURLReturnsError(t *testing.T) {
	err := run(context.Background(), config.Config{
		DatabaseURL: "://not-a-url",
		SystemID:    "test-host",
	})
	if err == nil {
		t.Fatal("run() = nil, want connection error")
	}
	if !strings.Contains(err.Error(), "unable to connect to database") {
		t.Errorf("err = %v, want wrapped database error", err)
	}
}

func TestRun_UnreadableDataFileReturnsError(t *testing.T) {
	// A directory at the snapshot path makes the file store's load fail.
	err := run(context.Background(), config.Config{
		DataFile: t.TempDir(),
		SystemID: "test-host",
	})
	if err == nil {
		t.Fatal("run() = nil, want state store error")
	}
	if !strings.Contains(err.Error(), "unable to open state store") {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}
