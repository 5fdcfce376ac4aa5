package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"techfab-billing/internal/adapters/cli"
	"techfab-billing/internal/adapters/repl"
	"techfab-billing/internal/ai"
	"techfab-billing/internal/app"
	"techfab-billing/internal/auth"
	"techfab-billing/internal/config"
	"techfab-billing/internal/core"
	"techfab-billing/internal/logger"
	"techfab-billing/internal/store"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(context.Background(), cfg); err != nil {
		var ve *core.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", ve)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run owns every resource of the process. Errors propagate back to main so
// deferred cleanup (the pg pool in particular) always executes.
func run(ctx context.Context, cfg config.Config) error {
	log := logger.WithComponent("main")

	var persister store.Persister
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("unable to connect to database: %w", err)
		}
		defer pg.Close()
		persister = pg
	} else {
		persister = store.NewFileStore(cfg.DataFile)
	}

	st, err := store.Open(ctx, persister)
	if err != nil {
		return fmt.Errorf("unable to open state store: %w", err)
	}

	gate := auth.NewGate(cfg.AdminPassword, cfg.SystemID)

	var assistant *ai.Assistant
	if cfg.OpenAIAPIKey != "" {
		assistant = ai.NewAssistant(cfg.OpenAIAPIKey)
	} else {
		log.Debug().Msg("OPENAI_API_KEY not set, AI assistant disabled")
	}

	svc := app.NewAppService(st, gate, assistant)

	root := cli.NewRootCommand(svc, func() error {
		return repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
	})
	return root.ExecuteContext(ctx)
}
