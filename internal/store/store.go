// Package store owns the single AppState aggregate. Every mutation runs as
// a pure transform producing a new snapshot, which atomically replaces the
// held state and is then handed to the persister. Consumers only ever see
// deep-copied snapshots.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"techfab-billing/internal/core"
	"techfab-billing/internal/logger"
)

// Persister is the durable storage seam. Load returns (nil, nil) when no
// snapshot exists yet. The whole aggregate is the unit of durability;
// there is no field-level persistence.
type Persister interface {
	Load(ctx context.Context) (*core.AppState, error)
	Save(ctx context.Context, state core.AppState) error
}

// Transform is a pure state transition. It must not mutate its input; the
// store hands it a private clone and installs whatever it returns.
type Transform func(core.AppState) (core.AppState, error)

// Store holds the aggregate. The mutex serializes transforms; the
// application is single-user, but adapters (REPL plus a background export,
// tests) may still touch the store from more than one goroutine.
type Store struct {
	mu        sync.RWMutex
	state     core.AppState
	persister Persister
	log       zerolog.Logger
}

// Open loads the persisted snapshot, or seeds a fresh aggregate when none
// exists, and returns a ready store.
func Open(ctx context.Context, p Persister) (*Store, error) {
	s := &Store{persister: p, log: logger.WithComponent("store")}

	loaded, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if loaded == nil {
		s.log.Info().Msg("no snapshot found, seeding default state")
		s.state = core.NewAppState()
		if err := p.Save(ctx, s.state); err != nil {
			return nil, fmt.Errorf("failed to persist seed snapshot: %w", err)
		}
		return s, nil
	}

	loaded.Normalize()
	s.state = *loaded
	s.log.Info().
		Int("documents", len(s.state.Documents)).
		Int("customers", len(s.state.Customers)).
		Msg("snapshot loaded")
	return s, nil
}

// Snapshot returns a deep copy of the current aggregate. Mutating the
// returned value never affects the store.
func (s *Store) Snapshot() core.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Apply runs a transform against a clone of the current state, installs
// the result and persists it. A failing transform leaves the aggregate
// untouched. A persistence failure is returned but does not roll back the
// in-memory state: the next successful Apply writes the full snapshot
// anyway.
func (s *Store) Apply(ctx context.Context, fn Transform) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state.Clone())
	if err != nil {
		return err
	}
	s.state = next

	if err := s.persister.Save(ctx, s.state); err != nil {
		s.log.Error().Err(err).Msg("snapshot persistence failed")
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// Replace installs a complete new aggregate, bypassing any transform.
// Used by backup import and factory reset.
func (s *Store) Replace(ctx context.Context, state core.AppState) error {
	return s.Apply(ctx, func(core.AppState) (core.AppState, error) {
		state.Normalize()
		return state.Clone(), nil
	})
}
