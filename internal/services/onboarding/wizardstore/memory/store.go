// Package memory keeps wizard state in process memory. State does not
// survive a restart and is not shared between server instances.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// Store is an in-memory wizard store. Entries are stored encoded so callers
// never share a *wizard.State.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New returns an empty store. ttl <= 0 uses wizardstore.DefaultTTL.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = wizardstore.DefaultTTL
	}
	return &Store{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

// Load returns a copy of the saved state.
func (s *Store) Load(ctx context.Context, key wizardstore.Key) (*wizard.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(key)
}

// Save replaces the state for key.
func (s *Store) Save(ctx context.Context, key wizardstore.Key, state *wizard.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(key, state)
}

// Update applies fn under the store lock.
func (s *Store) Update(ctx context.Context, key wizardstore.Key, fn func(*wizard.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadLocked(key)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return s.saveLocked(key, state)
}

// Delete removes the state for key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key wizardstore.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key.String())
	return nil
}

func (s *Store) loadLocked(key wizardstore.Key) (*wizard.State, error) {
	e, ok := s.entries[key.String()]
	if !ok {
		return nil, wizardstore.ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key.String())
		return nil, wizardstore.ErrNotFound
	}
	var state wizard.State
	if err := json.Unmarshal(e.payload, &state); err != nil {
		return nil, fmt.Errorf("decode wizard state: %w", err)
	}
	return &state, nil
}

func (s *Store) saveLocked(key wizardstore.Key, state *wizard.State) error {
	if state == nil {
		return fmt.Errorf("wizard state is required")
	}
	now := s.now()
	state.UpdatedAt = now.UTC()
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	s.entries[key.String()] = entry{payload: payload, expiresAt: now.Add(s.ttl)}
	return nil
}
