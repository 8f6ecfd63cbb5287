// Package wizardstoretest holds the behavior checks shared by wizard store
// backends.
package wizardstoretest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/louisbranch/inpact/internal/platform/id"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
)

// Run exercises store against the wizardstore contract.
func Run(t *testing.T, store wizardstore.Store) {
	t.Helper()

	t.Run("load missing", func(t *testing.T) {
		_, err := store.Load(context.Background(), newKey(t, wizard.FlowCreator))
		if !errors.Is(err, wizardstore.ErrNotFound) {
			t.Fatalf("load error = %v, want ErrNotFound", err)
		}
	})

	t.Run("save load delete", func(t *testing.T) {
		ctx := context.Background()
		key := newKey(t, wizard.FlowCreator)
		state := wizard.New(wizard.FlowCreator)
		state.Prefill("Ada", "ada@example.com")
		state.SetPlatforms([]string{"tiktok", "instagram"})
		if err := store.Save(ctx, key, state); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := store.Load(ctx, key)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Personal.Username != "Ada" {
			t.Fatalf("username = %q, want %q", got.Personal.Username, "Ada")
		}
		if len(got.Platforms) != 2 || got.Platforms[0] != "instagram" {
			t.Fatalf("platforms = %v, want [instagram tiktok]", got.Platforms)
		}
		if got.UpdatedAt.IsZero() {
			t.Fatal("expected updated_at to be stamped")
		}

		if err := store.Delete(ctx, key); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Load(ctx, key); !errors.Is(err, wizardstore.ErrNotFound) {
			t.Fatalf("load after delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("flows are separate", func(t *testing.T) {
		ctx := context.Background()
		creator := newKey(t, wizard.FlowCreator)
		brand := wizardstore.Key{SessionID: creator.SessionID, Flow: wizard.FlowBrand}
		if err := store.Save(ctx, creator, wizard.New(wizard.FlowCreator)); err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, err := store.Load(ctx, brand); !errors.Is(err, wizardstore.ErrNotFound) {
			t.Fatalf("load brand error = %v, want ErrNotFound", err)
		}
	})

	t.Run("update keeps every generation", func(t *testing.T) {
		ctx := context.Background()
		key := newKey(t, wizard.FlowCreator)
		if err := store.Save(ctx, key, wizard.New(wizard.FlowCreator)); err != nil {
			t.Fatalf("save: %v", err)
		}

		const writers = 8
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.Update(ctx, key, func(state *wizard.State) error {
					state.BeginEnrichment(wizard.FieldYouTube)
					return nil
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("update: %v", err)
			}
		}

		got, err := store.Load(ctx, key)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if gen := got.LatestGeneration(wizard.FieldYouTube); gen != writers {
			t.Fatalf("generation = %d, want %d", gen, writers)
		}
	})

	t.Run("update error keeps state", func(t *testing.T) {
		ctx := context.Background()
		key := newKey(t, wizard.FlowBrand)
		state := wizard.New(wizard.FlowBrand)
		state.Brand.BrandName = "Acme"
		if err := store.Save(ctx, key, state); err != nil {
			t.Fatalf("save: %v", err)
		}
		boom := errors.New("boom")
		err := store.Update(ctx, key, func(state *wizard.State) error {
			state.Brand.BrandName = "Changed"
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("update error = %v, want boom", err)
		}
		got, err := store.Load(ctx, key)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Brand.BrandName != "Acme" {
			t.Fatalf("brand name = %q, want %q", got.Brand.BrandName, "Acme")
		}
	})

	t.Run("update missing", func(t *testing.T) {
		err := store.Update(context.Background(), newKey(t, wizard.FlowCreator), func(*wizard.State) error { return nil })
		if !errors.Is(err, wizardstore.ErrNotFound) {
			t.Fatalf("update error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		err := store.Save(context.Background(), wizardstore.Key{Flow: wizard.FlowCreator}, wizard.New(wizard.FlowCreator))
		if err == nil {
			t.Fatal("expected missing session error")
		}
	})
}

func newKey(t *testing.T, flow wizard.Flow) wizardstore.Key {
	t.Helper()
	sessionID, err := id.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	return wizardstore.Key{SessionID: sessionID, Flow: flow}
}
