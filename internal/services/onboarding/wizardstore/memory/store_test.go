package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore/wizardstoretest"
)

func TestStoreContract(t *testing.T) {
	t.Parallel()

	wizardstoretest.Run(t, New(0))
}

func TestLoadExpiresEntries(t *testing.T) {
	t.Parallel()

	store := New(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	key := wizardstore.Key{SessionID: "sess-1", Flow: wizard.FlowCreator}
	if err := store.Save(context.Background(), key, wizard.New(wizard.FlowCreator)); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(59 * time.Second)
	if _, err := store.Load(context.Background(), key); err != nil {
		t.Fatalf("load before ttl: %v", err)
	}

	now = now.Add(time.Second)
	if _, err := store.Load(context.Background(), key); !errors.Is(err, wizardstore.ErrNotFound) {
		t.Fatalf("load after ttl error = %v, want ErrNotFound", err)
	}
}

func TestLoadReturnsCopies(t *testing.T) {
	t.Parallel()

	store := New(0)
	key := wizardstore.Key{SessionID: "sess-1", Flow: wizard.FlowCreator}
	state := wizard.New(wizard.FlowCreator)
	if err := store.Save(context.Background(), key, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	state.Personal.Username = "mutated after save"

	got, err := store.Load(context.Background(), key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Personal.Username != "" {
		t.Fatalf("username = %q, want empty", got.Personal.Username)
	}
}
