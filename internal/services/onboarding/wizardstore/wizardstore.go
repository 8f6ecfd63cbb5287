// Package wizardstore persists in-progress wizard state per session.
package wizardstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
)

// DefaultTTL bounds how long an untouched wizard survives.
const DefaultTTL = 24 * time.Hour

// ErrNotFound indicates no state exists for the key.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "wizard state not found")

// Key identifies one session's wizard. A session holds at most one state
// per flow.
type Key struct {
	SessionID string
	Flow      wizard.Flow
}

// String renders the key for backends that need a flat name.
func (k Key) String() string {
	return k.SessionID + ":" + string(k.Flow)
}

// Validate reports a missing session or flow.
func (k Key) Validate() error {
	if strings.TrimSpace(k.SessionID) == "" {
		return fmt.Errorf("wizard session id is required")
	}
	if k.Flow != wizard.FlowCreator && k.Flow != wizard.FlowBrand {
		return fmt.Errorf("wizard flow %q is invalid", k.Flow)
	}
	return nil
}

// Store loads and saves wizard state.
//
// Update is an atomic read-modify-write: fn sees the latest saved state
// (ErrNotFound when absent) and the state it leaves is saved unless fn
// returns an error.
type Store interface {
	Load(ctx context.Context, key Key) (*wizard.State, error)
	Save(ctx context.Context, key Key, state *wizard.State) error
	Update(ctx context.Context, key Key, fn func(*wizard.State) error) error
	Delete(ctx context.Context, key Key) error
}
