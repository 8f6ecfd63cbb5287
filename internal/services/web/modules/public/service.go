package public

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/services/auth/credentials"
	"github.com/louisbranch/inpact/internal/services/auth/google"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	apperrors "github.com/louisbranch/inpact/internal/services/web/platform/errors"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// AuthGateway signs password accounts in and up.
type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (storage.Account, error)
	SignUp(ctx context.Context, input credentials.SignUpInput) (storage.Account, error)
}

// GoogleGateway runs the Google authorization code flow.
type GoogleGateway interface {
	Start() (authURL, state, verifier string, err error)
	Complete(ctx context.Context, code, verifier string) (storage.Account, error)
}

// SessionIssuer signs sessions for accounts.
type SessionIssuer interface {
	Issue(identity session.Identity) (string, session.Session, error)
	TTL() time.Duration
}

// ProfileReader reports which onboarding records exist for an account.
type ProfileReader interface {
	GetUser(ctx context.Context, id string) (storage.User, error)
	GetBrand(ctx context.Context, userID string) (storage.Brand, error)
}

// WizardEraser drops in-progress wizard state on sign out.
type WizardEraser interface {
	Delete(ctx context.Context, key wizardstore.Key) error
}

// Config carries the collaborators of the public module. Google is optional.
type Config struct {
	Auth     AuthGateway
	Google   GoogleGateway
	Sessions SessionIssuer
	Profiles ProfileReader
	Wizards  WizardEraser
}

type service struct {
	auth     AuthGateway
	google   GoogleGateway
	sessions SessionIssuer
	profiles ProfileReader
	wizards  WizardEraser
}

var errSessionsUnavailable = apperrors.E(apperrors.KindUnavailable, "sign in is not configured")

func newService(cfg Config) service {
	auth := cfg.Auth
	if auth == nil {
		auth = unavailableAuthGateway{}
	}
	return service{
		auth:     auth,
		google:   cfg.Google,
		sessions: cfg.Sessions,
		profiles: cfg.Profiles,
		wizards:  cfg.Wizards,
	}
}

func (s service) googleEnabled() bool {
	return s.google != nil
}

// signIn verifies credentials and issues a session.
func (s service) signIn(ctx context.Context, email, password string) (string, session.Session, error) {
	account, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return "", session.Session{}, err
	}
	return s.issue(account)
}

// signUp creates a password account and issues a session.
func (s service) signUp(ctx context.Context, input credentials.SignUpInput) (string, session.Session, error) {
	account, err := s.auth.SignUp(ctx, input)
	if err != nil {
		return "", session.Session{}, err
	}
	return s.issue(account)
}

func (s service) completeGoogle(ctx context.Context, code, verifier string) (string, session.Session, error) {
	if s.google == nil {
		return "", session.Session{}, apperrors.E(apperrors.KindNotFound, "google sign in is disabled")
	}
	account, err := s.google.Complete(ctx, code, verifier)
	if err != nil {
		return "", session.Session{}, err
	}
	return s.issue(account)
}

func (s service) issue(account storage.Account) (string, session.Session, error) {
	if s.sessions == nil {
		return "", session.Session{}, errSessionsUnavailable
	}
	return s.sessions.Issue(session.Identity{
		UserID:      account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
	})
}

func (s service) sessionTTL() time.Duration {
	if s.sessions == nil {
		return 0
	}
	return s.sessions.TTL()
}

// landing returns where a signed-in account goes when no explicit next
// target was requested: its dashboard when a profile exists, else the
// creator wizard.
func (s service) landing(ctx context.Context, userID string) string {
	userID = strings.TrimSpace(userID)
	if s.profiles == nil || userID == "" {
		return routepath.Onboarding
	}
	if _, err := s.profiles.GetUser(ctx, userID); err == nil {
		return routepath.Dashboard
	}
	if _, err := s.profiles.GetBrand(ctx, userID); err == nil {
		return routepath.BrandDashboard
	}
	return routepath.Onboarding
}

// forgetWizards drops every flow's in-progress state for a wizard id.
func (s service) forgetWizards(ctx context.Context, wizardID string) error {
	if s.wizards == nil || strings.TrimSpace(wizardID) == "" {
		return nil
	}
	var errs []error
	for _, flow := range []wizard.Flow{wizard.FlowCreator, wizard.FlowBrand} {
		if err := s.wizards.Delete(ctx, wizardstore.Key{SessionID: wizardID, Flow: flow}); err != nil {
			errs = append(errs, fmt.Errorf("delete %s wizard: %w", flow, err))
		}
	}
	return errors.Join(errs...)
}

type unavailableAuthGateway struct{}

func (unavailableAuthGateway) SignIn(context.Context, string, string) (storage.Account, error) {
	return storage.Account{}, errSessionsUnavailable
}

func (unavailableAuthGateway) SignUp(context.Context, credentials.SignUpInput) (storage.Account, error) {
	return storage.Account{}, errSessionsUnavailable
}

// googleGateway adapts a Google provider plus account store.
type googleGateway struct {
	provider *google.Provider
	accounts storage.AccountStore
	now      func() time.Time
}

// NewGoogleGateway links Google identities to accounts. A nil provider
// disables Google sign in.
func NewGoogleGateway(provider *google.Provider, accounts storage.AccountStore) GoogleGateway {
	if provider == nil {
		return nil
	}
	return googleGateway{provider: provider, accounts: accounts, now: time.Now}
}

func (g googleGateway) Start() (string, string, string, error) {
	return g.provider.Start()
}

func (g googleGateway) Complete(ctx context.Context, code, verifier string) (storage.Account, error) {
	profile, err := g.provider.Exchange(ctx, code, verifier)
	if err != nil {
		return storage.Account{}, err
	}
	return google.ResolveAccount(ctx, g.accounts, profile, g.now)
}
