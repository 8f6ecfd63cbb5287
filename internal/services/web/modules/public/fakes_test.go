package public

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/inpact/internal/services/auth/credentials"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
)

// fakeAuth signs in a single known account.
type fakeAuth struct {
	account   storage.Account
	password  string
	signUpErr error
}

func (f fakeAuth) SignIn(_ context.Context, email, password string) (storage.Account, error) {
	if email != f.account.Email || password != f.password {
		return storage.Account{}, credentials.ErrInvalidCredentials
	}
	return f.account, nil
}

func (f fakeAuth) SignUp(_ context.Context, input credentials.SignUpInput) (storage.Account, error) {
	if f.signUpErr != nil {
		return storage.Account{}, f.signUpErr
	}
	return storage.Account{ID: "acct-new", Email: input.Email, DisplayName: input.DisplayName}, nil
}

type fakeGoogle struct {
	account storage.Account
	err     error
}

func (fakeGoogle) Start() (string, string, string, error) {
	return "https://accounts.example.test/auth?state=state-1", "state-1", "verifier-1", nil
}

func (f fakeGoogle) Complete(_ context.Context, code, verifier string) (storage.Account, error) {
	if f.err != nil {
		return storage.Account{}, f.err
	}
	if code == "" || verifier != "verifier-1" {
		return storage.Account{}, credentials.ErrInvalidCredentials
	}
	return f.account, nil
}

type fakeSessions struct{}

func (fakeSessions) Issue(identity session.Identity) (string, session.Session, error) {
	return "token-" + identity.UserID, session.Session{
		ID:          "sess-" + identity.UserID,
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
	}, nil
}

func (fakeSessions) TTL() time.Duration { return time.Hour }

// fakeProfiles reports stored users and brands by account id.
type fakeProfiles struct {
	users  map[string]bool
	brands map[string]bool
}

func (f fakeProfiles) GetUser(_ context.Context, id string) (storage.User, error) {
	if !f.users[id] {
		return storage.User{}, storage.ErrNotFound
	}
	return storage.User{ID: id}, nil
}

func (f fakeProfiles) GetBrand(_ context.Context, userID string) (storage.Brand, error) {
	if !f.brands[userID] {
		return storage.Brand{}, storage.ErrNotFound
	}
	return storage.Brand{UserID: userID}, nil
}

// recordingWizards records deleted keys.
type recordingWizards struct {
	mu      sync.Mutex
	deleted []wizardstore.Key
}

func (r *recordingWizards) Delete(_ context.Context, key wizardstore.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, key)
	return nil
}

func (r *recordingWizards) keys() []wizardstore.Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]wizardstore.Key(nil), r.deleted...)
}

func testAccount() storage.Account {
	return storage.Account{ID: "acct-1", Email: "ada@example.com", DisplayName: "Ada"}
}

func testConfig() Config {
	return Config{
		Auth:     fakeAuth{account: testAccount(), password: "correct-horse"},
		Sessions: fakeSessions{},
		Profiles: fakeProfiles{},
		Wizards:  &recordingWizards{},
	}
}
