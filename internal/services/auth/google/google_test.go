package google

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"golang.org/x/oauth2"

	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, contentType, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{contentType}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func testProvider(t *testing.T, userinfo string) *Provider {
	t.Helper()
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Host {
		case "oauth.test":
			if err := req.ParseForm(); err != nil {
				t.Fatalf("parse token form: %v", err)
			}
			if req.PostForm.Get("code_verifier") == "" {
				t.Fatal("expected code_verifier in token exchange")
			}
			return response(http.StatusOK, "application/json", `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`), nil
		case "userinfo.test":
			if got := req.Header.Get("Authorization"); got != "Bearer tok" {
				t.Fatalf("authorization = %q, want %q", got, "Bearer tok")
			}
			return response(http.StatusOK, "application/json", userinfo), nil
		default:
			t.Fatalf("unexpected host %q", req.URL.Host)
			return nil, nil
		}
	})}
	provider, err := NewProvider(Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: "https://oauth.test/auth", TokenURL: "https://oauth.test/token"},
		UserInfoURL:  "https://userinfo.test/v1/userinfo",
		HTTPClient:   client,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return provider
}

func TestNewProviderRequiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewProvider(Config{RedirectURL: "http://x"}); err == nil {
		t.Fatal("expected missing credentials error")
	}
}

func TestStartBuildsPKCEConsentURL(t *testing.T) {
	t.Parallel()

	provider := testProvider(t, `{}`)
	authURL, state, verifier, err := provider.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state == "" || verifier == "" {
		t.Fatal("expected state and verifier")
	}
	parsed, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	query := parsed.Query()
	if query.Get("state") != state {
		t.Fatalf("state = %q, want %q", query.Get("state"), state)
	}
	if query.Get("code_challenge_method") != "S256" || query.Get("code_challenge") == "" {
		t.Fatalf("missing PKCE challenge in %q", authURL)
	}
	if query.Get("client_id") != "client" {
		t.Fatalf("client_id = %q, want %q", query.Get("client_id"), "client")
	}
}

func TestExchangeParsesProfile(t *testing.T) {
	t.Parallel()

	provider := testProvider(t, `{"sub":"g-123","email":"ada@example.com","email_verified":true,"name":"Ada"}`)
	profile, err := provider.Exchange(context.Background(), "code-1", "verifier-1")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if profile.Subject != "g-123" || profile.Email != "ada@example.com" || !profile.EmailVerified || profile.Name != "Ada" {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestExchangeRejectsIncompleteProfile(t *testing.T) {
	t.Parallel()

	provider := testProvider(t, `{"email":"ada@example.com"}`)
	if _, err := provider.Exchange(context.Background(), "code-1", "verifier-1"); err == nil {
		t.Fatal("expected missing sub error")
	}
}

type fakeAccounts struct {
	mu       sync.Mutex
	accounts []storage.Account
}

func (f *fakeAccounts) CreateAccount(_ context.Context, account storage.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = append(f.accounts, account)
	return nil
}

func (f *fakeAccounts) GetAccount(context.Context, string) (storage.Account, error) {
	return storage.Account{}, storage.ErrNotFound
}

func (f *fakeAccounts) GetAccountByEmail(_ context.Context, email string) (storage.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.Email == strings.ToLower(email) {
			return account, nil
		}
	}
	return storage.Account{}, storage.ErrNotFound
}

func (f *fakeAccounts) GetAccountByProvider(_ context.Context, provider, subject string) (storage.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.Provider == provider && account.ProviderSubject == subject {
			return account, nil
		}
	}
	return storage.Account{}, storage.ErrNotFound
}

func TestResolveAccountCreatesOnce(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	profile := Profile{Subject: "g-1", Email: "Ada@Example.com", EmailVerified: true, Name: "Ada"}

	first, err := ResolveAccount(context.Background(), accounts, profile, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := ResolveAccount(context.Background(), accounts, profile, nil)
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("account ids differ: %q vs %q", first.ID, second.ID)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("accounts = %d, want 1", len(accounts.accounts))
	}
	if first.Email != "ada@example.com" {
		t.Fatalf("email = %q, want lowercased", first.Email)
	}
}

func TestResolveAccountReusesEmailAccount(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{accounts: []storage.Account{{ID: "acct-1", Email: "ada@example.com", PasswordHash: "hash"}}}
	got, err := ResolveAccount(context.Background(), accounts, Profile{Subject: "g-1", Email: "ada@example.com", EmailVerified: true}, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != "acct-1" {
		t.Fatalf("account id = %q, want %q", got.ID, "acct-1")
	}
}

func TestResolveAccountRequiresVerifiedEmail(t *testing.T) {
	t.Parallel()

	_, err := ResolveAccount(context.Background(), &fakeAccounts{}, Profile{Subject: "g-1", Email: "ada@example.com"}, nil)
	if !errors.Is(err, ErrUnverifiedEmail) {
		t.Fatalf("resolve error = %v, want ErrUnverifiedEmail", err)
	}
}
