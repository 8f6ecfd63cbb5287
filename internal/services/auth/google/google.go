// Package google implements Google sign in with the OAuth2 authorization
// code flow and PKCE.
package google

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	"github.com/louisbranch/inpact/internal/platform/id"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

// ProviderName is stored on accounts created through Google.
const ProviderName = "google"

// DefaultUserInfoURL is the OpenID Connect userinfo endpoint.
const DefaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// ErrUnverifiedEmail rejects Google identities without a verified email.
var ErrUnverifiedEmail = apperrors.New(apperrors.CodeInvalidCredentials, "Google account email is not verified.")

// Config configures a Provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint overrides the Google OAuth endpoint, mainly for tests.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
	HTTPClient  *http.Client
}

// Provider runs the Google authorization code flow.
type Provider struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// Profile is the identity Google returns.
type Profile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// NewProvider returns a Provider, or an error when client credentials are
// missing.
func NewProvider(cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, fmt.Errorf("google client id and secret are required")
	}
	if strings.TrimSpace(cfg.RedirectURL) == "" {
		return nil, fmt.Errorf("google redirect url is required")
	}
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		endpoint = endpoints.Google
	}
	userInfoURL := strings.TrimSpace(cfg.UserInfoURL)
	if userInfoURL == "" {
		userInfoURL = DefaultUserInfoURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: userInfoURL,
		httpClient:  httpClient,
	}, nil
}

// Start returns the consent URL plus the state and PKCE verifier the caller
// must keep until the callback.
func (p *Provider) Start() (authURL, state, verifier string, err error) {
	state, err = randomState()
	if err != nil {
		return "", "", "", err
	}
	verifier = oauth2.GenerateVerifier()
	authURL = p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier))
	return authURL, state, verifier, nil
}

// Exchange trades an authorization code for the user's profile.
func (p *Provider) Exchange(ctx context.Context, code, verifier string) (Profile, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Profile{}, fmt.Errorf("authorization code is required")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return Profile{}, fmt.Errorf("exchange google code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Profile{}, fmt.Errorf("read google userinfo: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Profile{}, fmt.Errorf("google userinfo status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if !gjson.ValidBytes(body) {
		return Profile{}, fmt.Errorf("google userinfo is not valid json")
	}
	parsed := gjson.ParseBytes(body)
	profile := Profile{
		Subject:       strings.TrimSpace(parsed.Get("sub").String()),
		Email:         strings.TrimSpace(parsed.Get("email").String()),
		EmailVerified: parsed.Get("email_verified").Bool(),
		Name:          strings.TrimSpace(parsed.Get("name").String()),
	}
	if profile.Subject == "" || profile.Email == "" {
		return Profile{}, fmt.Errorf("google userinfo is missing sub or email")
	}
	return profile, nil
}

// ResolveAccount returns the account linked to profile, creating one on
// first sign in. An existing account with the same verified email is
// reused.
func ResolveAccount(ctx context.Context, accounts storage.AccountStore, profile Profile, now func() time.Time) (storage.Account, error) {
	if accounts == nil {
		return storage.Account{}, fmt.Errorf("account store is not configured")
	}
	account, err := accounts.GetAccountByProvider(ctx, ProviderName, profile.Subject)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.Account{}, fmt.Errorf("lookup google account: %w", err)
	}
	if !profile.EmailVerified {
		return storage.Account{}, ErrUnverifiedEmail
	}

	account, err = accounts.GetAccountByEmail(ctx, profile.Email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.Account{}, fmt.Errorf("lookup account by email: %w", err)
	}

	accountID, err := id.NewID()
	if err != nil {
		return storage.Account{}, err
	}
	if now == nil {
		now = time.Now
	}
	account = storage.Account{
		ID:              accountID,
		Email:           strings.ToLower(profile.Email),
		DisplayName:     profile.Name,
		Provider:        ProviderName,
		ProviderSubject: profile.Subject,
		CreatedAt:       now().UTC(),
	}
	if err := accounts.CreateAccount(ctx, account); err != nil {
		return storage.Account{}, err
	}
	return account, nil
}

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
