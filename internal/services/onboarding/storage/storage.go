// Package storage defines the structured records written by onboarding and
// the store contract shared by the SQLite and Postgres backends.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
)

var (
	// ErrNotFound indicates a missing record.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrAccountExists indicates an email already registered.
	ErrAccountExists = apperrors.New(apperrors.CodeAccountExists, "an account with this email already exists")
)

// User is the primary creator profile record, keyed by account id.
type User struct {
	ID           string
	ProfileImage string
	Username     string
	Age          string
	Gender       string
	Country      string
	Role         string
	Email        string
	Category     string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Price is one deliverable rate inside a social profile's pricing object.
type Price struct {
	Avg      string `json:"avg"`
	Currency string `json:"currency"`
}

// SocialProfile is one per-platform record keyed by (UserID, Platform).
// Pricing is stored as an embedded object, not flattened.
type SocialProfile struct {
	UserID          string
	Platform        string
	Username        string
	ChannelURL      string
	ChannelID       string
	ChannelName     string
	ProfileImage    string
	SubscriberCount *int64
	Followers       *int64
	Posts           *int64
	Pricing         map[string]Price
	UpdatedAt       time.Time
}

// Brand is the brand profile record, keyed by account id.
type Brand struct {
	UserID                     string
	BrandName                  string
	LogoURL                    string
	WebsiteURL                 string
	Industry                   string
	CompanySize                string
	Location                   string
	Description                string
	ContactPerson              string
	ContactEmail               string
	ContactPhone               string
	Role                       string
	InstagramURL               string
	FacebookURL                string
	TwitterURL                 string
	LinkedInURL                string
	YouTubeURL                 string
	CollaborationTypes         []string
	PreferredCreatorCategories []string
	BrandValues                []string
	PreferredTone              []string
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// Account is a sign-in identity. PasswordHash is empty for accounts created
// through an external provider.
type Account struct {
	ID              string
	Email           string
	DisplayName     string
	PasswordHash    string
	Provider        string
	ProviderSubject string
	CreatedAt       time.Time
}

// ProfileStore persists onboarding records with insert-or-replace semantics.
type ProfileStore interface {
	UpsertUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	UpsertSocialProfile(ctx context.Context, profile SocialProfile) error
	ListSocialProfiles(ctx context.Context, userID string) ([]SocialProfile, error)
	UpsertBrand(ctx context.Context, brand Brand) error
	GetBrand(ctx context.Context, userID string) (Brand, error)
}

// AccountStore persists sign-in identities.
type AccountStore interface {
	CreateAccount(ctx context.Context, account Account) error
	GetAccount(ctx context.Context, id string) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	GetAccountByProvider(ctx context.Context, provider, subject string) (Account, error)
}

// Store is the full onboarding persistence contract.
type Store interface {
	ProfileStore
	AccountStore
	Close() error
}
