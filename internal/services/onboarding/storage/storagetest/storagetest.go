// Package storagetest holds the behavior checks every onboarding store
// backend must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/inpact/internal/platform/id"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

// Run exercises store against the upsert and lookup contract. Record ids
// are random so backends may share one database across runs.
func Run(t *testing.T, store storage.Store) {
	t.Helper()

	t.Run("user upsert replaces", func(t *testing.T) { testUserUpsert(t, store) })
	t.Run("missing user", func(t *testing.T) { testMissingUser(t, store) })
	t.Run("social profile composite key", func(t *testing.T) { testSocialProfiles(t, store) })
	t.Run("brand upsert replaces", func(t *testing.T) { testBrandUpsert(t, store) })
	t.Run("accounts", func(t *testing.T) { testAccounts(t, store) })
}

func newID(t *testing.T) string {
	t.Helper()
	value, err := id.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	return value
}

func testUserUpsert(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := newID(t)
	created := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	first := storage.User{
		ID:        userID,
		Username:  "Ada",
		Email:     "ada@example.com",
		Role:      "creator",
		Category:  "Tech & Gadgets",
		Bio:       "Builds things.",
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := store.UpsertUser(ctx, first); err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	second := first
	second.Username = "Ada L."
	second.ProfileImage = "http://localhost/storage/profile-pictures/" + userID + "/profile.png"
	second.UpdatedAt = created.Add(time.Hour)
	if err := store.UpsertUser(ctx, second); err != nil {
		t.Fatalf("upsert user again: %v", err)
	}

	got, err := store.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Username != "Ada L." {
		t.Fatalf("username = %q, want %q", got.Username, "Ada L.")
	}
	if got.ProfileImage != second.ProfileImage {
		t.Fatalf("profile_image = %q, want %q", got.ProfileImage, second.ProfileImage)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.Equal(second.UpdatedAt) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, second.UpdatedAt)
	}
}

func testMissingUser(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if _, err := store.GetUser(ctx, newID(t)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing user error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetBrand(ctx, newID(t)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing brand error = %v, want ErrNotFound", err)
	}
}

func testSocialProfiles(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := newID(t)
	followers := int64(1200)
	posts := int64(40)

	instagram := storage.SocialProfile{
		UserID:    userID,
		Platform:  "instagram",
		Username:  "ada",
		Followers: &followers,
		Posts:     &posts,
		Pricing: map[string]storage.Price{
			"post":  {Avg: "100", Currency: "USD"},
			"story": {Avg: "50", Currency: "USD"},
		},
	}
	tiktok := storage.SocialProfile{
		UserID:   userID,
		Platform: "tiktok",
		Username: "ada.tt",
		Pricing:  map[string]storage.Price{"video": {Avg: "80", Currency: "USD"}},
	}
	for _, profile := range []storage.SocialProfile{instagram, tiktok} {
		if err := store.UpsertSocialProfile(ctx, profile); err != nil {
			t.Fatalf("upsert %s: %v", profile.Platform, err)
		}
	}

	instagram.Username = "ada.ig"
	instagram.Pricing["post"] = storage.Price{Avg: "150", Currency: "EUR"}
	if err := store.UpsertSocialProfile(ctx, instagram); err != nil {
		t.Fatalf("upsert instagram again: %v", err)
	}

	profiles, err := store.ListSocialProfiles(ctx, userID)
	if err != nil {
		t.Fatalf("list social profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(profiles))
	}
	if profiles[0].Platform != "instagram" || profiles[1].Platform != "tiktok" {
		t.Fatalf("platforms = [%s %s], want [instagram tiktok]", profiles[0].Platform, profiles[1].Platform)
	}
	ig := profiles[0]
	if ig.Username != "ada.ig" {
		t.Fatalf("instagram username = %q, want %q", ig.Username, "ada.ig")
	}
	if ig.Followers == nil || *ig.Followers != 1200 {
		t.Fatalf("instagram followers = %v, want 1200", ig.Followers)
	}
	if got := ig.Pricing["post"]; got.Avg != "150" || got.Currency != "EUR" {
		t.Fatalf("instagram post price = %+v, want 150 EUR", got)
	}
	if profiles[1].Followers != nil {
		t.Fatalf("tiktok followers = %v, want nil", *profiles[1].Followers)
	}
}

func testBrandUpsert(t *testing.T, store storage.Store) {
	ctx := context.Background()
	userID := newID(t)

	brand := storage.Brand{
		UserID:                     userID,
		BrandName:                  "Acme",
		LogoURL:                    "https://cdn.example.com/acme.png",
		Industry:                   "Tech",
		CompanySize:                "11-50",
		Location:                   "USA",
		Description:                "Rockets and anvils.",
		ContactPerson:              "Wile",
		ContactEmail:               "wile@acme.test",
		Role:                       "brand",
		CollaborationTypes:         []string{"Sponsorship", "UGC"},
		PreferredCreatorCategories: []string{"Tech"},
	}
	if err := store.UpsertBrand(ctx, brand); err != nil {
		t.Fatalf("upsert brand: %v", err)
	}
	brand.BrandName = "Acme Corp"
	brand.BrandValues = []string{"Innovation"}
	if err := store.UpsertBrand(ctx, brand); err != nil {
		t.Fatalf("upsert brand again: %v", err)
	}

	got, err := store.GetBrand(ctx, userID)
	if err != nil {
		t.Fatalf("get brand: %v", err)
	}
	if got.BrandName != "Acme Corp" {
		t.Fatalf("brand_name = %q, want %q", got.BrandName, "Acme Corp")
	}
	if len(got.CollaborationTypes) != 2 || got.CollaborationTypes[1] != "UGC" {
		t.Fatalf("collaboration_types = %v, want [Sponsorship UGC]", got.CollaborationTypes)
	}
	if len(got.BrandValues) != 1 || got.BrandValues[0] != "Innovation" {
		t.Fatalf("brand_values = %v, want [Innovation]", got.BrandValues)
	}
	if len(got.PreferredTone) != 0 {
		t.Fatalf("preferred_tone = %v, want empty", got.PreferredTone)
	}
}

func testAccounts(t *testing.T, store storage.Store) {
	ctx := context.Background()
	accountID := newID(t)
	email := accountID + "@Example.com"

	account := storage.Account{
		ID:              accountID,
		Email:           email,
		DisplayName:     "Grace",
		Provider:        "google",
		ProviderSubject: "sub-" + accountID,
	}
	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	duplicate := account
	duplicate.ID = newID(t)
	duplicate.ProviderSubject = ""
	if err := store.CreateAccount(ctx, duplicate); !errors.Is(err, storage.ErrAccountExists) {
		t.Fatalf("duplicate account error = %v, want ErrAccountExists", err)
	}

	byEmail, err := store.GetAccountByEmail(ctx, email)
	if err != nil {
		t.Fatalf("get account by email: %v", err)
	}
	if byEmail.ID != accountID {
		t.Fatalf("account id = %q, want %q", byEmail.ID, accountID)
	}
	byProvider, err := store.GetAccountByProvider(ctx, "google", "sub-"+accountID)
	if err != nil {
		t.Fatalf("get account by provider: %v", err)
	}
	if byProvider.DisplayName != "Grace" {
		t.Fatalf("display_name = %q, want %q", byProvider.DisplayName, "Grace")
	}
	if _, err := store.GetAccount(ctx, newID(t)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing account error = %v, want ErrNotFound", err)
	}
}
