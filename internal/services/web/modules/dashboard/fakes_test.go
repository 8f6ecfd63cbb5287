package dashboard

import (
	"context"

	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

// fakeProfiles serves canned profile records with an optional failure.
type fakeProfiles struct {
	users    map[string]storage.User
	socials  map[string][]storage.SocialProfile
	brands   map[string]storage.Brand
	err      error
	getCalls int
}

func (f *fakeProfiles) GetUser(_ context.Context, id string) (storage.User, error) {
	f.getCalls++
	if f.err != nil {
		return storage.User{}, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeProfiles) ListSocialProfiles(_ context.Context, userID string) ([]storage.SocialProfile, error) {
	return f.socials[userID], nil
}

func (f *fakeProfiles) GetBrand(_ context.Context, userID string) (storage.Brand, error) {
	f.getCalls++
	if f.err != nil {
		return storage.Brand{}, f.err
	}
	brand, ok := f.brands[userID]
	if !ok {
		return storage.Brand{}, storage.ErrNotFound
	}
	return brand, nil
}

func seededProfiles() *fakeProfiles {
	return &fakeProfiles{
		users: map[string]storage.User{
			"user-1": {ID: "user-1", Username: "Ada", Email: "ada@example.com", Category: "Tech & Gadgets"},
		},
		socials: map[string][]storage.SocialProfile{
			"user-1": {{UserID: "user-1", Platform: "youtube", Username: "Ada Codes"}},
		},
		brands: map[string]storage.Brand{
			"user-2": {UserID: "user-2", BrandName: "Acme", Industry: "Tech", Location: "UK"},
		},
	}
}
