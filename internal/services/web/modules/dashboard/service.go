package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

// ProfileReader loads the records a dashboard summarizes.
type ProfileReader interface {
	GetUser(ctx context.Context, id string) (storage.User, error)
	ListSocialProfiles(ctx context.Context, userID string) ([]storage.SocialProfile, error)
	GetBrand(ctx context.Context, userID string) (storage.Brand, error)
}

type service struct {
	profiles ProfileReader
}

func newService(profiles ProfileReader) service {
	if profiles == nil {
		profiles = emptyProfiles{}
	}
	return service{profiles: profiles}
}

// loadCreator returns the creator summary. A user who has not finished
// onboarding gets an empty view.
func (s service) loadCreator(ctx context.Context, userID string) (webtemplates.CreatorDashboardView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return webtemplates.CreatorDashboardView{}, nil
	}
	user, err := s.profiles.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return webtemplates.CreatorDashboardView{}, nil
	}
	if err != nil {
		return webtemplates.CreatorDashboardView{}, fmt.Errorf("load user: %w", err)
	}
	profiles, err := s.profiles.ListSocialProfiles(ctx, userID)
	if err != nil {
		return webtemplates.CreatorDashboardView{}, fmt.Errorf("list social profiles: %w", err)
	}
	return webtemplates.CreatorDashboardView{User: &user, Profiles: profiles}, nil
}

// loadBrand returns the brand summary, empty until the brand wizard is done.
func (s service) loadBrand(ctx context.Context, userID string) (webtemplates.BrandDashboardView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return webtemplates.BrandDashboardView{}, nil
	}
	brand, err := s.profiles.GetBrand(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return webtemplates.BrandDashboardView{}, nil
	}
	if err != nil {
		return webtemplates.BrandDashboardView{}, fmt.Errorf("load brand: %w", err)
	}
	return webtemplates.BrandDashboardView{Brand: &brand}, nil
}

type emptyProfiles struct{}

func (emptyProfiles) GetUser(context.Context, string) (storage.User, error) {
	return storage.User{}, storage.ErrNotFound
}

func (emptyProfiles) ListSocialProfiles(context.Context, string) ([]storage.SocialProfile, error) {
	return nil, nil
}

func (emptyProfiles) GetBrand(context.Context, string) (storage.Brand, error) {
	return storage.Brand{}, storage.ErrNotFound
}
