package submit

import (
	"context"
	"errors"
	"sync"

	"github.com/louisbranch/inpact/internal/services/onboarding/objectstore"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

type uploadCall struct {
	bucket      string
	path        string
	contentType string
	size        int
}

// fakeObjects records uploads. When gate is set, each upload signals started
// and then blocks until gate is closed.
type fakeObjects struct {
	mu      sync.Mutex
	uploads []uploadCall
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (f *fakeObjects) Upload(_ context.Context, bucket, path, contentType string, data []byte) error {
	f.mu.Lock()
	f.uploads = append(f.uploads, uploadCall{bucket: bucket, path: path, contentType: contentType, size: len(data)})
	started, gate, err := f.started, f.gate, f.err
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeObjects) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func (f *fakeObjects) PublicURL(bucket, path string) string {
	return objectstore.PublicURL("https://inpact.test", bucket, path)
}

type fakeProfiles struct {
	mu           sync.Mutex
	users        []storage.User
	social       []storage.SocialProfile
	brands       []storage.Brand
	userErr      error
	brandErr     error
	socialErrFor map[string]error
}

func (f *fakeProfiles) UpsertUser(_ context.Context, user storage.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, user)
	return f.userErr
}

func (f *fakeProfiles) GetUser(context.Context, string) (storage.User, error) {
	return storage.User{}, storage.ErrNotFound
}

func (f *fakeProfiles) UpsertSocialProfile(_ context.Context, profile storage.SocialProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.social = append(f.social, profile)
	return f.socialErrFor[profile.Platform]
}

func (f *fakeProfiles) ListSocialProfiles(context.Context, string) ([]storage.SocialProfile, error) {
	return nil, nil
}

func (f *fakeProfiles) UpsertBrand(_ context.Context, brand storage.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brands = append(f.brands, brand)
	return f.brandErr
}

func (f *fakeProfiles) GetBrand(context.Context, string) (storage.Brand, error) {
	return storage.Brand{}, storage.ErrNotFound
}

func (f *fakeProfiles) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users) + len(f.social) + len(f.brands)
}

var errStoreDown = errors.New("store down")
