package onboarding

import (
	"context"
	"sync"

	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/submit"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore/memory"
	"github.com/louisbranch/inpact/internal/services/onboarding/youtube"
)

// fakeLookup resolves channels by URL. A gate registered for a URL blocks
// that lookup until the gate is closed.
type fakeLookup struct {
	mu       sync.Mutex
	channels map[string]youtube.Channel
	gates    map[string]chan struct{}
	started  chan string
	calls    int
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		channels: make(map[string]youtube.Channel),
		gates:    make(map[string]chan struct{}),
	}
}

func (f *fakeLookup) LookupURL(_ context.Context, raw string) (youtube.Channel, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gates[raw]
	channel, ok := f.channels[raw]
	started := f.started
	f.mu.Unlock()
	if started != nil {
		started <- raw
	}
	if gate != nil {
		<-gate
	}
	if !ok {
		return youtube.Channel{}, youtube.ErrChannelNotFound
	}
	return channel, nil
}

// fakeRefiner returns a canned result or error, optionally after a gate.
type fakeRefiner struct {
	mu      sync.Mutex
	refined string
	err     error
	gate    chan struct{}
	calls   int
}

func (f *fakeRefiner) Refine(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return text, f.err
	}
	return f.refined, nil
}

func (f *fakeRefiner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeSubmitter records submissions and returns the flow's landing route.
type fakeSubmitter struct {
	mu    sync.Mutex
	err   error
	calls []wizard.Flow
}

func (f *fakeSubmitter) SubmitCreator(_ context.Context, sess *session.Session, state *wizard.State) (submit.Result, error) {
	return f.record(sess, state, wizard.FlowCreator, submit.CreatorLanding)
}

func (f *fakeSubmitter) SubmitBrand(_ context.Context, sess *session.Session, state *wizard.State) (submit.Result, error) {
	return f.record(sess, state, wizard.FlowBrand, submit.BrandLanding)
}

func (f *fakeSubmitter) record(sess *session.Session, state *wizard.State, flow wizard.Flow, landing string) (submit.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, flow)
	if !sess.Authenticated() {
		return submit.Result{}, submit.ErrNotAuthenticated
	}
	if !state.ReadyToSubmit() {
		return submit.Result{}, submit.ErrNotReady
	}
	if f.err != nil {
		return submit.Result{}, f.err
	}
	return submit.Result{Redirect: landing}, nil
}

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

type testEnv struct {
	cfg       Config
	store     *memory.Store
	lookup    *fakeLookup
	refiner   *fakeRefiner
	submitter *fakeSubmitter
}

func newTestEnv() testEnv {
	env := testEnv{
		store:     memory.New(0),
		lookup:    newFakeLookup(),
		refiner:   &fakeRefiner{refined: "A polished bio."},
		submitter: &fakeSubmitter{},
	}
	env.cfg = Config{
		Wizards:   env.store,
		YouTube:   env.lookup,
		Refiner:   env.refiner,
		Submitter: env.submitter,
		Profiles:  fakeProfiles{},
	}
	return env
}

func testSession() *session.Session {
	return &session.Session{ID: "sess-1", UserID: "user-1", Email: "ada@example.com", DisplayName: "Ada"}
}
