// Package app opens the stores and clients shared by the web service, the
// operator CLI, and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/platform/timeouts"
	"github.com/louisbranch/inpact/internal/services/auth/credentials"
	"github.com/louisbranch/inpact/internal/services/auth/google"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	objectbbolt "github.com/louisbranch/inpact/internal/services/onboarding/objectstore/bbolt"
	"github.com/louisbranch/inpact/internal/services/onboarding/refine"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage/postgres"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage/sqlite"
	"github.com/louisbranch/inpact/internal/services/onboarding/submit"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore/memory"
	wizardredis "github.com/louisbranch/inpact/internal/services/onboarding/wizardstore/redis"
	"github.com/louisbranch/inpact/internal/services/onboarding/youtube"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Wizard store backends.
const (
	WizardMemory = "memory"
	WizardRedis  = "redis"
)

// StoreConfig selects the profile database.
type StoreConfig struct {
	Driver string
	Path   string
	DSN    string
}

// ClientConfig configures the outbound YouTube and refinement clients.
type ClientConfig struct {
	YouTubeAPIKey  string
	YouTubeBaseURL string
	RefineAPIKey   string
	RefineURL      string
}

// Config carries everything needed to open a Runtime.
type Config struct {
	Store   StoreConfig
	Clients ClientConfig

	ObjectStorePath string
	PublicBaseURL   string

	WizardStore   string
	WizardTTL     time.Duration
	RedisAddr     string
	RedisPassword string

	SessionSecret string
	SessionTTL    time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	Logger *log.Logger
}

// Runtime holds the opened collaborators. Close releases them.
type Runtime struct {
	Store       storage.Store
	Objects     *objectbbolt.Store
	Wizards     wizardstore.Store
	Sessions    *session.Manager
	Credentials *credentials.Service
	Google      *google.Provider
	YouTube     *youtube.Client
	Refiner     *refine.Client
	Submitter   *submit.Coordinator

	closers []func() error
}

// OpenStore opens the configured profile database and applies migrations.
func OpenStore(ctx context.Context, cfg StoreConfig) (storage.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", DriverSQLite:
		return sqlite.Open(cfg.Path)
	case DriverPostgres:
		openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
		defer cancel()
		return postgres.Open(openCtx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// NewYouTube builds the channel lookup client.
func NewYouTube(cfg ClientConfig) *youtube.Client {
	return youtube.NewClient(youtube.Config{
		BaseURL:    cfg.YouTubeBaseURL,
		APIKey:     cfg.YouTubeAPIKey,
		HTTPClient: &http.Client{Timeout: timeouts.ExternalRequest},
	})
}

// NewRefiner builds the bio refinement client.
func NewRefiner(cfg ClientConfig) *refine.Client {
	return refine.NewClient(refine.Config{
		URL:        cfg.RefineURL,
		APIKey:     cfg.RefineAPIKey,
		HTTPClient: &http.Client{Timeout: timeouts.Refine},
	})
}

// Open opens every store and client. On error anything already opened is
// closed.
func Open(ctx context.Context, cfg Config) (*Runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	rt := &Runtime{}

	sessions, err := session.NewManager(session.Config{Secret: []byte(cfg.SessionSecret), TTL: cfg.SessionTTL})
	if err != nil {
		return nil, fmt.Errorf("init sessions: %w", err)
	}
	rt.Sessions = sessions

	store, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.Store = store
	rt.closers = append(rt.closers, store.Close)

	objects, err := objectbbolt.Open(cfg.ObjectStorePath, cfg.PublicBaseURL)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("open object store: %w", err)
	}
	rt.Objects = objects
	rt.closers = append(rt.closers, objects.Close)

	wizards, closeWizards, err := openWizards(ctx, cfg)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("open wizard store: %w", err)
	}
	rt.Wizards = wizards
	if closeWizards != nil {
		rt.closers = append(rt.closers, closeWizards)
	}

	rt.Credentials = credentials.NewService(store)
	if strings.TrimSpace(cfg.GoogleClientID) != "" {
		provider, err := google.NewProvider(google.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		})
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("init google sign in: %w", err)
		}
		rt.Google = provider
	} else {
		logger.Printf("google sign in disabled reason=%q", "no client id")
	}

	rt.YouTube = NewYouTube(cfg.Clients)
	rt.Refiner = NewRefiner(cfg.Clients)
	rt.Submitter = submit.NewCoordinator(objects, store, submit.WithLogger(logger))
	return rt, nil
}

func openWizards(ctx context.Context, cfg Config) (wizardstore.Store, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.WizardStore)) {
	case "", WizardMemory:
		return memory.New(cfg.WizardTTL), nil, nil
	case WizardRedis:
		dialCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
		defer cancel()
		client, err := wizardredis.Dial(dialCtx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return wizardredis.New(client, "", cfg.WizardTTL), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown wizard store %q", cfg.WizardStore)
	}
}

// Close releases opened resources in reverse order.
func (rt *Runtime) Close() error {
	if rt == nil {
		return nil
	}
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
