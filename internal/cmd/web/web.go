// Package web parses web service configuration and launches the server.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	entrypoint "github.com/louisbranch/inpact/internal/platform/cmd"
	onboardingapp "github.com/louisbranch/inpact/internal/services/onboarding/app"
	"github.com/louisbranch/inpact/internal/services/web"
	"github.com/louisbranch/inpact/internal/services/web/modules"
	"github.com/louisbranch/inpact/internal/services/web/modules/public"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr      string `env:"INPACT_WEB_HTTP_ADDR"       envDefault:"localhost:8080"`
	PublicBaseURL string `env:"INPACT_WEB_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	DBDriver string `env:"INPACT_DB_DRIVER" envDefault:"sqlite"`
	DBPath   string `env:"INPACT_DB_PATH"   envDefault:"data/inpact.db"`
	DBDSN    string `env:"INPACT_DB_DSN"`

	ObjectStorePath string `env:"INPACT_OBJECT_STORE_PATH" envDefault:"data/objects.db"`

	WizardStore   string        `env:"INPACT_WIZARD_STORE"   envDefault:"memory"`
	WizardTTL     time.Duration `env:"INPACT_WIZARD_TTL"     envDefault:"24h"`
	RedisAddr     string        `env:"INPACT_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string        `env:"INPACT_REDIS_PASSWORD"`

	SessionSecret string        `env:"INPACT_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"INPACT_SESSION_TTL" envDefault:"168h"`

	YouTubeAPIKey  string `env:"INPACT_YOUTUBE_API_KEY"`
	YouTubeBaseURL string `env:"INPACT_YOUTUBE_BASE_URL"`
	RefineAPIKey   string `env:"INPACT_GEMINI_API_KEY"`
	RefineURL      string `env:"INPACT_GEMINI_URL"`

	GoogleClientID     string `env:"INPACT_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"INPACT_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"INPACT_GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`

	TrustForwardedProto bool  `env:"INPACT_TRUST_FORWARDED_PROTO" envDefault:"false"`
	MaxBodyBytes        int64 `env:"INPACT_WEB_MAX_BODY_BYTES"    envDefault:"8388608"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
		fs.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "Public base URL for uploaded objects")
		fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Profile store driver: sqlite or postgres")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
		fs.StringVar(&cfg.WizardStore, "wizard-store", cfg.WizardStore, "Wizard state store: memory or redis")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RuntimeConfig maps command settings onto the shared runtime config.
func (c Config) RuntimeConfig() onboardingapp.Config {
	return onboardingapp.Config{
		Store: onboardingapp.StoreConfig{Driver: c.DBDriver, Path: c.DBPath, DSN: c.DBDSN},
		Clients: onboardingapp.ClientConfig{
			YouTubeAPIKey:  c.YouTubeAPIKey,
			YouTubeBaseURL: c.YouTubeBaseURL,
			RefineAPIKey:   c.RefineAPIKey,
			RefineURL:      c.RefineURL,
		},
		ObjectStorePath:    c.ObjectStorePath,
		PublicBaseURL:      c.PublicBaseURL,
		WizardStore:        c.WizardStore,
		WizardTTL:          c.WizardTTL,
		RedisAddr:          c.RedisAddr,
		RedisPassword:      c.RedisPassword,
		SessionSecret:      c.SessionSecret,
		SessionTTL:         c.SessionTTL,
		GoogleClientID:     c.GoogleClientID,
		GoogleClientSecret: c.GoogleClientSecret,
		GoogleRedirectURL:  c.GoogleRedirectURL,
	}
}

// ServerConfig builds the web server config around an opened runtime.
func (c Config) ServerConfig(rt *onboardingapp.Runtime) web.Config {
	cfg := web.Config{
		HTTPAddr:            c.HTTPAddr,
		TrustForwardedProto: c.TrustForwardedProto,
		PublicOrigin:        c.PublicBaseURL,
		MaxBodyBytes:        c.MaxBodyBytes,
		Logger:              log.Default(),
	}
	if rt == nil {
		return cfg
	}
	cfg.Sessions = rt.Sessions
	cfg.Modules = modules.Dependencies{
		Auth:      rt.Credentials,
		Google:    public.NewGoogleGateway(rt.Google, rt.Store),
		Sessions:  rt.Sessions,
		Profiles:  rt.Store,
		Wizards:   rt.Wizards,
		YouTube:   rt.YouTube,
		Refiner:   rt.Refiner,
		Submitter: rt.Submitter,
		Objects:   rt.Objects,
	}
	return cfg
}

// Run opens the runtime and serves HTTP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		rt, err := onboardingapp.Open(ctx, cfg.RuntimeConfig())
		if err != nil {
			return fmt.Errorf("open runtime: %w", err)
		}
		defer func() {
			if err := rt.Close(); err != nil {
				log.Printf("web: close runtime err=%v", err)
			}
		}()

		server, err := web.NewServer(ctx, cfg.ServerConfig(rt))
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
