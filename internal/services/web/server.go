// Package web hosts the browser-facing onboarding service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/platform/timeouts"
	webapp "github.com/louisbranch/inpact/internal/services/web/app"
	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/modules"
	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/platform/observability"
	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
	webstatic "github.com/louisbranch/inpact/internal/services/web/static"
)

// DefaultMaxBodyBytes bounds request bodies. Uploads are the largest
// payload; the wizard caps images well below this.
const DefaultMaxBodyBytes int64 = 8 << 20

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr            string
	Sessions            SessionVerifier
	Modules             modules.Dependencies
	TrustForwardedProto bool
	// PublicOrigin is the externally visible origin, accepted as a
	// same-origin match for cookie-bearing writes.
	PublicOrigin string
	MaxBodyBytes int64
	Logger       *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	resolver := requestResolver{sessions: cfg.Sessions}
	deps := module.Dependencies{
		ResolveSession: resolver.resolveSession,
		ResolveTheme:   resolver.resolveTheme,
		RequestSchemePolicy: requestmeta.SchemePolicy{
			TrustForwardedProto: cfg.TrustForwardedProto,
			PublicOrigin:        cfg.PublicOrigin,
		},
	}
	rootCfg := webapp.Config{
		Dependencies:     deps,
		PublicModules:    modules.DefaultPublicModules(cfg.Modules),
		ProtectedModules: modules.DefaultProtectedModules(cfg.Modules),
	}
	h, err := webapp.BuildRootHandler(rootCfg)
	if err != nil {
		return nil, err
	}

	all := rootCfg.Modules()
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Health, healthHandler(all))
	rootMux.Handle(routepath.Root, h)

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.LimitBody(maxBody),
		withRequestState(),
		observability.RequestLogger(cfg.Logger),
	), nil
}

type healthResponse struct {
	Status  string          `json:"status"`
	Modules map[string]bool `json:"modules"`
}

// healthHandler reports "ok" when every module is healthy and "degraded"
// otherwise. The process is up either way, so both answer 200.
func healthHandler(all []module.Module) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			httpx.MethodNotAllowed("GET, HEAD")(w, r)
			return
		}
		report := webapp.Healthy(all...)
		status := "ok"
		for _, healthy := range report {
			if !healthy {
				status = "degraded"
				break
			}
		}
		_ = httpx.WriteJSON(w, http.StatusOK, healthResponse{Status: status, Modules: report})
	})
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("web: listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
