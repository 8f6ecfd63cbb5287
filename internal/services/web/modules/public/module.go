// Package public serves the landing page and the sign-in surfaces:
// password login and signup, Google sign in, and logout.
package public

import (
	"net/http"

	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// Module provides unauthenticated root and auth routes.
type Module struct {
	cfg Config
}

// New returns a public module. Without an auth gateway and session issuer
// the module serves pages but every sign in fails as unavailable.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Healthy reports whether sign in is wired.
func (m Module) Healthy() bool {
	return m.cfg.Auth != nil && m.cfg.Sessions != nil
}

// Mount wires public route handlers at the root prefix.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.cfg), modulehandler.NewBase(deps))
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
