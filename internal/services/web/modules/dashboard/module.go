// Package dashboard serves the signed-in landing pages that summarize a
// finished creator or brand profile.
package dashboard

import (
	"net/http"

	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

type kind int

const (
	kindCreator kind = iota
	kindBrand
)

// Module provides one dashboard's routes.
type Module struct {
	id       string
	kind     kind
	basePath string
	profiles ProfileReader
}

// NewCreator returns the creator dashboard mounted at /dashboard.
func NewCreator(profiles ProfileReader) Module {
	return Module{id: "dashboard", kind: kindCreator, basePath: routepath.Dashboard, profiles: profiles}
}

// NewBrand returns the brand dashboard mounted at /brand/dashboard.
func NewBrand(profiles ProfileReader) Module {
	return Module{id: "brand-dashboard", kind: kindBrand, basePath: routepath.BrandDashboard, profiles: profiles}
}

// ID returns a stable module identifier.
func (m Module) ID() string { return m.id }

// Healthy reports whether profiles can be read.
func (m Module) Healthy() bool { return m.profiles != nil }

// Mount wires dashboard route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.profiles), modulehandler.NewBase(deps), m.kind, m.basePath)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Prefix(m.basePath), Handler: mux}, nil
}
