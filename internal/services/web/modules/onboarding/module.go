// Package onboarding serves the creator and brand onboarding wizards. Each
// flow mounts its own instance; both share the wizard store and the domain
// clients.
package onboarding

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// Module provides one onboarding wizard's routes.
type Module struct {
	id       string
	flow     wizard.Flow
	basePath string
	cfg      Config
}

// NewCreator returns the creator wizard mounted at /onboarding.
func NewCreator(cfg Config) Module {
	return Module{id: "onboarding", flow: wizard.FlowCreator, basePath: routepath.Onboarding, cfg: cfg}
}

// NewBrand returns the brand wizard mounted at /brand-onboarding.
func NewBrand(cfg Config) Module {
	return Module{id: "brand-onboarding", flow: wizard.FlowBrand, basePath: routepath.BrandOnboarding, cfg: cfg}
}

// ID returns a stable module identifier.
func (m Module) ID() string { return m.id }

// Healthy reports whether the module can store and submit wizards.
func (m Module) Healthy() bool {
	return m.cfg.Wizards != nil && m.cfg.Submitter != nil
}

// Mount wires wizard route handlers under the flow's base path.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.flow, m.cfg), modulehandler.NewBase(deps), m.basePath)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Prefix(m.basePath), Handler: mux}, nil
}
