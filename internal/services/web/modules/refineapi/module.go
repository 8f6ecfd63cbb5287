// Package refineapi exposes bio refinement as a small JSON endpoint so
// scripted clients get the same rewriting the wizard uses.
package refineapi

import (
	"context"
	"net/http"

	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// Refiner rewrites text. On error the returned text is the input.
type Refiner interface {
	Refine(ctx context.Context, text string) (string, error)
}

// Module provides the refinement endpoint.
type Module struct {
	refiner Refiner
}

// New returns a refine API module.
func New(refiner Refiner) Module {
	return Module{refiner: refiner}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "refine-api" }

// Healthy reports whether a refiner is configured.
func (m Module) Healthy() bool { return m.refiner != nil }

// Mount wires the endpoint.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.refiner, modulehandler.NewBase(deps)))
	return module.Mount{Prefix: routepath.Prefix(routepath.APIRefine), Handler: mux}, nil
}
