// Package settings serves display preferences. The theme is the only
// preference and lives in a cookie, so the module works signed in or not.
package settings

import (
	"net/http"

	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// Module provides the theme toggle route.
type Module struct{}

// New returns a settings module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "settings" }

// Mount wires the preference handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(modulehandler.NewBase(deps)))
	return module.Mount{Prefix: routepath.Prefix(routepath.Theme), Handler: mux}, nil
}
