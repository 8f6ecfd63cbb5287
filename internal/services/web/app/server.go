package app

import (
	"net/http"

	module "github.com/louisbranch/inpact/internal/services/web/module"
)

// Config groups the request resolvers with the modules mounted on the root
// mux. Protected modules sit behind the session check.
type Config struct {
	Dependencies     module.Dependencies
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

// Modules returns every configured module, public first.
func (c Config) Modules() []module.Module {
	out := make([]module.Module, 0, len(c.PublicModules)+len(c.ProtectedModules))
	out = append(out, c.PublicModules...)
	return append(out, c.ProtectedModules...)
}

// BuildRootHandler composes a root mux using the configured module groups.
// Protected modules require a session resolved by deps.ResolveSession.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	deps := cfg.Dependencies
	return Compose(ComposeInput{
		Dependencies: deps,
		AuthRequired: func(r *http.Request) bool {
			return deps.Session(r).Authenticated()
		},
		PublicModules:    cfg.PublicModules,
		ProtectedModules: cfg.ProtectedModules,
	})
}

// Healthy reports each module's health. Modules without a health reporter
// count as healthy.
func Healthy(modules ...module.Module) map[string]bool {
	out := make(map[string]bool, len(modules))
	for _, m := range modules {
		if m == nil {
			continue
		}
		reporter, ok := m.(module.HealthReporter)
		out[m.ID()] = !ok || reporter.Healthy()
	}
	return out
}
