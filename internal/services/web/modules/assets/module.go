// Package assets serves uploaded profile pictures and brand logos from the
// object store at their public URLs.
package assets

import (
	"context"
	"net/http"

	"github.com/louisbranch/inpact/internal/services/onboarding/objectstore"
	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// ObjectReader loads a stored object.
type ObjectReader interface {
	Get(ctx context.Context, bucket, path string) (objectstore.Object, error)
}

// Module provides the public storage routes.
type Module struct {
	objects ObjectReader
}

// New returns an assets module reading from objects.
func New(objects ObjectReader) Module {
	return Module{objects: objects}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "assets" }

// Healthy reports whether an object store is configured.
func (m Module) Healthy() bool { return m.objects != nil }

// Mount wires the storage route.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.objects, modulehandler.NewBase(deps)))
	return module.Mount{Prefix: routepath.StoragePrefix, Handler: mux}, nil
}
