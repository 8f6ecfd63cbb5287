package refineapi

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	postOnly := httpx.RequireMethod(http.MethodPost, http.HandlerFunc(h.handleMethodNotAllowed))
	mux.Handle(routepath.APIRefine, postOnly(http.HandlerFunc(h.handleRefine)))
	mux.HandleFunc(routepath.Prefix(routepath.APIRefine)+"{rest...}", h.handleNotFound)
}
