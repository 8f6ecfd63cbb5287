package dashboard

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	prefix := routepath.Prefix(h.basePath)
	mux.HandleFunc(http.MethodGet+" "+h.basePath, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+prefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+prefix+"{rest...}", h.WriteNotFound)
}
