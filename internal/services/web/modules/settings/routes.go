package settings

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.Theme, h.handleTheme)
	mux.HandleFunc(http.MethodGet+" "+routepath.Theme, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.Prefix(routepath.Theme)+"{rest...}", h.WriteNotFound)
}
