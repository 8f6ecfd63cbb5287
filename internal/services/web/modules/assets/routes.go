package assets

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.StorageObject, h.handleObject)
	mux.HandleFunc(http.MethodGet+" "+routepath.StoragePrefix+"{$}", h.WriteNotFound)
}
