package onboarding

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	base := h.basePath
	prefix := routepath.Prefix(base)
	mux.HandleFunc(http.MethodGet+" "+base, h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+prefix+"{$}", h.handlePage)
	mux.HandleFunc(http.MethodPost+" "+routepath.WizardStep(base), h.handleStep)
	mux.HandleFunc(http.MethodPost+" "+routepath.WizardYouTube(base), h.handleYouTube)
	mux.HandleFunc(http.MethodPost+" "+routepath.WizardBio(base), h.handleBio)
	mux.HandleFunc(http.MethodPost+" "+routepath.WizardRefine(base), h.handleRefine)
	mux.HandleFunc(http.MethodGet+" "+routepath.WizardAsset(base), h.handleAsset)
	mux.HandleFunc(http.MethodPost+" "+routepath.WizardAsset(base), h.handleAssetUpload)
	mux.HandleFunc(http.MethodPost+" "+routepath.WizardSubmit(base), h.handleSubmit)
	for _, path := range []string{routepath.WizardStep(base), routepath.WizardSubmit(base), routepath.WizardRefine(base)} {
		mux.HandleFunc(http.MethodGet+" "+path, httpx.MethodNotAllowed(http.MethodPost))
	}
	mux.HandleFunc(http.MethodGet+" "+prefix+"{rest...}", h.WriteNotFound)
}
