package public

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" /{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.Signup, h.handleSignupPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Signup, h.handleSignup)
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthGoogleStart, h.handleGoogleStart)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthGoogleCallback, h.handleGoogleCallback)
	mux.HandleFunc(http.MethodGet+" /{path...}", h.WriteNotFound)
	mux.HandleFunc(http.MethodPost+" /{path...}", h.WriteNotFound)
}
