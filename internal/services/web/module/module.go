// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/inpact/internal/services/web/platform/theme"
)

// ResolveSession resolves the signed-in session for a request. A nil
// session is anonymous.
type ResolveSession func(*http.Request) *session.Session

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// ResolveTheme returns the request's display mode.
type ResolveTheme func(*http.Request) theme.Theme

// Dependencies carries the request-scoped resolvers every module receives.
// The session and theme are resolved per request through these functions
// and then passed explicitly to services and templates.
type Dependencies struct {
	ResolveSession      ResolveSession
	ResolveLanguage     ResolveLanguage
	ResolveTheme        ResolveTheme
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Session resolves the request session through deps.
func (d Dependencies) Session(r *http.Request) *session.Session {
	if d.ResolveSession == nil || r == nil {
		return nil
	}
	return d.ResolveSession(r)
}

// Theme resolves the request theme through deps.
func (d Dependencies) Theme(r *http.Request) theme.Theme {
	if d.ResolveTheme == nil {
		return theme.Resolve(r)
	}
	return d.ResolveTheme(r)
}

// Language resolves the explicit request language through deps.
func (d Dependencies) Language(r *http.Request) string {
	if d.ResolveLanguage == nil || r == nil {
		return ""
	}
	return d.ResolveLanguage(r)
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(deps Dependencies) (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
