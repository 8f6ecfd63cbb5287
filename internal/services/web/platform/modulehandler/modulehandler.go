// Package modulehandler provides a composable base for web module handlers.
//
// Modules share common handler infrastructure for session resolution,
// localization, page rendering, and error handling. This package extracts
// that scaffold so modules embed it rather than duplicating it.
package modulehandler

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	module "github.com/louisbranch/inpact/internal/services/web/module"
	webi18n "github.com/louisbranch/inpact/internal/services/web/platform/i18n"
	"github.com/louisbranch/inpact/internal/services/web/platform/pagerender"
	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/inpact/internal/services/web/platform/theme"
	"github.com/louisbranch/inpact/internal/services/web/platform/webctx"
	"github.com/louisbranch/inpact/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

// Base carries the request-scoped resolvers used by module handlers. Embed
// this in module handler structs.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// NewTestBase builds a handler base with fixed request state for tests.
func NewTestBase(sess *session.Session) Base {
	return Base{deps: module.Dependencies{
		ResolveSession: func(*http.Request) *session.Session { return sess },
	}}
}

// ResolveRequestSession resolves the request session. Nil is anonymous.
func (b Base) ResolveRequestSession(r *http.Request) *session.Session {
	return b.deps.Session(r)
}

// ResolveRequestLanguage returns the explicit request language.
func (b Base) ResolveRequestLanguage(r *http.Request) string {
	return b.deps.Language(r)
}

// ResolveRequestTheme returns the request display mode.
func (b Base) ResolveRequestTheme(r *http.Request) theme.Theme {
	return b.deps.Theme(r)
}

// SchemePolicy returns the cookie scheme policy for writes.
func (b Base) SchemePolicy() requestmeta.SchemePolicy {
	return b.deps.RequestSchemePolicy
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.deps.Language)
}

// Page resolves the shared page context for the request.
func (b Base) Page(w http.ResponseWriter, r *http.Request, title string) webtemplates.Page {
	return pagerender.NewPage(w, r, b, title)
}

// RequestContext returns the request context carrying the session user id.
func (b Base) RequestContext(r *http.Request) context.Context {
	return webctx.WithResolvedUserID(r, b.deps.ResolveSession)
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b)
}

// WriteNotFound renders a 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b)
}

// WritePage renders a module page, HTMX-aware.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.ModulePage) {
	if err := pagerender.WriteModulePage(w, r, b, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteComponent renders fragment with an already resolved page.
func (b Base) WriteComponent(w http.ResponseWriter, r *http.Request, statusCode int, page webtemplates.Page, fragment templ.Component) {
	if err := pagerender.WriteComponent(w, r, statusCode, page, fragment); err != nil {
		b.WriteError(w, r, err)
	}
}
