// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	flashnotice "github.com/louisbranch/inpact/internal/services/web/platform/flash"
	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/inpact/internal/services/web/platform/i18n"
	"github.com/louisbranch/inpact/internal/services/web/platform/theme"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

// RequestResolver resolves session, language, and theme state from a
// request. This decouples platform rendering from module Dependencies.
type RequestResolver interface {
	ResolveRequestSession(r *http.Request) *session.Session
	ResolveRequestLanguage(r *http.Request) string
	ResolveRequestTheme(r *http.Request) theme.Theme
}

// ModulePage describes a module page response for both full-page and HTMX
// flows. Body renders inside the layout; Partial, when set, replaces it for
// HTMX requests.
type ModulePage struct {
	Title      string
	StatusCode int
	Body       func(webtemplates.Page) templ.Component
	Partial    func(webtemplates.Page) templ.Component
}

// NewPage resolves the shared page context for a request. It consumes the
// pending flash notice only for full-page renders so HTMX swaps never eat
// a notice meant for the next document.
func NewPage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, title string) webtemplates.Page {
	var resolveLanguage webi18n.ResolveLanguage
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	page := webtemplates.Page{
		Title: title,
		Lang:  lang,
		Loc:   loc,
		Theme: theme.Resolve(r),
	}
	if resolver != nil {
		page.Session = resolver.ResolveRequestSession(r)
		page.Theme = resolver.ResolveRequestTheme(r)
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	if !httpx.IsHTMXRequest(r) {
		page.Notice = resolveFlashNotice(w, r, loc)
	}
	return page
}

// WriteModulePage writes a module page using the shared layout.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, modulePage ModulePage) error {
	if w == nil {
		return nil
	}
	page := NewPage(w, r, resolver, modulePage.Title)
	body := modulePage.Body
	if httpx.IsHTMXRequest(r) && modulePage.Partial != nil {
		body = modulePage.Partial
	}
	fragment := webtemplates.Empty()
	if body != nil {
		fragment = body(page)
	}
	return WriteComponent(w, r, modulePage.StatusCode, page, fragment)
}

// WriteComponent renders fragment alone for HTMX requests and wrapped in
// the layout otherwise. The page is rendered to a buffer first so a render
// failure never leaves a partial response.
func WriteComponent(w http.ResponseWriter, r *http.Request, statusCode int, page webtemplates.Page, fragment templ.Component) error {
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if fragment == nil {
		fragment = webtemplates.Empty()
	}
	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		if err := webtemplates.Layout(page).Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
	}
	return httpx.WriteHTML(w, statusCode, buf.String())
}

func resolveFlashNotice(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) *webtemplates.Notice {
	if r == nil {
		return nil
	}
	notice, ok := flashnotice.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := webi18n.Message(loc, notice.Key)
	if strings.TrimSpace(message) == "" {
		return nil
	}
	return &webtemplates.Notice{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
