package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	flashnotice "github.com/louisbranch/inpact/internal/services/web/platform/flash"
	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/inpact/internal/services/web/platform/theme"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

func TestWriteModulePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, nil, ModulePage{
		Title:      "Dashboard",
		StatusCode: http.StatusCreated,
		Body:       fragment(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing fragment marker: %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<!doctype html") || strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("expected htmx fragment without full document wrapper")
	}
}

func TestWriteModulePageRendersFullPageWithAppShell(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, nil, ModulePage{
		Title:      "Dashboard",
		StatusCode: http.StatusAccepted,
		Body:       fragment(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="main"`, `id="fragment-root"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
}

func TestWriteModulePageRendersToastFromFlashNotice(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	setFlashCookie(t, req, flashnotice.NoticeSuccess("web.notice.onboarding_complete"))
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, nil, ModulePage{
		Title: "Dashboard",
		Body:  fragment(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="app-toast"`, `Welcome to Inpact!`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
	if !responseHasCookieName(rr, flashnotice.CookieName) {
		t.Fatalf("response missing %q clear cookie", flashnotice.CookieName)
	}
}

func TestWriteModulePageHTMXDoesNotConsumeFlashNotice(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	setFlashCookie(t, req, flashnotice.NoticeSuccess("web.notice.onboarding_complete"))
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, nil, ModulePage{
		Title: "Dashboard",
		Body:  fragment(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	body := rr.Body.String()
	if strings.Contains(body, `id="app-toast"`) {
		t.Fatalf("htmx body unexpectedly contains toast markup: %q", body)
	}
	if responseHasCookieName(rr, flashnotice.CookieName) {
		t.Fatalf("htmx response unexpectedly set %q cookie", flashnotice.CookieName)
	}
}

func setFlashCookie(t *testing.T, req *http.Request, notice flashnotice.Notice) {
	t.Helper()
	seed := httptest.NewRecorder()
	flashnotice.WriteWithPolicy(seed, req, notice, requestmeta.SchemePolicy{})
	setCookieHeader := strings.TrimSpace(seed.Header().Get("Set-Cookie"))
	if setCookieHeader == "" {
		t.Fatalf("expected flash cookie header")
	}
	cookie, err := http.ParseSetCookie(setCookieHeader)
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req.AddCookie(cookie)
}

func responseHasCookieName(rr *httptest.ResponseRecorder, name string) bool {
	if rr == nil {
		return false
	}
	for _, cookie := range rr.Result().Cookies() {
		if cookie != nil && cookie.Name == name {
			return true
		}
	}
	return false
}

func fragment(markup string) func(webtemplates.Page) templ.Component {
	return func(webtemplates.Page) templ.Component {
		return textComponent(markup)
	}
}

type textComponent string

func (c textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}

func TestWriteModulePageUsesPartialForHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/onboarding/step", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, nil, ModulePage{
		Body:    fragment(`<section id="full">full</section>`),
		Partial: fragment(`<div id="wizard">partial</div>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="wizard"`) || strings.Contains(body, `id="full"`) {
		t.Fatalf("body = %q, want partial only", body)
	}
}

func TestNewPageCarriesResolvedSessionAndTheme(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard?lang=es-ES", nil)
	rr := httptest.NewRecorder()
	resolver := stubResolver{sess: &session.Session{UserID: "user-1"}, theme: theme.Dark}

	page := NewPage(rr, req, resolver, "Panel")
	if !page.SignedIn() {
		t.Fatalf("page should be signed in")
	}
	if page.Theme != theme.Dark {
		t.Fatalf("theme = %q, want %q", page.Theme, theme.Dark)
	}
	if page.Lang != "es-ES" {
		t.Fatalf("lang = %q, want %q", page.Lang, "es-ES")
	}
	if page.CurrentPath != "/dashboard" {
		t.Fatalf("current path = %q", page.CurrentPath)
	}
}

type stubResolver struct {
	sess  *session.Session
	theme theme.Theme
}

func (s stubResolver) ResolveRequestSession(*http.Request) *session.Session { return s.sess }
func (s stubResolver) ResolveRequestLanguage(*http.Request) string          { return "" }
func (s stubResolver) ResolveRequestTheme(*http.Request) theme.Theme        { return s.theme }
