package templates

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// AppErrorState describes a rendered error page.
type AppErrorState struct {
	StatusCode int
	Message    string
}

// AppErrorPageTitle returns the localized title for an error status.
func AppErrorPageTitle(status int, loc Localizer) string {
	if status == http.StatusNotFound {
		return T(loc, "web.error.not_found")
	}
	return T(loc, "web.error.title")
}

// AppErrorPage renders the error page body.
func AppErrorPage(page Page, state AppErrorState) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		message := strings.TrimSpace(state.Message)
		if message == "" {
			message = page.T("web.error.generic")
		}
		h.open("section", attr("id", "app-error-state"), attr("data-status", http.StatusText(state.StatusCode)), classes("py-12", "text-center"))
		h.element("h1", AppErrorPageTitle(state.StatusCode, page.Loc), classes("text-3xl", "font-bold"))
		h.element("p", message, classes("py-4"))
		h.element("a", page.T("web.error.back_home"), attr("href", routepath.Root), classes("btn", "btn-primary"))
		h.close("section")
	})
}
