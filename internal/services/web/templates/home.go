package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// HomePage renders the landing page body.
func HomePage(page Page) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("section", classes("hero", "py-16"))
		h.open("div", classes("hero-content", "text-center"))
		h.open("div", classes("max-w-xl"))
		h.element("h1", page.T("web.home.headline"), classes("text-4xl", "font-bold"))
		h.element("p", page.T("web.home.subheadline"), classes("py-6"))
		h.open("div", classes("flex", "justify-center", "gap-4"))
		h.element("a", page.T("web.home.cta_creator"), attr("href", routepath.Onboarding), classes("btn", "btn-primary"))
		h.element("a", page.T("web.home.cta_brand"), attr("href", routepath.BrandOnboarding), classes("btn", "btn-secondary"))
		h.close("div")
		h.close("div")
		h.close("div")
		h.close("section")
	})
}
