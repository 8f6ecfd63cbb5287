package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/platform/branding"
	webi18n "github.com/louisbranch/inpact/internal/services/web/i18n"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
	"golang.org/x/text/language"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// Layout renders the full document around the children in ctx.
func Layout(page Page) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		lang := strings.TrimSpace(page.Lang)
		if lang == "" {
			lang = webi18n.Default().String()
		}
		h.raw("<!doctype html>")
		h.open("html", attr("lang", lang), attr("data-theme", page.ThemeName()))
		h.open("head")
		h.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", PageTitle(page.Title))
		h.open("script", attr("src", htmxScriptURL), flag("defer", true))
		h.close("script")
		h.open("link", attr("rel", "stylesheet"), attr("href", "https://cdn.jsdelivr.net/npm/daisyui@4/dist/full.min.css"))
		h.open("link", attr("rel", "stylesheet"), attr("href", routepath.Stylesheet))
		h.close("head")
		h.open("body", classes("min-h-screen", "bg-base-100"))
		h.render(ctx, navbar(page))
		h.open("main", attr("id", "main"), classes("container", "mx-auto", "max-w-3xl", "p-4"))
		h.render(ctx, NoticeBanner(page.Notice))
		h.render(ctx, templ.GetChildren(ctx))
		h.close("main")
		h.close("body")
		h.close("html")
	})
}

// PageTitle appends the product name to a page title.
func PageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" || title == branding.AppName {
		return branding.AppName
	}
	return title + " | " + branding.AppName
}

func navbar(page Page) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.open("nav", classes("navbar", "bg-base-200", "px-4"))
		h.open("div", classes("flex-1"))
		h.element("a", branding.AppName, attr("href", routepath.Root), classes("btn", "btn-ghost", "text-xl"))
		h.close("div")
		h.open("div", classes("flex", "flex-none", "items-center", "gap-2"))
		for _, option := range webi18n.LanguageOptions(page.Lang, func(tag language.Tag) string {
			return page.T(languageLabelKey(tag))
		}) {
			h.element("a", option.Label,
				attr("href", webi18n.LanguageURL(page.CurrentPath, page.CurrentQuery, option.Tag)),
				classes("btn", "btn-ghost", "btn-xs", activeClass(option.Active)),
			)
		}
		h.open("form", attr("method", "post"), attr("action", routepath.Theme))
		h.open("input", attr("type", "hidden"), attr("name", routepath.NextQueryKey), attr("value", currentURL(page)))
		h.element("button", page.T("web.theme.toggle"), attr("type", "submit"), classes("btn", "btn-ghost", "btn-sm"))
		h.close("form")
		if page.SignedIn() {
			h.element("span", page.ViewerName(), classes("text-sm", "opacity-70"))
			h.element("a", page.T("web.nav.dashboard"), attr("href", routepath.Dashboard), classes("btn", "btn-sm"))
			h.open("form", attr("method", "post"), attr("action", routepath.Logout))
			h.element("button", page.T("web.nav.logout"), attr("type", "submit"), classes("btn", "btn-outline", "btn-sm"))
			h.close("form")
		} else {
			h.element("a", page.T("web.nav.login"), attr("href", routepath.Login), classes("btn", "btn-ghost", "btn-sm"))
			h.element("a", page.T("web.nav.signup"), attr("href", routepath.Signup), classes("btn", "btn-primary", "btn-sm"))
		}
		h.close("div")
		h.close("nav")
	})
}

// NoticeBanner renders a one-time notice, or nothing.
func NoticeBanner(notice *Notice) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if notice == nil || strings.TrimSpace(notice.Message) == "" {
			return
		}
		kind := strings.TrimSpace(notice.Kind)
		if kind == "" {
			kind = "info"
		}
		h.open("div", attr("id", "app-toast"), attr("role", "alert"), attr("data-notice", kind), classes("alert", "alert-"+kind, "mb-4"))
		h.element("span", notice.Message)
		h.close("div")
	})
}

func languageLabelKey(tag language.Tag) string {
	base, _ := tag.Base()
	return "web.nav.lang_" + base.String()
}

func activeClass(active bool) string {
	if active {
		return "btn-active"
	}
	return ""
}

func currentURL(page Page) string {
	path := strings.TrimSpace(page.CurrentPath)
	if path == "" {
		path = routepath.Root
	}
	if page.CurrentQuery == "" {
		return path
	}
	return path + "?" + page.CurrentQuery
}
