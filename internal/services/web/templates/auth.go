package templates

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// LoginView is the sign-in form state.
type LoginView struct {
	Email         string
	Error         string
	Next          string
	GoogleEnabled bool
}

// SignupView is the sign-up form state.
type SignupView struct {
	Name  string
	Email string
	Error string
	Next  string
}

// LoginPage renders the sign-in form.
func LoginPage(page Page, view LoginView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.open("div", classes("card", "bg-base-200", "mx-auto", "max-w-md"))
		h.open("div", classes("card-body"))
		h.element("h1", page.T("web.login.title"), classes("card-title"))
		h.render(ctx, formError(view.Error))
		h.open("form", attr("method", "post"), attr("action", routepath.Login), classes("flex", "flex-col", "gap-3"))
		hiddenInput(h, routepath.NextQueryKey, view.Next)
		textInput(h, page.T("web.login.email"), "email", "email", view.Email, "")
		textInput(h, page.T("web.login.password"), "password", "password", "", "")
		h.element("button", page.T("web.login.submit"), attr("type", "submit"), classes("btn", "btn-primary"))
		h.close("form")
		if view.GoogleEnabled {
			h.element("a", page.T("web.login.google"),
				attr("href", routepath.AuthGoogleStart+nextSuffix(view.Next)),
				classes("btn", "btn-outline", "mt-2"),
			)
		}
		h.element("a", page.T("web.login.no_account"), attr("href", routepath.Signup), classes("link", "mt-2"))
		h.close("div")
		h.close("div")
	})
}

// SignupPage renders the sign-up form.
func SignupPage(page Page, view SignupView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.open("div", classes("card", "bg-base-200", "mx-auto", "max-w-md"))
		h.open("div", classes("card-body"))
		h.element("h1", page.T("web.signup.title"), classes("card-title"))
		h.render(ctx, formError(view.Error))
		h.open("form", attr("method", "post"), attr("action", routepath.Signup), classes("flex", "flex-col", "gap-3"))
		hiddenInput(h, routepath.NextQueryKey, view.Next)
		textInput(h, page.T("web.signup.name"), "name", "text", view.Name, "")
		textInput(h, page.T("web.login.email"), "email", "email", view.Email, "")
		textInput(h, page.T("web.login.password"), "password", "password", "", "")
		h.element("button", page.T("web.signup.submit"), attr("type", "submit"), classes("btn", "btn-primary"))
		h.close("form")
		h.element("a", page.T("web.signup.have_account"), attr("href", routepath.Login), classes("link", "mt-2"))
		h.close("div")
		h.close("div")
	})
}

func nextSuffix(next string) string {
	if next == "" {
		return ""
	}
	return "?" + url.Values{routepath.NextQueryKey: {next}}.Encode()
}
