package templates

import (
	"context"
	"sort"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

// CreatorDashboardView is the creator landing page state. User is nil until
// onboarding completes.
type CreatorDashboardView struct {
	User     *storage.User
	Profiles []storage.SocialProfile
}

// BrandDashboardView is the brand landing page state.
type BrandDashboardView struct {
	Brand *storage.Brand
}

// CreatorDashboardPage renders the creator dashboard body.
func CreatorDashboardPage(page Page, view CreatorDashboardView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.element("h1", page.T("web.dashboard.title"), classes("text-2xl", "font-bold", "mb-4"))
		if view.User == nil {
			h.element("p", page.T("web.dashboard.empty"), attr("data-empty", "true"))
			return
		}
		u := view.User
		h.open("div", classes("flex", "items-center", "gap-4", "mb-4"))
		if u.ProfileImage != "" {
			h.open("img", attr("src", u.ProfileImage), attr("alt", ""), classes("h-16", "w-16", "rounded-full", "object-cover"))
		}
		h.open("div")
		h.element("p", u.Username, classes("text-xl", "font-semibold"))
		h.element("p", u.Category, classes("opacity-70"))
		h.close("div")
		h.close("div")
		if u.Bio != "" {
			h.element("p", u.Bio, classes("mb-4", "whitespace-pre-line"))
		}
		h.element("h2", page.T("web.dashboard.platforms"), classes("text-lg", "font-semibold"))
		h.open("ul", classes("flex", "flex-col", "gap-2", "mt-2"))
		for _, profile := range view.Profiles {
			h.open("li", attr("data-platform", profile.Platform), classes("card", "bg-base-200", "p-3"))
			label := profile.Platform
			if platform, ok := catalog.Default().Platform(profile.Platform); ok {
				label = platform.Label
			}
			name := profile.Username
			if profile.ChannelName != "" {
				name = profile.ChannelName
			}
			h.element("p", label+": "+name, classes("font-semibold"))
			if profile.SubscriberCount != nil {
				h.element("p", page.T("web.field.subscribers")+": "+strconv.FormatInt(*profile.SubscriberCount, 10), classes("text-sm"))
			}
			if profile.Followers != nil {
				h.element("p", page.T("web.field.ig_followers")+": "+strconv.FormatInt(*profile.Followers, 10), classes("text-sm"))
			}
			keys := make([]string, 0, len(profile.Pricing))
			for key := range profile.Pricing {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				price := profile.Pricing[key]
				if price.Avg == "" {
					continue
				}
				h.element("p", key+": "+price.Avg+" "+price.Currency, classes("text-sm", "opacity-70"))
			}
			h.close("li")
		}
		h.close("ul")
	})
}

// BrandDashboardPage renders the brand dashboard body.
func BrandDashboardPage(page Page, view BrandDashboardView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.element("h1", page.T("web.dashboard.brand_title"), classes("text-2xl", "font-bold", "mb-4"))
		if view.Brand == nil {
			h.element("p", page.T("web.dashboard.empty"), attr("data-empty", "true"))
			return
		}
		b := view.Brand
		h.open("div", classes("flex", "items-center", "gap-4", "mb-4"))
		if b.LogoURL != "" {
			h.open("img", attr("src", b.LogoURL), attr("alt", ""), classes("h-16", "w-16", "object-contain"))
		}
		h.open("div")
		h.element("p", b.BrandName, classes("text-xl", "font-semibold"))
		h.element("p", b.Industry+" · "+b.Location, classes("opacity-70"))
		h.close("div")
		h.close("div")
		h.element("p", b.Description, classes("mb-4"))
		h.open("dl", classes("flex", "flex-col"))
		reviewRow(h, page.T("web.field.contact_person"), b.ContactPerson)
		reviewRow(h, page.T("web.field.contact_email"), b.ContactEmail)
		reviewRow(h, page.T("web.field.website_url"), b.WebsiteURL)
		h.close("dl")
	})
}
