package templates

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
	"github.com/louisbranch/inpact/internal/services/onboarding/validate"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// Element ids targeted by creator fragments.
const (
	YouTubeDetailsID = "youtube-details"
	BioFieldID       = "bio-field"
	BioCounterID     = "bio-counter"
	BioInputID       = "bio"
)

func creatorStepFields(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		state := view.state()
		opts := view.options().Creator
		errs := view.Errors
		t := view.Page.T
		switch state.Step {
		case wizard.StepRoleSelect:
			h.open("fieldset", classes("flex", "gap-4"))
			for _, role := range []wizard.Role{wizard.RoleCreator, wizard.RoleBrand} {
				h.open("label", classes("label", "cursor-pointer", "gap-2"))
				h.open("input", attr("type", "radio"), attr("name", "role"), attr("value", string(role)),
					flag("checked", state.Role == role), classes("radio"))
				h.element("span", t("web.field.role_"+string(role)), classes("label-text"))
				h.close("label")
			}
			h.close("fieldset")
			fieldError(h, errs["role"])
		case wizard.StepPersonalDetails:
			p := state.Personal
			placeholder := t("web.field.select_placeholder")
			textInput(h, t("web.field.username"), "username", "text", p.Username, errs["username"])
			textInput(h, t("web.field.email"), "email", "email", p.Email, errs["email"])
			selectInput(h, placeholder, t("web.field.age"), "age", p.Age, errs["age"], opts.Ages)
			selectInput(h, placeholder, t("web.field.gender"), "gender", p.Gender, errs["gender"], opts.Genders)
			textInput(h, t("web.field.country"), "country", "text", p.Country, errs["country"])
			if state.Role == wizard.RoleCreator {
				selectInput(h, placeholder, t("web.field.category"), "category", p.Category, errs["category"], opts.Categories,
					attr("onchange", "document.getElementById('custom-category').classList.toggle('hidden', this.value !== '"+catalog.CategoryOther+"')"))
				hidden := ""
				if p.Category != catalog.CategoryOther {
					hidden = "hidden"
				}
				h.open("div", attr("id", "custom-category"), classes(hidden))
				textInput(h, t("web.field.custom_category"), "custom_category", "text", p.CustomCategory, errs["customCategory"])
				h.close("div")
				h.render(ctx, BioField(view.Page, view.BasePath, p.Bio, errs["bio"], ""))
			}
		case wizard.StepPlatforms:
			h.open("fieldset", classes("flex", "flex-wrap", "gap-4"))
			for _, platform := range opts.Platforms {
				h.open("label", classes("label", "cursor-pointer", "gap-2"))
				h.open("input", attr("type", "checkbox"), attr("name", "platforms"), attr("value", platform.Key),
					flag("checked", state.HasPlatform(platform.Key)), classes("checkbox"))
				h.element("span", platform.Label, classes("label-text"))
				h.close("label")
			}
			h.close("fieldset")
			fieldError(h, errs["platforms"])
		case wizard.StepPlatformDetails:
			d := state.Details
			for _, key := range state.Platforms {
				switch key {
				case catalog.PlatformYouTube:
					youtube := routepath.WizardYouTube(view.BasePath)
					textInput(h, t("web.field.youtube_url"), "youtube_url", "url", d.YouTube.URL, errs["youtube"],
						attr("hx-post", youtube),
						attr("hx-trigger", "input"),
						attr("hx-target", "#"+YouTubeDetailsID),
						attr("hx-swap", "outerHTML"),
						attr("hx-include", "this"),
					)
					h.render(ctx, YouTubeDetails(view.Page, d.YouTube))
				case catalog.PlatformInstagram:
					textInput(h, t("web.field.ig_username"), "ig_username", "text", d.Instagram.Username, errs["iguser"])
					textInput(h, t("web.field.ig_followers"), "ig_followers", "number", d.Instagram.Followers, errs["igfollowers"], attr("min", "0"))
					textInput(h, t("web.field.ig_posts"), "ig_posts", "number", d.Instagram.Posts, errs["igposts"], attr("min", "0"))
				case catalog.PlatformFacebook:
					textInput(h, t("web.field.fb_username"), "fb_username", "text", d.Facebook.Username, errs["fbuser"])
				case catalog.PlatformTikTok:
					textInput(h, t("web.field.tt_username"), "tt_username", "text", d.TikTok.Username, errs["ttuser"])
				}
			}
		case wizard.StepPricing:
			selectInput(h, t("web.field.select_placeholder"), t("web.field.currency"), "currency", state.Pricing.Currency, errs["currency"], opts.Currencies)
			for _, key := range state.Platforms {
				platform, ok := view.options().Platform(key)
				if !ok {
					continue
				}
				h.element("h3", platform.Label, classes("font-semibold", "mt-2"))
				for _, deliverable := range platform.Deliverables {
					name := PriceInputName(platform.Key, deliverable.Key)
					textInput(h, deliverable.Label+" ("+t("web.field.avg_price")+")", name, "number",
						state.Pricing.Avg(platform.Key, deliverable.Key),
						errs[validate.PriceFieldKey(platform.Key, deliverable.Key)],
						attr("min", "0"), attr("step", "any"))
				}
			}
		case wizard.StepAsset:
			assetInput(ctx, h, view, t("web.field.profile_image"), errs["profileImage"])
		}
	})
}

// PriceInputName returns the form field name for one deliverable price.
func PriceInputName(platform, deliverable string) string {
	return "price_" + platform + "_" + deliverable
}

// YouTubeDetails renders the enriched channel metadata under the URL input.
func YouTubeDetails(page Page, yt wizard.YouTube) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("div", attr("id", YouTubeDetailsID), classes("flex", "items-center", "gap-3"))
		if yt.ProfileImage != "" {
			h.open("img", attr("src", yt.ProfileImage), attr("alt", ""), classes("h-12", "w-12", "rounded-full"))
		}
		if yt.ChannelName != "" {
			h.open("div")
			h.element("p", page.T("web.field.channel_name")+": "+yt.ChannelName, attr("data-channel", yt.ChannelID))
			if yt.SubscriberCount != "" {
				h.element("p", page.T("web.field.subscribers")+": "+yt.SubscriberCount, classes("text-sm", "opacity-70"))
			}
			h.close("div")
		}
		fieldError(h, yt.LookupError)
		h.close("div")
	})
}

// BioField renders the bio textarea, its word counter, and the refine control.
// warning is shown inline when a refinement failed.
func BioField(page Page, basePath, bio, errMsg, warningMsg string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		bioURL := routepath.WizardBio(basePath)
		refineURL := routepath.WizardRefine(basePath)
		h.open("div", attr("id", BioFieldID), classes("flex", "flex-col", "gap-1"))
		h.render(ctx, BioInput(page, bioURL, bio, errMsg, false))
		h.open("div", classes("flex", "items-center", "justify-between"))
		h.render(ctx, BioCounter(page, wizard.WordCount(bio)))
		h.element("button", page.T("web.field.bio_refine"),
			attr("type", "button"),
			attr("hx-post", refineURL),
			attr("hx-include", "#"+BioInputID),
			attr("hx-target", "#"+BioFieldID),
			attr("hx-swap", "outerHTML"),
			attr("hx-disabled-elt", "this"),
			classes("btn", "btn-sm", "btn-outline"),
		)
		h.close("div")
		warning(h, warningMsg)
		h.close("div")
	})
}

// BioInput renders the bio textarea. oob marks it for an out-of-band swap
// when the server rejects an edit and restores the stored text.
func BioInput(page Page, bioURL, bio, errMsg string, oob bool) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		extra := []string{
			attr("hx-post", bioURL),
			attr("hx-trigger", "input changed delay:300ms"),
			attr("hx-target", "#"+BioCounterID),
			attr("hx-swap", "outerHTML"),
			attr("hx-include", "this"),
		}
		if oob {
			extra = append(extra, attr("hx-swap-oob", "true"))
		}
		textArea(h, page.T("web.field.bio"), BioInputID, bio, errMsg, extra...)
	})
}

// BioCounter renders the live word count.
func BioCounter(page Page, words int) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		over := ""
		if words > wizard.MaxBioWords {
			over = "text-error"
		}
		h.element("span", page.T("web.field.bio_words", words),
			attr("id", BioCounterID), attr("data-words", strconv.Itoa(words)), classes("text-sm", "opacity-70", over))
	})
}

func creatorReview(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		state := view.state()
		t := view.Page.T
		p := state.Personal
		h.open("dl", classes("flex", "flex-col"))
		reviewRow(h, t("web.wizard.step.role_select"), t("web.field.role_"+string(state.Role)))
		reviewRow(h, t("web.field.username"), p.Username)
		reviewRow(h, t("web.field.email"), p.Email)
		reviewRow(h, t("web.field.age"), p.Age)
		reviewRow(h, t("web.field.gender"), p.Gender)
		reviewRow(h, t("web.field.country"), p.Country)
		if state.Role == wizard.RoleCreator {
			reviewRow(h, t("web.field.category"), p.ResolvedCategory())
			reviewRow(h, t("web.field.bio"), p.Bio)
		}
		labels := make([]string, 0, len(state.Platforms))
		for _, key := range state.Platforms {
			if platform, ok := view.options().Platform(key); ok {
				labels = append(labels, platform.Label)
			}
		}
		reviewRow(h, t("web.wizard.step.platforms"), strings.Join(labels, ", "))
		if state.HasPlatform(catalog.PlatformYouTube) {
			reviewRow(h, t("web.field.youtube_url"), state.Details.YouTube.URL)
			reviewRow(h, t("web.field.channel_name"), state.Details.YouTube.ChannelName)
		}
		if state.HasPlatform(catalog.PlatformInstagram) {
			reviewRow(h, t("web.field.ig_username"), state.Details.Instagram.Username)
		}
		if state.HasPlatform(catalog.PlatformFacebook) {
			reviewRow(h, t("web.field.fb_username"), state.Details.Facebook.Username)
		}
		if state.HasPlatform(catalog.PlatformTikTok) {
			reviewRow(h, t("web.field.tt_username"), state.Details.TikTok.Username)
		}
		reviewRow(h, t("web.field.currency"), state.Pricing.Currency)
		h.close("dl")
		h.render(ctx, ImagePreview(view.PreviewURL, ""))
	})
}
