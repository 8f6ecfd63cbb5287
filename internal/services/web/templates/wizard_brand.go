package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
)

// brandSocialFields lists the social link inputs in display order.
var brandSocialFields = []struct {
	name  string
	label string
}{
	{name: "instagram_url", label: "web.field.instagram_url"},
	{name: "facebook_url", label: "web.field.facebook_url"},
	{name: "twitter_url", label: "web.field.twitter_url"},
	{name: "linkedin_url", label: "web.field.linkedin_url"},
	{name: "youtube_url", label: "web.field.youtube_channel_url"},
}

func brandStepFields(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		state := view.state()
		b := state.Brand
		opts := view.options().Brand
		errs := view.Errors
		t := view.Page.T
		placeholder := t("web.field.select_placeholder")
		switch state.Step {
		case wizard.StepBrandInfo:
			textInput(h, t("web.field.brand_name"), "brand_name", "text", b.BrandName, errs["brand_name"])
			assetInput(ctx, h, view, t("web.field.logo"), "")
			textInput(h, t("web.field.logo_url"), "logo_url", "url", b.LogoURL, errs["logo"])
			textInput(h, t("web.field.website_url"), "website_url", "url", b.WebsiteURL, errs["website_url"])
			selectInput(h, placeholder, t("web.field.industry"), "industry", b.Industry, errs["industry"], opts.Industries)
			selectInput(h, placeholder, t("web.field.company_size"), "company_size", b.CompanySize, errs["company_size"], opts.CompanySizes)
			selectInput(h, placeholder, t("web.field.location"), "location", b.Location, errs["location"], opts.Countries)
			textArea(h, t("web.field.description"), "description", b.Description, errs["description"])
		case wizard.StepContactInfo:
			textInput(h, t("web.field.contact_person"), "contact_person", "text", b.ContactPerson, errs["contact_person"])
			textInput(h, t("web.field.contact_email"), "contact_email", "email", b.ContactEmail, errs["contact_email"])
			textInput(h, t("web.field.contact_phone"), "contact_phone", "tel", b.ContactPhone, "")
		case wizard.StepSocialLinks:
			urls := b.SocialURLs()
			for _, social := range brandSocialFields {
				textInput(h, t(social.label), social.name, "url", urls[social.name], errs[social.name])
			}
			if view.Warnings["social"] != "" {
				warning(h, t("web.notice.social_recommended"))
			}
		case wizard.StepCollabPreferences:
			checkboxGroup(h, t("web.field.collab_types"), "collaboration_types", errs["collaboration_types"], opts.CollaborationTypes, b.CollaborationTypes)
			checkboxGroup(h, t("web.field.creator_categories"), "preferred_creator_categories", errs["preferred_creator_categories"], opts.CreatorCategories, b.PreferredCreatorCategories)
			checkboxGroup(h, t("web.field.brand_values"), "brand_values", "", opts.BrandValues, b.BrandValues)
			checkboxGroup(h, t("web.field.tone"), "preferred_tone", "", opts.Tones, b.PreferredTone)
		}
	})
}

func brandReview(view WizardView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		b := view.state().Brand
		t := view.Page.T
		h.open("dl", classes("flex", "flex-col"))
		reviewRow(h, t("web.field.brand_name"), b.BrandName)
		reviewRow(h, t("web.field.website_url"), b.WebsiteURL)
		reviewRow(h, t("web.field.industry"), b.Industry)
		reviewRow(h, t("web.field.company_size"), b.CompanySize)
		reviewRow(h, t("web.field.location"), b.Location)
		reviewRow(h, t("web.field.description"), b.Description)
		reviewRow(h, t("web.field.contact_person"), b.ContactPerson)
		reviewRow(h, t("web.field.contact_email"), b.ContactEmail)
		reviewRow(h, t("web.field.contact_phone"), b.ContactPhone)
		urls := b.SocialURLs()
		for _, social := range brandSocialFields {
			reviewRow(h, t(social.label), urls[social.name])
		}
		reviewRow(h, t("web.field.collab_types"), strings.Join(b.CollaborationTypes, ", "))
		reviewRow(h, t("web.field.creator_categories"), strings.Join(b.PreferredCreatorCategories, ", "))
		reviewRow(h, t("web.field.brand_values"), strings.Join(b.BrandValues, ", "))
		reviewRow(h, t("web.field.tone"), strings.Join(b.PreferredTone, ", "))
		h.close("dl")
		preview := view.PreviewURL
		if preview == "" {
			preview = b.LogoURL
		}
		h.render(ctx, ImagePreview(preview, ""))
	})
}
