package onboarding

import (
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
	"github.com/louisbranch/inpact/internal/services/onboarding/validate"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

// Form field carrying the selected image on asset and brand info steps.
const imageField = "image"

// bindStep copies the posted fields of the current step into state. Fields
// of other steps are left untouched. It returns errors found while binding,
// which the step validator cannot see because the value was not stored.
func bindStep(state *wizard.State, form url.Values) validate.StepErrors {
	errs := validate.StepErrors{}
	if form == nil {
		return errs
	}
	opts := catalog.Default()
	switch state.Step {
	case wizard.StepRoleSelect:
		if role, ok := wizard.ParseRole(form.Get("role")); ok {
			state.Role = role
		}
	case wizard.StepPersonalDetails:
		p := &state.Personal
		p.Username = strings.TrimSpace(form.Get("username"))
		p.Email = strings.TrimSpace(form.Get("email"))
		p.Age = form.Get("age")
		p.Gender = form.Get("gender")
		p.Country = strings.TrimSpace(form.Get("country"))
		if state.Role == wizard.RoleCreator {
			p.Category = form.Get("category")
			p.CustomCategory = strings.TrimSpace(form.Get("custom_category"))
			if form.Has(webtemplates.BioInputID) && !state.SetBio(form.Get(webtemplates.BioInputID)) {
				errs["bio"] = bioCapMessage
			}
		}
	case wizard.StepPlatforms:
		state.SetPlatforms(form["platforms"])
	case wizard.StepPlatformDetails:
		d := &state.Details
		if form.Has("youtube_url") {
			if next := strings.TrimSpace(form.Get("youtube_url")); next != d.YouTube.URL {
				// A posted URL is not backed by a lookup, and any lookup still
				// running for the old URL must not land on the new one.
				d.YouTube.URL = next
				d.YouTube.ClearChannel()
				d.YouTube.LookupError = ""
				state.BeginEnrichment(wizard.FieldYouTube)
			}
		}
		d.Instagram.Username = strings.TrimSpace(form.Get("ig_username"))
		d.Instagram.Followers = strings.TrimSpace(form.Get("ig_followers"))
		d.Instagram.Posts = strings.TrimSpace(form.Get("ig_posts"))
		d.Facebook.Username = strings.TrimSpace(form.Get("fb_username"))
		d.TikTok.Username = strings.TrimSpace(form.Get("tt_username"))
	case wizard.StepPricing:
		currency := form.Get("currency")
		if currency != "" && !catalog.Contains(opts.Creator.Currencies, currency) {
			currency = ""
		}
		for _, key := range state.Platforms {
			platform, ok := opts.Platform(key)
			if !ok {
				continue
			}
			for _, deliverable := range platform.Deliverables {
				state.Pricing.SetAvg(platform.Key, deliverable.Key, form.Get(webtemplates.PriceInputName(platform.Key, deliverable.Key)))
			}
		}
		state.Pricing.SetCurrency(currency)
	case wizard.StepBrandInfo:
		b := &state.Brand
		b.BrandName = strings.TrimSpace(form.Get("brand_name"))
		b.LogoURL = strings.TrimSpace(form.Get("logo_url"))
		b.WebsiteURL = strings.TrimSpace(form.Get("website_url"))
		b.Industry = form.Get("industry")
		b.CompanySize = form.Get("company_size")
		b.Location = form.Get("location")
		b.Description = strings.TrimSpace(form.Get("description"))
	case wizard.StepContactInfo:
		b := &state.Brand
		b.ContactPerson = strings.TrimSpace(form.Get("contact_person"))
		b.ContactEmail = strings.TrimSpace(form.Get("contact_email"))
		b.ContactPhone = strings.TrimSpace(form.Get("contact_phone"))
	case wizard.StepSocialLinks:
		b := &state.Brand
		b.InstagramURL = strings.TrimSpace(form.Get("instagram_url"))
		b.FacebookURL = strings.TrimSpace(form.Get("facebook_url"))
		b.TwitterURL = strings.TrimSpace(form.Get("twitter_url"))
		b.LinkedInURL = strings.TrimSpace(form.Get("linkedin_url"))
		b.YouTubeURL = strings.TrimSpace(form.Get("youtube_url"))
	case wizard.StepCollabPreferences:
		brand := opts.Brand
		b := &state.Brand
		b.CollaborationTypes = catalog.Filter(brand.CollaborationTypes, form["collaboration_types"])
		b.PreferredCreatorCategories = catalog.Filter(brand.CreatorCategories, form["preferred_creator_categories"])
		b.BrandValues = catalog.Filter(brand.BrandValues, form["brand_values"])
		b.PreferredTone = catalog.Filter(brand.Tones, form["preferred_tone"])
	}
	return errs
}

// assetErrorKey is the field key the image error renders under.
func assetErrorKey(flow wizard.Flow) string {
	if flow == wizard.FlowBrand {
		return "logo"
	}
	return "profileImage"
}

func uploadMessage(err error) string {
	return apperrors.Message(err, wizard.ErrAssetInvalidType.Message)
}
