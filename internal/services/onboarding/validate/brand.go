package validate

import "github.com/louisbranch/inpact/internal/services/onboarding/wizard"

const invalidURLMessage = "Must be a valid http(s) URL."

// Brand validates one brand flow step. Recommendations that must not block
// navigation are reported by BrandWarnings instead.
func Brand(s *wizard.State, step wizard.Step) StepErrors {
	errs := StepErrors{}
	if s == nil {
		return errs
	}
	b := s.Brand
	switch step {
	case wizard.StepBrandInfo:
		if blank(b.BrandName) {
			errs["brand_name"] = "Brand name is required."
		}
		if s.Asset == nil && blank(b.LogoURL) {
			errs["logo"] = "Brand logo is required."
		} else if s.Asset == nil && !HTTPURL(b.LogoURL) {
			errs["logo"] = invalidURLMessage
		}
		if !blank(b.WebsiteURL) && !HTTPURL(b.WebsiteURL) {
			errs["website_url"] = invalidURLMessage
		}
		if blank(b.Industry) {
			errs["industry"] = "Industry is required."
		}
		if blank(b.CompanySize) {
			errs["company_size"] = "Company size is required."
		}
		if blank(b.Location) {
			errs["location"] = "Location is required."
		}
		if blank(b.Description) {
			errs["description"] = "Description is required."
		}
	case wizard.StepContactInfo:
		if blank(b.ContactPerson) {
			errs["contact_person"] = "Contact person is required."
		}
		if msg, ok := Email(b.ContactEmail, "Contact email is required."); !ok {
			errs["contact_email"] = msg
		}
	case wizard.StepSocialLinks:
		for field, value := range b.SocialURLs() {
			if !blank(value) && !HTTPURL(value) {
				errs[field] = invalidURLMessage
			}
		}
	case wizard.StepCollabPreferences:
		if len(b.CollaborationTypes) == 0 {
			errs["collaboration_types"] = "Select at least one collaboration type."
		}
		if len(b.PreferredCreatorCategories) == 0 {
			errs["preferred_creator_categories"] = "Select at least one creator category."
		}
	}
	return errs
}

// BrandWarnings returns non-blocking recommendations for a brand step.
func BrandWarnings(s *wizard.State, step wizard.Step) StepErrors {
	warnings := StepErrors{}
	if s == nil || step != wizard.StepSocialLinks {
		return warnings
	}
	for _, value := range s.Brand.SocialURLs() {
		if !blank(value) {
			return warnings
		}
	}
	warnings["social"] = "At least one social link is recommended."
	return warnings
}
