package validate

import (
	"strconv"
	"strings"

	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
)

type priceRule struct {
	key     string
	message string
}

var priceRules = map[string]map[string]priceRule{
	catalog.PlatformYouTube: {
		"video":            {key: "ytvideo", message: "YouTube video average price required."},
		"inVideoPlacement": {key: "ytinvideo", message: "YouTube in-video placement average price required."},
		"community":        {key: "ytcommunity", message: "YouTube community post average price required."},
		"short":            {key: "ytshort", message: "YouTube short average price required."},
	},
	catalog.PlatformInstagram: {
		"post":  {key: "igpost", message: "Instagram post average price required."},
		"story": {key: "igstory", message: "Instagram story average price required."},
		"reel":  {key: "igreel", message: "Instagram reel average price required."},
	},
	catalog.PlatformFacebook: {
		"post": {key: "fbpost", message: "Facebook post average price required."},
	},
	catalog.PlatformTikTok: {
		"video": {key: "ttvideo", message: "TikTok video average price required."},
	},
}

// PriceFieldKey returns the form/error key for one priced deliverable.
func PriceFieldKey(platform, deliverable string) string {
	if rule, ok := priceRules[platform][deliverable]; ok {
		return rule.key
	}
	return platform + "_" + deliverable
}

// Creator validates one creator flow step.
func Creator(s *wizard.State, step wizard.Step) StepErrors {
	errs := StepErrors{}
	if s == nil {
		return errs
	}
	switch step {
	case wizard.StepRoleSelect:
		if s.Role == "" {
			errs["role"] = "Please select a role."
		}
	case wizard.StepPersonalDetails:
		personalDetails(s, errs)
	case wizard.StepPlatforms:
		if len(s.Platforms) == 0 {
			errs["platforms"] = "Select at least one platform."
		}
	case wizard.StepPlatformDetails:
		platformDetails(s, errs)
	case wizard.StepPricing:
		pricing(s, errs)
	case wizard.StepAsset:
		if s.Asset == nil {
			errs["profileImage"] = "Profile image is required."
		}
	}
	return errs
}

func personalDetails(s *wizard.State, errs StepErrors) {
	p := s.Personal
	if blank(p.Username) {
		errs["username"] = "Name is required."
	}
	if msg, ok := Email(p.Email, "Email is required."); !ok {
		errs["email"] = msg
	}
	if blank(p.Age) {
		errs["age"] = "Age is required."
	}
	if blank(p.Gender) {
		errs["gender"] = "Gender is required."
	}
	if blank(p.Country) {
		errs["country"] = "Country is required."
	}
	if s.Role != wizard.RoleCreator {
		return
	}
	if blank(p.Category) {
		errs["category"] = "Category is required."
	}
	if p.Category == catalog.CategoryOther && blank(p.CustomCategory) {
		errs["customCategory"] = "Please enter your category."
	}
	if wizard.WordCount(p.Bio) > wizard.MaxBioWords {
		errs["bio"] = "Bio must be 2500 words or less."
	}
}

func platformDetails(s *wizard.State, errs StepErrors) {
	d := s.Details
	for _, platform := range s.Platforms {
		switch platform {
		case catalog.PlatformYouTube:
			if blank(d.YouTube.URL) {
				errs["youtube"] = "YouTube channel URL/ID required."
			}
		case catalog.PlatformInstagram:
			if blank(d.Instagram.Username) {
				errs["iguser"] = "Instagram username required."
			}
			if msg := count(d.Instagram.Followers, "Valid followers required.", "Followers must be 0 or more."); msg != "" {
				errs["igfollowers"] = msg
			}
			if msg := count(d.Instagram.Posts, "Valid posts required.", "Posts must be 0 or more."); msg != "" {
				errs["igposts"] = msg
			}
		case catalog.PlatformFacebook:
			if blank(d.Facebook.Username) {
				errs["fbuser"] = "Facebook username required."
			}
		case catalog.PlatformTikTok:
			if blank(d.TikTok.Username) {
				errs["ttuser"] = "TikTok username required."
			}
		}
	}
}

func count(value, invalid, negative string) string {
	if blank(value) {
		return invalid
	}
	if _, ok := NonNegative(value); ok {
		return ""
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && n < 0 {
		return negative
	}
	return invalid
}

func pricing(s *wizard.State, errs StepErrors) {
	if blank(s.Pricing.Currency) {
		errs["currency"] = "Please select a currency."
	}
	for _, platform := range s.Platforms {
		def, ok := catalog.Default().Platform(platform)
		if !ok {
			continue
		}
		for _, deliverable := range def.Deliverables {
			rule, ok := priceRules[platform][deliverable.Key]
			if !ok {
				continue
			}
			if _, valid := NonNegative(s.Pricing.Avg(platform, deliverable.Key)); !valid {
				errs[rule.key] = rule.message
			}
		}
	}
}
