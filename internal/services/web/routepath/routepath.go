// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                = "/"
	Login               = "/login"
	Signup              = "/signup"
	Logout              = "/logout"
	Health              = "/healthz"
	Theme               = "/theme"
	AuthGoogleStart     = "/auth/google/start"
	AuthGoogleCallback  = "/auth/google/callback"
	Onboarding          = "/onboarding"
	BrandOnboarding     = "/brand-onboarding"
	Dashboard           = "/dashboard"
	BrandDashboard      = "/brand/dashboard"
	APIRefine           = "/api/refine"
	StoragePrefix       = "/storage/"
	StorageObject       = StoragePrefix + "{bucket}/{path...}"
	StaticPrefix        = "/static/"
	Stylesheet          = StaticPrefix + "app.css"
	WizardStepSuffix    = "/step"
	WizardYouTubeSuffix = "/youtube"
	WizardBioSuffix     = "/bio"
	WizardRefineSuffix  = "/bio/refine"
	WizardAssetSuffix   = "/asset"
	WizardSubmitSuffix  = "/submit"
	NextQueryKey        = "next"
	ErrorQueryKey       = "error"
)

// Prefix returns base with a trailing slash for subtree mounts.
func Prefix(base string) string {
	base = strings.TrimSpace(base)
	if base == "" || base == Root {
		return Root
	}
	return strings.TrimSuffix(base, "/") + "/"
}

// WizardStep returns the step form action for a wizard base path.
func WizardStep(base string) string {
	return strings.TrimSuffix(base, "/") + WizardStepSuffix
}

// WizardYouTube returns the channel enrichment endpoint for a wizard base path.
func WizardYouTube(base string) string {
	return strings.TrimSuffix(base, "/") + WizardYouTubeSuffix
}

// WizardBio returns the bio input endpoint for a wizard base path.
func WizardBio(base string) string {
	return strings.TrimSuffix(base, "/") + WizardBioSuffix
}

// WizardRefine returns the bio refinement endpoint for a wizard base path.
func WizardRefine(base string) string {
	return strings.TrimSuffix(base, "/") + WizardRefineSuffix
}

// WizardAsset returns the selected image preview route for a wizard base path.
func WizardAsset(base string) string {
	return strings.TrimSuffix(base, "/") + WizardAssetSuffix
}

// WizardSubmit returns the submission endpoint for a wizard base path.
func WizardSubmit(base string) string {
	return strings.TrimSuffix(base, "/") + WizardSubmitSuffix
}

// LoginWithNext returns the login route that returns to next afterwards.
func LoginWithNext(next string) string {
	next = SafeNext(next)
	if next == "" {
		return Login
	}
	return Login + "?" + url.Values{NextQueryKey: {next}}.Encode()
}

// SafeNext accepts only local absolute paths as post-login targets.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

// StorageObjectURL returns the public route for one stored object.
func StorageObjectURL(bucket, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for idx, segment := range segments {
		segments[idx] = escapeSegment(segment)
	}
	return StoragePrefix + escapeSegment(bucket) + "/" + strings.Join(segments, "/")
}

func escapeSegment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
