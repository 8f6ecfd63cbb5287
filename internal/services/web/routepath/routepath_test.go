package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Onboarding != "/onboarding" {
		t.Fatalf("Onboarding = %q", Onboarding)
	}
	if BrandOnboarding != "/brand-onboarding" {
		t.Fatalf("BrandOnboarding = %q", BrandOnboarding)
	}
	if Dashboard != "/dashboard" {
		t.Fatalf("Dashboard = %q", Dashboard)
	}
	if BrandDashboard != "/brand/dashboard" {
		t.Fatalf("BrandDashboard = %q", BrandDashboard)
	}
	if APIRefine != "/api/refine" {
		t.Fatalf("APIRefine = %q", APIRefine)
	}
}

func TestWizardRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "step", got: WizardStep(Onboarding), want: "/onboarding/step"},
		{name: "youtube", got: WizardYouTube(Onboarding), want: "/onboarding/youtube"},
		{name: "bio", got: WizardBio(Onboarding), want: "/onboarding/bio"},
		{name: "refine", got: WizardRefine(Onboarding), want: "/onboarding/bio/refine"},
		{name: "asset", got: WizardAsset(BrandOnboarding), want: "/brand-onboarding/asset"},
		{name: "submit", got: WizardSubmit(BrandOnboarding + "/"), want: "/brand-onboarding/submit"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.got != tc.want {
				t.Fatalf("route = %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	if got := Prefix(Onboarding); got != "/onboarding/" {
		t.Fatalf("Prefix(Onboarding) = %q", got)
	}
	if got := Prefix(""); got != "/" {
		t.Fatalf("Prefix(empty) = %q", got)
	}
}

func TestSafeNextRejectsExternalTargets(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"https://evil.example", "//evil.example", "/\\evil.example", "dashboard"} {
		if got := SafeNext(raw); got != "" {
			t.Fatalf("SafeNext(%q) = %q, want empty", raw, got)
		}
	}
	if got := SafeNext("/onboarding"); got != "/onboarding" {
		t.Fatalf("SafeNext(/onboarding) = %q", got)
	}
	if got := LoginWithNext("/brand-onboarding"); got != "/login?next=%2Fbrand-onboarding" {
		t.Fatalf("LoginWithNext() = %q", got)
	}
	if got := LoginWithNext("https://evil.example"); got != Login {
		t.Fatalf("LoginWithNext(external) = %q", got)
	}
}

func TestStorageObjectURLEscapesSegments(t *testing.T) {
	t.Parallel()

	if got := StorageObjectURL("profile-pictures", "user 1/profile.png"); got != "/storage/profile-pictures/user%201/profile.png" {
		t.Fatalf("StorageObjectURL() = %q", got)
	}
}
