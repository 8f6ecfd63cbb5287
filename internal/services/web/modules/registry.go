package modules

import (
	"github.com/louisbranch/inpact/internal/services/web/modules/assets"
	"github.com/louisbranch/inpact/internal/services/web/modules/dashboard"
	"github.com/louisbranch/inpact/internal/services/web/modules/onboarding"
	"github.com/louisbranch/inpact/internal/services/web/modules/public"
	"github.com/louisbranch/inpact/internal/services/web/modules/refineapi"
	"github.com/louisbranch/inpact/internal/services/web/modules/settings"
)

// DefaultPublicModules returns the modules any visitor can reach: the
// landing and auth pages, both wizards, preferences, the refine endpoint and
// stored images.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		public.New(public.Config{
			Auth:     deps.Auth,
			Google:   deps.Google,
			Sessions: deps.Sessions,
			Profiles: deps.Profiles,
			Wizards:  deps.Wizards,
		}),
		onboarding.NewCreator(wizardConfig(deps)),
		onboarding.NewBrand(wizardConfig(deps)),
		settings.New(),
		refineapi.New(deps.Refiner),
		assets.New(deps.Objects),
	}
}

// DefaultProtectedModules returns the modules that require a signed-in
// session. They redirect anonymous visitors to sign in themselves.
func DefaultProtectedModules(deps Dependencies) []Module {
	return []Module{
		dashboard.NewCreator(deps.Profiles),
		dashboard.NewBrand(deps.Profiles),
	}
}

func wizardConfig(deps Dependencies) onboarding.Config {
	return onboarding.Config{
		Wizards:   deps.Wizards,
		YouTube:   deps.YouTube,
		Refiner:   deps.Refiner,
		Submitter: deps.Submitter,
		Profiles:  deps.Profiles,
	}
}
