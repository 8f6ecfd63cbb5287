// Package modules defines web module registry helpers.
package modules

import (
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/modules/assets"
	"github.com/louisbranch/inpact/internal/services/web/modules/onboarding"
	"github.com/louisbranch/inpact/internal/services/web/modules/public"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the domain collaborators required to compose the web
// module registry. Each field is typed as the narrow interface the consuming
// module defines, so a module only sees what it was given. Nil fields leave
// the matching modules in degraded mode.
type Dependencies struct {
	// Sign in and session issuance.
	Auth     public.AuthGateway
	Google   public.GoogleGateway
	Sessions public.SessionIssuer

	// Stored profiles read by the landing redirects and dashboards.
	Profiles storage.ProfileStore

	// Wizard state and the clients the wizard calls out to.
	Wizards   wizardstore.Store
	YouTube   onboarding.ChannelLookup
	Refiner   onboarding.Refiner
	Submitter onboarding.Submitter

	// Uploaded images served under /storage/.
	Objects assets.ObjectReader
}
