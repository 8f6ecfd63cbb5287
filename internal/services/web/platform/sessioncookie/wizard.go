package sessioncookie

import (
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/platform/id"
	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
)

// WizardName is the cookie that keys in-progress wizard state. It is
// independent of sign-in so a wizard survives logging in mid-flow.
const WizardName = "inpact_wizard"

// ReadWizard returns the wizard session id when present.
func ReadWizard(r *http.Request) (string, bool) {
	return readCookie(r, WizardName)
}

// EnsureWizard returns the existing wizard session id or issues a new one.
func EnsureWizard(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (string, error) {
	if value, ok := ReadWizard(r); ok {
		return value, nil
	}
	value, err := id.NewID()
	if err != nil {
		return "", err
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     WizardName,
			Value:    strings.TrimSpace(value),
			Path:     "/",
			HttpOnly: true,
			Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return value, nil
}

// ClearWizard expires the wizard session cookie.
func ClearWizard(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	clearCookie(w, r, WizardName, policy)
}
