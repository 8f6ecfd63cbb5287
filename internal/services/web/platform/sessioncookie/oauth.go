package sessioncookie

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
)

// OAuthName holds the pending OAuth state between start and callback.
const OAuthName = "inpact_oauth"

const oauthMaxAge = 10 * 60

// OAuthState is the data kept across the provider redirect.
type OAuthState struct {
	State    string `json:"s"`
	Verifier string `json:"v"`
	Next     string `json:"n,omitempty"`
}

// WriteOAuth stores the pending OAuth state with a short lifetime.
func WriteOAuth(w http.ResponseWriter, r *http.Request, value OAuthState, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     OAuthName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   oauthMaxAge,
	})
}

// ReadOAuth returns the pending OAuth state when present and well formed.
func ReadOAuth(r *http.Request) (OAuthState, bool) {
	raw, ok := readCookie(r, OAuthName)
	if !ok {
		return OAuthState{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return OAuthState{}, false
	}
	var value OAuthState
	if err := json.Unmarshal(payload, &value); err != nil {
		return OAuthState{}, false
	}
	if strings.TrimSpace(value.State) == "" || strings.TrimSpace(value.Verifier) == "" {
		return OAuthState{}, false
	}
	return value, true
}

// ClearOAuth expires the pending OAuth state.
func ClearOAuth(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	clearCookie(w, r, OAuthName, policy)
}
