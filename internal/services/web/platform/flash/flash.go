// Package flash carries a one-time notice across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
)

// CookieName holds the pending notice.
const CookieName = "inpact_flash"

// Kind selects the notice styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice references a message by catalog key. English source strings work
// as keys too.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

// NoticeSuccess is shown after a completed action, such as submitting a wizard.
func NoticeSuccess(key string) Notice { return Notice{Kind: KindSuccess, Key: key} }

// NoticeInfo is a neutral notice.
func NoticeInfo(key string) Notice { return Notice{Kind: KindInfo, Key: key} }

// NoticeError reports a failed action on the next page.
func NoticeError(key string) Notice { return Notice{Kind: KindError, Key: key} }

// WriteWithPolicy stores notice for the next page render. Invalid notices
// are dropped.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	notice, ok := notice.normalize()
	if !ok {
		return
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return
	}
	http.SetCookie(w, flashCookie(r, policy, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// ClearWithPolicy expires the notice cookie.
func ClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, flashCookie(r, policy, "", -1))
}

// ReadAndClear returns the pending notice and expires it so it renders once.
// The cookie is cleared even when its value is unreadable.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	ClearWithPolicy(w, r, requestmeta.SchemePolicy{})
	return decode(cookie.Value)
}

func flashCookie(r *http.Request, policy requestmeta.SchemePolicy, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	}
}

func decode(raw string) (Notice, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Notice{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(payload, &notice); err != nil {
		return Notice{}, false
	}
	return notice.normalize()
}

func (n Notice) normalize() (Notice, bool) {
	n.Key = strings.TrimSpace(n.Key)
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	if n.Key == "" {
		return Notice{}, false
	}
	switch n.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return n, true
	}
	return Notice{}, false
}
