package templates

import (
	"strings"

	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/web/platform/theme"
)

// Notice is a one-time message shown above page content.
type Notice struct {
	Kind    string
	Message string
}

// Page provides shared layout context for pages. Session and Theme are
// resolved per request by the caller.
type Page struct {
	Title        string
	Lang         string
	Loc          Localizer
	Theme        theme.Theme
	Session      *session.Session
	Notice       *Notice
	CurrentPath  string
	CurrentQuery string
}

// SignedIn reports whether the page renders for a signed-in user.
func (p Page) SignedIn() bool {
	return p.Session.Authenticated()
}

// ViewerName returns the display name for the signed-in user.
func (p Page) ViewerName() string {
	if !p.SignedIn() {
		return ""
	}
	if name := strings.TrimSpace(p.Session.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(p.Session.Email)
}

// ThemeName returns the data-theme value.
func (p Page) ThemeName() string {
	if value, ok := theme.Parse(string(p.Theme)); ok {
		return string(value)
	}
	return string(theme.Default)
}

// T translates key with the page localizer.
func (p Page) T(key string, args ...any) string {
	return T(p.Loc, key, args...)
}
