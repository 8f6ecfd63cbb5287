// Package i18n resolves request localizers for web modules.
package i18n

import (
	"net/http"
	"strings"

	webi18n "github.com/louisbranch/inpact/internal/services/web/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer provides translated strings for rendering.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ResolveLanguage returns the effective request language, or empty to fall
// back to request negotiation.
type ResolveLanguage func(*http.Request) string

// ResolveTag returns the request language tag. An explicit resolver result
// wins over negotiation when it names a supported locale.
func ResolveTag(r *http.Request, resolve ResolveLanguage) language.Tag {
	if resolve != nil {
		if tag, ok := webi18n.ParseTag(resolve(r)); ok {
			return tag
		}
	}
	tag, _ := webi18n.ResolveTag(r)
	return tag
}

// ResolveLocalizer resolves the request locale, persists an explicit lang
// query selection, and returns a printer with the resolved tag string.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, resolve ResolveLanguage) (Localizer, string) {
	if resolve != nil {
		if tag, ok := webi18n.ParseTag(resolve(r)); ok {
			return webi18n.Printer(tag), tag.String()
		}
	}
	tag, persist := webi18n.ResolveTag(r)
	if persist {
		webi18n.SetLanguageCookie(w, tag)
	}
	return webi18n.Printer(tag), tag.String()
}

// Message translates a message keyed by its English text, returning the
// English text when no translation exists.
func Message(loc Localizer, text string) string {
	text = strings.TrimSpace(text)
	if loc == nil || text == "" {
		return text
	}
	if translated := strings.TrimSpace(loc.Sprintf(text)); translated != "" {
		return translated
	}
	return text
}
