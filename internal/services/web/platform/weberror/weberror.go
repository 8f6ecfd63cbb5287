// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	platformerrors "github.com/louisbranch/inpact/internal/platform/errors"
	apperrors "github.com/louisbranch/inpact/internal/services/web/platform/errors"
	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/inpact/internal/services/web/platform/i18n"
	"github.com/louisbranch/inpact/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Domain errors
// below 500 carry user-facing text; everything else collapses to the status
// text so internal details never leak.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if statusCode < http.StatusInternalServerError && platformerrors.CodeOf(err) != platformerrors.CodeUnknown {
		if message := platformerrors.Message(err, ""); message != "" {
			return webi18n.Message(loc, message)
		}
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized error page for full-page and HTMX
// requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, resolver pagerender.RequestResolver) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	page := pagerender.NewPage(w, r, resolver, "")
	page.Title = webtemplates.AppErrorPageTitle(statusCode, page.Loc)
	fragment := webtemplates.AppErrorPage(page, webtemplates.AppErrorState{StatusCode: statusCode})
	if err := pagerender.WriteComponent(w, r, statusCode, page, fragment); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, resolver pagerender.RequestResolver) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, resolver)
		return
	}
	var resolveLanguage webi18n.ResolveLanguage
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	if httpx.IsHTMXRequest(r) {
		w.Header().Set("HX-Reswap", "none")
	}
	http.Error(w, PublicMessage(loc, err), statusCode)
}
