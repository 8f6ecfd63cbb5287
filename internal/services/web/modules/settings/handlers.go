package settings

import (
	"net/http"

	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/platform/theme"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

type handlers struct {
	modulehandler.Base
}

func newHandlers(base modulehandler.Base) handlers {
	return handlers{Base: base}
}

// handleTheme stores the posted theme, or flips the current one when none is
// posted, then returns to the page the form came from.
func (h handlers) handleTheme(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	next, ok := theme.Parse(r.PostFormValue("theme"))
	if !ok {
		next = h.ResolveRequestTheme(r).Toggle()
	}
	theme.Write(w, r, next, h.SchemePolicy())
	target := routepath.SafeNext(r.PostFormValue(routepath.NextQueryKey))
	if target == "" {
		target = routepath.Root
	}
	httpx.WriteRedirect(w, r, target)
}
