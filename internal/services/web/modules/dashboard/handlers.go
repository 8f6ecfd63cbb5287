package dashboard

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/platform/pagerender"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service  service
	kind     kind
	basePath string
}

func newHandlers(s service, base modulehandler.Base, k kind, basePath string) handlers {
	return handlers{Base: base, service: s, kind: k, basePath: basePath}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := h.ResolveRequestSession(r)
	if !sess.Authenticated() {
		httpx.WriteRedirect(w, r, routepath.LoginWithNext(r.URL.Path))
		return
	}
	ctx := h.RequestContext(r)
	var body func(webtemplates.Page) templ.Component
	title := "web.dashboard.title"
	switch h.kind {
	case kindBrand:
		view, err := h.service.loadBrand(ctx, sess.UserID)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		title = "web.dashboard.brand_title"
		body = func(page webtemplates.Page) templ.Component { return webtemplates.BrandDashboardPage(page, view) }
	default:
		view, err := h.service.loadCreator(ctx, sess.UserID)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		body = func(page webtemplates.Page) templ.Component { return webtemplates.CreatorDashboardPage(page, view) }
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, title),
		StatusCode: http.StatusOK,
		Body:       body,
	})
}
