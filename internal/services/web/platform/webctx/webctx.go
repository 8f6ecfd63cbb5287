// Package webctx provides shared web request context helpers.
package webctx

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/platform/requestctx"
	module "github.com/louisbranch/inpact/internal/services/web/module"
)

// WithResolvedUserID returns request context enriched with the resolved
// session user id.
func WithResolvedUserID(r *http.Request, resolve module.ResolveSession) context.Context {
	if r == nil {
		return context.Background()
	}
	ctx := r.Context()
	if resolve == nil {
		return ctx
	}
	sess := resolve(r)
	if !sess.Authenticated() {
		return ctx
	}
	userID := strings.TrimSpace(sess.UserID)
	if userID == "" {
		return ctx
	}
	return requestctx.WithUserID(ctx, userID)
}
