package web

import (
	"context"
	"net/http"
	"sync"

	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/inpact/internal/services/web/platform/theme"
)

// SessionVerifier validates session cookie tokens.
type SessionVerifier interface {
	Verify(token string) (session.Session, error)
}

type requestState struct {
	sessionOnce sync.Once
	session     *session.Session
	themeOnce   sync.Once
	theme       theme.Theme
}

type requestStateKey struct{}

type requestResolver struct {
	sessions SessionVerifier
}

func withRequestState() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), requestStateKey{}, &requestState{})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestStateFromRequest(r *http.Request) *requestState {
	if r == nil {
		return nil
	}
	state, _ := r.Context().Value(requestStateKey{}).(*requestState)
	return state
}

// resolveSession returns the verified session for the request cookie, or
// nil for anonymous requests. Results are cached for the request lifetime.
func (rr requestResolver) resolveSession(r *http.Request) *session.Session {
	state := requestStateFromRequest(r)
	if state == nil {
		return rr.verifyCookie(r)
	}
	state.sessionOnce.Do(func() {
		state.session = rr.verifyCookie(r)
	})
	return state.session
}

func (rr requestResolver) verifyCookie(r *http.Request) *session.Session {
	if rr.sessions == nil || r == nil {
		return nil
	}
	token, ok := sessioncookie.Read(r)
	if !ok {
		return nil
	}
	sess, err := rr.sessions.Verify(token)
	if err != nil || !sess.Authenticated() {
		return nil
	}
	return &sess
}

func (rr requestResolver) resolveTheme(r *http.Request) theme.Theme {
	state := requestStateFromRequest(r)
	if state == nil {
		return theme.Resolve(r)
	}
	state.themeOnce.Do(func() {
		state.theme = theme.Resolve(r)
	})
	return state.theme
}
