package public

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/services/auth/credentials"
	"github.com/louisbranch/inpact/internal/services/auth/session"
	apperrors "github.com/louisbranch/inpact/internal/services/web/platform/errors"
	"github.com/louisbranch/inpact/internal/services/web/platform/flash"
	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/inpact/internal/services/web/platform/weberror"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/inpact/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	page := h.Page(w, r, "")
	page.Title = page.T("web.home.title")
	h.WriteComponent(w, r, http.StatusOK, page, webtemplates.HomePage(page))
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r, r.URL.Query().Get(routepath.NextQueryKey)) {
		return
	}
	h.writeLogin(w, r, http.StatusOK, webtemplates.LoginView{
		Next:          routepath.SafeNext(r.URL.Query().Get(routepath.NextQueryKey)),
		GoogleEnabled: h.service.googleEnabled(),
	})
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "web.error.invalid_form", "invalid form body"))
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	next := routepath.SafeNext(r.PostFormValue(routepath.NextQueryKey))
	token, sess, err := h.service.signIn(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		status := apperrors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("web: sign in failed: %v", err)
			h.WriteError(w, r, err)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		h.writeLogin(w, r, status, webtemplates.LoginView{
			Email:         email,
			Error:         webtemplates.T(loc, "web.auth.invalid_credentials"),
			Next:          next,
			GoogleEnabled: h.service.googleEnabled(),
		})
		return
	}
	h.completeSignIn(w, r, token, sess, next)
}

func (h handlers) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r, r.URL.Query().Get(routepath.NextQueryKey)) {
		return
	}
	h.writeSignup(w, r, http.StatusOK, webtemplates.SignupView{
		Next: routepath.SafeNext(r.URL.Query().Get(routepath.NextQueryKey)),
	})
}

func (h handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "web.error.invalid_form", "invalid form body"))
		return
	}
	input := credentials.SignUpInput{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Password:    r.PostFormValue("password"),
		DisplayName: strings.TrimSpace(r.PostFormValue("name")),
	}
	next := routepath.SafeNext(r.PostFormValue(routepath.NextQueryKey))
	token, sess, err := h.service.signUp(r.Context(), input)
	if err != nil {
		status := apperrors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("web: sign up failed: %v", err)
			h.WriteError(w, r, err)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		h.writeSignup(w, r, status, webtemplates.SignupView{
			Name:  input.DisplayName,
			Email: input.Email,
			Error: weberror.PublicMessage(loc, err),
			Next:  next,
		})
		return
	}
	h.completeSignIn(w, r, token, sess, next)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	policy := h.SchemePolicy()
	sessioncookie.ClearWithPolicy(w, r, policy)
	if wizardID, ok := sessioncookie.ReadWizard(r); ok {
		if err := h.service.forgetWizards(r.Context(), wizardID); err != nil {
			log.Printf("web: sign out wizard cleanup failed: %v", err)
		}
		sessioncookie.ClearWizard(w, r, policy)
	}
	flash.WriteWithPolicy(w, r, flash.NoticeInfo("web.notice.signed_out"), policy)
	httpx.WriteRedirect(w, r, routepath.Root)
}

func (h handlers) handleGoogleStart(w http.ResponseWriter, r *http.Request) {
	if !h.service.googleEnabled() {
		h.WriteNotFound(w, r)
		return
	}
	authURL, state, verifier, err := h.service.google.Start()
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	sessioncookie.WriteOAuth(w, r, sessioncookie.OAuthState{
		State:    state,
		Verifier: verifier,
		Next:     routepath.SafeNext(r.URL.Query().Get(routepath.NextQueryKey)),
	}, h.SchemePolicy())
	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h handlers) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !h.service.googleEnabled() {
		h.WriteNotFound(w, r)
		return
	}
	policy := h.SchemePolicy()
	stored, ok := sessioncookie.ReadOAuth(r)
	sessioncookie.ClearOAuth(w, r, policy)

	query := r.URL.Query()
	state := query.Get("state")
	code := strings.TrimSpace(query.Get("code"))
	if !ok || state == "" || code == "" || query.Get("error") != "" ||
		subtle.ConstantTimeCompare([]byte(state), []byte(stored.State)) != 1 {
		h.failGoogle(w, r, "state mismatch or provider error")
		return
	}

	token, _, err := h.service.completeGoogle(r.Context(), code, stored.Verifier)
	if err != nil {
		h.failGoogle(w, r, err.Error())
		return
	}
	next := routepath.SafeNext(stored.Next)
	if next == "" {
		next = routepath.Onboarding
	}
	h.writeSession(w, r, token)
	httpx.WriteRedirect(w, r, next)
}

func (h handlers) failGoogle(w http.ResponseWriter, r *http.Request, reason string) {
	log.Printf("web: google sign in failed: %s", reason)
	flash.WriteWithPolicy(w, r, flash.NoticeError("web.auth.google_failed"), h.SchemePolicy())
	httpx.WriteRedirect(w, r, routepath.Login)
}

// completeSignIn writes the session cookie and sends the user to next, or
// to the landing page for their account.
func (h handlers) completeSignIn(w http.ResponseWriter, r *http.Request, token string, sess session.Session, next string) {
	h.writeSession(w, r, token)
	if next == "" {
		next = h.service.landing(r.Context(), sess.UserID)
	}
	httpx.WriteRedirect(w, r, next)
}

func (h handlers) writeSession(w http.ResponseWriter, r *http.Request, token string) {
	sessioncookie.WriteWithPolicy(w, r, token, h.service.sessionTTL(), h.SchemePolicy())
}

// redirectSignedIn sends an already signed-in visitor onward instead of
// showing an auth form.
func (h handlers) redirectSignedIn(w http.ResponseWriter, r *http.Request, next string) bool {
	sess := h.ResolveRequestSession(r)
	if !sess.Authenticated() {
		return false
	}
	target := routepath.SafeNext(next)
	if target == "" {
		target = h.service.landing(r.Context(), sess.UserID)
	}
	httpx.WriteRedirect(w, r, target)
	return true
}

func (h handlers) writeLogin(w http.ResponseWriter, r *http.Request, status int, view webtemplates.LoginView) {
	page := h.Page(w, r, "")
	page.Title = page.T("web.login.title")
	h.WriteComponent(w, r, status, page, webtemplates.LoginPage(page, view))
}

func (h handlers) writeSignup(w http.ResponseWriter, r *http.Request, status int, view webtemplates.SignupView) {
	page := h.Page(w, r, "")
	page.Title = page.T("web.signup.title")
	h.WriteComponent(w, r, status, page, webtemplates.SignupPage(page, view))
}
