package onboarding

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/inpact/internal/services/auth/session"
	"github.com/louisbranch/inpact/internal/services/onboarding/submit"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	"github.com/louisbranch/inpact/internal/services/onboarding/youtube"
	module "github.com/louisbranch/inpact/internal/services/web/module"
	weberrors "github.com/louisbranch/inpact/internal/services/web/platform/errors"
	"github.com/louisbranch/inpact/internal/services/web/platform/flash"
	"github.com/louisbranch/inpact/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

const testWizardID = "wiz-1"

func TestModuleIDs(t *testing.T) {
	t.Parallel()

	if got := NewCreator(Config{}).ID(); got != "onboarding" {
		t.Fatalf("ID() = %q, want %q", got, "onboarding")
	}
	if got := NewBrand(Config{}).ID(); got != "brand-onboarding" {
		t.Fatalf("ID() = %q, want %q", got, "brand-onboarding")
	}
}

func TestModuleHealthyRequiresStoreAndSubmitter(t *testing.T) {
	t.Parallel()

	if NewCreator(Config{}).Healthy() {
		t.Fatalf("Healthy() = true, want false without collaborators")
	}
	if !NewCreator(newTestEnv().cfg).Healthy() {
		t.Fatalf("Healthy() = false, want true")
	}
}

func TestMountUsesFlowPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		module Module
		want   string
	}{
		{name: "creator", module: NewCreator(Config{}), want: "/onboarding/"},
		{name: "brand", module: NewBrand(Config{}), want: "/brand-onboarding/"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mount, err := tc.module.Mount(module.Dependencies{})
			if err != nil {
				t.Fatalf("Mount() error = %v", err)
			}
			if mount.Prefix != tc.want {
				t.Fatalf("Prefix = %q, want %q", mount.Prefix, tc.want)
			}
		})
	}
}

func TestPageIssuesWizardCookieAndPrefills(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), testSession())

	rr := serve(mount, httptest.NewRequest(http.MethodGet, routepath.Onboarding, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	cookie := findCookie(rr, sessioncookie.WizardName)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("wizard cookie missing")
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="wizard"`, `data-step="role_select"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	state, err := env.store.Load(context.Background(), wizardstore.Key{SessionID: cookie.Value, Flow: wizard.FlowCreator})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if state.Personal.Email != "ada@example.com" {
		t.Fatalf("Email = %q, want prefilled", state.Personal.Email)
	}
}

func TestPageRedirectsWhenProfileExists(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.cfg.Profiles = fakeProfiles{brands: map[string]bool{"user-1": true}}
	mount := mountFlow(t, NewBrand(env.cfg), testSession())

	rr := serve(mount, httptest.NewRequest(http.MethodGet, routepath.BrandOnboarding, nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != routepath.BrandDashboard {
		t.Fatalf("Location = %q, want %q", got, routepath.BrandDashboard)
	}
	if findCookie(rr, flash.CookieName) == nil {
		t.Fatalf("flash cookie missing")
	}
}

func TestStepRendersValidationErrorsWithOK(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewBrand(env.cfg), nil)

	req := wizardForm(routepath.WizardStep(routepath.BrandOnboarding), url.Values{"action": {"next"}, "brand_name": {"Acme"}})
	req.Header.Set("HX-Request", "true")
	rr := serve(mount, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `data-step="brand_info"`) {
		t.Fatalf("body missing current step marker")
	}
	if !strings.Contains(body, "Acme") {
		t.Fatalf("body missing kept input")
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("htmx response rendered full page")
	}
}

func TestStepBrandRoleRedirects(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), nil)

	req := wizardForm(routepath.WizardStep(routepath.Onboarding), url.Values{"action": {"next"}, "role": {"brand"}})
	req.Header.Set("HX-Request", "true")
	rr := serve(mount, req)
	if got := rr.Header().Get("HX-Redirect"); got != routepath.BrandOnboarding {
		t.Fatalf("HX-Redirect = %q, want %q", got, routepath.BrandOnboarding)
	}
}

func TestYouTubeRendersChannelDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.lookup.channels["https://www.youtube.com/@ada"] = youtube.Channel{ID: "UC1", Title: "Ada Codes", SubscriberCount: "1200"}
	mount := mountFlow(t, NewCreator(env.cfg), nil)

	rr := serve(mount, wizardForm(routepath.WizardYouTube(routepath.Onboarding), url.Values{"youtube_url": {"https://www.youtube.com/@ada"}}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Ada Codes") || !strings.Contains(body, `data-channel="UC1"`) {
		t.Fatalf("body missing channel details: %s", body)
	}
}

func TestYouTubeRendersLookupError(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), nil)

	rr := serve(mount, wizardForm(routepath.WizardYouTube(routepath.Onboarding), url.Values{"youtube_url": {"https://www.youtube.com/@nobody"}}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "No channel found for this URL.") {
		t.Fatalf("body missing lookup error")
	}
}

func TestBioEditReturnsCounter(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), nil)

	rr := serve(mount, wizardForm(routepath.WizardBio(routepath.Onboarding), url.Values{"bio": {"one two three"}}))
	body := rr.Body.String()
	if !strings.Contains(body, `data-words="3"`) {
		t.Fatalf("body missing word count: %s", body)
	}
	if strings.Contains(body, `hx-swap-oob`) {
		t.Fatalf("accepted edit restored the input")
	}
}

func TestBioEditOverCapRestoresStoredText(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), nil)
	serve(mount, wizardForm(routepath.WizardBio(routepath.Onboarding), url.Values{"bio": {"kept text"}}))

	rr := serve(mount, wizardForm(routepath.WizardBio(routepath.Onboarding), url.Values{"bio": {strings.Repeat("w ", wizard.MaxBioWords+1)}}))
	body := rr.Body.String()
	for _, marker := range []string{`hx-swap-oob="true"`, "kept text", bioCapMessage} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestRefineRendersWarningOnFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.refiner.err = errors.New("upstream down")
	mount := mountFlow(t, NewCreator(env.cfg), nil)

	rr := serve(mount, wizardForm(routepath.WizardRefine(routepath.Onboarding), url.Values{"bio": {"rough bio"}}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "rough bio") || !strings.Contains(body, `role="status"`) {
		t.Fatalf("body missing kept text or warning: %s", body)
	}
}

func TestRefineReplacesBio(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), nil)

	rr := serve(mount, wizardForm(routepath.WizardRefine(routepath.Onboarding), url.Values{"bio": {"rough bio"}}))
	body := rr.Body.String()
	if !strings.Contains(body, "A polished bio.") {
		t.Fatalf("body missing refined text: %s", body)
	}
	if strings.Contains(body, `role="status"`) {
		t.Fatalf("body has a warning after a successful refine")
	}
}

func TestAssetUploadAndServe(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), nil)
	data := []byte("\x89PNG\r\n\x1a\nfake")

	rr := serve(mount, uploadRequest(t, routepath.WizardAsset(routepath.Onboarding), "me.png", "image/png", data))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), routepath.WizardAsset(routepath.Onboarding)+"?v=") {
		t.Fatalf("upload body missing preview url: %s", rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, routepath.WizardAsset(routepath.Onboarding), nil)
	req.AddCookie(wizardCookie())
	rr = serve(mount, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("Content-Type = %q, want %q", got, "image/png")
	}
	if !bytes.Equal(rr.Body.Bytes(), data) {
		t.Fatalf("body = %q, want uploaded bytes", rr.Body.Bytes())
	}
}

func TestAssetUploadRejectsNonImage(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mount := mountFlow(t, NewCreator(env.cfg), nil)

	rr := serve(mount, uploadRequest(t, routepath.WizardAsset(routepath.Onboarding), "notes.txt", "text/plain", []byte("hello")))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), wizard.ErrAssetInvalidType.Message) {
		t.Fatalf("body missing rejection message: %s", rr.Body.String())
	}
	if _, err := env.store.Load(context.Background(), wizardstore.Key{SessionID: testWizardID, Flow: wizard.FlowCreator}); !errors.Is(err, wizardstore.ErrNotFound) {
		t.Fatalf("Load() error = %v, want no state written", err)
	}
}

func TestSubmitRedirectsAndClearsState(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	key := wizardstore.Key{SessionID: testWizardID, Flow: wizard.FlowCreator}
	seedReview(t, env, key, wizard.StepReview)
	mount := mountFlow(t, NewCreator(env.cfg), testSession())

	req := wizardForm(routepath.WizardSubmit(routepath.Onboarding), url.Values{})
	req.Header.Set("HX-Request", "true")
	rr := serve(mount, req)
	if got := rr.Header().Get("HX-Redirect"); got != submit.CreatorLanding {
		t.Fatalf("HX-Redirect = %q, want %q", got, submit.CreatorLanding)
	}
	if findCookie(rr, flash.CookieName) == nil {
		t.Fatalf("flash cookie missing")
	}
	if _, err := env.store.Load(context.Background(), key); !errors.Is(err, wizardstore.ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestSubmitFailureRendersFormError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sess *session.Session
		err  error
		want string
	}{
		{name: "anonymous", want: "User not authenticated"},
		{name: "store failure", sess: testSession(), err: errors.New("db down"), want: submit.CreatorFailedMessage},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv()
			env.submitter.err = tc.err
			key := wizardstore.Key{SessionID: testWizardID, Flow: wizard.FlowCreator}
			seedReview(t, env, key, wizard.StepReview)
			mount := mountFlow(t, NewCreator(env.cfg), tc.sess)

			rr := serve(mount, wizardForm(routepath.WizardSubmit(routepath.Onboarding), url.Values{}))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
			}
			if !strings.Contains(rr.Body.String(), tc.want) {
				t.Fatalf("body missing %q", tc.want)
			}
			if _, err := env.store.Load(context.Background(), key); err != nil {
				t.Fatalf("Load() error = %v, want state kept", err)
			}
		})
	}
}

func mountFlow(t *testing.T, m Module, sess *session.Session) module.Mount {
	t.Helper()
	mount, err := m.Mount(module.Dependencies{ResolveSession: func(*http.Request) *session.Session { return sess }})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount
}

func seedReview(t *testing.T, env testEnv, key wizardstore.Key, step wizard.Step) {
	t.Helper()
	state := wizard.New(key.Flow)
	state.Step = step
	if err := env.store.Save(context.Background(), key, state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func serve(mount module.Mount, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}

func wizardCookie() *http.Cookie {
	return &http.Cookie{Name: sessioncookie.WizardName, Value: testWizardID}
}

func wizardForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(wizardCookie())
	return req
}

func uploadRequest(t *testing.T, path, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+imageField+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(wizardCookie())
	return req
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestFormErrorMapsOversizedBodies(t *testing.T) {
	t.Parallel()

	if got := weberrors.HTTPStatus(formError(&http.MaxBytesError{Limit: 4})); got != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized status = %d, want %d", got, http.StatusRequestEntityTooLarge)
	}
	if got := weberrors.HTTPStatus(formError(errors.New("malformed"))); got != http.StatusBadRequest {
		t.Fatalf("malformed status = %d, want %d", got, http.StatusBadRequest)
	}
}
