package onboarding

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, newHandlers(newService(wizard.FlowCreator, Config{}), modulehandler.NewTestBase(nil), routepath.Onboarding))
}

func TestRegisterRoutesWizardPathAndMethodContracts(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	mux := http.NewServeMux()
	base := routepath.Onboarding
	registerRoutes(mux, newHandlers(newService(wizard.FlowCreator, env.cfg), modulehandler.NewTestBase(nil), base))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "page", method: http.MethodGet, path: base, wantStatus: http.StatusOK},
		{name: "page slash", method: http.MethodGet, path: base + "/", wantStatus: http.StatusOK},
		{name: "step get rejected", method: http.MethodGet, path: routepath.WizardStep(base), wantStatus: http.StatusMethodNotAllowed, wantAllow: http.MethodPost},
		{name: "submit get rejected", method: http.MethodGet, path: routepath.WizardSubmit(base), wantStatus: http.StatusMethodNotAllowed, wantAllow: http.MethodPost},
		{name: "refine get rejected", method: http.MethodGet, path: routepath.WizardRefine(base), wantStatus: http.StatusMethodNotAllowed, wantAllow: http.MethodPost},
		{name: "asset without cookie", method: http.MethodGet, path: routepath.WizardAsset(base), wantStatus: http.StatusNotFound},
		{name: "step delete rejected", method: http.MethodDelete, path: routepath.WizardStep(base), wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, path: base + "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantAllow != "" {
				if got := rr.Header().Get("Allow"); got != tc.wantAllow {
					t.Fatalf("Allow = %q, want %q", got, tc.wantAllow)
				}
			}
		})
	}
}
