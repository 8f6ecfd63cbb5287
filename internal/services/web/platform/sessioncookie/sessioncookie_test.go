package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
)

func TestRead(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatalf("expected nil request to have no session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if _, ok := Read(req); ok {
		t.Fatalf("expected missing cookie")
	}

	req.AddCookie(&http.Cookie{Name: Name, Value: "  ws-1  "})
	value, ok := Read(req)
	if !ok {
		t.Fatalf("expected cookie to be present")
	}
	if value != "ws-1" {
		t.Fatalf("value = %q, want %q", value, "ws-1")
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	secureReq := httptest.NewRequest(http.MethodGet, "https://app.example.test", nil)
	secureRR := httptest.NewRecorder()
	Write(secureRR, secureReq, "ws-1", time.Hour)
	secureCookie, err := http.ParseSetCookie(secureRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if secureCookie.Name != Name {
		t.Fatalf("cookie name = %q, want %q", secureCookie.Name, Name)
	}
	if secureCookie.Value != "ws-1" {
		t.Fatalf("cookie value = %q, want %q", secureCookie.Value, "ws-1")
	}
	if !secureCookie.Secure {
		t.Fatalf("expected secure cookie for https request")
	}
	if secureCookie.MaxAge != 3600 {
		t.Fatalf("cookie max-age = %d, want %d", secureCookie.MaxAge, 3600)
	}

	httpReq := httptest.NewRequest(http.MethodGet, "http://app.example.test", nil)
	httpRR := httptest.NewRecorder()
	Write(httpRR, httpReq, "ws-1", 0)
	httpCookie, err := http.ParseSetCookie(httpRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if httpCookie.Secure {
		t.Fatalf("expected non-secure cookie for http request")
	}

	policyReq := httptest.NewRequest(http.MethodGet, "http://app.example.test", nil)
	policyReq.Header.Set("X-Forwarded-Proto", "https")
	policyRR := httptest.NewRecorder()
	WriteWithPolicy(policyRR, policyReq, "ws-1", 0, requestmeta.SchemePolicy{TrustForwardedProto: true})
	policyCookie, err := http.ParseSetCookie(policyRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if !policyCookie.Secure {
		t.Fatalf("expected secure cookie when trusted policy is enabled")
	}
}

func TestClearWithPolicy(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "https://app.example.test", nil)
	rr := httptest.NewRecorder()
	ClearWithPolicy(rr, req, requestmeta.SchemePolicy{})
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != Name {
		t.Fatalf("cookie name = %q, want %q", cookie.Name, Name)
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("cookie max-age = %d, want < 0", cookie.MaxAge)
	}
}

func TestEnsureWizardReusesExistingID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/onboarding", nil)
	rr := httptest.NewRecorder()
	first, err := EnsureWizard(rr, req, requestmeta.SchemePolicy{})
	if err != nil {
		t.Fatalf("EnsureWizard() error = %v", err)
	}
	if first == "" {
		t.Fatalf("expected wizard id")
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != WizardName || cookie.Value != first {
		t.Fatalf("cookie = %s=%s, want %s=%s", cookie.Name, cookie.Value, WizardName, first)
	}

	next := httptest.NewRequest(http.MethodGet, "http://example.com/onboarding", nil)
	next.AddCookie(cookie)
	nextRR := httptest.NewRecorder()
	second, err := EnsureWizard(nextRR, next, requestmeta.SchemePolicy{})
	if err != nil {
		t.Fatalf("EnsureWizard() error = %v", err)
	}
	if second != first {
		t.Fatalf("wizard id = %q, want %q", second, first)
	}
	if got := nextRR.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("Set-Cookie = %q, want empty", got)
	}
}

func TestClearWizard(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	ClearWizard(rr, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{})
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != WizardName || cookie.MaxAge >= 0 {
		t.Fatalf("cookie = %#v, want expired wizard cookie", cookie)
	}
}

func TestOAuthRoundTripThroughCookie(t *testing.T) {
	t.Parallel()

	seed := httptest.NewRecorder()
	WriteOAuth(seed, httptest.NewRequest(http.MethodGet, "/auth/google/start", nil), OAuthState{State: "s1", Verifier: "v1", Next: "/onboarding"}, requestmeta.SchemePolicy{})
	cookies := seed.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != OAuthName {
		t.Fatalf("cookies = %+v, want one %q cookie", cookies, OAuthName)
	}
	if cookies[0].MaxAge <= 0 || !cookies[0].HttpOnly {
		t.Fatalf("cookie = %+v, want short-lived http-only", cookies[0])
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	req.AddCookie(cookies[0])
	got, ok := ReadOAuth(req)
	if !ok {
		t.Fatalf("ReadOAuth() ok = false")
	}
	if got.State != "s1" || got.Verifier != "v1" || got.Next != "/onboarding" {
		t.Fatalf("ReadOAuth() = %+v", got)
	}
}

func TestReadOAuthRejectsMalformed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	req.AddCookie(&http.Cookie{Name: OAuthName, Value: "not-base64!"})
	if _, ok := ReadOAuth(req); ok {
		t.Fatalf("ReadOAuth() ok = true for malformed cookie")
	}
}
