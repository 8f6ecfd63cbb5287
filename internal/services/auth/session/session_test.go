package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte(strings.Repeat("s", MinSecretBytes))

func TestNewManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(Config{Secret: []byte("short")}); err == nil {
		t.Fatal("expected short secret error")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := newManager(t, func() time.Time { return now })

	token, issued, err := manager.Issue(Identity{UserID: "user-1", Email: "ada@example.com", DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.ID == "" {
		t.Fatal("expected session id")
	}

	got, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("user id = %q, want %q", got.UserID, "user-1")
	}
	if got.ID != issued.ID {
		t.Fatalf("session id = %q, want %q", got.ID, issued.ID)
	}
	if got.Email != "ada@example.com" || got.DisplayName != "Ada" {
		t.Fatalf("identity = %q/%q, want ada@example.com/Ada", got.Email, got.DisplayName)
	}
	if !got.ExpiresAt.Equal(now.Add(DefaultTTL)) {
		t.Fatalf("expires_at = %v, want %v", got.ExpiresAt, now.Add(DefaultTTL))
	}
	if !got.Authenticated() {
		t.Fatal("expected authenticated session")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := newManager(t, func() time.Time { return now })
	token, _, err := manager.Issue(Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now = now.Add(DefaultTTL + time.Minute)
	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalid) {
		t.Fatalf("verify error = %v, want ErrInvalid", err)
	}
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	t.Parallel()

	manager := newManager(t, nil)
	other, err := NewManager(Config{Secret: []byte(strings.Repeat("o", MinSecretBytes))})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	foreign, _, err := other.Issue(Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    DefaultIssuer,
		Subject:   "user-1",
		ID:        "sess-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "other secret", token: foreign},
		{name: "alg none", token: none},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := manager.Verify(tc.token); !errors.Is(err, ErrInvalid) {
				t.Fatalf("verify error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestIssueRequiresUserID(t *testing.T) {
	t.Parallel()

	if _, _, err := newManager(t, nil).Issue(Identity{Email: "a@b.co"}); err == nil {
		t.Fatal("expected user id error")
	}
}

func TestNilSessionIsAnonymous(t *testing.T) {
	t.Parallel()

	var s *Session
	if s.Authenticated() {
		t.Fatal("nil session reported authenticated")
	}
	if (&Session{ID: "sess-1"}).Authenticated() {
		t.Fatal("session without user reported authenticated")
	}
}

func newManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()
	manager, err := NewManager(Config{Secret: testSecret, Now: now})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}
