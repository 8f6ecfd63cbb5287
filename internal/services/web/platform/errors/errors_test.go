package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	platformerrors "github.com/louisbranch/inpact/internal/platform/errors"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "unauthorized", err: E(KindUnauthorized, "who"), want: http.StatusUnauthorized},
		{name: "forbidden", err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{name: "not found", err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "conflict", err: E(KindConflict, "taken"), want: http.StatusConflict},
		{name: "too large", err: Wrap(KindTooLarge, "too big", &http.MaxBytesError{Limit: 1}), want: http.StatusRequestEntityTooLarge},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "unknown kind", err: E(KindUnknown, "?"), want: http.StatusInternalServerError},
		{name: "wrapped typed error", err: fmt.Errorf("step: %w", E(KindNotFound, "gone")), want: http.StatusNotFound},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "not authenticated code", err: platformerrors.New(platformerrors.CodeNotAuthenticated, "User not authenticated"), want: http.StatusUnauthorized},
		{name: "invalid credentials code", err: platformerrors.New(platformerrors.CodeInvalidCredentials, "bad"), want: http.StatusUnauthorized},
		{name: "account exists code", err: platformerrors.New(platformerrors.CodeAccountExists, "taken"), want: http.StatusConflict},
		{name: "wrapped channel not found", err: fmt.Errorf("lookup: %w", platformerrors.New(platformerrors.CodeChannelNotFound, "missing")), want: http.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestErrorFallsBackToKind(t *testing.T) {
	t.Parallel()

	if got := (Error{Kind: KindForbidden}).Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q, want %q", got, KindForbidden)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := &http.MaxBytesError{Limit: 8}
	err := Wrap(KindTooLarge, "request body too large", cause)
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) || tooLarge.Limit != 8 {
		t.Fatalf("errors.As(MaxBytesError) failed for %v", err)
	}
	if err.Error() != "request body too large" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	err := EK(KindInvalidInput, " web.signup.error_email ", "email required")
	if got := LocalizationKey(err); got != "web.signup.error_email" {
		t.Fatalf("LocalizationKey() = %q, want %q", got, "web.signup.error_email")
	}
	if got := LocalizationKey(errors.New("boom")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
	if got := LocalizationKey(nil); got != "" {
		t.Fatalf("LocalizationKey(nil) = %q, want empty", got)
	}
}
